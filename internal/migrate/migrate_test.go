package migrate

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cada versão precisa do par up/down, senão o migrate falha em runtime.
func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "sql")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestInitCreatesCoreTables(t *testing.T) {
	b, err := fs.ReadFile(migrationsFS, "sql/000001_init.up.sql")
	require.NoError(t, err)

	for _, table := range []string{"clients", "tags", "client_tags", "billing_items", "products", "admin_users", "audit_logs"} {
		assert.Containsf(t, string(b), "CREATE TABLE IF NOT EXISTS "+table+" (", "missing table %s", table)
	}
}
