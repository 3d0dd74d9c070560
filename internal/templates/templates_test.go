package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogHasEveryKind(t *testing.T) {
	c := Default()
	for _, kind := range []Kind{Birthday, Promotion, Inactive, Billing} {
		tpl, ok := c.Get(kind)
		require.Truef(t, ok, "missing %s", kind)
		assert.NotEmpty(t, tpl.Message)
		assert.NotEmpty(t, tpl.Subject)
	}
	birthday, _ := c.Get(Birthday)
	assert.Contains(t, birthday.Message, "15%")
}

func TestResolveOverridesOnlyGivenFields(t *testing.T) {
	c := Default()
	base, _ := c.Get(Promotion)

	got := c.Resolve(Promotion, "", "Frete grátis hoje, {nome}!")
	assert.Equal(t, base.Subject, got.Subject)
	assert.Equal(t, "Frete grátis hoje, {nome}!", got.Message)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("inactive:\n  subject: Volte!\n  message: Oi {nome}\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	inactive, _ := c.Get(Inactive)
	assert.Equal(t, "Volte!", inactive.Subject)
	_, ok := c.Get(Birthday)
	assert.True(t, ok)
}

func TestParseRejectsEmptyMessage(t *testing.T) {
	_, err := Parse([]byte("birthday:\n  subject: x\n"))
	assert.Error(t, err)
}
