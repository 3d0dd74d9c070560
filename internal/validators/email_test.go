package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@loja.com", NormalizeEmail("  Ana@Loja.COM "))
}

func TestIsEmailFormatValid(t *testing.T) {
	cases := map[string]bool{
		"ana@loja.com":          true,
		"ana.souza@loja.com.br": true,
		"ana@loja":              false,
		"Ana <ana@loja.com>":    false,
		"ana.loja.com":          false,
		"":                      false,
	}
	for in, want := range cases {
		assert.Equal(t, want, IsEmailFormatValid(in), in)
	}
}

func TestIsEmailDomainValid_RejectsMalformed(t *testing.T) {
	assert.False(t, IsEmailDomainValid("ana@"))
	assert.False(t, IsEmailDomainValid("semarroba"))
}
