package templates

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

type Kind string

const (
	Birthday  Kind = "birthday"
	Promotion Kind = "promotion"
	Inactive  Kind = "inactive"
	Billing   Kind = "billing"
)

type Template struct {
	Subject string `yaml:"subject" json:"subject"`
	Message string `yaml:"message" json:"message"`
}

// Catalog guarda os textos padrão por tipo de automação.
type Catalog struct {
	entries map[Kind]Template
}

// Default carrega o catálogo embutido.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("templates: embedded catalog: %v", err))
	}
	return c
}

func Parse(b []byte) (*Catalog, error) {
	entries := map[Kind]Template{}
	if err := yaml.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	for kind, t := range entries {
		if strings.TrimSpace(t.Message) == "" {
			return nil, fmt.Errorf("template %q: empty message", kind)
		}
	}
	return &Catalog{entries: entries}, nil
}

// Load lê path por cima do catálogo embutido; path vazio usa só os padrões.
func Load(path string) (*Catalog, error) {
	base := Default()
	if path == "" {
		return base, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	override, err := Parse(b)
	if err != nil {
		return nil, err
	}
	for kind, t := range override.entries {
		base.entries[kind] = t
	}
	return base, nil
}

func (c *Catalog) Get(kind Kind) (Template, bool) {
	t, ok := c.entries[kind]
	return t, ok
}

// Resolve devolve o texto padrão com assunto/mensagem do chamador por cima.
func (c *Catalog) Resolve(kind Kind, subject, message string) Template {
	t := c.entries[kind]
	if strings.TrimSpace(subject) != "" {
		t.Subject = subject
	}
	if strings.TrimSpace(message) != "" {
		t.Message = message
	}
	return t
}

func (c *Catalog) All() map[Kind]Template {
	out := make(map[Kind]Template, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}
