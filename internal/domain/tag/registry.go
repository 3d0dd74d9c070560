package tag

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

// Color é a classe de cor exibida pela etiqueta.
type Color string

// Palette é a paleta fixa; o primeiro item é a cor padrão do formulário.
var Palette = []Color{
	"bg-blue-100 text-blue-800",
	"bg-green-100 text-green-800",
	"bg-yellow-100 text-yellow-800",
	"bg-red-100 text-red-800",
	"bg-purple-100 text-purple-800",
	"bg-pink-100 text-pink-800",
	"bg-indigo-100 text-indigo-800",
	"bg-gray-100 text-gray-800",
}

const QuickAddLimit = 3

var (
	ErrEmptyName    = httperr.ErrBusiness("name_required")
	ErrInvalidColor = httperr.ErrBusiness("invalid_tag_color")
)

type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// ResolveColor valida a cor; vazio vira a cor padrão.
func ResolveColor(c Color) (Color, error) {
	if strings.TrimSpace(string(c)) == "" {
		return Palette[0], nil
	}
	for _, p := range Palette {
		if p == c {
			return c, nil
		}
	}
	return "", ErrInvalidColor
}

// Registry guarda o catálogo de etiquetas e as associações por cliente.
// Seguro para uso concorrente.
type Registry struct {
	mu       sync.RWMutex
	tags     []Tag
	byClient map[string][]Tag
	newID    func() string
}

func NewRegistry() *Registry {
	return &Registry{
		byClient: map[string][]Tag{},
		newID:    uuid.NewString,
	}
}

// NewTag valida nome e cor e aloca um id, sem registrar.
func (r *Registry) NewTag(name string, color Color) (Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Tag{}, ErrEmptyName
	}
	resolved, err := ResolveColor(color)
	if err != nil {
		return Tag{}, err
	}
	return Tag{ID: r.newID(), Name: name, Color: resolved}, nil
}

// CreateTag cria e registra. Nomes repetidos são permitidos.
func (r *Registry) CreateTag(name string, color Color) (Tag, error) {
	t, err := r.NewTag(name, color)
	if err != nil {
		return Tag{}, err
	}
	r.Register(t)
	return t, nil
}

// Register adiciona uma etiqueta já existente (ex.: carregada do banco).
func (r *Registry) Register(t Tag) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.tags {
		if existing.ID == t.ID {
			return
		}
	}
	r.tags = append(r.tags, t)
}

func (r *Registry) Tags() []Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Tag(nil), r.tags...)
}

func (r *Registry) Lookup(tagID string) (Tag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tags {
		if t.ID == tagID {
			return t, true
		}
	}
	return Tag{}, false
}

// HasTag informa se o cliente já possui a etiqueta.
func (r *Registry) HasTag(clientID, tagID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return indexOf(r.byClient[clientID], tagID) >= 0
}

// AddTag anexa no fim da lista do cliente, só se ainda não estiver lá.
// Devolve true quando houve mudança.
func (r *Registry) AddTag(clientID string, t Tag) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.byClient[clientID]
	if indexOf(current, t.ID) >= 0 {
		return false
	}
	r.byClient[clientID] = append(current, t)
	return true
}

// RemoveTag tira a etiqueta do cliente; no-op se ausente.
func (r *Registry) RemoveTag(clientID, tagID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.byClient[clientID]
	i := indexOf(current, tagID)
	if i < 0 {
		return false
	}

	next := make([]Tag, 0, len(current)-1)
	next = append(next, current[:i]...)
	next = append(next, current[i+1:]...)
	if len(next) == 0 {
		delete(r.byClient, clientID)
	} else {
		r.byClient[clientID] = next
	}
	return true
}

func (r *Registry) ClientTags(clientID string) []Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Tag(nil), r.byClient[clientID]...)
}

// UnusedTags: catálogo menos as etiquetas do cliente, na ordem de criação.
func (r *Registry) UnusedTags(clientID string) []Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	used := r.byClient[clientID]
	out := make([]Tag, 0, len(r.tags))
	for _, t := range r.tags {
		if indexOf(used, t.ID) < 0 {
			out = append(out, t)
		}
	}
	return out
}

// QuickAdd são as sugestões de "+ etiqueta" mostradas no cartão do cliente.
func (r *Registry) QuickAdd(clientID string) []Tag {
	unused := r.UnusedTags(clientID)
	if len(unused) > QuickAddLimit {
		unused = unused[:QuickAddLimit]
	}
	return unused
}

// Associations devolve uma cópia do mapa cliente → etiquetas.
func (r *Registry) Associations() map[string][]Tag {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]Tag, len(r.byClient))
	for id, tags := range r.byClient {
		out[id] = append([]Tag(nil), tags...)
	}
	return out
}

// DropClient limpa as associações de um cliente removido.
func (r *Registry) DropClient(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byClient, clientID)
}

func indexOf(tags []Tag, tagID string) int {
	for i, t := range tags {
		if t.ID == tagID {
			return i
		}
	}
	return -1
}
