package tag

import "context"

// Association é uma linha cliente → etiqueta, já na ordem de inclusão.
type Association struct {
	ClientID string
	Tag      Tag
}

// Store persiste catálogo e associações.
type Store interface {
	ListTags(ctx context.Context) ([]Tag, error)
	CreateTag(ctx context.Context, t Tag) error
	ListAssociations(ctx context.Context) ([]Association, error)
	AddAssociation(ctx context.Context, clientID, tagID string) error
	RemoveAssociation(ctx context.Context, clientID, tagID string) error
}

// Load repõe o estado do registro a partir do que foi persistido.
func (r *Registry) Load(tags []Tag, assocs []Association) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tags = append([]Tag(nil), tags...)
	r.byClient = make(map[string][]Tag, len(assocs))
	for _, a := range assocs {
		if indexOf(r.byClient[a.ClientID], a.Tag.ID) >= 0 {
			continue
		}
		r.byClient[a.ClientID] = append(r.byClient[a.ClientID], a.Tag)
	}
}
