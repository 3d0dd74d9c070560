package tag

import (
	"context"

	"github.com/BruksfildServices01/semijoias-crm/internal/audit"
	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/tag"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

// ClientExists confirma que o cliente existe antes de etiquetar.
type ClientExists func(ctx context.Context, clientID string) error

// Service mantém o registro em memória alinhado com o banco: o registro
// responde leituras e cada escrita vai primeiro para o store.
type Service struct {
	registry *domain.Registry
	store    domain.Store
	client   ClientExists
	audit    *audit.Dispatcher
}

func NewService(
	registry *domain.Registry,
	store domain.Store,
	client ClientExists,
	audit *audit.Dispatcher,
) *Service {
	return &Service{
		registry: registry,
		store:    store,
		client:   client,
		audit:    audit,
	}
}

// Hydrate recarrega etiquetas e associações do store.
func (s *Service) Hydrate(ctx context.Context) error {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return err
	}
	assocs, err := s.store.ListAssociations(ctx)
	if err != nil {
		return err
	}
	s.registry.Load(tags, assocs)
	return nil
}

func (s *Service) Tags() []domain.Tag {
	return s.registry.Tags()
}

func (s *Service) CreateTag(ctx context.Context, name string, color domain.Color) (domain.Tag, error) {
	t, err := s.registry.NewTag(name, color)
	if err != nil {
		return domain.Tag{}, err
	}
	if err := s.store.CreateTag(ctx, t); err != nil {
		return domain.Tag{}, err
	}
	s.registry.Register(t)

	s.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "tag_created",
		Entity:   "tag",
		EntityID: t.ID,
		Metadata: map[string]string{"name": t.Name, "color": string(t.Color)},
	})
	return t, nil
}

// AddTag associa a etiqueta ao cliente. Repetir não duplica.
func (s *Service) AddTag(ctx context.Context, clientID, tagID string) ([]domain.Tag, error) {
	t, ok := s.registry.Lookup(tagID)
	if !ok {
		return nil, httperr.ErrBusiness("tag_not_found")
	}
	if err := s.checkClient(ctx, clientID); err != nil {
		return nil, err
	}

	if !s.registry.HasTag(clientID, tagID) {
		if err := s.store.AddAssociation(ctx, clientID, tagID); err != nil {
			return nil, err
		}
		s.registry.AddTag(clientID, t)

		s.audit.Dispatch(audit.Event{
			ActorID:  audit.ActorFrom(ctx),
			Action:   "client_tag_added",
			Entity:   "client",
			EntityID: clientID,
			Metadata: map[string]string{"tag_id": tagID},
		})
	}
	return s.registry.ClientTags(clientID), nil
}

// RemoveTag desfaz a associação; a etiqueta continua no catálogo.
func (s *Service) RemoveTag(ctx context.Context, clientID, tagID string) ([]domain.Tag, error) {
	if s.registry.HasTag(clientID, tagID) {
		if err := s.store.RemoveAssociation(ctx, clientID, tagID); err != nil {
			return nil, err
		}
		s.registry.RemoveTag(clientID, tagID)

		s.audit.Dispatch(audit.Event{
			ActorID:  audit.ActorFrom(ctx),
			Action:   "client_tag_removed",
			Entity:   "client",
			EntityID: clientID,
			Metadata: map[string]string{"tag_id": tagID},
		})
	}
	return s.registry.ClientTags(clientID), nil
}

// ClientView é o que a ficha do cliente mostra sobre etiquetas.
type ClientView struct {
	Tags     []domain.Tag `json:"tags"`
	Unused   []domain.Tag `json:"unused"`
	QuickAdd []domain.Tag `json:"quickAdd"`
}

func (s *Service) ClientView(ctx context.Context, clientID string) (*ClientView, error) {
	if err := s.checkClient(ctx, clientID); err != nil {
		return nil, err
	}
	return &ClientView{
		Tags:     nonNil(s.registry.ClientTags(clientID)),
		Unused:   nonNil(s.registry.UnusedTags(clientID)),
		QuickAdd: nonNil(s.registry.QuickAdd(clientID)),
	}, nil
}

func (s *Service) Associations() map[string][]domain.Tag {
	return s.registry.Associations()
}

func (s *Service) checkClient(ctx context.Context, clientID string) error {
	if s.client == nil {
		return nil
	}
	return s.client(ctx, clientID)
}

func nonNil(tags []domain.Tag) []domain.Tag {
	if tags == nil {
		return []domain.Tag{}
	}
	return tags
}
