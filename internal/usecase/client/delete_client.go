package client

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/semijoias-crm/internal/audit"
	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/tag"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

type DeleteClient struct {
	repo     domain.Repository
	registry *tag.Registry
	audit    *audit.Dispatcher
}

func NewDeleteClient(
	repo domain.Repository,
	registry *tag.Registry,
	audit *audit.Dispatcher,
) *DeleteClient {
	return &DeleteClient{
		repo:     repo,
		registry: registry,
		audit:    audit,
	}
}

// Execute apaga o cliente; as etiquetas e cobranças dele vão junto.
func (uc *DeleteClient) Execute(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return httperr.ErrBusiness("client_not_found")
		}
		return err
	}

	uc.registry.DropClient(id)

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: id,
	})
	return nil
}
