package client

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/semijoias-crm/internal/audit"
	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

type UpdateClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateClient {
	return &UpdateClient{
		repo:  repo,
		audit: audit,
	}
}

// Execute aplica só os campos enviados; id e created_at não mudam.
func (uc *UpdateClient) Execute(ctx context.Context, id string, patch domain.Patch) (*domain.Client, error) {
	c, err := uc.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, err
	}

	patch.Apply(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "client_updated",
		Entity:   "client",
		EntityID: c.ID,
	})

	return c, nil
}
