package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/semijoias-crm/internal/audit"
	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/timezone"
)

type CreateClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewCreateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CreateClient {
	return &CreateClient{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *CreateClient) Execute(ctx context.Context, c domain.Client) (*domain.Client, error) {
	trimFields(&c)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	c.ID = uuid.NewString()
	c.CreatedAt = uc.clock()

	if err := uc.repo.Create(ctx, &c); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "client_created",
		Entity:   "client",
		EntityID: c.ID,
	})

	return &c, nil
}

// trimFields normaliza o formulário antes de validar.
func trimFields(c *domain.Client) {
	domain.Patch{
		Name:         &c.Name,
		Email:        &c.Email,
		Phone:        &c.Phone,
		WhatsApp:     &c.WhatsApp,
		Street:       &c.Street,
		Neighborhood: &c.Neighborhood,
		City:         &c.City,
		State:        &c.State,
		PostalCode:   &c.PostalCode,
		Profession:   &c.Profession,
		Employer:     &c.Employer,
		Notes:        &c.Notes,
	}.Apply(c)
}
