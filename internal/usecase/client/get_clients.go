package client

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

type ListClients struct {
	repo domain.Repository
}

func NewListClients(repo domain.Repository) *ListClients {
	return &ListClients{repo: repo}
}

// Execute lista todos ou filtra por nome, telefone, email e cidade.
func (uc *ListClients) Execute(ctx context.Context, query string) ([]domain.Client, error) {
	if query == "" {
		return uc.repo.List(ctx)
	}
	return uc.repo.Search(ctx, query)
}

type GetClient struct {
	repo domain.Repository
}

func NewGetClient(repo domain.Repository) *GetClient {
	return &GetClient{repo: repo}
}

func (uc *GetClient) Execute(ctx context.Context, id string) (*domain.Client, error) {
	c, err := uc.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, err
	}
	return c, nil
}
