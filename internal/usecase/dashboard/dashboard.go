package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/catalog"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/timezone"
)

type Summary struct {
	Clients            int `json:"clients"`
	Products           int `json:"products"`
	LowStockProducts   int `json:"lowStockProducts"`
	BirthdaysThisMonth int `json:"birthdaysThisMonth"`
	BirthdaysToday     int `json:"birthdaysToday"`
	InactiveClients    int `json:"inactiveClients"`
	NewThisMonth       int `json:"newThisMonth"`
	InactiveMonths     int `json:"inactiveMonths"`
}

type ProductLister interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

type GetSummary struct {
	clients        client.Repository
	products       ProductLister
	clock          timezone.Clock
	inactiveMonths int
}

func NewGetSummary(
	clients client.Repository,
	products ProductLister,
	clock timezone.Clock,
	inactiveMonths int,
) *GetSummary {
	if !client.ValidThreshold(inactiveMonths) {
		inactiveMonths = client.DefaultInactiveMonths
	}
	return &GetSummary{
		clients:        clients,
		products:       products,
		clock:          clock,
		inactiveMonths: inactiveMonths,
	}
}

// Execute carrega clientes e produtos em paralelo.
func (uc *GetSummary) Execute(ctx context.Context) (*Summary, error) {
	var (
		clients  []client.Client
		products []catalog.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		clients, err = uc.clients.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = uc.products.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := uc.clock()
	return &Summary{
		Clients:            len(clients),
		Products:           len(products),
		LowStockProducts:   len(catalog.LowStockProducts(products)),
		BirthdaysThisMonth: len(client.BirthdaysThisMonth(clients, now)),
		BirthdaysToday:     len(client.BirthdaysToday(clients, now)),
		InactiveClients:    len(client.Inactive(clients, uc.inactiveMonths, now)),
		NewThisMonth:       len(client.NewThisMonth(clients, now)),
		InactiveMonths:     uc.inactiveMonths,
	}, nil
}
