package client

import (
	"context"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/timezone"
)

// Segments é o painel de segmentação de clientes.
type Segments struct {
	BirthdaysToday     []domain.Client `json:"birthdaysToday"`
	BirthdaysThisMonth []domain.Client `json:"birthdaysThisMonth"`
	Inactive           []domain.Client `json:"inactive"`
	NewThisMonth       []domain.Client `json:"newThisMonth"`
	InactiveMonths     int             `json:"inactiveMonths"`
}

type ListSegments struct {
	repo           domain.Repository
	clock          timezone.Clock
	inactiveMonths int
}

// NewListSegments: inactiveMonths fora de 1..12 cai no padrão do domínio.
func NewListSegments(repo domain.Repository, clock timezone.Clock, inactiveMonths int) *ListSegments {
	if !domain.ValidThreshold(inactiveMonths) {
		inactiveMonths = domain.DefaultInactiveMonths
	}
	return &ListSegments{repo: repo, clock: clock, inactiveMonths: inactiveMonths}
}

// Execute: months 0 usa o limite configurado; fora de 1..12 é rejeitado.
func (uc *ListSegments) Execute(ctx context.Context, months int) (*Segments, error) {
	if months == 0 {
		months = uc.inactiveMonths
	}
	if !domain.ValidThreshold(months) {
		return nil, httperr.ErrBusiness("invalid_threshold")
	}

	clients, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.clock()
	return &Segments{
		BirthdaysToday:     domain.BirthdaysToday(clients, now),
		BirthdaysThisMonth: domain.BirthdaysThisMonth(clients, now),
		Inactive:           domain.Inactive(clients, months, now),
		NewThisMonth:       domain.NewThisMonth(clients, now),
		InactiveMonths:     months,
	}, nil
}
