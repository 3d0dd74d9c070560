package client

import (
	"context"
	"io"

	"github.com/BruksfildServices01/semijoias-crm/internal/audit"
	"github.com/BruksfildServices01/semijoias-crm/internal/csvio"
	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  []SkippedRow     `json:"skipped"`
	Clients  []*domain.Client `json:"-"`
}

type SkippedRow struct {
	Name   string `json:"nome"`
	Reason string `json:"reason"`
}

type ImportClients struct {
	create *CreateClient
	audit  *audit.Dispatcher
}

func NewImportClients(create *CreateClient, audit *audit.Dispatcher) *ImportClients {
	return &ImportClients{create: create, audit: audit}
}

// Execute cria um cliente por linha válida. Linha rejeitada pela validação
// entra em Skipped; erro de banco interrompe.
func (uc *ImportClients) Execute(ctx context.Context, r io.Reader) (*ImportResult, error) {
	rows, err := csvio.ImportClients(r)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{Skipped: []SkippedRow{}}
	for _, row := range rows {
		created, err := uc.create.Execute(ctx, row)
		if err != nil {
			if code, ok := httperr.BusinessCode(err); ok {
				res.Skipped = append(res.Skipped, SkippedRow{Name: row.Name, Reason: code})
				continue
			}
			return res, err
		}
		res.Imported++
		res.Clients = append(res.Clients, created)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "clients_imported",
		Entity:   "client",
		Metadata: map[string]int{"imported": res.Imported, "skipped": len(res.Skipped)},
	})
	return res, nil
}

// ExportClients gera o CSV com todos os clientes.
type ExportClients struct {
	repo domain.Repository
}

func NewExportClients(repo domain.Repository) *ExportClients {
	return &ExportClients{repo: repo}
}

func (uc *ExportClients) Execute(ctx context.Context) ([]byte, error) {
	clients, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return csvio.ExportClients(clients), nil
}
