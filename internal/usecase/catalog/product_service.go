package catalog

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/semijoias-crm/internal/audit"
	"github.com/BruksfildServices01/semijoias-crm/internal/csvio"
	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/catalog"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

var ErrInvalidPriceRange = httperr.ErrBusiness("invalid_price_range")

type Service struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewService(repo domain.Repository, audit *audit.Dispatcher) *Service {
	return &Service{repo: repo, audit: audit}
}

// ======================================================
// PRODUTOS (admin)
// ======================================================

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	p.ID = uuid.NewString()
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}

	s.dispatch(ctx, "product_created", p.ID)
	return s.Get(ctx, p.ID)
}

// Update troca os campos e as variações/estoque; imagens são preservadas.
func (s *Service) Update(ctx context.Context, id string, p domain.Product) (*domain.Product, error) {
	p.ID = id
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &p); err != nil {
		return nil, notFound(err)
	}

	s.dispatch(ctx, "product_updated", id)
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.dispatch(ctx, "product_deleted", id)
	return nil
}

// LowStock lista os produtos com algum estoque no limite ou abaixo.
func (s *Service) LowStock(ctx context.Context) ([]domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.LowStockProducts(all), nil
}

// ======================================================
// VITRINE
// ======================================================

func (s *Service) Storefront(ctx context.Context, f domain.Filter) ([]domain.Product, error) {
	if strings.TrimSpace(f.PriceRange) != "" {
		if _, ok := domain.ParsePriceRange(f.PriceRange); !ok {
			return nil, ErrInvalidPriceRange
		}
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Storefront(all, f), nil
}

// StorefrontProduct só expõe produtos ativos.
func (s *Service) StorefrontProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// ======================================================
// CATEGORIAS
// ======================================================

func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, domain.ErrNameRequired
	}
	c.ID = uuid.NewString()
	if err := s.repo.CreateCategory(ctx, &c); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "category_created",
		Entity:   "product_category",
		EntityID: c.ID,
	})
	return &c, nil
}

// ======================================================
// CSV
// ======================================================

func (s *Service) Export(ctx context.Context) ([]byte, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return csvio.ExportProducts(all), nil
}

// Import cria os produtos da planilha. A categoria é casada pelo nome,
// sem diferenciar maiúsculas; nome desconhecido deixa o produto sem categoria.
func (s *Service) Import(ctx context.Context, r io.Reader) (int, error) {
	rows, err := csvio.ImportProducts(r)
	if err != nil {
		return 0, err
	}

	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return 0, err
	}
	byName := make(map[string]string, len(cats))
	for _, c := range cats {
		byName[strings.ToLower(c.Name)] = c.ID
	}

	imported := 0
	for _, p := range rows {
		p.CategoryID = byName[strings.ToLower(strings.TrimSpace(p.CategoryName))]
		if err := p.Validate(); err != nil {
			continue
		}
		p.ID = uuid.NewString()
		if err := s.repo.Create(ctx, &p); err != nil {
			return imported, err
		}
		imported++
	}

	s.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "products_imported",
		Entity:   "product",
		Metadata: map[string]int{"imported": imported},
	})
	return imported, nil
}

func (s *Service) dispatch(ctx context.Context, action, id string) {
	s.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   action,
		Entity:   "product",
		EntityID: id,
	})
}

func notFound(err error) error {
	if errors.Is(err, httperr.ErrNotFound) {
		return domain.ErrProductNotFound
	}
	return err
}
