package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/cart"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/catalog"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/infra/cartstore"
	"github.com/BruksfildServices01/semijoias-crm/internal/infra/payment"
	"github.com/BruksfildServices01/semijoias-crm/internal/logger"
	"github.com/BruksfildServices01/semijoias-crm/internal/metrics"
)

var (
	ErrCartNotFound        = httperr.ErrBusiness("cart_not_found")
	ErrEmptyCart           = httperr.ErrBusiness("empty_cart")
	ErrCheckoutUnavailable = httperr.ErrBusiness("checkout_unavailable")
)

// CheckoutProvider abre a sessão de pagamento do carrinho.
type CheckoutProvider interface {
	CreateCheckout(ctx context.Context, c *domain.Cart) (*payment.Session, error)
}

// ProductFinder busca o produto adicionado ao carrinho.
type ProductFinder interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
}

// Service é o carrinho da vitrine: estado em cartstore, preço lido do
// catálogo no momento da inclusão.
type Service struct {
	store    cartstore.Store
	products ProductFinder
	checkout CheckoutProvider
}

func NewService(
	store cartstore.Store,
	products ProductFinder,
	checkout CheckoutProvider,
) *Service {
	return &Service{
		store:    store,
		products: products,
		checkout: checkout,
	}
}

func (s *Service) Create(ctx context.Context) (*domain.Summary, error) {
	c := domain.New(uuid.NewString())
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	sum := c.Summary()
	return &sum, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Summary, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	sum := c.Summary()
	return &sum, nil
}

// Add inclui uma unidade do produto. Produto inativo não entra.
func (s *Service) Add(ctx context.Context, cartID, productID string) (*domain.Summary, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, err
	}
	if !p.Active {
		return nil, catalog.ErrProductNotFound
	}

	c.Add(p.CartItem())
	return s.save(ctx, c)
}

func (s *Service) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Summary, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	c.UpdateQuantity(productID, quantity)
	return s.save(ctx, c)
}

func (s *Service) Remove(ctx context.Context, cartID, productID string) (*domain.Summary, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	c.Remove(productID)
	return s.save(ctx, c)
}

func (s *Service) Clear(ctx context.Context, cartID string) (*domain.Summary, error) {
	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	c.Clear()
	return s.save(ctx, c)
}

// Checkout cria a preferência de pagamento. O carrinho só é apagado
// quando a sessão é aberta com sucesso.
func (s *Service) Checkout(ctx context.Context, cartID string) (*payment.Session, error) {
	if s.checkout == nil {
		metrics.CartCheckouts.WithLabelValues("unavailable").Inc()
		return nil, ErrCheckoutUnavailable
	}

	c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c.Empty() {
		metrics.CartCheckouts.WithLabelValues("empty").Inc()
		return nil, ErrEmptyCart
	}

	session, err := s.checkout.CreateCheckout(ctx, c)
	if err != nil {
		metrics.CartCheckouts.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.CartCheckouts.WithLabelValues("created").Inc()

	// pagamento já aberto: falha ao limpar o carrinho não derruba o checkout
	if err := s.store.Delete(ctx, cartID); err != nil {
		logger.FromContext(ctx).Warn("cart not removed after checkout",
			zap.String("cart_id", cartID),
			zap.Error(err),
		)
	}
	return session, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Cart, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, cartstore.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) save(ctx context.Context, c *domain.Cart) (*domain.Summary, error) {
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	sum := c.Summary()
	return &sum, nil
}
