package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/cart"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/catalog"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/infra/cartstore"
	"github.com/BruksfildServices01/semijoias-crm/internal/infra/payment"
	"github.com/BruksfildServices01/semijoias-crm/internal/logger"
)

type productMap map[string]catalog.Product

func (m productMap) Get(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := m[id]
	if !ok {
		return nil, httperr.ErrNotFound
	}
	return &p, nil
}

type fakeCheckout struct {
	got *domain.Cart
	err error
}

func (f *fakeCheckout) CreateCheckout(_ context.Context, c *domain.Cart) (*payment.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.got = c
	return &payment.Session{PreferenceID: "pref-1", URL: "https://mp.test/pay"}, nil
}

var products = productMap{
	"brinco": {ID: "brinco", Name: "Brinco Gota", Price: decimal.RequireFromString("49.90"), Active: true},
	"colar":  {ID: "colar", Name: "Colar Elo", Price: decimal.RequireFromString("120.00"), Active: true},
	"velho":  {ID: "velho", Name: "Anel antigo", Price: decimal.RequireFromString("10"), Active: false},
}

func TestService_AddAndTotals(t *testing.T) {
	svc := NewService(cartstore.NewMemoryStore(), products, nil)
	ctx := context.Background()

	c, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Add(ctx, c.ID, "brinco")
	require.NoError(t, err)
	_, err = svc.Add(ctx, c.ID, "brinco")
	require.NoError(t, err)
	sum, err := svc.Add(ctx, c.ID, "colar")
	require.NoError(t, err)

	require.Len(t, sum.Lines, 2)
	assert.Equal(t, 2, sum.Lines[0].Quantity)
	assert.Equal(t, 3, sum.ItemCount)
	assert.True(t, decimal.RequireFromString("219.80").Equal(sum.Total))

	sum, err = svc.UpdateQuantity(ctx, c.ID, "brinco", 0)
	require.NoError(t, err)
	require.Len(t, sum.Lines, 1)
	assert.Equal(t, "colar", sum.Lines[0].ProductID)
}

func TestService_RejectsInactiveOrMissingProduct(t *testing.T) {
	svc := NewService(cartstore.NewMemoryStore(), products, nil)
	ctx := context.Background()
	c, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Add(ctx, c.ID, "velho")
	assert.True(t, httperr.IsBusiness(err, "product_not_found"))

	_, err = svc.Add(ctx, c.ID, "nada")
	assert.True(t, httperr.IsBusiness(err, "product_not_found"))
}

func TestService_UnknownCart(t *testing.T) {
	svc := NewService(cartstore.NewMemoryStore(), products, nil)
	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestService_Checkout(t *testing.T) {
	store := cartstore.NewMemoryStore()
	pay := &fakeCheckout{}
	svc := NewService(store, products, pay)
	ctx := context.Background()

	c, err := svc.Create(ctx)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, c.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.Add(ctx, c.ID, "colar")
	require.NoError(t, err)

	session, err := svc.Checkout(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "pref-1", session.PreferenceID)
	require.NotNil(t, pay.got)
	assert.Equal(t, c.ID, pay.got.ID)

	_, err = svc.Get(ctx, c.ID)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestService_CheckoutFailureKeepsCart(t *testing.T) {
	svc := NewService(cartstore.NewMemoryStore(), products, &fakeCheckout{err: errors.New("mp down")})
	ctx := context.Background()
	c, _ := svc.Create(ctx)
	_, err := svc.Add(ctx, c.ID, "colar")
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, c.ID)
	require.Error(t, err)

	sum, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, sum.Lines, 1)
}

func TestService_CheckoutUnavailable(t *testing.T) {
	svc := NewService(cartstore.NewMemoryStore(), products, nil)
	_, err := svc.Checkout(context.Background(), "any")
	assert.ErrorIs(t, err, ErrCheckoutUnavailable)
}

// stickyStore falha ao apagar, como um redis fora do ar depois do checkout.
type stickyStore struct {
	cartstore.Store
}

func (stickyStore) Delete(context.Context, string) error { return errors.New("redis: connection refused") }

func TestService_CheckoutLogsCartCleanupFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx := logger.WithContext(context.Background(), zap.New(core))

	svc := NewService(stickyStore{cartstore.NewMemoryStore()}, products, &fakeCheckout{})
	c, err := svc.Create(ctx)
	require.NoError(t, err)
	_, err = svc.Add(ctx, c.ID, "colar")
	require.NoError(t, err)

	session, err := svc.Checkout(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "pref-1", session.PreferenceID)

	entries := logs.FilterMessage("cart not removed after checkout").All()
	require.Len(t, entries, 1)
	assert.Equal(t, c.ID, entries[0].ContextMap()["cart_id"])
	assert.Contains(t, entries[0].ContextMap()["error"], "connection refused")
}
