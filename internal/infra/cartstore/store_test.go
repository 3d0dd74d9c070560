package cartstore

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/cart"
)

func TestMemoryStoreRoundTripKeepsTotals(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	c := cart.New("abc")
	c.Add(cart.Item{ProductID: "p1", Name: "Anel", Price: decimal.RequireFromString("79.90")})
	c.Add(cart.Item{ProductID: "p1", Name: "Anel", Price: decimal.RequireFromString("79.90")})
	require.NoError(t, s.Save(ctx, c))

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, got.ItemCount())
	assert.True(t, got.Total().Equal(decimal.RequireFromString("159.80")))

	require.NoError(t, s.Delete(ctx, "abc"))
	_, err = s.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNotFound)
}
