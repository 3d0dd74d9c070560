package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	brinco = Item{ProductID: "p1", Name: "Brinco", Price: decimal.RequireFromString("49.90")}
	colar  = Item{ProductID: "p2", Name: "Colar", Price: decimal.RequireFromString("120.00")}
)

func TestAddTwiceThenZeroEmptiesCart(t *testing.T) {
	c := New("c1")
	c.Add(brinco)
	c.Add(brinco)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)

	c.UpdateQuantity("p1", 0)

	assert.True(t, c.Empty())
	assert.True(t, c.Total().IsZero())
	assert.Equal(t, 0, c.ItemCount())
}

func TestTotalAndCount(t *testing.T) {
	c := New("c1")
	c.Add(brinco)
	c.Add(colar)
	c.UpdateQuantity("p2", 3)

	assert.Equal(t, "409.9", c.Total().String())
	assert.Equal(t, 4, c.ItemCount())
}

func TestUpdateUnknownProductIsNoop(t *testing.T) {
	c := New("c1")
	c.Add(brinco)
	c.UpdateQuantity("missing", 5)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.ItemCount())
}

func TestNegativeQuantityRemoves(t *testing.T) {
	c := New("c1")
	c.Add(brinco)
	c.Add(colar)
	c.UpdateQuantity("p1", -3)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, "p2", c.Lines[0].ProductID)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	c := New("c1")
	c.Add(colar)
	c.Remove("p1")
	assert.Equal(t, 1, c.ItemCount())

	c.Remove("p2")
	assert.True(t, c.Empty())
}

func TestEmptyCartSummary(t *testing.T) {
	s := (&Cart{ID: "x"}).Summary()
	assert.NotNil(t, s.Lines)
	assert.True(t, s.Total.Equal(decimal.Zero))
	assert.Equal(t, 0, s.ItemCount)
}
