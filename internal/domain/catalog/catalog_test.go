package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func productNames(ps []Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}

func TestParsePriceRange(t *testing.T) {
	r, ok := ParsePriceRange("50-100")
	require.True(t, ok)
	assert.True(t, r.Contains(price("50")))
	assert.True(t, r.Contains(price("100")))
	assert.False(t, r.Contains(price("100.01")))
	assert.False(t, r.Contains(price("49.99")))

	open, ok := ParsePriceRange("200-")
	require.True(t, ok)
	assert.Nil(t, open.Max)
	assert.True(t, open.Contains(price("999")))

	_, ok = ParsePriceRange("barato")
	assert.False(t, ok)
	_, ok = ParsePriceRange("")
	assert.False(t, ok)
}

func TestStorefront(t *testing.T) {
	products := []Product{
		{Name: "Brinco Pérola", Price: price("49.90"), CategoryID: "brincos", Active: true},
		{Name: "Colar Ouro", Description: "banhado a ouro", Price: price("150"), CategoryID: "colares", Active: true},
		{Name: "Anel Antigo", Price: price("80"), CategoryID: "aneis", Active: false},
		{Name: "Pulseira", Description: "ouro rosé", Price: price("250"), CategoryID: "pulseiras", Active: true},
	}

	assert.Equal(t, []string{"Brinco Pérola", "Colar Ouro", "Pulseira"}, productNames(Storefront(products, Filter{})))
	assert.Equal(t, []string{"Colar Ouro", "Pulseira"}, productNames(Storefront(products, Filter{Search: "OURO"})))
	assert.Equal(t, []string{"Colar Ouro"}, productNames(Storefront(products, Filter{CategoryID: "colares"})))
	assert.Equal(t, []string{"Colar Ouro", "Pulseira"}, productNames(Storefront(products, Filter{PriceRange: "100-"})))
	assert.Equal(t, []string{"Brinco Pérola", "Colar Ouro", "Pulseira"}, productNames(Storefront(products, Filter{CategoryID: "all", PriceRange: "??"})))
}

func TestLowStock(t *testing.T) {
	products := []Product{
		{Name: "sem estoque cadastrado"},
		{Name: "padrão", Inventory: []InventoryItem{{Quantity: 5}}},
		{Name: "acima", Inventory: []InventoryItem{{Quantity: 6}}},
		{Name: "limite próprio", Inventory: []InventoryItem{{Quantity: 9, LowStockThreshold: 10}}},
		{Name: "uma variação baixa", Inventory: []InventoryItem{{Quantity: 40}, {Quantity: 1, VariantID: "v"}}},
	}

	assert.Equal(t, []string{"padrão", "limite próprio", "uma variação baixa"}, productNames(LowStockProducts(products)))
}

func TestCartItemUsesBasePriceAndPrimaryImage(t *testing.T) {
	p := Product{
		ID:       "p1",
		Name:     "Anel",
		Price:    price("70"),
		Images:   []Image{{URL: "a.webp"}, {URL: "b.webp", Primary: true}},
		Variants: []Variant{{Name: "Aro 18", PriceAdjustment: price("15")}},
	}

	item := p.CartItem()
	assert.True(t, item.Price.Equal(price("70")))
	assert.Equal(t, "b.webp", item.Image)
}

func TestValidate(t *testing.T) {
	p := Product{Name: " ", Price: price("1")}
	assert.ErrorIs(t, p.Validate(), ErrNameRequired)

	p.Name = "Anel"
	p.Price = price("-1")
	assert.ErrorIs(t, p.Validate(), ErrInvalidPrice)
}
