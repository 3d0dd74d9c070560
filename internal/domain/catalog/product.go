package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/cart"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

const DefaultLowStockThreshold = 5

var (
	ErrNameRequired    = httperr.ErrBusiness("name_required")
	ErrInvalidPrice    = httperr.ErrBusiness("invalid_amount")
	ErrProductNotFound = httperr.ErrBusiness("product_not_found")
)

type Product struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"shortDescription"`
	Price            decimal.Decimal  `json:"price"`
	ComparePrice     *decimal.Decimal `json:"comparePrice,omitempty"`
	SKU              string           `json:"sku"`
	CategoryID       string           `json:"categoryId"`
	CategoryName     string           `json:"categoryName,omitempty"`
	Material         string           `json:"material"`
	Color            string           `json:"color"`
	Weight           *decimal.Decimal `json:"weight,omitempty"`
	Active           bool             `json:"active"`

	Images    []Image         `json:"images"`
	Variants  []Variant       `json:"variants"`
	Inventory []InventoryItem `json:"inventory"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Image struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	AltText   string `json:"altText"`
	Primary   bool   `json:"primary"`
	SortOrder int    `json:"sortOrder"`
}

// Variant guarda o ajuste de preço, que o carrinho não aplica.
type Variant struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	PriceAdjustment decimal.Decimal `json:"priceAdjustment"`
	StockQuantity   int             `json:"stockQuantity"`
	Active          bool            `json:"active"`
}

type InventoryItem struct {
	ID                string `json:"id"`
	VariantID         string `json:"variantId,omitempty"`
	Quantity          int    `json:"quantity"`
	ReservedQuantity  int    `json:"reservedQuantity"`
	LowStockThreshold int    `json:"lowStockThreshold"`
}

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Active      bool   `json:"active"`
}

func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// Threshold devolve o limite efetivo; zero ou negativo usa o padrão.
func (i InventoryItem) Threshold() int {
	if i.LowStockThreshold <= 0 {
		return DefaultLowStockThreshold
	}
	return i.LowStockThreshold
}

// LowStock: algum registro de estoque com quantidade <= limite.
func (p *Product) LowStock() bool {
	for _, inv := range p.Inventory {
		if inv.Quantity <= inv.Threshold() {
			return true
		}
	}
	return false
}

// PrimaryImage: a marcada como principal, senão a primeira.
func (p *Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.Primary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

func (p *Product) CartItem() cart.Item {
	return cart.Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.PrimaryImage(),
	}
}

func LowStockProducts(products []Product) []Product {
	out := make([]Product, 0)
	for _, p := range products {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out
}

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, productID string, img *Image) error

	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c *Category) error
}
