package cart

import (
	"github.com/shopspring/decimal"
)

// Item é o recorte do produto que o carrinho precisa.
type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
}

type Line struct {
	Item
	Quantity int `json:"quantity"`
}

// Subtotal usa só o preço base; ajustes de variação não entram.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart mantém no máximo uma linha por produto, sempre com quantidade >= 1.
type Cart struct {
	ID    string `json:"id"`
	Lines []Line `json:"lines"`
}

func New(id string) *Cart {
	return &Cart{ID: id, Lines: []Line{}}
}

// Add soma 1 à linha existente ou cria uma nova com quantidade 1.
func (c *Cart) Add(item Item) {
	if i := c.index(item.ProductID); i >= 0 {
		c.Lines[i].Quantity++
		return
	}
	c.Lines = append(c.Lines, Line{Item: item, Quantity: 1})
}

// UpdateQuantity define a quantidade absoluta; <= 0 remove a linha.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	if i := c.index(productID); i >= 0 {
		c.Lines[i].Quantity = quantity
	}
}

func (c *Cart) Remove(productID string) {
	i := c.index(productID)
	if i < 0 {
		return
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}

func (c *Cart) Clear() {
	c.Lines = []Line{}
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) index(productID string) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// Summary é o formato devolvido pela API.
type Summary struct {
	ID        string          `json:"id"`
	Lines     []Line          `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

func (c *Cart) Summary() Summary {
	lines := c.Lines
	if lines == nil {
		lines = []Line{}
	}
	return Summary{
		ID:        c.ID,
		Lines:     lines,
		Total:     c.Total(),
		ItemCount: c.ItemCount(),
	}
}
