package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceRange é o filtro "min-max" da vitrine; Max nil = sem teto.
type PriceRange struct {
	Min decimal.Decimal
	Max *decimal.Decimal
}

// ParsePriceRange aceita "50-100" e "200-" (ou "200"). ok=false para vazio
// ou malformado.
func ParsePriceRange(s string) (PriceRange, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return PriceRange{}, false
	}

	minPart, maxPart, _ := strings.Cut(s, "-")
	lo, err := decimal.NewFromString(strings.TrimSpace(minPart))
	if err != nil {
		return PriceRange{}, false
	}

	r := PriceRange{Min: lo}
	maxPart = strings.TrimSpace(maxPart)
	if maxPart == "" {
		return r, true
	}
	hi, err := decimal.NewFromString(maxPart)
	if err != nil {
		return PriceRange{}, false
	}
	// teto zero equivale a sem teto
	if !hi.IsZero() {
		r.Max = &hi
	}
	return r, true
}

func (r PriceRange) Contains(price decimal.Decimal) bool {
	if price.LessThan(r.Min) {
		return false
	}
	return r.Max == nil || !price.GreaterThan(*r.Max)
}

type Filter struct {
	Search     string
	CategoryID string
	PriceRange string
}

// Storefront devolve os produtos ativos que passam nos filtros.
func Storefront(products []Product, f Filter) []Product {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	category := strings.TrimSpace(f.CategoryID)
	if category == "all" {
		category = ""
	}
	price, hasPrice := ParsePriceRange(f.PriceRange)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !p.Active {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if category != "" && p.CategoryID != category {
			continue
		}
		if hasPrice && !price.Contains(p.Price) {
			continue
		}
		out = append(out, p)
	}
	return out
}
