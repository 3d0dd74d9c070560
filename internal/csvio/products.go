package csvio

import (
	"io"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/catalog"
)

var ProductHeaders = []string{
	"Nome", "Descrição", "Preço", "SKU", "Categoria", "Material", "Cor", "Peso", "Ativo",
}

const (
	yes = "Sim"
	no  = "Não"
)

func ExportProducts(products []catalog.Product) []byte {
	rows := make([][]string, 0, len(products)+1)
	rows = append(rows, ProductHeaders)
	for _, p := range products {
		weight := ""
		if p.Weight != nil {
			weight = p.Weight.String()
		}
		active := no
		if p.Active {
			active = yes
		}
		rows = append(rows, []string{
			p.Name,
			p.Description,
			p.Price.String(),
			p.SKU,
			p.CategoryName,
			p.Material,
			p.Color,
			weight,
			active,
		})
	}
	return writeQuoted(rows)
}

// ImportProducts: preço inválido vira 0, peso inválido fica ausente e só
// "Sim" ativa o produto. A categoria vem pelo nome.
func ImportProducts(r io.Reader) ([]catalog.Product, error) {
	rows, err := readRows(r, len(ProductHeaders))
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Product, 0, len(rows))
	for _, row := range rows {
		if row[0] == "" {
			continue
		}

		price, err := decimal.NewFromString(row[2])
		if err != nil {
			price = decimal.Zero
		}

		p := catalog.Product{
			Name:             row[0],
			Description:      row[1],
			ShortDescription: row[1],
			Price:            price,
			SKU:              row[3],
			CategoryName:     row[4],
			Material:         row[5],
			Color:            row[6],
			Active:           row[8] == yes,
		}
		if w, err := decimal.NewFromString(row[7]); err == nil {
			p.Weight = &w
		}
		out = append(out, p)
	}
	return out, nil
}
