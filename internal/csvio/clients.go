package csvio

import (
	"io"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
)

var ClientHeaders = []string{
	"Nome", "Email", "Telefone", "WhatsApp", "Endereço", "Cidade", "Data de Nascimento", "Profissão",
}

func ExportClients(clients []client.Client) []byte {
	rows := make([][]string, 0, len(clients)+1)
	rows = append(rows, ClientHeaders)
	for _, c := range clients {
		rows = append(rows, []string{
			c.Name,
			c.Email,
			c.Phone,
			c.WhatsApp,
			c.Street,
			c.City,
			client.FormatDate(c.BirthDate),
			c.Profession,
		})
	}
	return writeQuoted(rows)
}

// ImportClients lê a planilha de clientes. Linhas sem nome são ignoradas;
// data de nascimento inválida fica ausente.
func ImportClients(r io.Reader) ([]client.Client, error) {
	rows, err := readRows(r, len(ClientHeaders))
	if err != nil {
		return nil, err
	}

	out := make([]client.Client, 0, len(rows))
	for _, row := range rows {
		if row[0] == "" {
			continue
		}
		out = append(out, client.Client{
			Name:       row[0],
			Email:      row[1],
			Phone:      row[2],
			WhatsApp:   row[3],
			Street:     row[4],
			City:       row[5],
			BirthDate:  client.OptionalDate(row[6]),
			Profession: row[7],
		})
	}
	return out, nil
}
