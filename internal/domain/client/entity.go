package client

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

// Client é o cadastro de cliente da loja. Texto opcional vazio ("") significa
// ausente; datas opcionais usam nil.
type Client struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`

	Phone    string `json:"telefone"`
	WhatsApp string `json:"whatsapp"`

	Street       string `json:"endereco"`
	Neighborhood string `json:"bairro"`
	City         string `json:"cidade"`
	State        string `json:"estado"`
	PostalCode   string `json:"cep"`

	BirthDate  *time.Time `json:"dataNascimento"`
	Profession string     `json:"profissao"`
	Employer   string     `json:"empresa"`
	Notes      string     `json:"observacoes"`

	LastPurchaseAt     *time.Time      `json:"ultimaCompra"`
	LastPurchaseAmount decimal.Decimal `json:"valorUltimaCompra"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate garante as regras de escrita: email presente e valor >= 0.
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return httperr.ErrBusiness("email_required")
	}
	if c.LastPurchaseAmount.IsNegative() {
		return httperr.ErrBusiness("invalid_amount")
	}
	return nil
}

// Patch substitui apenas os campos informados (nil = mantém).
type Patch struct {
	Name         *string
	Email        *string
	Phone        *string
	WhatsApp     *string
	Street       *string
	Neighborhood *string
	City         *string
	State        *string
	PostalCode   *string
	Profession   *string
	Employer     *string
	Notes        *string

	BirthDate      *string
	LastPurchaseAt *string

	LastPurchaseAmount *decimal.Decimal
}

// Apply aplica o patch. Datas malformadas viram ausentes, como no cadastro.
func (p Patch) Apply(c *Client) {
	setString(&c.Name, p.Name)
	setString(&c.Email, p.Email)
	setString(&c.Phone, p.Phone)
	setString(&c.WhatsApp, p.WhatsApp)
	setString(&c.Street, p.Street)
	setString(&c.Neighborhood, p.Neighborhood)
	setString(&c.City, p.City)
	setString(&c.State, p.State)
	setString(&c.PostalCode, p.PostalCode)
	setString(&c.Profession, p.Profession)
	setString(&c.Employer, p.Employer)
	setString(&c.Notes, p.Notes)

	if p.BirthDate != nil {
		c.BirthDate = OptionalDate(*p.BirthDate)
	}
	if p.LastPurchaseAt != nil {
		c.LastPurchaseAt = OptionalDate(*p.LastPurchaseAt)
	}
	if p.LastPurchaseAmount != nil {
		c.LastPurchaseAmount = *p.LastPurchaseAmount
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
