package payment

import (
	"context"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/cart"
)

const currencyBRL = "BRL"

// Session é o link de pagamento gerado para um carrinho.
type Session struct {
	PreferenceID string `json:"preferenceId"`
	URL          string `json:"url"`
}

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPago cria preferências de checkout a partir do carrinho.
type MercadoPago struct {
	client     preferenceCreator
	successURL string
}

func NewMercadoPago(accessToken, successURL string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{
		client:     preference.NewClient(cfg),
		successURL: successURL,
	}, nil
}

func (m *MercadoPago) CreateCheckout(ctx context.Context, c *cart.Cart) (*Session, error) {
	resp, err := m.client.Create(ctx, BuildPreference(c, m.successURL))
	if err != nil {
		return nil, fmt.Errorf("mercadopago preference: %w", err)
	}
	return &Session{PreferenceID: resp.ID, URL: resp.InitPoint}, nil
}

// BuildPreference converte as linhas do carrinho em itens BRL, usando o
// preço base de cada produto.
func BuildPreference(c *cart.Cart, successURL string) preference.Request {
	items := make([]preference.ItemRequest, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, preference.ItemRequest{
			ID:         l.ProductID,
			Title:      l.Name,
			PictureURL: l.Image,
			Quantity:   l.Quantity,
			UnitPrice:  l.Price.InexactFloat64(),
			CurrencyID: currencyBRL,
		})
	}

	req := preference.Request{
		Items:             items,
		ExternalReference: c.ID,
	}
	if successURL != "" {
		req.BackURLs = &preference.BackURLsRequest{
			Success: successURL,
			Pending: successURL,
			Failure: successURL,
		}
		req.AutoReturn = "approved"
	}
	return req
}
