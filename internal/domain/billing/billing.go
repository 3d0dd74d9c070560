package billing

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

const DefaultDaysToSend = 7

// AllowedDays são os prazos oferecidos no formulário de cobrança.
var AllowedDays = []int{1, 3, 7, 15, 30}

const DefaultMessage = "Prezado(a) cliente, temos uma cobrança pendente em seu nome. " +
	"Por favor, entre em contato conosco para regularizar a situação."

const DefaultSubject = "Cobrança pendente"

var (
	ErrInvalidAmount      = httperr.ErrBusiness("invalid_amount")
	ErrDescriptionMissing = httperr.ErrBusiness("description_required")
	ErrInvalidDays        = httperr.ErrBusiness("invalid_days_to_send")
	ErrClientRequired     = httperr.ErrBusiness("client_not_found")
	ErrAlreadySent        = httperr.ErrBusiness("already_sent")
)

type Item struct {
	ID          string          `json:"id"`
	ClientID    string          `json:"clientId"`
	ClientName  string          `json:"clientName"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	DaysToSend  int             `json:"daysToSend"`
	Message     string          `json:"message"`
	CreatedAt   time.Time       `json:"createdAt"`
	SentAt      *time.Time      `json:"sentAt"`
}

func ValidDays(days int) bool {
	for _, d := range AllowedDays {
		if d == days {
			return true
		}
	}
	return false
}

// Normalize aplica os padrões do formulário (prazo 7, mensagem padrão).
func (i *Item) Normalize() {
	i.Description = strings.TrimSpace(i.Description)
	i.Message = strings.TrimSpace(i.Message)
	if i.DaysToSend == 0 {
		i.DaysToSend = DefaultDaysToSend
	}
	if i.Message == "" {
		i.Message = DefaultMessage
	}
}

func (i *Item) Validate() error {
	if strings.TrimSpace(i.ClientID) == "" {
		return ErrClientRequired
	}
	if !i.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(i.Description) == "" {
		return ErrDescriptionMissing
	}
	if !ValidDays(i.DaysToSend) {
		return ErrInvalidDays
	}
	return nil
}

// DueAt é quando o lembrete deve sair.
func (i *Item) DueAt() time.Time {
	return i.CreatedAt.AddDate(0, 0, i.DaysToSend)
}

// Due informa se o lembrete ainda não enviado já venceu.
func (i *Item) Due(now time.Time) bool {
	return i.SentAt == nil && !now.Before(i.DueAt())
}

type Repository interface {
	List(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id string) (*Item, error)
	Create(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id string) error

	// ListPending devolve os itens sem sent_at.
	ListPending(ctx context.Context) ([]Item, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
}
