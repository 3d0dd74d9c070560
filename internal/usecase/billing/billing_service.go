package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/semijoias-crm/internal/audit"
	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/billing"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/campaign"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/logger"
	"github.com/BruksfildServices01/semijoias-crm/internal/templates"
	"github.com/BruksfildServices01/semijoias-crm/internal/timezone"
)

var ErrNotFound = httperr.ErrBusiness("billing_not_found")

type Service struct {
	repo      domain.Repository
	clients   client.Repository
	notifier  campaign.Notifier
	templates *templates.Catalog
	audit     *audit.Dispatcher
	clock     timezone.Clock
}

func NewService(
	repo domain.Repository,
	clients client.Repository,
	notifier campaign.Notifier,
	tpl *templates.Catalog,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *Service {
	if tpl == nil {
		tpl = templates.Default()
	}
	return &Service{
		repo:      repo,
		clients:   clients,
		notifier:  notifier,
		templates: tpl,
		audit:     audit,
		clock:     clock,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Item, error) {
	return s.repo.List(ctx)
}

// Create agenda a cobrança para created_at + prazo.
func (s *Service) Create(ctx context.Context, it domain.Item) (*domain.Item, error) {
	it.Normalize()
	if err := it.Validate(); err != nil {
		return nil, err
	}

	c, err := s.clients.Get(ctx, it.ClientID)
	if err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return nil, domain.ErrClientRequired
		}
		return nil, err
	}

	it.ID = uuid.NewString()
	it.ClientName = c.Name
	it.CreatedAt = s.clock()
	it.SentAt = nil

	if err := s.repo.Create(ctx, &it); err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "billing_created",
		Entity:   "billing_item",
		EntityID: it.ID,
		Metadata: map[string]any{"client_id": it.ClientID, "amount": it.Amount.StringFixed(2)},
	})
	return &it, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "billing_deleted",
		Entity:   "billing_item",
		EntityID: id,
	})
	return nil
}

// SendNow envia o lembrete imediatamente, antes do prazo.
func (s *Service) SendNow(ctx context.Context, id string) (*domain.Item, error) {
	it, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if it.SentAt != nil {
		return nil, domain.ErrAlreadySent
	}

	if err := s.send(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// SendDueReminders envia todos os lembretes vencidos. Falhas de um item
// não impedem os demais.
func (s *Service) SendDueReminders(ctx context.Context) (campaign.Result, error) {
	pending, err := s.repo.ListPending(ctx)
	if err != nil {
		return campaign.Result{}, err
	}

	now := s.clock()
	attempts := make([]campaign.Attempt, 0, len(pending))
	for i := range pending {
		it := &pending[i]
		if !it.Due(now) {
			continue
		}
		err := s.send(ctx, it)
		attempts = append(attempts, campaign.Attempt{
			Delivery: campaign.Delivery{
				Channel: campaign.ChannelEmail,
				Client:  client.Client{ID: it.ClientID, Name: it.ClientName},
			},
			Err: err,
		})
	}

	res := campaign.Aggregate(attempts)
	logger.FromContext(ctx).Info("billing reminders processed",
		zap.Int("due", len(attempts)),
		zap.Int("sent", res.SuccessCount),
		zap.Int("failed", res.ErrorCount),
	)
	return res, nil
}

func (s *Service) send(ctx context.Context, it *domain.Item) error {
	c, err := s.clients.Get(ctx, it.ClientID)
	if err != nil {
		if errors.Is(err, httperr.ErrNotFound) {
			return domain.ErrClientRequired
		}
		return err
	}

	tpl := s.templates.Resolve(templates.Billing, "", it.Message)
	err = campaign.Deliver(ctx, s.notifier, campaign.Delivery{
		Channel: campaign.ChannelEmail,
		Client:  *c,
	}, tpl.Subject, ReminderBody(it, tpl.Message))
	if err != nil {
		return err
	}

	at := s.clock()
	if err := s.repo.MarkSent(ctx, it.ID, at); err != nil {
		return err
	}
	it.SentAt = &at

	s.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   "billing_sent",
		Entity:   "billing_item",
		EntityID: it.ID,
	})
	return nil
}

// ReminderBody junta a mensagem com descrição e valor da cobrança.
func ReminderBody(it *domain.Item, message string) string {
	return fmt.Sprintf("%s\n\nDescrição: %s\nValor: R$ %s",
		message, it.Description, it.Amount.StringFixed(2))
}
