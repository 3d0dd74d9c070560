package campaign

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/semijoias-crm/internal/audit"
	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/campaign"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/tag"
	"github.com/BruksfildServices01/semijoias-crm/internal/logger"
	"github.com/BruksfildServices01/semijoias-crm/internal/metrics"
)

const DefaultConcurrency = 4

// Associations fornece o mapa cliente → etiquetas usado no filtro.
type Associations interface {
	Associations() map[string][]tag.Tag
}

type SendCampaign struct {
	clients     client.Repository
	tags        Associations
	notifier    domain.Notifier
	audit       *audit.Dispatcher
	concurrency int
}

func NewSendCampaign(
	clients client.Repository,
	tags Associations,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
	concurrency int,
) *SendCampaign {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &SendCampaign{
		clients:     clients,
		tags:        tags,
		notifier:    notifier,
		audit:       audit,
		concurrency: concurrency,
	}
}

// Preview devolve os candidatos do filtro de etiqueta, para a tela de seleção.
func (uc *SendCampaign) Preview(ctx context.Context, tagFilter string) ([]client.Client, error) {
	all, err := uc.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Candidates(all, uc.tags.Associations(), tagFilter), nil
}

// Execute valida o pedido e envia para cada destinatário em cada canal.
// Falhas individuais não interrompem o lote; o erro devolvido é só de
// validação ou de leitura.
func (uc *SendCampaign) Execute(ctx context.Context, req domain.Request) (*domain.Result, error) {
	if !req.Channel.Valid() {
		return nil, domain.ErrInvalidChannel
	}

	candidates, err := uc.Preview(ctx, req.TagFilter)
	if err != nil {
		return nil, err
	}
	recipients := domain.Recipients(candidates, req.SelectedIDs, req.SelectAll)
	if err := req.Validate(len(recipients)); err != nil {
		return nil, err
	}

	res := uc.Dispatch(ctx, domain.Plan(recipients, req.Channel), req.Subject, req.Message)

	uc.audit.Dispatch(audit.Event{
		ActorID: audit.ActorFrom(ctx),
		Action:  "campaign_sent",
		Entity:  "campaign",
		Metadata: map[string]any{
			"channel":    req.Channel,
			"tag_filter": req.TagFilter,
			"recipients": len(recipients),
			"success":    res.SuccessCount,
			"errors":     res.ErrorCount,
		},
	})
	return &res, nil
}

// Dispatch envia as entregas em paralelo, limitado por concurrency, e
// agrega na ordem do plano.
func (uc *SendCampaign) Dispatch(
	ctx context.Context,
	deliveries []domain.Delivery,
	subject, message string,
) domain.Result {
	log := logger.FromContext(ctx)
	attempts := make([]domain.Attempt, len(deliveries))

	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for i, d := range deliveries {
		g.Go(func() error {
			err := domain.Deliver(ctx, uc.notifier, d, subject, message)
			attempts[i] = domain.Attempt{Delivery: d, Err: err}

			status := "sent"
			if err != nil {
				status = "failed"
				log.Warn("campaign delivery failed",
					zap.String("client_id", d.Client.ID),
					zap.String("channel", string(d.Channel)),
					zap.Error(err),
				)
			}
			metrics.CampaignDeliveries.WithLabelValues(string(d.Channel), status).Inc()
			return nil
		})
	}
	_ = g.Wait()

	res := domain.Aggregate(attempts)
	metrics.CampaignOutcomes.WithLabelValues(string(res.Outcome)).Inc()
	return res
}
