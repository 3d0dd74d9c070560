package automation

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/semijoias-crm/internal/audit"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/campaign"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/templates"
	"github.com/BruksfildServices01/semijoias-crm/internal/timezone"
)

var ErrUnknownAutomation = httperr.ErrBusiness("invalid_automation")

// Dispatcher é o motor de envio das campanhas.
type Dispatcher interface {
	Dispatch(ctx context.Context, deliveries []campaign.Delivery, subject, message string) campaign.Result
}

// Request: Subject/Message vazios usam o texto do catálogo. Months só vale
// para a automação de inativos.
type Request struct {
	Kind    templates.Kind
	Subject string
	Message string
	Months  int
}

type Run struct {
	Kind       templates.Kind  `json:"kind"`
	Recipients int             `json:"recipients"`
	Result     campaign.Result `json:"result"`
}

type Automations struct {
	clients   client.Repository
	sender    Dispatcher
	templates *templates.Catalog
	audit     *audit.Dispatcher
	clock     timezone.Clock

	inactiveMonths int
}

func NewAutomations(
	clients client.Repository,
	sender Dispatcher,
	tpl *templates.Catalog,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	inactiveMonths int,
) *Automations {
	if tpl == nil {
		tpl = templates.Default()
	}
	if !client.ValidThreshold(inactiveMonths) {
		inactiveMonths = client.DefaultInactiveMonths
	}
	return &Automations{
		clients:        clients,
		sender:         sender,
		templates:      tpl,
		audit:          audit,
		clock:          clock,
		inactiveMonths: inactiveMonths,
	}
}

// Templates expõe os textos padrão para o painel.
func (a *Automations) Templates() map[templates.Kind]templates.Template {
	return a.templates.All()
}

// Execute resolve o segmento e envia por e-mail. Segmento vazio devolve
// no_recipients sem chamar o notifier.
func (a *Automations) Execute(ctx context.Context, req Request) (*Run, error) {
	req.Kind = templates.Kind(strings.ToLower(strings.TrimSpace(string(req.Kind))))

	all, err := a.clients.List(ctx)
	if err != nil {
		return nil, err
	}

	recipients, err := a.segment(req, all)
	if err != nil {
		return nil, err
	}

	tpl := a.templates.Resolve(req.Kind, req.Subject, req.Message)
	creq := campaign.Request{
		SelectAll: true,
		Channel:   campaign.ChannelEmail,
		Subject:   tpl.Subject,
		Message:   tpl.Message,
	}
	if err := creq.Validate(len(recipients)); err != nil {
		return nil, err
	}

	res := a.sender.Dispatch(ctx, campaign.Plan(recipients, campaign.ChannelEmail), tpl.Subject, tpl.Message)

	a.audit.Dispatch(audit.Event{
		ActorID: audit.ActorFrom(ctx),
		Action:  "automation_" + string(req.Kind) + "_sent",
		Entity:  "campaign",
		Metadata: map[string]any{
			"recipients": len(recipients),
			"success":    res.SuccessCount,
			"errors":     res.ErrorCount,
		},
	})

	return &Run{Kind: req.Kind, Recipients: len(recipients), Result: res}, nil
}

func (a *Automations) segment(req Request, all []client.Client) ([]client.Client, error) {
	now := a.clock()

	switch req.Kind {
	case templates.Birthday:
		return client.BirthdaysToday(all, now), nil
	case templates.Promotion:
		return all, nil
	case templates.Inactive:
		months := req.Months
		if months == 0 {
			months = a.inactiveMonths
		}
		if !client.ValidThreshold(months) {
			return nil, httperr.ErrBusiness("invalid_threshold")
		}
		return client.Inactive(all, months, now), nil
	default:
		return nil, ErrUnknownAutomation
	}
}
