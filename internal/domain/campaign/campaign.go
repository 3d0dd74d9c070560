package campaign

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/tag"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelBoth     Channel = "both"
)

// AllTags é o valor do filtro que seleciona todos os clientes.
const AllTags = "all"

// Placeholder é substituído pelo nome de cada destinatário.
const Placeholder = "{nome}"

var (
	ErrNoRecipients   = httperr.ErrBusiness("no_recipients")
	ErrEmptyMessage   = httperr.ErrBusiness("empty_message")
	ErrEmptySubject   = httperr.ErrBusiness("empty_subject")
	ErrInvalidChannel = httperr.ErrBusiness("invalid_channel")

	ErrMissingEmail    = httperr.ErrBusiness("client_without_email")
	ErrMissingWhatsApp = httperr.ErrBusiness("client_without_whatsapp")
)

func ParseChannel(s string) (Channel, error) {
	switch ch := Channel(strings.ToLower(strings.TrimSpace(s))); ch {
	case ChannelEmail, ChannelWhatsApp, ChannelBoth:
		return ch, nil
	default:
		return "", ErrInvalidChannel
	}
}

func (c Channel) Valid() bool {
	_, err := ParseChannel(string(c))
	return err == nil
}

func (c Channel) IncludesEmail() bool    { return c == ChannelEmail || c == ChannelBoth }
func (c Channel) IncludesWhatsApp() bool { return c == ChannelWhatsApp || c == ChannelBoth }

// Request é o formulário de envio preenchido pelo operador.
type Request struct {
	TagFilter   string
	SelectedIDs []string
	SelectAll   bool
	Channel     Channel
	Subject     string
	Message     string
}

// Candidates aplica o filtro de etiqueta. Filtro vazio equivale a "all".
func Candidates(clients []client.Client, assoc map[string][]tag.Tag, tagFilter string) []client.Client {
	if tagFilter == "" || tagFilter == AllTags {
		return append([]client.Client(nil), clients...)
	}

	out := make([]client.Client, 0, len(clients))
	for _, c := range clients {
		for _, t := range assoc[c.ID] {
			if t.ID == tagFilter {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Recipients restringe os candidatos à seleção explícita, mantendo a ordem
// dos candidatos. selectAll ignora a seleção.
func Recipients(candidates []client.Client, selectedIDs []string, selectAll bool) []client.Client {
	if selectAll {
		return append([]client.Client(nil), candidates...)
	}

	selected := make(map[string]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = struct{}{}
	}

	out := make([]client.Client, 0, len(selectedIDs))
	for _, c := range candidates {
		if _, ok := selected[c.ID]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Validate roda antes de qualquer envio.
func (r Request) Validate(recipients int) error {
	if !r.Channel.Valid() {
		return ErrInvalidChannel
	}
	if recipients == 0 {
		return ErrNoRecipients
	}
	if strings.TrimSpace(r.Message) == "" {
		return ErrEmptyMessage
	}
	if r.Channel.IncludesEmail() && strings.TrimSpace(r.Subject) == "" {
		return ErrEmptySubject
	}
	return nil
}

// ======================================================
// ENTREGAS
// ======================================================

type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type WhatsAppMessage struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Notifier é o colaborador que efetivamente envia.
type Notifier interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
	SendWhatsApp(ctx context.Context, msg WhatsAppMessage) error
}

// Delivery é uma tentativa: um destinatário em um canal.
type Delivery struct {
	Channel Channel
	Client  client.Client
}

// Plan expande os destinatários em tentativas. Em "both" cada cliente gera
// duas, primeiro email e depois WhatsApp.
func Plan(recipients []client.Client, ch Channel) []Delivery {
	out := make([]Delivery, 0, len(recipients)*2)
	for _, c := range recipients {
		if ch.IncludesEmail() {
			out = append(out, Delivery{Channel: ChannelEmail, Client: c})
		}
		if ch.IncludesWhatsApp() {
			out = append(out, Delivery{Channel: ChannelWhatsApp, Client: c})
		}
	}
	return out
}

// Deliver envia uma tentativa. Cliente sem contato no canal não chama o
// notifier e devolve ErrMissingEmail / ErrMissingWhatsApp.
func Deliver(ctx context.Context, n Notifier, d Delivery, subject, message string) error {
	switch d.Channel {
	case ChannelEmail:
		to := strings.TrimSpace(d.Client.Email)
		if to == "" {
			return ErrMissingEmail
		}
		return n.SendEmail(ctx, EmailMessage{
			To:      to,
			Subject: Personalize(subject, d.Client.Name),
			HTML:    RenderEmailHTML(d.Client.Name, message),
		})
	case ChannelWhatsApp:
		to := strings.TrimSpace(d.Client.WhatsApp)
		if to == "" {
			return ErrMissingWhatsApp
		}
		return n.SendWhatsApp(ctx, WhatsAppMessage{
			To:      to,
			Message: RenderWhatsApp(d.Client.Name, message),
		})
	default:
		return ErrInvalidChannel
	}
}
