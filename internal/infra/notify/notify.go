package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/campaign"
)

type EmailSender interface {
	SendEmail(ctx context.Context, msg campaign.EmailMessage) error
}

type WhatsAppSender interface {
	SendWhatsApp(ctx context.Context, msg campaign.WhatsAppMessage) error
}

// Dispatcher junta um provedor por canal no Notifier das campanhas.
type Dispatcher struct {
	Email    EmailSender
	WhatsApp WhatsAppSender
}

var _ campaign.Notifier = Dispatcher{}

func (d Dispatcher) SendEmail(ctx context.Context, msg campaign.EmailMessage) error {
	return d.Email.SendEmail(ctx, msg)
}

func (d Dispatcher) SendWhatsApp(ctx context.Context, msg campaign.WhatsAppMessage) error {
	return d.WhatsApp.SendWhatsApp(ctx, msg)
}

// LogSender só registra o envio. Usado quando o provedor não está configurado.
type LogSender struct {
	Log *zap.Logger
}

func (s LogSender) SendEmail(_ context.Context, msg campaign.EmailMessage) error {
	s.Log.Info("email (dry-run)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}

func (s LogSender) SendWhatsApp(_ context.Context, msg campaign.WhatsAppMessage) error {
	s.Log.Info("whatsapp (dry-run)",
		zap.String("to", msg.To),
		zap.Int("chars", len([]rune(msg.Message))),
	)
	return nil
}
