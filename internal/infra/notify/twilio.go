package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/campaign"
)

// messageCreator é o recorte do SDK usado aqui (Api.CreateMessage).
type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioSender envia WhatsApp pela API de mensagens do Twilio.
type TwilioSender struct {
	api  messageCreator
	from string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return newTwilioSender(client.Api, from)
}

func newTwilioSender(api messageCreator, from string) *TwilioSender {
	return &TwilioSender{api: api, from: whatsAppAddress(from)}
}

func whatsAppAddress(n string) string {
	n = strings.TrimSpace(n)
	if strings.HasPrefix(n, "whatsapp:") {
		return n
	}
	return "whatsapp:" + n
}

// SendWhatsApp: o SDK não recebe context; um ctx já cancelado não chega a enviar.
func (s *TwilioSender) SendWhatsApp(ctx context.Context, msg campaign.WhatsAppMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &openapi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(whatsAppAddress(msg.To))
	params.SetBody(msg.Message)

	if _, err := s.api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	return nil
}
