package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/campaign"
)

func TestHTTPEmailSenderPostsJSON(t *testing.T) {
	var got emailPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewHTTPEmailSender(srv.URL, "secret", "loja@example.com")
	err := s.SendEmail(context.Background(), campaign.EmailMessage{To: "ana@example.com", Subject: "Oi", HTML: "<p>x</p>"})

	require.NoError(t, err)
	assert.Equal(t, emailPayload{From: "loja@example.com", To: "ana@example.com", Subject: "Oi", HTML: "<p>x</p>"}, got)
}

func TestHTTPEmailSenderReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewHTTPEmailSender(srv.URL, "", "").SendEmail(context.Background(), campaign.EmailMessage{To: "a@b.c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

type fakeMessages struct {
	got []*openapi.CreateMessageParams
	err error
}

func (f *fakeMessages) CreateMessage(p *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.got = append(f.got, p)
	if f.err != nil {
		return nil, f.err
	}
	return &openapi.ApiV2010Message{}, nil
}

func TestTwilioSenderAddsWhatsAppPrefix(t *testing.T) {
	api := &fakeMessages{}
	s := newTwilioSender(api, "+14155238886")

	err := s.SendWhatsApp(context.Background(), campaign.WhatsAppMessage{To: "+5581999990000", Message: "Olá, Ana!\n\noi"})
	require.NoError(t, err)

	require.Len(t, api.got, 1)
	p := api.got[0]
	require.NotNil(t, p.To)
	require.NotNil(t, p.From)
	require.NotNil(t, p.Body)
	assert.Equal(t, "whatsapp:+5581999990000", *p.To)
	assert.Equal(t, "whatsapp:+14155238886", *p.From)
	assert.Equal(t, "Olá, Ana!\n\noi", *p.Body)

	// número já prefixado não ganha prefixo duplo
	require.NoError(t, s.SendWhatsApp(context.Background(), campaign.WhatsAppMessage{To: "whatsapp:+5581988887777", Message: "x"}))
	assert.Equal(t, "whatsapp:+5581988887777", *api.got[1].To)
}

func TestTwilioSenderWrapsErrors(t *testing.T) {
	api := &fakeMessages{err: errors.New("status 400")}
	s := newTwilioSender(api, "whatsapp:+14155238886")

	err := s.SendWhatsApp(context.Background(), campaign.WhatsAppMessage{To: "+55", Message: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twilio")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.SendWhatsApp(ctx, campaign.WhatsAppMessage{To: "+55", Message: "x"}), context.Canceled)
	assert.Len(t, api.got, 1)
}

func TestNewTwilioSenderUsesSDKClient(t *testing.T) {
	s := NewTwilioSender("AC123", "token", "+14155238886")
	assert.NotNil(t, s.api)
	assert.Equal(t, "whatsapp:+14155238886", s.from)
}

func TestDispatcherRoutesByChannel(t *testing.T) {
	d := Dispatcher{Email: LogSender{Log: zap.NewNop()}, WhatsApp: LogSender{Log: zap.NewNop()}}
	assert.NoError(t, d.SendEmail(context.Background(), campaign.EmailMessage{To: "a@b.c"}))
	assert.NoError(t, d.SendWhatsApp(context.Background(), campaign.WhatsAppMessage{To: "1"}))
}
