package campaign

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/campaign"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/tag"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type listRepo struct {
	client.Repository
	clients []client.Client
}

func (r listRepo) List(context.Context) ([]client.Client, error) {
	return r.clients, nil
}

type staticTags map[string][]tag.Tag

func (s staticTags) Associations() map[string][]tag.Tag { return s }

type fakeNotifier struct {
	mu       sync.Mutex
	failTo   map[string]bool
	emails   []domain.EmailMessage
	messages []domain.WhatsAppMessage
}

func (f *fakeNotifier) SendEmail(_ context.Context, m domain.EmailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTo[m.To] {
		return errors.New("smtp rejected")
	}
	f.emails = append(f.emails, m)
	return nil
}

func (f *fakeNotifier) SendWhatsApp(_ context.Context, m domain.WhatsAppMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTo[m.To] {
		return errors.New("twilio rejected")
	}
	f.messages = append(f.messages, m)
	return nil
}

var (
	vip     = tag.Tag{ID: "t-vip", Name: "VIP", Color: tag.Palette[0]}
	clients = []client.Client{
		{ID: "c1", Name: "Ana", Email: "ana@x.com", WhatsApp: "+5581999990001"},
		{ID: "c2", Name: "Bia", Email: "bia@x.com"},
		{ID: "c3", Name: "Cris", Email: "", WhatsApp: "+5581999990003"},
	}
)

func newUsecase(n domain.Notifier, assoc staticTags) *SendCampaign {
	return NewSendCampaign(listRepo{clients: clients}, assoc, n, nil, 2)
}

func TestSendCampaign_PartialWhenOneRecipientLacksEmail(t *testing.T) {
	n := &fakeNotifier{}
	uc := newUsecase(n, nil)

	res, err := uc.Execute(context.Background(), domain.Request{
		SelectAll: true,
		Channel:   domain.ChannelEmail,
		Subject:   "Oi {nome}",
		Message:   "Novidades!",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomePartial, res.Outcome)
	assert.Equal(t, 2, res.SuccessCount)
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "c3", res.Failures[0].ClientID)
	assert.Equal(t, "client_without_email", res.Failures[0].Reason)

	require.Len(t, n.emails, 2)
	subjects := []string{n.emails[0].Subject, n.emails[1].Subject}
	assert.ElementsMatch(t, []string{"Oi Ana", "Oi Bia"}, subjects)
}

func TestSendCampaign_BothChannelsCountsEachAttempt(t *testing.T) {
	n := &fakeNotifier{}
	uc := newUsecase(n, nil)

	res, err := uc.Execute(context.Background(), domain.Request{
		SelectedIDs: []string{"c1"},
		Channel:     domain.ChannelBoth,
		Subject:     "Oi",
		Message:     "Promo",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeSuccess, res.Outcome)
	assert.Equal(t, 2, res.SuccessCount)
	assert.Len(t, n.emails, 1)
	require.Len(t, n.messages, 1)
	assert.Equal(t, "Olá, Ana!\n\nPromo", n.messages[0].Message)
}

func TestSendCampaign_AllFailures(t *testing.T) {
	n := &fakeNotifier{failTo: map[string]bool{"ana@x.com": true, "bia@x.com": true}}
	uc := newUsecase(n, nil)

	res, err := uc.Execute(context.Background(), domain.Request{
		SelectedIDs: []string{"c1", "c2"},
		Channel:     domain.ChannelEmail,
		Subject:     "Oi",
		Message:     "Promo",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFailure, res.Outcome)
	assert.Equal(t, 2, res.ErrorCount)
	assert.Equal(t, "c1", res.Failures[0].ClientID)
	assert.Equal(t, "c2", res.Failures[1].ClientID)
}

func TestSendCampaign_TagFilterAndSelection(t *testing.T) {
	n := &fakeNotifier{}
	uc := newUsecase(n, staticTags{"c2": {vip}})

	candidates, err := uc.Preview(context.Background(), vip.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "c2", candidates[0].ID)

	// c1 está selecionado mas fora do filtro.
	_, err = uc.Execute(context.Background(), domain.Request{
		TagFilter:   vip.ID,
		SelectedIDs: []string{"c1"},
		Channel:     domain.ChannelEmail,
		Subject:     "Oi",
		Message:     "Promo",
	})
	assert.True(t, httperr.IsBusiness(err, "no_recipients"))
	assert.Empty(t, n.emails)
}

func TestSendCampaign_ValidationBeforeSending(t *testing.T) {
	n := &fakeNotifier{}
	uc := newUsecase(n, nil)

	_, err := uc.Execute(context.Background(), domain.Request{
		SelectAll: true,
		Channel:   domain.ChannelEmail,
		Message:   "Promo",
	})
	assert.ErrorIs(t, err, domain.ErrEmptySubject)

	_, err = uc.Execute(context.Background(), domain.Request{
		SelectAll: true,
		Channel:   "sms",
		Message:   "Promo",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidChannel)
	assert.Empty(t, n.emails)
}
