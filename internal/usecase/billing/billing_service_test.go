package billing

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/billing"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/campaign"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/timezone"
)

type clientMap struct {
	client.Repository
	byID map[string]client.Client
}

func (m clientMap) Get(_ context.Context, id string) (*client.Client, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, httperr.ErrNotFound
	}
	return &c, nil
}

type memRepo struct {
	mu    sync.Mutex
	items map[string]domain.Item
	order []string
}

func newMemRepo() *memRepo { return &memRepo{items: map[string]domain.Item{}} }

func (r *memRepo) List(context.Context) ([]domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Item{}
	for _, id := range r.order {
		if it, ok := r.items[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memRepo) ListPending(ctx context.Context) ([]domain.Item, error) {
	all, _ := r.List(ctx)
	out := []domain.Item{}
	for _, it := range all {
		if it.SentAt == nil {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memRepo) Get(_ context.Context, id string) (*domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, httperr.ErrNotFound
	}
	return &it, nil
}

func (r *memRepo) Create(_ context.Context, it *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[it.ID] = *it
	r.order = append(r.order, it.ID)
	return nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return httperr.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memRepo) MarkSent(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok || it.SentAt != nil {
		return domain.ErrAlreadySent
	}
	it.SentAt = &at
	r.items[id] = it
	return nil
}

type mailbox struct {
	sent []campaign.EmailMessage
}

func (m *mailbox) SendEmail(_ context.Context, msg campaign.EmailMessage) error {
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mailbox) SendWhatsApp(context.Context, campaign.WhatsAppMessage) error { return nil }

var created = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func setup(now time.Time) (*Service, *memRepo, *mailbox) {
	repo := newMemRepo()
	box := &mailbox{}
	clients := clientMap{byID: map[string]client.Client{
		"c1": {ID: "c1", Name: "Ana", Email: "ana@x.com"},
		"c2": {ID: "c2", Name: "Sem Email"},
	}}
	return NewService(repo, clients, box, nil, nil, timezone.FixedClock(now)), repo, box
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	svc, _, _ := setup(created)
	ctx := context.Background()

	it, err := svc.Create(ctx, domain.Item{
		ClientID:    "c1",
		Amount:      decimal.RequireFromString("150.00"),
		Description: "Colar parcelado",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDaysToSend, it.DaysToSend)
	assert.Equal(t, domain.DefaultMessage, it.Message)
	assert.Equal(t, "Ana", it.ClientName)
	assert.Equal(t, created.AddDate(0, 0, 7), it.DueAt())

	_, err = svc.Create(ctx, domain.Item{ClientID: "c1", Amount: decimal.Zero, Description: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Create(ctx, domain.Item{ClientID: "c1", Amount: decimal.NewFromInt(1), Description: "x", DaysToSend: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidDays)

	_, err = svc.Create(ctx, domain.Item{ClientID: "ghost", Amount: decimal.NewFromInt(1), Description: "x"})
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestSendNow_MarksSentOnce(t *testing.T) {
	svc, repo, box := setup(created)
	ctx := context.Background()

	it, err := svc.Create(ctx, domain.Item{ClientID: "c1", Amount: decimal.NewFromInt(80), Description: "Brinco"})
	require.NoError(t, err)

	sent, err := svc.SendNow(ctx, it.ID)
	require.NoError(t, err)
	require.NotNil(t, sent.SentAt)
	require.Len(t, box.sent, 1)
	assert.Equal(t, "Cobrança pendente", box.sent[0].Subject)
	assert.True(t, strings.Contains(box.sent[0].HTML, "R$ 80.00"))
	assert.NotNil(t, repo.items[it.ID].SentAt)

	_, err = svc.SendNow(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadySent)
}

func TestSendNow_ClientWithoutEmail(t *testing.T) {
	svc, repo, _ := setup(created)
	it, err := svc.Create(context.Background(), domain.Item{ClientID: "c2", Amount: decimal.NewFromInt(10), Description: "x"})
	require.NoError(t, err)

	_, err = svc.SendNow(context.Background(), it.ID)
	assert.True(t, httperr.IsBusiness(err, "client_without_email"))
	assert.Nil(t, repo.items[it.ID].SentAt)
}

func TestSendDueReminders(t *testing.T) {
	svc, repo, box := setup(created)
	ctx := context.Background()

	due, err := svc.Create(ctx, domain.Item{ClientID: "c1", Amount: decimal.NewFromInt(10), Description: "a", DaysToSend: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.Item{ClientID: "c1", Amount: decimal.NewFromInt(20), Description: "b", DaysToSend: 30})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.Item{ClientID: "c2", Amount: decimal.NewFromInt(30), Description: "c", DaysToSend: 3})
	require.NoError(t, err)

	later := NewService(repo, svc.clients, box, nil, nil, timezone.FixedClock(created.AddDate(0, 0, 3)))
	res, err := later.SendDueReminders(ctx)
	require.NoError(t, err)

	assert.Equal(t, campaign.OutcomePartial, res.Outcome)
	assert.Equal(t, 1, res.SuccessCount)
	assert.Equal(t, 1, res.ErrorCount)
	assert.Equal(t, "c2", res.Failures[0].ClientID)
	assert.NotNil(t, repo.items[due.ID].SentAt)
	assert.Len(t, box.sent, 1)
}

func TestDelete(t *testing.T) {
	svc, _, _ := setup(created)
	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
