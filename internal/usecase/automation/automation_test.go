package automation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/campaign"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/templates"
	"github.com/BruksfildServices01/semijoias-crm/internal/timezone"
)

type listRepo struct {
	client.Repository
	clients []client.Client
}

func (r listRepo) List(context.Context) ([]client.Client, error) { return r.clients, nil }

type recorder struct {
	deliveries []campaign.Delivery
	subject    string
	message    string
}

func (r *recorder) Dispatch(_ context.Context, d []campaign.Delivery, subject, message string) campaign.Result {
	r.deliveries, r.subject, r.message = d, subject, message
	attempts := make([]campaign.Attempt, len(d))
	for i := range d {
		attempts[i] = campaign.Attempt{Delivery: d[i]}
	}
	return campaign.Aggregate(attempts)
}

var today = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func fixture() []client.Client {
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return []client.Client{
		{ID: "c1", Name: "Ana", Email: "ana@x.com", BirthDate: &birth, LastPurchaseAt: &recent},
		{ID: "c2", Name: "Bia", Email: "bia@x.com"},
	}
}

func TestBirthdayUsesCatalogText(t *testing.T) {
	rec := &recorder{}
	a := NewAutomations(listRepo{clients: fixture()}, rec, nil, nil, timezone.FixedClock(today), 0)

	run, err := a.Execute(context.Background(), Request{Kind: templates.Birthday})
	require.NoError(t, err)
	assert.Equal(t, 1, run.Recipients)
	assert.Equal(t, campaign.OutcomeSuccess, run.Result.Outcome)
	require.Len(t, rec.deliveries, 1)
	assert.Equal(t, "c1", rec.deliveries[0].Client.ID)
	assert.Equal(t, "Feliz aniversário, {nome}!", rec.subject)
}

func TestPromotionOverride(t *testing.T) {
	rec := &recorder{}
	a := NewAutomations(listRepo{clients: fixture()}, rec, nil, nil, timezone.FixedClock(today), 0)

	run, err := a.Execute(context.Background(), Request{Kind: templates.Promotion, Subject: "Black Friday"})
	require.NoError(t, err)
	assert.Equal(t, 2, run.Recipients)
	assert.Equal(t, "Black Friday", rec.subject)
	assert.Contains(t, rec.message, "20% de desconto")
}

func TestInactiveSegment(t *testing.T) {
	rec := &recorder{}
	a := NewAutomations(listRepo{clients: fixture()}, rec, nil, nil, timezone.FixedClock(today), 0)

	run, err := a.Execute(context.Background(), Request{Kind: templates.Inactive})
	require.NoError(t, err)
	assert.Equal(t, 1, run.Recipients)
	assert.Equal(t, "c2", rec.deliveries[0].Client.ID)

	_, err = a.Execute(context.Background(), Request{Kind: templates.Inactive, Months: 24})
	assert.True(t, httperr.IsBusiness(err, "invalid_threshold"))
}

func TestEmptySegmentSendsNothing(t *testing.T) {
	rec := &recorder{}
	a := NewAutomations(listRepo{clients: fixture()}, rec, nil, nil, timezone.FixedClock(today.AddDate(0, 1, 0)), 0)

	_, err := a.Execute(context.Background(), Request{Kind: templates.Birthday})
	assert.True(t, httperr.IsBusiness(err, "no_recipients"))
	assert.Nil(t, rec.deliveries)
}

func TestUnknownKind(t *testing.T) {
	a := NewAutomations(listRepo{}, &recorder{}, nil, nil, timezone.FixedClock(today), 0)
	_, err := a.Execute(context.Background(), Request{Kind: "natal"})
	assert.ErrorIs(t, err, ErrUnknownAutomation)
}

func TestInactiveUsesConfiguredThreshold(t *testing.T) {
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	may := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	clients := []client.Client{{ID: "c1", Name: "Ana", Email: "ana@x.com", LastPurchaseAt: &may}}

	// padrão de 3 meses: maio já conta como inativa
	rec := &recorder{}
	a := NewAutomations(listRepo{clients: clients}, rec, nil, nil, timezone.FixedClock(now), 0)
	run, err := a.Execute(context.Background(), Request{Kind: templates.Inactive})
	require.NoError(t, err)
	assert.Equal(t, 1, run.Recipients)

	// configurado em 6 meses: ninguém a contatar
	rec = &recorder{}
	a = NewAutomations(listRepo{clients: clients}, rec, nil, nil, timezone.FixedClock(now), 6)
	_, err = a.Execute(context.Background(), Request{Kind: templates.Inactive})
	assert.True(t, httperr.IsBusiness(err, "no_recipients"))
	assert.Nil(t, rec.deliveries)
}

func TestKindIsCaseInsensitive(t *testing.T) {
	rec := &recorder{}
	a := NewAutomations(listRepo{clients: fixture()}, rec, nil, nil, timezone.FixedClock(today), 0)

	run, err := a.Execute(context.Background(), Request{Kind: "Birthday"})
	require.NoError(t, err)
	assert.Equal(t, templates.Birthday, run.Kind)
	assert.Equal(t, 1, run.Recipients)
	assert.Equal(t, "Feliz aniversário, {nome}!", rec.subject)
}
