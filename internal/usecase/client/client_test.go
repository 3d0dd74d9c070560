package client

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/tag"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/timezone"
)

type stubRepo struct {
	mu      sync.Mutex
	clients map[string]domain.Client
}

func newStubRepo(cs ...domain.Client) *stubRepo {
	r := &stubRepo{clients: map[string]domain.Client{}}
	for _, c := range cs {
		r.clients[c.ID] = c
	}
	return r
}

func (r *stubRepo) List(context.Context) ([]domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubRepo) Search(ctx context.Context, q string) ([]domain.Client, error) {
	all, _ := r.List(ctx)
	var out []domain.Client
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(q)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubRepo) Get(_ context.Context, id string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, httperr.ErrNotFound
	}
	return &c, nil
}

func (r *stubRepo) Create(_ context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = *c
	return nil
}

func (r *stubRepo) Update(_ context.Context, c *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c.ID]; !ok {
		return httperr.ErrNotFound
	}
	r.clients[c.ID] = *c
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return httperr.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

var now = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func TestCreateClient_RequiresEmail(t *testing.T) {
	uc := NewCreateClient(newStubRepo(), nil, timezone.FixedClock(now))

	_, err := uc.Execute(context.Background(), domain.Client{Name: "Ana", Email: "  "})
	code, ok := httperr.BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, "email_required", code)
}

func TestCreateClient_AssignsIDAndTrims(t *testing.T) {
	repo := newStubRepo()
	uc := NewCreateClient(repo, nil, timezone.FixedClock(now))

	c, err := uc.Execute(context.Background(), domain.Client{Name: "  Ana ", Email: "ana@x.com "})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, "ana@x.com", c.Email)
	assert.Equal(t, now, c.CreatedAt)
	assert.Len(t, repo.clients, 1)
}

func TestUpdateClient_PatchKeepsOtherFields(t *testing.T) {
	repo := newStubRepo(domain.Client{ID: "c1", Name: "Ana", Email: "ana@x.com", City: "Recife", CreatedAt: now})
	uc := NewUpdateClient(repo, nil)

	city := "Olinda"
	c, err := uc.Execute(context.Background(), "c1", domain.Patch{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Olinda", c.City)
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, now, c.CreatedAt)
}

func TestUpdateClient_RejectsClearingEmail(t *testing.T) {
	repo := newStubRepo(domain.Client{ID: "c1", Name: "Ana", Email: "ana@x.com"})
	uc := NewUpdateClient(repo, nil)

	empty := ""
	_, err := uc.Execute(context.Background(), "c1", domain.Patch{Email: &empty})
	assert.True(t, httperr.IsBusiness(err, "email_required"))
	assert.Equal(t, "ana@x.com", repo.clients["c1"].Email)
}

func TestUpdateClient_NotFound(t *testing.T) {
	uc := NewUpdateClient(newStubRepo(), nil)
	_, err := uc.Execute(context.Background(), "nope", domain.Patch{})
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestDeleteClient_DropsTagAssociations(t *testing.T) {
	repo := newStubRepo(domain.Client{ID: "c1", Name: "Ana", Email: "ana@x.com"})
	reg := tag.NewRegistry()
	vip, err := reg.CreateTag("VIP", "")
	require.NoError(t, err)
	reg.AddTag("c1", vip)

	uc := NewDeleteClient(repo, reg, nil)
	require.NoError(t, uc.Execute(context.Background(), "c1"))

	assert.Empty(t, reg.ClientTags("c1"))
	assert.Len(t, reg.Tags(), 1)
	assert.Empty(t, repo.clients)

	err = uc.Execute(context.Background(), "c1")
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestListSegments(t *testing.T) {
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	old := time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC)
	repo := newStubRepo(
		domain.Client{ID: "c1", Name: "Ana", Email: "a@x", BirthDate: &birth, CreatedAt: now.AddDate(-1, 0, 0)},
		domain.Client{ID: "c2", Name: "Bia", Email: "b@x", LastPurchaseAt: &old, CreatedAt: now.AddDate(0, 0, -3)},
	)
	uc := NewListSegments(repo, timezone.FixedClock(now), 0)

	seg, err := uc.Execute(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultInactiveMonths, seg.InactiveMonths)
	require.Len(t, seg.BirthdaysToday, 1)
	assert.Equal(t, "c1", seg.BirthdaysToday[0].ID)
	require.Len(t, seg.NewThisMonth, 1)
	assert.Equal(t, "c2", seg.NewThisMonth[0].ID)

	_, err = uc.Execute(context.Background(), 13)
	assert.True(t, httperr.IsBusiness(err, "invalid_threshold"))
}

func TestListSegmentsConfiguredThreshold(t *testing.T) {
	sept := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	may := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	repo := newStubRepo(domain.Client{ID: "c1", Name: "Ana", Email: "a@x", LastPurchaseAt: &may})

	seg, err := NewListSegments(repo, timezone.FixedClock(sept), 6).Execute(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 6, seg.InactiveMonths)
	assert.Empty(t, seg.Inactive)

	// o parâmetro explícito continua valendo
	seg, err = NewListSegments(repo, timezone.FixedClock(sept), 6).Execute(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, seg.Inactive, 1)

	// configuração inválida cai no padrão
	seg, err = NewListSegments(repo, timezone.FixedClock(sept), 40).Execute(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultInactiveMonths, seg.InactiveMonths)
}

func TestImportExportRoundTrip(t *testing.T) {
	src := newStubRepo(
		domain.Client{ID: "c1", Name: "Ana", Email: "ana@x.com", City: "Recife"},
		domain.Client{ID: "c2", Name: "Bia, a \"Rainha\"", Email: "bia@x.com"},
	)
	data, err := NewExportClients(src).Execute(context.Background())
	require.NoError(t, err)

	dst := newStubRepo()
	create := NewCreateClient(dst, nil, timezone.FixedClock(now))
	res, err := NewImportClients(create, nil).Execute(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Empty(t, res.Skipped)

	got, _ := dst.List(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0].Name)
	assert.Equal(t, "Recife", got[0].City)
	assert.Equal(t, "Bia, a \"Rainha\"", got[1].Name)
}

func TestImportClients_SkipsRowsWithoutEmail(t *testing.T) {
	dst := newStubRepo()
	create := NewCreateClient(dst, nil, timezone.FixedClock(now))

	data, _ := NewExportClients(newStubRepo(
		domain.Client{ID: "c1", Name: "Ana", Email: "ana@x.com"},
		domain.Client{ID: "c2", Name: "Sem Email"},
	)).Execute(context.Background())

	res, err := NewImportClients(create, nil).Execute(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "email_required", res.Skipped[0].Reason)
}
