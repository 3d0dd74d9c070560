package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/domain/tag"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/models"
)

// dryRunDB monta SQL sem abrir conexão.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=crm dbname=crm sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

// ======================================================
// CLIENTES: model ↔ domínio
// ======================================================

func TestClientMappingRoundTrip(t *testing.T) {
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

	in := domain.Client{
		ID:                 uuid.NewString(),
		Name:               "Ana Souza",
		Email:              "ana@example.com",
		Phone:              "81 3333-0000",
		WhatsApp:           "+5581999990000",
		Street:             "Rua da Aurora, 10",
		Neighborhood:       "Boa Vista",
		City:               "Recife",
		State:              "PE",
		PostalCode:         "50050-000",
		BirthDate:          &birth,
		Profession:         "Advogada",
		Employer:           "Escritório X",
		Notes:              "prefere prata",
		LastPurchaseAt:     &last,
		LastPurchaseAmount: decimal.RequireFromString("249.90"),
		CreatedAt:          created,
	}

	row := clientToModel(&in)
	assert.Equal(t, "Ana Souza", row.Nome)
	require.NotNil(t, row.Telefone)
	assert.Equal(t, "81 3333-0000", *row.Telefone)
	require.NotNil(t, row.CEP)
	assert.Equal(t, "50050-000", *row.CEP)
	assert.True(t, decimal.RequireFromString("249.9").Equal(row.ValorUltimaCompra))

	out := clientFromModel(row)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestClientMappingBlankIsNull(t *testing.T) {
	in := domain.Client{ID: uuid.NewString(), Name: "Bia", Email: "bia@example.com", City: "   "}

	row := clientToModel(&in)
	for name, v := range map[string]*string{
		"telefone":    row.Telefone,
		"whatsapp":    row.WhatsApp,
		"endereco":    row.Endereco,
		"bairro":      row.Bairro,
		"cidade":      row.Cidade,
		"estado":      row.Estado,
		"cep":         row.CEP,
		"profissao":   row.Profissao,
		"empresa":     row.Empresa,
		"observacoes": row.Observacoes,
	} {
		assert.Nil(t, v, name)
	}
	assert.Nil(t, row.DataNascimento)
	assert.Nil(t, row.UltimaCompra)
	assert.True(t, row.ValorUltimaCompra.IsZero())

	out := clientFromModel(row)
	assert.Equal(t, "", out.City)
	assert.Equal(t, "", out.Phone)
	assert.Nil(t, out.BirthDate)
	assert.Nil(t, out.LastPurchaseAt)
}

func TestClientColumnsAreSnakeCase(t *testing.T) {
	s, err := schema.Parse(&models.Client{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	assert.Equal(t, "clients", s.Table)

	want := map[string]string{
		"Nome":              "nome",
		"Telefone":          "telefone",
		"WhatsApp":          "whatsapp",
		"Endereco":          "endereco",
		"CEP":               "cep",
		"DataNascimento":    "data_nascimento",
		"Profissao":         "profissao",
		"UltimaCompra":      "ultima_compra",
		"ValorUltimaCompra": "valor_ultima_compra",
		"CreatedAt":         "created_at",
	}
	for field, column := range want {
		f := s.LookUpField(field)
		require.NotNil(t, f, field)
		assert.Equal(t, column, f.DBName, field)
	}
}

// ======================================================
// IDS
// ======================================================

func TestMalformedIDIsNotFound(t *testing.T) {
	ctx := context.Background()

	// sem banco: o id inválido não pode chegar à query
	clients := NewClientGormRepository(nil)
	_, err := clients.Get(ctx, "abc")
	assert.ErrorIs(t, err, httperr.ErrNotFound)
	assert.ErrorIs(t, clients.Delete(ctx, "abc"), httperr.ErrNotFound)
	assert.ErrorIs(t, clients.Update(ctx, &domain.Client{ID: "abc"}), httperr.ErrNotFound)

	_, err = NewProductGormRepository(nil).Get(ctx, "nope")
	assert.ErrorIs(t, err, httperr.ErrNotFound)
	_, err = NewBillingGormRepository(nil).Get(ctx, "1")
	assert.ErrorIs(t, err, httperr.ErrNotFound)
	_, err = NewAdminGormRepository(nil).Get(ctx, "")
	assert.ErrorIs(t, err, httperr.ErrNotFound)

	assert.True(t, validID(uuid.NewString()))
	assert.False(t, validID("abc"))
}

// ======================================================
// ETIQUETAS
// ======================================================

func TestAssociationsOrderedByPosition(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var rows []associationRow
		return associationsQuery(tx).Find(&rows)
	})

	assert.Contains(t, sql, "JOIN tags ON tags.id = client_tags.tag_id")
	assert.Contains(t, sql, "ORDER BY client_tags.client_id, client_tags.position, client_tags.created_at")
}

func TestAssociationsFromRowsKeepOrder(t *testing.T) {
	rows := []associationRow{
		{ClientID: "c1", TagID: "t2", Name: "Noiva", Color: string(tag.Palette[1])},
		{ClientID: "c1", TagID: "t1", Name: "VIP", Color: string(tag.Palette[0])},
	}

	got := associationsFromRows(rows)

	want := []tag.Association{
		{ClientID: "c1", Tag: tag.Tag{ID: "t2", Name: "Noiva", Color: tag.Palette[1]}},
		{ClientID: "c1", Tag: tag.Tag{ID: "t1", Name: "VIP", Color: tag.Palette[0]}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("associations (-want +got):\n%s", diff)
	}

	r := tag.NewRegistry()
	r.Load([]tag.Tag{want[1].Tag, want[0].Tag}, got)
	if diff := cmp.Diff([]tag.Tag{want[0].Tag, want[1].Tag}, r.ClientTags("c1")); diff != "" {
		t.Errorf("registry order (-want +got):\n%s", diff)
	}
}
