package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/semijoias-crm/internal/domain/client"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

var _ domain.Repository = (*ClientGormRepository)(nil)

// --------------------------------------------------
// Leitura
// --------------------------------------------------

func (r *ClientGormRepository) List(ctx context.Context) ([]domain.Client, error) {
	var rows []models.Client
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return clientsFromModels(rows), nil
}

func (r *ClientGormRepository) Search(ctx context.Context, query string) ([]domain.Client, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return r.List(ctx)
	}

	like := "%" + query + "%"
	var rows []models.Client
	if err := r.db.WithContext(ctx).
		Where(
			"LOWER(nome) LIKE ? OR telefone LIKE ? OR LOWER(email) LIKE ? OR LOWER(cidade) LIKE ?",
			like, like, like, like,
		).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return clientsFromModels(rows), nil
}

func (r *ClientGormRepository) Get(ctx context.Context, id string) (*domain.Client, error) {
	if !validID(id) {
		return nil, httperr.ErrNotFound
	}
	var row models.Client
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	c := clientFromModel(row)
	return &c, nil
}

// --------------------------------------------------
// Escrita
// --------------------------------------------------

func (r *ClientGormRepository) Create(ctx context.Context, c *domain.Client) error {
	row := clientToModel(c)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	c.CreatedAt = row.CreatedAt
	return nil
}

// Update regrava todas as colunas; created_at é imutável.
func (r *ClientGormRepository) Update(ctx context.Context, c *domain.Client) error {
	if !validID(c.ID) {
		return httperr.ErrNotFound
	}
	row := clientToModel(c)
	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", c.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

// Delete remove etiquetas e cobranças do cliente na mesma transação.
func (r *ClientGormRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return httperr.ErrNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.ClientTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.BillingItem{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Client{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrNotFound
		}
		return nil
	})
}

// --------------------------------------------------
// Mapeamento model ↔ domínio
// --------------------------------------------------

func clientFromModel(m models.Client) domain.Client {
	return domain.Client{
		ID:                 m.ID,
		Name:               m.Nome,
		Email:              m.Email,
		Phone:              deref(m.Telefone),
		WhatsApp:           deref(m.WhatsApp),
		Street:             deref(m.Endereco),
		Neighborhood:       deref(m.Bairro),
		City:               deref(m.Cidade),
		State:              deref(m.Estado),
		PostalCode:         deref(m.CEP),
		BirthDate:          m.DataNascimento,
		Profession:         deref(m.Profissao),
		Employer:           deref(m.Empresa),
		Notes:              deref(m.Observacoes),
		LastPurchaseAt:     m.UltimaCompra,
		LastPurchaseAmount: m.ValorUltimaCompra,
		CreatedAt:          m.CreatedAt,
	}
}

func clientsFromModels(rows []models.Client) []domain.Client {
	out := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, clientFromModel(row))
	}
	return out
}

func clientToModel(c *domain.Client) models.Client {
	return models.Client{
		ID:                c.ID,
		Nome:              c.Name,
		Email:             c.Email,
		Telefone:          nullable(c.Phone),
		WhatsApp:          nullable(c.WhatsApp),
		Endereco:          nullable(c.Street),
		Bairro:            nullable(c.Neighborhood),
		Cidade:            nullable(c.City),
		Estado:            nullable(c.State),
		CEP:               nullable(c.PostalCode),
		DataNascimento:    c.BirthDate,
		Profissao:         nullable(c.Profession),
		Empresa:           nullable(c.Employer),
		Observacoes:       nullable(c.Notes),
		UltimaCompra:      c.LastPurchaseAt,
		ValorUltimaCompra: c.LastPurchaseAmount,
		CreatedAt:         c.CreatedAt,
	}
}

// nullable grava texto vazio como NULL.
func nullable(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
