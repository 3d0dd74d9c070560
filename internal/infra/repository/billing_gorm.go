package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/billing"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/models"
)

type BillingGormRepository struct {
	db *gorm.DB
}

func NewBillingGormRepository(db *gorm.DB) *BillingGormRepository {
	return &BillingGormRepository{db: db}
}

var _ billing.Repository = (*BillingGormRepository)(nil)

func (r *BillingGormRepository) List(ctx context.Context) ([]billing.Item, error) {
	var rows []models.BillingItem
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return billingFromModels(rows), nil
}

func (r *BillingGormRepository) ListPending(ctx context.Context) ([]billing.Item, error) {
	var rows []models.BillingItem
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("sent_at IS NULL").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return billingFromModels(rows), nil
}

func (r *BillingGormRepository) Get(ctx context.Context, id string) (*billing.Item, error) {
	if !validID(id) {
		return nil, httperr.ErrNotFound
	}
	var row models.BillingItem
	if err := r.db.WithContext(ctx).
		Preload("Client").
		First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	it := billingFromModel(row)
	return &it, nil
}

func (r *BillingGormRepository) Create(ctx context.Context, it *billing.Item) error {
	row := models.BillingItem{
		ID:          it.ID,
		ClientID:    it.ClientID,
		Amount:      it.Amount,
		Description: it.Description,
		DaysToSend:  it.DaysToSend,
		Message:     it.Message,
		CreatedAt:   it.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit("Client").Create(&row).Error; err != nil {
		return err
	}
	it.CreatedAt = row.CreatedAt
	return nil
}

func (r *BillingGormRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return httperr.ErrNotFound
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.BillingItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

// MarkSent só marca itens ainda pendentes; devolve already_sent se outro
// processo chegou antes.
func (r *BillingGormRepository) MarkSent(ctx context.Context, id string, at time.Time) error {
	if !validID(id) {
		return httperr.ErrNotFound
	}
	res := r.db.WithContext(ctx).
		Model(&models.BillingItem{}).
		Where("id = ? AND sent_at IS NULL", id).
		Update("sent_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return billing.ErrAlreadySent
	}
	return nil
}

func billingFromModel(m models.BillingItem) billing.Item {
	return billing.Item{
		ID:          m.ID,
		ClientID:    m.ClientID,
		ClientName:  m.Client.Nome,
		Amount:      m.Amount,
		Description: m.Description,
		DaysToSend:  m.DaysToSend,
		Message:     m.Message,
		CreatedAt:   m.CreatedAt,
		SentAt:      m.SentAt,
	}
}

func billingFromModels(rows []models.BillingItem) []billing.Item {
	out := make([]billing.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, billingFromModel(row))
	}
	return out
}
