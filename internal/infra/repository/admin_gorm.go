package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/admin"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/models"
)

type AdminGormRepository struct {
	db *gorm.DB
}

func NewAdminGormRepository(db *gorm.DB) *AdminGormRepository {
	return &AdminGormRepository{db: db}
}

var _ admin.Repository = (*AdminGormRepository)(nil)

func (r *AdminGormRepository) List(ctx context.Context) ([]admin.User, error) {
	var rows []models.AdminUser
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]admin.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, adminFromModel(row))
	}
	return out, nil
}

func (r *AdminGormRepository) Get(ctx context.Context, id string) (*admin.User, error) {
	if !validID(id) {
		return nil, httperr.ErrNotFound
	}
	return r.first(ctx, "id = ?", id)
}

func (r *AdminGormRepository) FindByEmail(ctx context.Context, email string) (*admin.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *AdminGormRepository) first(ctx context.Context, query string, arg any) (*admin.User, error) {
	var row models.AdminUser
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	u := adminFromModel(row)
	return &u, nil
}

func (r *AdminGormRepository) Create(ctx context.Context, u *admin.User) error {
	row := adminToModel(u)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness("email_already_exists")
		}
		return err
	}
	u.CreatedAt, u.UpdatedAt = row.CreatedAt, row.UpdatedAt
	return nil
}

func (r *AdminGormRepository) Update(ctx context.Context, u *admin.User) error {
	if !validID(u.ID) {
		return httperr.ErrNotFound
	}
	res := r.db.WithContext(ctx).
		Model(&models.AdminUser{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"name":          u.Name,
			"password_hash": u.PasswordHash,
			"role":          string(u.Role),
			"is_active":     u.Active,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

func (r *AdminGormRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return httperr.ErrNotFound
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AdminUser{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

func adminFromModel(m models.AdminUser) admin.User {
	return admin.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         admin.Role(m.Role),
		Active:       m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func adminToModel(u *admin.User) models.AdminUser {
	return models.AdminUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.Active,
	}
}
