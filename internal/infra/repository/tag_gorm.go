package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/tag"
	"github.com/BruksfildServices01/semijoias-crm/internal/models"
)

type TagGormRepository struct {
	db *gorm.DB
}

func NewTagGormRepository(db *gorm.DB) *TagGormRepository {
	return &TagGormRepository{db: db}
}

var _ tag.Store = (*TagGormRepository)(nil)

// ListTags devolve o catálogo na ordem de criação.
func (r *TagGormRepository) ListTags(ctx context.Context) ([]tag.Tag, error) {
	var rows []models.Tag
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]tag.Tag, 0, len(rows))
	for _, row := range rows {
		out = append(out, tag.Tag{ID: row.ID, Name: row.Name, Color: tag.Color(row.Color)})
	}
	return out, nil
}

func (r *TagGormRepository) CreateTag(ctx context.Context, t tag.Tag) error {
	return r.db.WithContext(ctx).Create(&models.Tag{
		ID:    t.ID,
		Name:  t.Name,
		Color: string(t.Color),
	}).Error
}

type associationRow struct {
	ClientID string
	TagID    string
	Name     string
	Color    string
}

// associationsQuery ordena por cliente e depois pela posição de inclusão.
func associationsQuery(db *gorm.DB) *gorm.DB {
	return db.
		Table("client_tags").
		Select("client_tags.client_id, client_tags.tag_id, tags.name, tags.color").
		Joins("JOIN tags ON tags.id = client_tags.tag_id").
		Order("client_tags.client_id, client_tags.position, client_tags.created_at")
}

// ListAssociations devolve client_tags na ordem de inclusão por cliente.
func (r *TagGormRepository) ListAssociations(ctx context.Context) ([]tag.Association, error) {
	var rows []associationRow
	if err := associationsQuery(r.db.WithContext(ctx)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return associationsFromRows(rows), nil
}

func associationsFromRows(rows []associationRow) []tag.Association {
	out := make([]tag.Association, 0, len(rows))
	for _, a := range rows {
		out = append(out, tag.Association{
			ClientID: a.ClientID,
			Tag:      tag.Tag{ID: a.TagID, Name: a.Name, Color: tag.Color(a.Color)},
		})
	}
	return out
}

// AddAssociation é idempotente; a posição é o fim da lista do cliente.
func (r *TagGormRepository) AddAssociation(ctx context.Context, clientID, tagID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&models.ClientTag{}).
			Where("client_id = ?", clientID).
			Select("COALESCE(MAX(position), -1) + 1").
			Scan(&next).Error; err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.ClientTag{
				ClientID: clientID,
				TagID:    tagID,
				Position: next,
			}).Error
	})
}

func (r *TagGormRepository) RemoveAssociation(ctx context.Context, clientID, tagID string) error {
	return r.db.WithContext(ctx).
		Where("client_id = ? AND tag_id = ?", clientID, tagID).
		Delete(&models.ClientTag{}).Error
}
