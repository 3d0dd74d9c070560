package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/catalog"
	"github.com/BruksfildServices01/semijoias-crm/internal/httperr"
	"github.com/BruksfildServices01/semijoias-crm/internal/models"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

var _ catalog.Repository = (*ProductGormRepository)(nil)

func (r *ProductGormRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Variants").
		Preload("Inventory")
}

// --------------------------------------------------
// Produtos
// --------------------------------------------------

func (r *ProductGormRepository) List(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.Product
	if err := r.preloaded(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]catalog.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, productFromModel(row))
	}
	return out, nil
}

func (r *ProductGormRepository) Get(ctx context.Context, id string) (*catalog.Product, error) {
	if !validID(id) {
		return nil, httperr.ErrNotFound
	}
	var row models.Product
	if err := r.preloaded(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound
		}
		return nil, err
	}
	p := productFromModel(row)
	return &p, nil
}

// Create grava produto, variações e estoque juntos.
func (r *ProductGormRepository) Create(ctx context.Context, p *catalog.Product) error {
	row := productToModel(p)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Category", "Images", "Variants", "Inventory").Create(&row).Error; err != nil {
			return err
		}
		if err := replaceChildren(tx, p); err != nil {
			return err
		}
		p.CreatedAt, p.UpdatedAt = row.CreatedAt, row.UpdatedAt
		return nil
	})
}

// Update regrava os campos do produto e substitui variações e estoque.
// Imagens só mudam via AddImage.
func (r *ProductGormRepository) Update(ctx context.Context, p *catalog.Product) error {
	if !validID(p.ID) {
		return httperr.ErrNotFound
	}
	row := productToModel(p)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ?", p.ID).
			Select("*").
			Omit("id", "created_at", "Category", "Images", "Variants", "Inventory").
			Updates(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrNotFound
		}

		if err := tx.Where("product_id = ?", p.ID).Delete(&models.Inventory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		return replaceChildren(tx, p)
	})
}

func (r *ProductGormRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return httperr.ErrNotFound
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

// AddImage anexa no fim; a primeira imagem do produto vira a principal.
func (r *ProductGormRepository) AddImage(ctx context.Context, productID string, img *catalog.Image) error {
	if !validID(productID) {
		return httperr.ErrNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ProductImage{}).
			Where("product_id = ?", productID).
			Count(&count).Error; err != nil {
			return err
		}

		if img.ID == "" {
			img.ID = uuid.NewString()
		}
		img.SortOrder = int(count)
		img.Primary = img.Primary || count == 0

		return tx.Create(&models.ProductImage{
			ID:        img.ID,
			ProductID: productID,
			ImageURL:  img.URL,
			AltText:   nullable(img.AltText),
			IsPrimary: img.Primary,
			SortOrder: img.SortOrder,
		}).Error
	})
}

func replaceChildren(tx *gorm.DB, p *catalog.Product) error {
	variantIDs := make(map[string]bool, len(p.Variants))
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		variantIDs[v.ID] = true
		if err := tx.Create(&models.ProductVariant{
			ID:              v.ID,
			ProductID:       p.ID,
			Name:            v.Name,
			SKU:             nullable(v.SKU),
			PriceAdjustment: v.PriceAdjustment,
			StockQuantity:   v.StockQuantity,
			IsActive:        v.Active,
		}).Error; err != nil {
			return err
		}
	}

	for i := range p.Inventory {
		inv := &p.Inventory[i]
		if inv.ID == "" {
			inv.ID = uuid.NewString()
		}
		threshold := inv.Threshold()
		productID := p.ID
		row := models.Inventory{
			ID:                inv.ID,
			ProductID:         &productID,
			Quantity:          inv.Quantity,
			ReservedQuantity:  inv.ReservedQuantity,
			LowStockThreshold: &threshold,
		}
		if inv.VariantID != "" && variantIDs[inv.VariantID] {
			variantID := inv.VariantID
			row.VariantID = &variantID
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------
// Categorias
// --------------------------------------------------

func (r *ProductGormRepository) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	var rows []models.ProductCategory
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.Category{
			ID:          row.ID,
			Name:        row.Name,
			Description: deref(row.Description),
			ImageURL:    deref(row.ImageURL),
			Active:      row.IsActive,
		})
	}
	return out, nil
}

func (r *ProductGormRepository) CreateCategory(ctx context.Context, c *catalog.Category) error {
	return r.db.WithContext(ctx).Create(&models.ProductCategory{
		ID:          c.ID,
		Name:        c.Name,
		Description: nullable(c.Description),
		ImageURL:    nullable(c.ImageURL),
		IsActive:    c.Active,
	}).Error
}

// --------------------------------------------------
// Mapeamento
// --------------------------------------------------

func productFromModel(m models.Product) catalog.Product {
	p := catalog.Product{
		ID:               m.ID,
		Name:             m.Name,
		Description:      deref(m.Description),
		ShortDescription: deref(m.ShortDescription),
		Price:            m.Price,
		ComparePrice:     m.ComparePrice,
		SKU:              deref(m.SKU),
		CategoryID:       deref(m.CategoryID),
		Material:         deref(m.Material),
		Color:            deref(m.Color),
		Weight:           m.Weight,
		Active:           m.IsActive,
		Images:           make([]catalog.Image, 0, len(m.Images)),
		Variants:         make([]catalog.Variant, 0, len(m.Variants)),
		Inventory:        make([]catalog.InventoryItem, 0, len(m.Inventory)),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.Category != nil {
		p.CategoryName = m.Category.Name
	}
	for _, img := range m.Images {
		p.Images = append(p.Images, catalog.Image{
			ID:        img.ID,
			URL:       img.ImageURL,
			AltText:   deref(img.AltText),
			Primary:   img.IsPrimary,
			SortOrder: img.SortOrder,
		})
	}
	for _, v := range m.Variants {
		p.Variants = append(p.Variants, catalog.Variant{
			ID:              v.ID,
			Name:            v.Name,
			SKU:             deref(v.SKU),
			PriceAdjustment: v.PriceAdjustment,
			StockQuantity:   v.StockQuantity,
			Active:          v.IsActive,
		})
	}
	for _, inv := range m.Inventory {
		item := catalog.InventoryItem{
			ID:               inv.ID,
			VariantID:        deref(inv.VariantID),
			Quantity:         inv.Quantity,
			ReservedQuantity: inv.ReservedQuantity,
		}
		if inv.LowStockThreshold != nil {
			item.LowStockThreshold = *inv.LowStockThreshold
		}
		p.Inventory = append(p.Inventory, item)
	}
	return p
}

func productToModel(p *catalog.Product) models.Product {
	return models.Product{
		ID:               p.ID,
		Name:             p.Name,
		Description:      nullable(p.Description),
		ShortDescription: nullable(p.ShortDescription),
		Price:            p.Price,
		ComparePrice:     p.ComparePrice,
		SKU:              nullable(p.SKU),
		CategoryID:       nullable(p.CategoryID),
		Material:         nullable(p.Material),
		Color:            nullable(p.Color),
		Weight:           p.Weight,
		IsActive:         p.Active,
	}
}
