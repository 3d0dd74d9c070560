package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductCategory struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	Name        string `gorm:"not null"`
	Description *string
	ImageURL    *string
	IsActive    bool `gorm:"not null"`
	CreatedAt   time.Time
}

type Product struct {
	ID               string  `gorm:"type:uuid;primaryKey"`
	Name             string  `gorm:"not null"`
	Description      *string
	ShortDescription *string
	Price            decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	ComparePrice     *decimal.Decimal `gorm:"type:numeric(12,2)"`
	SKU              *string          `gorm:"column:sku"`
	CategoryID       *string          `gorm:"type:uuid"`
	Category         *ProductCategory `gorm:"foreignKey:CategoryID"`
	Material         *string
	Color            *string
	Weight           *decimal.Decimal `gorm:"type:numeric(10,3)"`
	IsActive         bool             `gorm:"not null"`

	Images    []ProductImage   `gorm:"foreignKey:ProductID"`
	Variants  []ProductVariant `gorm:"foreignKey:ProductID"`
	Inventory []Inventory      `gorm:"foreignKey:ProductID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductImage struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	ProductID string `gorm:"type:uuid;not null;index"`
	ImageURL  string `gorm:"not null"`
	AltText   *string
	IsPrimary bool `gorm:"not null"`
	SortOrder int  `gorm:"not null;default:0"`
	CreatedAt time.Time
}

type ProductVariant struct {
	ID              string          `gorm:"type:uuid;primaryKey"`
	ProductID       string          `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"not null"`
	SKU             *string         `gorm:"column:sku"`
	PriceAdjustment decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	StockQuantity   int             `gorm:"not null;default:0"`
	IsActive        bool            `gorm:"not null"`
	CreatedAt       time.Time
}

type Inventory struct {
	ID                string  `gorm:"type:uuid;primaryKey"`
	ProductID         *string `gorm:"type:uuid"`
	VariantID         *string `gorm:"type:uuid"`
	Quantity          int     `gorm:"not null;default:0"`
	ReservedQuantity  int     `gorm:"not null;default:0"`
	LowStockThreshold *int    `gorm:"default:5"`
	UpdatedAt         time.Time
}

func (Inventory) TableName() string { return "inventory" }
