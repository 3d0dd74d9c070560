package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillingItem struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	ClientID    string          `gorm:"type:uuid;not null;index"`
	Client      Client          `gorm:"foreignKey:ClientID"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description string          `gorm:"not null"`
	DaysToSend  int             `gorm:"not null;default:7"`
	Message     string          `gorm:"not null"`
	SentAt      *time.Time
	CreatedAt   time.Time
}
