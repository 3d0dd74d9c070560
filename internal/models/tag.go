package models

import "time"

type Tag struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"not null"`
	Color     string `gorm:"not null"`
	CreatedAt time.Time
}

// ClientTag associa cliente e etiqueta; Position preserva a ordem de inclusão.
type ClientTag struct {
	ClientID  string `gorm:"type:uuid;primaryKey"`
	TagID     string `gorm:"type:uuid;primaryKey"`
	Position  int    `gorm:"not null;default:0"`
	CreatedAt time.Time
}
