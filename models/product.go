package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID           string          `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string          `gorm:"not null" json:"name"`
	Price        decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"` // Rupees, major units
	Description  string          `json:"description"`
	Nutrition    string          `json:"nutrition"` // Free-form nutrition facts text
	ImageURL     string          `json:"image_url"`
	FullImageURL string          `json:"full_image_url"`
	DisplayOrder int             `gorm:"not null;default:0;index" json:"display_order"`
	CategoryID   string          `gorm:"type:uuid;index" json:"category_id"`
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}
