package models

type Category struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string `gorm:"unique;not null" json:"name"`
	Slug         string `gorm:"unique;not null" json:"slug"`
	Emoji        string `json:"emoji"`
	DisplayOrder int    `gorm:"not null;default:0;index" json:"display_order"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
}
