package models

import "time"

// GuestSession ties a browser session to its cart snapshot key.
type GuestSession struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
