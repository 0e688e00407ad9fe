package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromoCode is the server-side authority on promo eligibility. The code
// column is stored uppercase; lookups normalize before querying.
type PromoCode struct {
	ID                 string          `gorm:"primaryKey;type:uuid" json:"id"`
	Code               string          `gorm:"uniqueIndex;not null" json:"code"`
	DiscountPercentage decimal.Decimal `gorm:"not null;type:decimal(5,2)" json:"discount_percentage"` // 0-100
	MinOrderValue      decimal.Decimal `gorm:"not null;type:decimal(10,2);default:0" json:"min_order_value"`
	ExpiresAt          *time.Time      `json:"expires_at,omitempty"`
	UsageLimit         int             `gorm:"not null;default:0" json:"usage_limit"` // 0 = unlimited
	UsageCount         int             `gorm:"not null;default:0" json:"usage_count"`
	IsActive           bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
}
