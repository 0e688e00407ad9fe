package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID              string          `gorm:"primaryKey;type:uuid" json:"id"`
	OrderNumber     string          `gorm:"uniqueIndex;not null" json:"order_number"`
	CustomerID      string          `gorm:"not null;type:uuid" json:"customer_id"`
	Customer        Customer        `gorm:"foreignKey:CustomerID" json:"customer"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	DeliveryAddress string          `gorm:"not null" json:"delivery_address"`
	TotalAmount     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"total_amount"`
	PromoCode       string          `json:"promo_code,omitempty"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(10,2)" json:"discount_amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     string          `gorm:"index;type:uuid" json:"order_id"`
	ProductID   string          `gorm:"type:uuid" json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_price"`
}
