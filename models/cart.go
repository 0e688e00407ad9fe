package models

import "github.com/shopspring/decimal"

// CartItem is one distinct product held in a session cart. Display fields
// are copied from the product snapshot at add time and are not re-checked
// against the catalog afterwards.
type CartItem struct {
	ID          string          `json:"id"` // product id, merge key
	Name        string          `json:"name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Description string          `json:"description"`
	CategoryID  string          `json:"category_id"`
	ImageRef    string          `json:"image_ref"`
	Quantity    int             `json:"quantity"` // always >= 1 while stored
}

// CartState is the full snapshot persisted per session. Items keep
// insertion order for display; Total is derived and recomputed on every
// mutation, never carried forward.
type CartState struct {
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// NewCartItem is the only Product -> CartItem conversion. Quantity is left
// at zero; the cart store sets it.
func NewCartItem(p Product) CartItem {
	return CartItem{
		ID:          p.ID,
		Name:        p.Name,
		UnitPrice:   p.Price,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		ImageRef:    p.FullImageURL,
	}
}

// LineTotal is unit price times quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
