package gateway

import (
	"context"
	"time"

	"github.com/cookiesandbiscadm-arch/yumyum/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type SubmitOrderInput struct {
	Customer  CustomerInput
	Items     []models.CartItem
	PromoCode string          // empty when no promo applied
	Discount  decimal.Decimal // recomputed from the live subtotal at checkout
}

// SubmitOrder performs the three-step write: customer record, order record,
// then one line per cart item. The steps run sequentially and are NOT
// transactional: a line-items failure leaves the customer and order rows
// behind, and the error is surfaced so the user can retry the whole order.
// Writes are never auto-retried.
func (g *Gateway) SubmitOrder(ctx context.Context, in SubmitOrderInput) (string, error) {
	if len(in.Items) == 0 {
		return "", invalid("submit order", "order has no items")
	}

	subtotal := decimal.Zero
	for _, item := range in.Items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	total := subtotal.Sub(in.Discount)
	if total.IsNegative() {
		total = decimal.Zero
	}

	// 1️⃣ Customer record
	customer := models.Customer{
		ID:      uuid.NewString(),
		Name:    in.Customer.Name,
		Phone:   in.Customer.Phone,
		Address: in.Customer.Address,
	}
	if err := g.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return "", classify("create customer", err)
	}

	// 2️⃣ Order record
	order := models.Order{
		ID:              uuid.NewString(),
		OrderNumber:     generateOrderNumber(),
		CustomerID:      customer.ID,
		DeliveryAddress: in.Customer.Address,
		TotalAmount:     total,
		PromoCode:       in.PromoCode,
		DiscountAmount:  in.Discount,
	}
	if err := g.db.WithContext(ctx).Create(&order).Error; err != nil {
		return "", classify("create order", err)
	}

	// 3️⃣ Order lines
	orderItems := make([]models.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		orderItems = append(orderItems, models.OrderItem{
			OrderID:     order.ID,
			ProductID:   item.ID,
			ProductName: item.Name,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			TotalPrice:  item.LineTotal(),
		})
	}
	if err := g.db.WithContext(ctx).Create(&orderItems).Error; err != nil {
		return "", classify("create order items", err)
	}

	return order.OrderNumber, nil
}

// generateOrderNumber builds a display reference like
// YY-20250901143005-1a2b3c4d.
func generateOrderNumber() string {
	return "YY-" + time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}
