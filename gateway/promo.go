package gateway

import (
	"context"
	"strings"
	"time"

	"github.com/cookiesandbiscadm-arch/yumyum/format"
	"github.com/cookiesandbiscadm-arch/yumyum/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PromoValidation is the server's verdict on a code for a given amount.
// Rejections come back as data (Valid=false + Message), not as errors;
// errors mean the check itself could not run.
type PromoValidation struct {
	Valid              bool            `json:"valid"`
	Code               string          `json:"code"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	Message            string          `json:"message,omitempty"`
}

// ValidatePromoCode checks existence, active flag, expiry, usage cap and
// minimum order value against the current subtotal. The server is the sole
// authority on these rules.
func (g *Gateway) ValidatePromoCode(ctx context.Context, code string, amount decimal.Decimal) (PromoValidation, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	reject := func(msg string) PromoValidation {
		return PromoValidation{Valid: false, Code: code, Message: msg}
	}

	var promo models.PromoCode
	err := retryTransient(ctx, g.sleep, func(ctx context.Context) error {
		return classify("fetch promo code",
			g.db.WithContext(ctx).Where("code = ?", code).First(&promo).Error)
	})
	if err != nil {
		if KindOf(err) == KindNotFound {
			return reject("Invalid promo code"), nil
		}
		return PromoValidation{}, err
	}

	switch {
	case !promo.IsActive:
		return reject("This promo code is no longer active"), nil
	case promo.ExpiresAt != nil && time.Now().After(*promo.ExpiresAt):
		return reject("This promo code has expired"), nil
	case promo.UsageLimit > 0 && promo.UsageCount >= promo.UsageLimit:
		return reject("This promo code has been fully redeemed"), nil
	case amount.LessThan(promo.MinOrderValue):
		return reject("Minimum order value for this code is " + format.INR(promo.MinOrderValue)), nil
	}

	discount := amount.Mul(promo.DiscountPercentage).Div(decimal.NewFromInt(100)).Round(2)
	return PromoValidation{
		Valid:              true,
		Code:               code,
		DiscountPercentage: promo.DiscountPercentage,
		DiscountAmount:     discount,
	}, nil
}

// IncrementPromoUsage bumps a code's usage counter. Called only after an
// order using the code has been durably submitted; failures are the
// caller's to log, never to surface.
func (g *Gateway) IncrementPromoUsage(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	return classify("increment promo usage",
		g.db.WithContext(ctx).
			Model(&models.PromoCode{}).
			Where("code = ?", code).
			UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error)
}
