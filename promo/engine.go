package promo

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/cookiesandbiscadm-arch/yumyum/gateway"
	"github.com/shopspring/decimal"
)

var ErrEmptyCode = errors.New("promo code is empty")

// RejectionError carries the server's human-readable reason for refusing a
// code. It is rendered inline next to the promo input, never retried.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

// Validator is the slice of the gateway the engine needs.
type Validator interface {
	ValidatePromoCode(ctx context.Context, code string, amount decimal.Decimal) (gateway.PromoValidation, error)
}

// Applied is the single active promo for a session. DiscountAmount is the
// server's figure at validation time and is advisory only; the effective
// discount is always recomputed from the live subtotal.
type Applied struct {
	Code               string          `json:"code"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
}

// Engine holds at most one applied promo per session.
type Engine struct {
	mu        sync.Mutex
	validator Validator
	applied   *Applied
}

func NewEngine(validator Validator) *Engine {
	return &Engine{validator: validator}
}

// Apply normalizes the code (trim, uppercase) and asks the server to
// validate it against the current subtotal. On rejection the previously
// applied code stays in place; on success the new code replaces it.
func (e *Engine) Apply(ctx context.Context, code string, subtotal decimal.Decimal) (*Applied, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrEmptyCode
	}

	verdict, err := e.validator.ValidatePromoCode(ctx, code, subtotal)
	if err != nil {
		return nil, err
	}
	if !verdict.Valid {
		return nil, &RejectionError{Message: verdict.Message}
	}

	applied := &Applied{
		Code:               verdict.Code,
		DiscountPercentage: verdict.DiscountPercentage,
		DiscountAmount:     verdict.DiscountAmount,
	}
	e.mu.Lock()
	e.applied = applied
	e.mu.Unlock()

	cp := *applied
	return &cp, nil
}

// Remove clears the active promo unconditionally.
func (e *Engine) Remove() {
	e.mu.Lock()
	e.applied = nil
	e.mu.Unlock()
}

// Applied returns a copy of the active promo, or nil.
func (e *Engine) Applied() *Applied {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.applied == nil {
		return nil
	}
	cp := *e.applied
	return &cp
}

// Discount computes the effective discount against the given subtotal,
// rounded to paise. Cart contents may have changed since validation, so
// this runs on every read; the validation-time amount is never reused.
func (e *Engine) Discount(subtotal decimal.Decimal) decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.applied == nil {
		return decimal.Zero
	}
	return subtotal.
		Mul(e.applied.DiscountPercentage).
		Div(decimal.NewFromInt(100)).
		Round(2)
}
