package checkout

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/cookiesandbiscadm-arch/yumyum/cart"
	"github.com/cookiesandbiscadm-arch/yumyum/gateway"
	"github.com/cookiesandbiscadm-arch/yumyum/promo"
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

var (
	ErrSubmitInProgress = errors.New("checkout already in progress")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrMissingFields    = errors.New("name, phone and address are required")
)

// Gateway is the slice of the data gateway the orchestrator needs.
type Gateway interface {
	SubmitOrder(ctx context.Context, in gateway.SubmitOrderInput) (string, error)
	IncrementPromoUsage(ctx context.Context, code string) error
}

type CustomerInfo struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// Result is handed to the confirmation step on success.
type Result struct {
	OrderNumber string       `json:"order_number"`
	Customer    CustomerInfo `json:"customer"`
}

// Orchestrator drives one session's checkout through
// Idle -> Submitting -> {Success, Failed}, with Failed -> Submitting on
// retry. While an attempt is in flight, further triggers are rejected.
type Orchestrator struct {
	mu      sync.Mutex
	state   State
	lastErr string

	cart  *cart.Store
	promo *promo.Engine
	gw    Gateway
}

func New(cartStore *cart.Store, promoEngine *promo.Engine, gw Gateway) *Orchestrator {
	return &Orchestrator{
		state: StateIdle,
		cart:  cartStore,
		promo: promoEngine,
		gw:    gw,
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastError returns the message from the most recent failed attempt.
func (o *Orchestrator) LastError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// Submit runs the full sequence: validate, submit order, then on success -
// in this fixed order - increment promo usage (best effort), clear the
// cart, and return the confirmation result. On failure the cart is left
// exactly as it was so a retry resubmits the same order.
func (o *Orchestrator) Submit(ctx context.Context, customer CustomerInfo) (*Result, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	o.mu.Lock()
	if o.state == StateSubmitting {
		o.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	// Empty cart short-circuits before any gateway contact.
	if o.cart.IsEmpty() {
		o.mu.Unlock()
		return nil, ErrEmptyCart
	}
	o.state = StateSubmitting
	o.mu.Unlock()

	state := o.cart.State()
	discount := o.promo.Discount(state.Total)
	applied := o.promo.Applied()

	in := gateway.SubmitOrderInput{
		Customer: gateway.CustomerInput{
			Name:    customer.Name,
			Phone:   customer.Phone,
			Address: customer.Address,
		},
		Items:    state.Items,
		Discount: discount,
	}
	if applied != nil {
		in.PromoCode = applied.Code
	}

	orderNumber, err := o.gw.SubmitOrder(ctx, in)
	if err != nil {
		o.mu.Lock()
		o.state = StateFailed
		o.lastErr = "Order failed: " + err.Error()
		o.mu.Unlock()
		return nil, err
	}

	// Usage accounting is strictly ordered after submission success and
	// must never block the confirmation: the order already went through.
	if applied != nil {
		if err := o.gw.IncrementPromoUsage(ctx, applied.Code); err != nil {
			log.Printf("⚠️ checkout: promo usage increment for %s failed: %v", applied.Code, err)
		}
	}

	o.cart.Clear()
	o.promo.Remove()

	o.mu.Lock()
	o.state = StateSuccess
	o.lastErr = ""
	o.mu.Unlock()

	return &Result{OrderNumber: orderNumber, Customer: customer}, nil
}

func validateCustomer(c CustomerInfo) error {
	if strings.TrimSpace(c.Name) == "" ||
		strings.TrimSpace(c.Phone) == "" ||
		strings.TrimSpace(c.Address) == "" {
		return ErrMissingFields
	}
	return nil
}
