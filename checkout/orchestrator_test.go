package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cookiesandbiscadm-arch/yumyum/cart"
	"github.com/cookiesandbiscadm-arch/yumyum/gateway"
	"github.com/cookiesandbiscadm-arch/yumyum/models"
	"github.com/cookiesandbiscadm-arch/yumyum/promo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu        sync.Mutex
	calls     []string
	submitIn  gateway.SubmitOrderInput
	submitErr error
	incErr    error
	block     chan struct{} // when set, SubmitOrder blocks until closed
}

func (f *fakeGateway) SubmitOrder(_ context.Context, in gateway.SubmitOrderInput) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "submit")
	f.submitIn = in
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return "YY-20250901120000-abcd1234", nil
}

func (f *fakeGateway) IncrementPromoUsage(context.Context, string) error {
	f.mu.Lock()
	f.calls = append(f.calls, "increment")
	f.mu.Unlock()
	return f.incErr
}

func (f *fakeGateway) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := make([]string, len(f.calls))
	copy(cp, f.calls)
	return cp
}

type staticValidator struct {
	verdict gateway.PromoValidation
}

func (s staticValidator) ValidatePromoCode(context.Context, string, decimal.Decimal) (gateway.PromoValidation, error) {
	return s.verdict, nil
}

func newTestCart(t *testing.T) *cart.Store {
	t.Helper()
	s := cart.NewStore(cart.NewMemoryStorage(), "sess-1")
	s.AddItem(models.Product{
		ID:    "a",
		Name:  "Choco Crunch",
		Price: decimal.NewFromInt(100),
	}, 2)
	return s
}

func customer() CustomerInfo {
	return CustomerInfo{Name: "Asha", Phone: "9876543210", Address: "12 MG Road, Pune"}
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	cartStore := newTestCart(t)
	gw := &fakeGateway{}
	o := New(cartStore, promo.NewEngine(staticValidator{}), gw)

	res, err := o.Submit(context.Background(), customer())
	require.NoError(t, err)
	require.Equal(t, "YY-20250901120000-abcd1234", res.OrderNumber)
	require.Equal(t, "Asha", res.Customer.Name)
	require.Equal(t, StateSuccess, o.State())
	require.True(t, cartStore.IsEmpty())
}

func TestSubmitFailureKeepsCart(t *testing.T) {
	cartStore := newTestCart(t)
	before := cartStore.State()
	gw := &fakeGateway{submitErr: errors.New("order lines insert failed")}
	o := New(cartStore, promo.NewEngine(staticValidator{}), gw)

	_, err := o.Submit(context.Background(), customer())
	require.Error(t, err)
	require.Equal(t, StateFailed, o.State())
	require.Contains(t, o.LastError(), "Order failed")

	after := cartStore.State()
	require.Equal(t, len(before.Items), len(after.Items))
	require.True(t, before.Total.Equal(after.Total))
	require.NotContains(t, gw.callLog(), "increment")
}

func TestFailedRetryCanSucceed(t *testing.T) {
	cartStore := newTestCart(t)
	gw := &fakeGateway{submitErr: errors.New("connection reset")}
	o := New(cartStore, promo.NewEngine(staticValidator{}), gw)

	_, err := o.Submit(context.Background(), customer())
	require.Error(t, err)
	require.Equal(t, StateFailed, o.State())

	gw.submitErr = nil
	res, err := o.Submit(context.Background(), customer())
	require.NoError(t, err)
	require.NotEmpty(t, res.OrderNumber)
	require.Equal(t, StateSuccess, o.State())
	require.Empty(t, o.LastError())
}

func TestPromoUsageIncrementedOnlyAfterSuccess(t *testing.T) {
	cartStore := newTestCart(t)
	engine := promo.NewEngine(staticValidator{verdict: gateway.PromoValidation{
		Valid:              true,
		Code:               "SWEET10",
		DiscountPercentage: decimal.NewFromInt(10),
	}})
	_, err := engine.Apply(context.Background(), "SWEET10", cartStore.Subtotal())
	require.NoError(t, err)

	gw := &fakeGateway{}
	o := New(cartStore, engine, gw)

	_, err = o.Submit(context.Background(), customer())
	require.NoError(t, err)

	require.Equal(t, []string{"submit", "increment"}, gw.callLog())
	require.Equal(t, "SWEET10", gw.submitIn.PromoCode)
	// 10% of the live ₹200 subtotal.
	require.True(t, gw.submitIn.Discount.Equal(decimal.NewFromInt(20)))
}

func TestPromoUsageNotIncrementedOnFailure(t *testing.T) {
	cartStore := newTestCart(t)
	engine := promo.NewEngine(staticValidator{verdict: gateway.PromoValidation{
		Valid:              true,
		Code:               "SWEET10",
		DiscountPercentage: decimal.NewFromInt(10),
	}})
	_, err := engine.Apply(context.Background(), "SWEET10", cartStore.Subtotal())
	require.NoError(t, err)

	gw := &fakeGateway{submitErr: errors.New("backend down")}
	o := New(cartStore, engine, gw)

	_, err = o.Submit(context.Background(), customer())
	require.Error(t, err)
	require.Equal(t, []string{"submit"}, gw.callLog())
}

func TestIncrementFailureDoesNotBlockCheckout(t *testing.T) {
	cartStore := newTestCart(t)
	engine := promo.NewEngine(staticValidator{verdict: gateway.PromoValidation{
		Valid:              true,
		Code:               "SWEET10",
		DiscountPercentage: decimal.NewFromInt(10),
	}})
	_, err := engine.Apply(context.Background(), "SWEET10", cartStore.Subtotal())
	require.NoError(t, err)

	gw := &fakeGateway{incErr: errors.New("usage update timed out")}
	o := New(cartStore, engine, gw)

	res, err := o.Submit(context.Background(), customer())
	require.NoError(t, err, "increment failure is best-effort only")
	require.NotEmpty(t, res.OrderNumber)
	require.True(t, cartStore.IsEmpty())
}

func TestDoubleSubmitRejected(t *testing.T) {
	cartStore := newTestCart(t)
	gw := &fakeGateway{block: make(chan struct{})}
	o := New(cartStore, promo.NewEngine(staticValidator{}), gw)

	firstDone := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background(), customer())
		firstDone <- err
	}()

	// Wait until the first attempt is in flight.
	require.Eventually(t, func() bool {
		return o.State() == StateSubmitting
	}, time.Second, 5*time.Millisecond)

	_, err := o.Submit(context.Background(), customer())
	require.ErrorIs(t, err, ErrSubmitInProgress)

	close(gw.block)
	require.NoError(t, <-firstDone)
	require.Equal(t, []string{"submit"}, gw.callLog(), "second trigger must not reach the gateway")
}

func TestEmptyCartShortCircuits(t *testing.T) {
	cartStore := cart.NewStore(cart.NewMemoryStorage(), "sess-1")
	gw := &fakeGateway{}
	o := New(cartStore, promo.NewEngine(staticValidator{}), gw)

	_, err := o.Submit(context.Background(), customer())
	require.ErrorIs(t, err, ErrEmptyCart)
	require.Empty(t, gw.callLog(), "gateway must not be contacted")
}

func TestMissingFieldsRejected(t *testing.T) {
	cartStore := newTestCart(t)
	gw := &fakeGateway{}
	o := New(cartStore, promo.NewEngine(staticValidator{}), gw)

	for _, c := range []CustomerInfo{
		{Name: "", Phone: "98765", Address: "addr"},
		{Name: "Asha", Phone: "  ", Address: "addr"},
		{Name: "Asha", Phone: "98765", Address: ""},
	} {
		_, err := o.Submit(context.Background(), c)
		require.ErrorIs(t, err, ErrMissingFields)
	}
	require.Empty(t, gw.callLog())
}
