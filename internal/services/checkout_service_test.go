package services

import (
	"context"
	"testing"
	"time"

	"infinix-store/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pendingTimer struct {
	delay time.Duration
	fire  func()
}

func newCheckout(t *testing.T, f *fixture) (*CheckoutService, *[]pendingTimer) {
	t.Helper()
	var timers []pendingTimer
	svc := NewCheckoutService(f.cart, f.identity, zerolog.Nop(), CheckoutOptions{
		After: func(d time.Duration, fn func()) {
			timers = append(timers, pendingTimer{delay: d, fire: fn})
		},
	})
	return svc, &timers
}

var validShipping = models.ShippingDetails{
	FirstName: "John",
	LastName:  "Doe",
	Email:     "john@example.com",
	Address:   "123 Main St",
	City:      "New York",
	State:     "NY",
	ZipCode:   "10001",
	Country:   "USA",
}

var validPayment = models.PaymentDetails{
	CardNumber: "4242 4242 4242 4242",
	CardName:   "John Doe",
	ExpiryDate: "12/30",
	CVV:        "123",
}

func TestCheckout_FullFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "john@example.com", "password123")
	require.NoError(t, f.cart.AddToCart(ctx, f.product(t, "dresser-1"), 1))

	svc, timers := newCheckout(t, f)
	assert.Equal(t, models.CheckoutStepCart, svc.State().Step)

	require.NoError(t, svc.Begin())
	state := svc.State()
	assert.Equal(t, models.CheckoutStepShipping, state.Step)
	assert.Equal(t, "John", state.Shipping.FirstName)
	assert.Equal(t, "Doe", state.Shipping.LastName)
	assert.Equal(t, "john@example.com", state.Shipping.Email)
	assert.Equal(t, "USA", state.Shipping.Country)

	require.NoError(t, svc.SubmitShipping(validShipping))
	assert.Equal(t, models.CheckoutStepPayment, svc.State().Step)

	require.NoError(t, svc.SubmitPayment(validPayment))
	assert.Equal(t, models.CheckoutStepProcessing, svc.State().Step)
	require.Len(t, *timers, 1)
	assert.Equal(t, DefaultPaymentDelay, (*timers)[0].delay)
	assert.Equal(t, 1, f.cart.Count())

	(*timers)[0].fire()
	state = svc.State()
	assert.Equal(t, models.CheckoutStepCompleted, state.Step)
	require.NotNil(t, state.Confirmation)
	assert.NotEmpty(t, state.Confirmation.Reference)
	assert.Equal(t, "john@example.com", state.Confirmation.Email)
	assert.Equal(t, models.OrderSummary{Subtotal: 599.99, Tax: 48, Shipping: 0, Total: 647.99}, state.Summary)
	assert.Zero(t, f.cart.Count())

	require.NoError(t, svc.Reset())
	assert.Equal(t, models.CheckoutStepCart, svc.State().Step)
	assert.Nil(t, svc.State().Confirmation)
}

func TestCheckout_BeginGuards(t *testing.T) {
	f := newFixture(t)
	svc, _ := newCheckout(t, f)

	assert.ErrorIs(t, svc.Begin(), ErrNotLoggedIn)

	f.login(t, "john@example.com", "password123")
	assert.ErrorIs(t, svc.Begin(), ErrEmptyCart)
	assert.Equal(t, models.CheckoutStepCart, svc.State().Step)
}

func TestCheckout_ShippingRequiresFields(t *testing.T) {
	f := newFixture(t)
	f.login(t, "john@example.com", "password123")
	require.NoError(t, f.cart.AddToCart(context.Background(), f.product(t, "bed-1"), 1))
	svc, _ := newCheckout(t, f)
	require.NoError(t, svc.Begin())

	details := validShipping
	details.City = " "
	details.ZipCode = ""
	err := svc.SubmitShipping(details)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"city", "zip_code"}, fe.Fields)
	assert.ErrorIs(t, err, ErrIncompleteForm)
	assert.Equal(t, models.CheckoutStepShipping, svc.State().Step)
	assert.Equal(t, "123 Main St", svc.State().Shipping.Address)
}

func TestCheckout_PaymentRequiresFields(t *testing.T) {
	f := newFixture(t)
	f.login(t, "john@example.com", "password123")
	require.NoError(t, f.cart.AddToCart(context.Background(), f.product(t, "bed-1"), 1))
	svc, timers := newCheckout(t, f)
	require.NoError(t, svc.Begin())
	require.NoError(t, svc.SubmitShipping(validShipping))

	err := svc.SubmitPayment(models.PaymentDetails{CardNumber: "4242"})
	assert.ErrorIs(t, err, ErrIncompleteForm)
	assert.Empty(t, *timers)
	assert.Equal(t, models.CheckoutStepPayment, svc.State().Step)
}

func TestCheckout_BackAndStepGuards(t *testing.T) {
	f := newFixture(t)
	f.login(t, "john@example.com", "password123")
	require.NoError(t, f.cart.AddToCart(context.Background(), f.product(t, "bed-1"), 1))
	svc, timers := newCheckout(t, f)

	assert.ErrorIs(t, svc.Back(), ErrInvalidStep)
	assert.ErrorIs(t, svc.SubmitShipping(validShipping), ErrInvalidStep)
	assert.ErrorIs(t, svc.SubmitPayment(validPayment), ErrInvalidStep)

	require.NoError(t, svc.Begin())
	require.NoError(t, svc.SubmitShipping(validShipping))
	require.NoError(t, svc.Back())
	assert.Equal(t, models.CheckoutStepShipping, svc.State().Step)
	require.NoError(t, svc.Back())
	assert.Equal(t, models.CheckoutStepCart, svc.State().Step)

	require.NoError(t, svc.Begin())
	assert.Equal(t, "123 Main St", svc.State().Shipping.Address, "form keeps entered values")
	require.NoError(t, svc.SubmitShipping(validShipping))
	require.NoError(t, svc.SubmitPayment(validPayment))

	assert.ErrorIs(t, svc.Back(), ErrInvalidStep)
	assert.ErrorIs(t, svc.Reset(), ErrInvalidStep)
	(*timers)[0].fire()
	assert.Equal(t, models.CheckoutStepCompleted, svc.State().Step)
}

func TestCheckout_SummaryTracksCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "john@example.com", "password123")
	svc, _ := newCheckout(t, f)

	require.NoError(t, f.cart.AddToCart(ctx, f.product(t, "table-2"), 1))
	assert.Equal(t, 50.0, svc.Summary().Shipping)

	require.NoError(t, f.cart.AddToCart(ctx, f.product(t, "table-2"), 2))
	sum := svc.Summary()
	assert.InDelta(t, 749.97, sum.Subtotal, 0.001)
	assert.Zero(t, sum.Shipping)
	assert.InDelta(t, 60.0, sum.Tax, 0.001)
}
