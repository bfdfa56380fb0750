package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"infinix-store/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const DefaultPaymentDelay = 2 * time.Second

// AfterFunc schedules f after d. The default is time.AfterFunc.
type AfterFunc func(d time.Duration, f func())

type CheckoutOptions struct {
	Pricing *Pricing
	Delay   time.Duration
	After   AfterFunc
}

// CheckoutService is the cart → shipping → payment → completed wizard.
// No payment gateway is contacted and no order record is created.
type CheckoutService struct {
	cart     *CartService
	identity *IdentityService
	logger   zerolog.Logger

	pricing Pricing
	delay   time.Duration
	after   AfterFunc

	step         models.CheckoutStep
	shipping     models.ShippingDetails
	payment      models.PaymentDetails
	confirmation *models.Confirmation

	// userID is the signed-in user the wizard belongs to; generation changes with it
	// and invalidates pending payment completions.
	userID     string
	generation uint64
}

func NewCheckoutService(cart *CartService, identity *IdentityService, logger zerolog.Logger, opts CheckoutOptions) *CheckoutService {
	pricing := DefaultPricing()
	if opts.Pricing != nil {
		pricing = *opts.Pricing
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultPaymentDelay
	}
	if opts.After == nil {
		opts.After = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	return &CheckoutService{
		cart:     cart,
		identity: identity,
		logger:   logger,
		pricing:  pricing,
		delay:    opts.Delay,
		after:    opts.After,
		step:     models.CheckoutStepCart,
	}
}

// SetUser abandons the wizard, including a payment in processing, when the signed-in user changes.
func (s *CheckoutService) SetUser(_ context.Context, user *models.SessionUser) {
	id := ""
	if user != nil {
		id = user.ID
	}
	if id == s.userID {
		return
	}
	if s.step != models.CheckoutStepCart {
		s.logger.Info().Str("step", string(s.step)).Msg("Checkout abandoned on session change")
	}
	s.userID = id
	s.generation++
	s.clear()
}

func (s *CheckoutService) Summary() models.OrderSummary {
	return s.pricing.Summarize(s.cart.Total())
}

func (s *CheckoutService) State() models.CheckoutState {
	state := models.CheckoutState{
		Step:     s.step,
		Shipping: s.shipping,
		Summary:  s.Summary(),
	}
	if s.confirmation != nil {
		c := *s.confirmation
		state.Confirmation = &c
		state.Summary = c.Summary
	}
	return state
}

// Begin moves from the cart review to the shipping form, prefilled from the session.
func (s *CheckoutService) Begin() error {
	if s.step != models.CheckoutStepCart {
		return ErrInvalidStep
	}
	user := s.identity.CurrentUser()
	if user == nil {
		return ErrNotLoggedIn
	}
	if s.cart.Count() == 0 {
		return ErrEmptyCart
	}

	first, last, _ := strings.Cut(user.Name, " ")
	if s.shipping == (models.ShippingDetails{}) {
		s.shipping = models.ShippingDetails{
			FirstName: first,
			LastName:  last,
			Email:     user.Email,
			Country:   "USA",
		}
	}
	s.step = models.CheckoutStepShipping
	return nil
}

func (s *CheckoutService) SubmitShipping(details models.ShippingDetails) error {
	if s.step != models.CheckoutStepShipping {
		return ErrInvalidStep
	}
	s.shipping = details

	if missing := blankFields(map[string]string{
		"first_name": details.FirstName,
		"last_name":  details.LastName,
		"email":      details.Email,
		"address":    details.Address,
		"city":       details.City,
		"state":      details.State,
		"zip_code":   details.ZipCode,
	}); len(missing) > 0 {
		return &FieldError{Fields: missing}
	}

	s.step = models.CheckoutStepPayment
	return nil
}

// SubmitPayment enters the processing state; completion fires after the configured delay
// and cannot be cancelled.
func (s *CheckoutService) SubmitPayment(details models.PaymentDetails) error {
	if s.step != models.CheckoutStepPayment {
		return ErrInvalidStep
	}

	if missing := blankFields(map[string]string{
		"card_number": details.CardNumber,
		"card_name":   details.CardName,
		"expiry_date": details.ExpiryDate,
		"cvv":         details.CVV,
	}); len(missing) > 0 {
		return &FieldError{Fields: missing}
	}

	s.payment = details
	s.step = models.CheckoutStepProcessing
	confirmation := models.Confirmation{
		Reference: uuid.NewString(),
		Email:     s.shipping.Email,
		Summary:   s.Summary(),
	}

	s.logger.Info().Str("reference", confirmation.Reference).Float64("total", confirmation.Summary.Total).Msg("Processing payment")
	generation := s.generation
	s.after(s.delay, func() { s.complete(generation, confirmation) })
	return nil
}

func (s *CheckoutService) complete(generation uint64, confirmation models.Confirmation) {
	if generation != s.generation || s.step != models.CheckoutStepProcessing {
		s.logger.Debug().Str("reference", confirmation.Reference).Msg("Stale payment completion dropped")
		return
	}
	s.step = models.CheckoutStepCompleted
	s.confirmation = &confirmation
	s.payment = models.PaymentDetails{}
	s.cart.ClearCart(context.Background())

	s.logger.Info().Str("reference", confirmation.Reference).Msg("Payment completed")
}

// Back steps from payment to shipping and from shipping to the cart review.
func (s *CheckoutService) Back() error {
	switch s.step {
	case models.CheckoutStepPayment:
		s.step = models.CheckoutStepShipping
	case models.CheckoutStepShipping:
		s.step = models.CheckoutStepCart
	default:
		return ErrInvalidStep
	}
	return nil
}

// Reset leaves a completed checkout and returns to the cart review.
func (s *CheckoutService) Reset() error {
	if s.step == models.CheckoutStepProcessing {
		return ErrInvalidStep
	}
	s.clear()
	return nil
}

func (s *CheckoutService) clear() {
	s.step = models.CheckoutStepCart
	s.shipping = models.ShippingDetails{}
	s.payment = models.PaymentDetails{}
	s.confirmation = nil
}

func blankFields(fields map[string]string) []string {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
