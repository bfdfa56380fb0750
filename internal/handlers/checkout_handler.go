package handlers

import (
	"net/http"

	"infinix-store/internal/models"
	"infinix-store/internal/storefront"

	"github.com/rs/zerolog"
)

type CheckoutHandler struct {
	logger zerolog.Logger
}

func NewCheckoutHandler(logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{logger: logger}
}

// step runs one wizard transition and answers with the resulting state.
func (h *CheckoutHandler) step(w http.ResponseWriter, r *http.Request, status int, fn func(c *storefront.Client) error) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	var state models.CheckoutState
	err := client.Do(func() error {
		if err := fn(client); err != nil {
			return err
		}
		state = client.Checkout.State()
		return nil
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, status, state)
}

func (h *CheckoutHandler) GetState(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, http.StatusOK, func(*storefront.Client) error { return nil })
}

func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, http.StatusOK, func(c *storefront.Client) error { return c.Checkout.Begin() })
}

func (h *CheckoutHandler) Shipping(w http.ResponseWriter, r *http.Request) {
	var req models.ShippingDetails
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	h.step(w, r, http.StatusOK, func(c *storefront.Client) error { return c.Checkout.SubmitShipping(req) })
}

// Payment answers 202: the wizard sits in processing until the simulated gateway completes.
func (h *CheckoutHandler) Payment(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentDetails
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	h.step(w, r, http.StatusAccepted, func(c *storefront.Client) error { return c.Checkout.SubmitPayment(req) })
}

func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, http.StatusOK, func(c *storefront.Client) error { return c.Checkout.Back() })
}

func (h *CheckoutHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, http.StatusOK, func(c *storefront.Client) error { return c.Checkout.Reset() })
}
