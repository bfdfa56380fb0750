package handlers

import (
	"net/http"

	"infinix-store/internal/models"
	"infinix-store/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type CartHandler struct {
	catalog *services.CatalogService
	logger  zerolog.Logger
}

func NewCartHandler(catalog *services.CatalogService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{catalog: catalog, logger: logger}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	var cart models.CartResponse
	_ = client.Do(func() error {
		cart = client.Cart.Snapshot()
		return nil
	})

	respondWithJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	var cart models.CartResponse
	_ = client.Do(func() error {
		client.Cart.ClearCart(r.Context())
		cart = client.Cart.Snapshot()
		return nil
	})

	respondWithJSON(w, http.StatusOK, cart)
}

// AddItem adds a product by id. A missing quantity means one.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	var req models.AddToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.Product(req.ProductID)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	var cart models.CartResponse
	err = client.Do(func() error {
		if err := client.Cart.AddToCart(r.Context(), product, req.Quantity); err != nil {
			return err
		}
		cart = client.Cart.Snapshot()
		return nil
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	var req models.UpdateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	productID := mux.Vars(r)["productId"]
	var cart models.CartResponse
	err := client.Do(func() error {
		if err := client.Cart.UpdateQuantity(r.Context(), productID, req.Quantity); err != nil {
			return err
		}
		cart = client.Cart.Snapshot()
		return nil
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	productID := mux.Vars(r)["productId"]
	var cart models.CartResponse
	err := client.Do(func() error {
		if err := client.Cart.RemoveFromCart(r.Context(), productID); err != nil {
			return err
		}
		cart = client.Cart.Snapshot()
		return nil
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, cart)
}
