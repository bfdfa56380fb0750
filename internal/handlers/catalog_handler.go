package handlers

import (
	"net/http"
	"strconv"

	"infinix-store/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

const defaultFeaturedCount = 4

type CatalogHandler struct {
	catalog *services.CatalogService
	logger  zerolog.Logger
}

func NewCatalogHandler(catalog *services.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.Categories())
}

// Products lists the catalog filtered by ?category=, ?price=min-max and ?sort=.
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.catalog.List(services.ProductFilter{
		Category:   q.Get("category"),
		PriceRange: q.Get("price"),
		Sort:       q.Get("sort"),
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	n := defaultFeaturedCount
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			n = l
		}
	}

	respondWithJSON(w, http.StatusOK, h.catalog.Featured(n))
}

func (h *CatalogHandler) Product(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Product(mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}
