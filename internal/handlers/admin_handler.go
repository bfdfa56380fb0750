package handlers

import (
	"net/http"

	"infinix-store/internal/models"
	"infinix-store/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type AdminHandler struct {
	admin  *services.AdminService
	logger zerolog.Logger
}

func NewAdminHandler(admin *services.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: logger}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.admin.Dashboard())
}

// Orders accepts ?q=, ?status=, ?date=all|today|week|month, ?sort=createdAt|status|total and ?order=asc|desc.
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders, err := h.admin.ListOrders(services.OrderFilter{
		Query:      q.Get("q"),
		Status:     q.Get("status"),
		DateWindow: q.Get("date"),
		SortField:  q.Get("sort"),
		Ascending:  q.Get("order") == "asc",
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, orders)
}

func (h *AdminHandler) OrderStats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.admin.OrderStats())
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	order, err := h.admin.UpdateOrderStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, order)
}

func (h *AdminHandler) Designs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	designs, err := h.admin.ListDesigns(services.DesignFilter{
		Query: q.Get("q"),
		Sort:  q.Get("sort"),
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, designs)
}

func (h *AdminHandler) DeleteDesign(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteDesign(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
