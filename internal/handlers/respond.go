package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"infinix-store/internal/designer"
	"infinix-store/internal/middleware"
	"infinix-store/internal/services"
	"infinix-store/internal/storefront"

	"github.com/rs/zerolog"
)

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "authentication_failed"},
	{services.ErrNotLoggedIn, http.StatusUnauthorized, "unauthorized"},
	{services.ErrMissingFields, http.StatusBadRequest, "missing_fields"},
	{services.ErrIncompleteForm, http.StatusBadRequest, "incomplete_form"},
	{services.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
	{services.ErrInvalidFilter, http.StatusBadRequest, "invalid_filter"},
	{services.ErrInvalidStatus, http.StatusBadRequest, "invalid_status"},
	{designer.ErrNothingSelected, http.StatusBadRequest, "nothing_selected"},
	{designer.ErrIndexOutOfRange, http.StatusBadRequest, "index_out_of_range"},
	{designer.ErrInvalidAxis, http.StatusBadRequest, "invalid_axis"},
	{designer.ErrInvalidDimension, http.StatusBadRequest, "invalid_dimension"},
	{designer.ErrDesignNameRequired, http.StatusBadRequest, "name_required"},
	{services.ErrEmailInUse, http.StatusConflict, "email_in_use"},
	{services.ErrEmptyCart, http.StatusConflict, "empty_cart"},
	{services.ErrInvalidStep, http.StatusConflict, "invalid_step"},
	{services.ErrNotInCart, http.StatusNotFound, "not_in_cart"},
	{services.ErrProductNotFound, http.StatusNotFound, "product_not_found"},
	{services.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
	{services.ErrDesignNotFound, http.StatusNotFound, "design_not_found"},
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, code int, errorCode, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: errorCode, Message: message})
}

// respondWithServiceError maps a service error onto a status code; anything unknown is a 500.
func respondWithServiceError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.err) {
			continue
		}
		resp := ErrorResponse{Error: m.code, Message: err.Error()}
		var fe *services.FieldError
		if errors.As(err, &fe) {
			resp.Fields = fe.Fields
		}
		respondWithJSON(w, m.status, resp)
		return
	}

	logger.Error().Err(err).Msg("Unhandled service error")
	respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func clientFrom(w http.ResponseWriter, r *http.Request) (*storefront.Client, bool) {
	client, ok := middleware.GetClient(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "missing_client", "Client token is required")
	}
	return client, ok
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotFound, "not_found", "Route not found")
}

func Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
