package handlers

import (
	"net/http"

	"infinix-store/internal/models"

	"github.com/rs/zerolog"
)

type AuthHandler struct {
	logger zerolog.Logger
}

func NewAuthHandler(logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	var user *models.SessionUser
	err := client.Do(func() (err error) {
		user, err = client.Identity.Register(r.Context(), &req)
		return err
	})
	if err != nil {
		h.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, models.AuthResponse{User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	var user *models.SessionUser
	err := client.Do(func() (err error) {
		user, err = client.Identity.Login(r.Context(), &req)
		return err
	})
	if err != nil {
		respondWithServiceError(w, h.logger, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.AuthResponse{User: user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	_ = client.Do(func() error {
		client.Identity.Logout(r.Context())
		return nil
	})

	respondWithJSON(w, http.StatusOK, models.AuthResponse{})
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	client, ok := clientFrom(w, r)
	if !ok {
		return
	}

	var user *models.SessionUser
	_ = client.Do(func() error {
		user = client.Identity.CurrentUser()
		return nil
	})

	respondWithJSON(w, http.StatusOK, models.AuthResponse{User: user})
}
