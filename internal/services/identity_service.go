package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"infinix-store/internal/kv"
	"infinix-store/internal/models"
	"infinix-store/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// SessionKey is the key-value entry holding the active session record.
const SessionKey = "user"

// SessionListener is told about every change of the active session, nil meaning signed out.
type SessionListener func(ctx context.Context, user *models.SessionUser)

// IdentityService validates credentials and owns the session record of one client.
// It is not safe for concurrent use; storefront.Client serialises access.
type IdentityService struct {
	users      *store.Users
	sessions   kv.Store
	logger     zerolog.Logger
	bcryptCost int
	now        func() time.Time

	current   *models.SessionUser
	listeners []SessionListener
}

func NewIdentityService(users *store.Users, sessions kv.Store, logger zerolog.Logger, bcryptCost int) *IdentityService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &IdentityService{
		users:      users,
		sessions:   sessions,
		logger:     logger,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

func (s *IdentityService) OnSessionChange(l SessionListener) {
	s.listeners = append(s.listeners, l)
}

func (s *IdentityService) setSession(ctx context.Context, user *models.SessionUser) {
	s.current = user
	for _, l := range s.listeners {
		l(ctx, s.CurrentUser())
	}
}

// persist writes the session record. Storage failures are logged, never returned.
func (s *IdentityService) persist(ctx context.Context, user *models.SessionUser) {
	if err := kv.SetJSON(ctx, s.sessions, SessionKey, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("Error saving session")
	}
}

func (s *IdentityService) Login(ctx context.Context, req *models.LoginRequest) (*models.SessionUser, error) {
	user, ok := s.users.FindByEmail(req.Email)
	if !ok {
		s.logger.Warn().Str("email", req.Email).Msg("Failed authentication attempt")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Failed authentication attempt")
		return nil, ErrInvalidCredentials
	}

	session := user.Session()
	s.persist(ctx, session)
	s.setSession(ctx, session)

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User authenticated successfully")
	return s.CurrentUser(), nil
}

// Register appends a new user with the default role and signs them in.
func (s *IdentityService) Register(ctx context.Context, req *models.RegisterRequest) (*models.SessionUser, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	if _, exists := s.users.FindByEmail(req.Email); exists {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           "user-" + uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         string(models.RoleUser),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.Add(user); err != nil {
		if errors.Is(err, store.ErrEmailInUse) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	session := user.Session()
	s.persist(ctx, session)
	s.setSession(ctx, session)

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User registered successfully")
	return s.CurrentUser(), nil
}

func (s *IdentityService) Logout(ctx context.Context) {
	if s.current != nil {
		s.logger.Info().Str("user_id", s.current.ID).Msg("User logged out")
	}
	if err := s.sessions.Delete(ctx, SessionKey); err != nil {
		s.logger.Error().Err(err).Msg("Error clearing session")
	}
	s.setSession(ctx, nil)
}

// CheckAuth restores a previously persisted session. Unreadable records and records
// naming a user the store no longer holds count as signed out.
func (s *IdentityService) CheckAuth(ctx context.Context) *models.SessionUser {
	var saved models.SessionUser
	found, err := kv.GetJSON(ctx, s.sessions, SessionKey, &saved)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error checking authentication")
		found = false
	}
	if found {
		if _, err := s.users.FindByID(saved.ID); err != nil {
			s.logger.Warn().Err(err).Msg("Persisted session names an unknown user")
			found = false
		}
	}

	if found {
		s.setSession(ctx, &saved)
	} else {
		s.setSession(ctx, nil)
	}
	return s.CurrentUser()
}

func (s *IdentityService) CurrentUser() *models.SessionUser {
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

func (s *IdentityService) IsAuthenticated() bool {
	return s.current != nil
}

func (s *IdentityService) IsAdmin() bool {
	return s.current.IsAdmin()
}
