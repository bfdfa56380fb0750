package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const clientTokenTTL = 365 * 24 * time.Hour

// TokenService signs client tokens. A client token names the key-value namespace
// that plays the role of one browser's local storage; it carries no identity.
type TokenService struct {
	secretKey []byte
	logger    zerolog.Logger
	now       func() time.Time
}

type ClientClaims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, logger zerolog.Logger) *TokenService {
	if secret == "" {
		secret = "default-secret-key-change-in-production"
		logger.Warn().Msg("JWT_SECRET not set, using default key")
	}

	return &TokenService{
		secretKey: []byte(secret),
		logger:    logger,
		now:       time.Now,
	}
}

func NewClientID() string {
	return uuid.NewString()
}

func (s *TokenService) GenerateClientToken(clientID string) (string, error) {
	now := s.now()
	claims := &ClientClaims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID,
			ExpiresAt: jwt.NewNumericDate(now.Add(clientTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error generating client token")
		return "", err
	}

	return tokenString, nil
}

func (s *TokenService) ValidateClientToken(tokenString string) (string, error) {
	claims := &ClientClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	})
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}

	if !token.Valid || claims.ClientID == "" {
		return "", ErrInvalidToken
	}

	return claims.ClientID, nil
}
