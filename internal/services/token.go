package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/folio-labs/folio-backend/internal/apperr"
)

// TokenService issues and validates stateless HS256 bearer tokens. There is
// no revocation list; a leaked token stays valid until it expires.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service with the process-wide signing key
// and token lifetime.
func NewTokenService(secret string, ttlMinutes int) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

// Issue signs a token carrying the subject and an absolute expiry.
func (s *TokenService) Issue(subject string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(s.ttl).Unix(),
	})
	return token.SignedString(s.secret)
}

// Validate checks signature and expiry and returns the embedded subject.
// Any failure mode (bad signature, malformed payload, missing subject,
// expired) surfaces as ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperr.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperr.ErrInvalidToken
	}
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", apperr.ErrInvalidToken
	}
	return subject, nil
}
