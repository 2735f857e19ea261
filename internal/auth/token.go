package auth

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is an ErrInvalidToken whose only fault is its age.
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrInvalidToken)
)

// TokenService defines the interface for session token creation and validation.
// Implementations include JWTService (HS256) and PasetoService (PASETO v4.local).
type TokenService interface {
	CreateToken(userID int64, email string, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// TokenClaims represents the claims carried by a session token
type TokenClaims struct {
	UserID    int64     `json:"id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

// TokenOption configures a TokenService implementation.
type TokenOption func(*tokenOptions)

type tokenOptions struct {
	now func() time.Time
}

// WithClock replaces the wall clock used to stamp and check expiry.
func WithClock(now func() time.Time) TokenOption {
	return func(o *tokenOptions) {
		o.now = now
	}
}

func buildTokenOptions(opts []TokenOption) tokenOptions {
	o := tokenOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
