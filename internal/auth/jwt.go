package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtClaims is the wire form: {"id", "email", "iat", "exp"}.
type jwtClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256-signed JWTs.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

func NewJWTService(secret []byte, opts ...TokenOption) (*JWTService, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret must not be empty")
	}

	o := buildTokenOptions(opts)
	return &JWTService{secret: secret, now: o.now}, nil
}

// CreateToken signs a token for the user that expires duration from now.
// The output only depends on its inputs, the secret and the clock.
func (s *JWTService) CreateToken(userID int64, email string, duration time.Duration) (string, error) {
	now := s.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken checks the signature and expiry of tokenStr and returns its claims.
// A token is rejected once the clock reaches its expiry.
func (s *JWTService) VerifyToken(tokenStr string) (*TokenClaims, error) {
	claims := &jwtClaims{}

	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	out := &TokenClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}

	return out, nil
}
