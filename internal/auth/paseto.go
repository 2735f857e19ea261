package auth

import (
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
)

// PasetoService handles PASETO token creation and validation.
// Uses v4.local (symmetric encryption with XChaCha20-Poly1305), so unlike
// JWTService the claims are not readable by clients and every token carries
// a random nonce.
type PasetoService struct {
	symmetricKey paseto.V4SymmetricKey
	now          func() time.Time
}

func NewPasetoService(symmetricKey []byte, opts ...TokenOption) (*PasetoService, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("symmetric key must be exactly 32 bytes, got %d", len(symmetricKey))
	}

	key, err := paseto.V4SymmetricKeyFromBytes(symmetricKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create symmetric key: %w", err)
	}

	o := buildTokenOptions(opts)
	return &PasetoService{symmetricKey: key, now: o.now}, nil
}

// CreateToken generates a new PASETO v4.local token with the given claims and duration
func (s *PasetoService) CreateToken(userID int64, email string, duration time.Duration) (string, error) {
	now := s.now()

	token := paseto.NewToken()
	token.SetIssuedAt(now)
	token.SetExpiration(now.Add(duration))
	token.SetString("email", email)
	if err := token.Set("id", userID); err != nil {
		return "", fmt.Errorf("failed to set user id claim: %w", err)
	}

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// VerifyToken decrypts a PASETO v4.local token and returns the claims.
// Expiry is checked against the service clock rather than the parser's.
func (s *PasetoService) VerifyToken(tokenStr string) (*TokenClaims, error) {
	parser := paseto.NewParserWithoutExpiryCheck()

	token, err := parser.ParseV4Local(s.symmetricKey, tokenStr, nil)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var userID int64
	if err := token.Get("id", &userID); err != nil {
		return nil, ErrInvalidToken
	}

	email, err := token.GetString("email")
	if err != nil {
		return nil, ErrInvalidToken
	}

	issuedAt, err := token.GetIssuedAt()
	if err != nil {
		return nil, ErrInvalidToken
	}

	expiresAt, err := token.GetExpiration()
	if err != nil {
		return nil, ErrInvalidToken
	}

	if !s.now().Before(expiresAt) {
		return nil, ErrExpiredToken
	}

	return &TokenClaims{
		UserID:    userID,
		Email:     email,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}
