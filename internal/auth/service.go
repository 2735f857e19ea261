package auth

import (
	"context"
	"errors"
	"time"

	"github.com/samber/oops"

	"github.com/redmonkez12/ledger-api/internal/logging"
	"github.com/redmonkez12/ledger-api/internal/user"
)

var (
	ErrMissingFields      = errors.New("missing fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore is the credential store the service reads and writes.
// *user.Repository satisfies it.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	Create(ctx context.Context, name, email, passwordHash string) (*user.User, error)
}

// AuthResult is returned by Register and Login
type AuthResult struct {
	Token string      `json:"token"`
	User  user.Public `json:"user"`
}

// Service handles authentication business logic
type Service struct {
	users    UserStore
	hasher   PasswordHasher
	tokens   TokenService
	logger   *logging.Logger
	tokenTTL time.Duration
}

func NewService(
	users UserStore,
	hasher PasswordHasher,
	tokens TokenService,
	logger *logging.Logger,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger,
		tokenTTL: tokenTTL,
	}
}

// Register creates a user account and signs the new user in.
//
// The existence check and the insert are separate statements. Two concurrent
// registrations for one email can both pass the check; only a unique index on
// users.email stops the second insert.
func (s *Service) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, user.ErrDuplicateEmail
	case !errors.Is(err, user.ErrNotFound):
		return nil, oops.In("auth").Code("USER_LOOKUP_FAILED").Wrapf(err, "failed to look up user")
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, oops.In("auth").Code("PASSWORD_HASH_FAILED").Wrapf(err, "failed to hash password")
	}

	newUser, err := s.users.Create(ctx, name, email, passwordHash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			s.logger.Warn("duplicate email rejected by store after existence check", "email", email)
			return nil, user.ErrDuplicateEmail
		}
		return nil, oops.In("auth").Code("USER_CREATE_FAILED").Wrapf(err, "failed to create user")
	}

	return s.issue(newUser)
}

// Login verifies credentials and returns a fresh session token.
// Unknown email and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	found, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, oops.In("auth").Code("USER_LOOKUP_FAILED").Wrapf(err, "failed to look up user")
	}

	ok, err := s.hasher.Compare(found.PasswordHash, password)
	if err != nil {
		return nil, oops.In("auth").Code("PASSWORD_COMPARE_FAILED").With("user_id", found.ID).Wrapf(err, "failed to verify password")
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return s.issue(found)
}

// CurrentUser returns the public view of an authenticated user.
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*user.Public, error) {
	found, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, oops.In("auth").Code("USER_LOOKUP_FAILED").With("user_id", userID).Wrapf(err, "failed to load user")
	}

	public := found.Public()
	return &public, nil
}

func (s *Service) issue(u *user.User) (*AuthResult, error) {
	token, err := s.tokens.CreateToken(u.ID, u.Email, s.tokenTTL)
	if err != nil {
		return nil, oops.In("auth").Code("TOKEN_CREATE_FAILED").With("user_id", u.ID).Wrapf(err, "failed to create token")
	}

	return &AuthResult{Token: token, User: u.Public()}, nil
}
