package auth

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/redmonkez12/ledger-api/internal/logging"
	"github.com/redmonkez12/ledger-api/internal/user"
)

// memoryStore is an in-memory UserStore. Setting enforceUnique makes Create
// reject duplicate emails the way a unique index would.
type memoryStore struct {
	users         []*user.User
	enforceUnique bool
	hideOnLookup  bool
	err           error
}

func (s *memoryStore) GetByEmail(_ context.Context, email string) (*user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.hideOnLookup {
		return nil, user.ErrNotFound
	}
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *memoryStore) GetByID(_ context.Context, id int64) (*user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *memoryStore) Create(_ context.Context, name, email, passwordHash string) (*user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.enforceUnique {
		for _, u := range s.users {
			if u.Email == email {
				return nil, user.ErrDuplicateEmail
			}
		}
	}
	u := &user.User{
		ID:           int64(len(s.users) + 1),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users = append(s.users, u)
	return u, nil
}

type serviceFixture struct {
	service *Service
	store   *memoryStore
	tokens  *JWTService
	logs    *bytes.Buffer
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	now := func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	tokens, err := NewJWTService(testSecret, WithClock(now))
	require.NoError(t, err)

	store := &memoryStore{}
	logs := &bytes.Buffer{}
	logger := logging.New(slog.New(slog.NewTextHandler(logs, nil)))

	return &serviceFixture{
		service: NewService(store, NewBcryptHasher(bcrypt.MinCost), tokens, logger, time.Hour),
		store:   store,
		tokens:  tokens,
		logs:    logs,
	}
}

func TestService_Register(t *testing.T) {
	f := newServiceFixture(t)

	result, err := f.service.Register(context.Background(), "A", "a@x.io", "pw1")
	require.NoError(t, err)

	assert.Equal(t, user.Public{ID: 1, Name: "A", Email: "a@x.io"}, result.User)

	claims, err := f.tokens.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
	assert.Equal(t, "a@x.io", claims.Email)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt))
}

func TestService_Register_StoresHashNotPlaintext(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Register(context.Background(), "A", "a@x.io", "pw1")
	require.NoError(t, err)

	require.Len(t, f.store.users, 1)
	stored := f.store.users[0].PasswordHash
	assert.NotEqual(t, "pw1", stored)
	assert.NotContains(t, stored, "pw1")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("pw1")))
}

func TestService_Register_MissingFields(t *testing.T) {
	tests := []struct {
		name, userName, email, password string
	}{
		{"missing name", "", "a@x.io", "pw1"},
		{"missing email", "A", "", "pw1"},
		{"missing password", "A", "a@x.io", ""},
		{"all missing", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServiceFixture(t)

			_, err := f.service.Register(context.Background(), tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrMissingFields)
			assert.Empty(t, f.store.users)
		})
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	first, err := f.service.Register(ctx, "Alice", "a@x.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, user.Public{ID: 1, Name: "Alice", Email: "a@x.com"}, first.User)

	_, err = f.service.Register(ctx, "Bob", "a@x.com", "pw456")
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
	assert.Len(t, f.store.users, 1)

	claims, err := f.tokens.VerifyToken(first.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestService_Register_DuplicateRejectedByStore(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "A", "a@x.io", "pw1")
	require.NoError(t, err)

	// Simulate a concurrent registration that passed the existence check.
	f.store.hideOnLookup = true
	f.store.enforceUnique = true

	_, err = f.service.Register(ctx, "B", "a@x.io", "pw2")
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
	assert.Contains(t, f.logs.String(), "duplicate email rejected by store")
}

func TestService_Register_PasswordTooLong(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Register(context.Background(), "A", "a@x.io", strings.Repeat("p", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Empty(t, f.store.users)
}

func TestService_Register_StoreFailure(t *testing.T) {
	f := newServiceFixture(t)
	f.store.err = errors.New("connection refused")

	_, err := f.service.Register(context.Background(), "A", "a@x.io", "pw1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, user.ErrDuplicateEmail)
	assert.NotErrorIs(t, err, ErrMissingFields)
}

func TestService_Login(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "A", "a@x.io", "pw1")
	require.NoError(t, err)

	result, err := f.service.Login(ctx, "a@x.io", "pw1")
	require.NoError(t, err)
	assert.Equal(t, user.Public{ID: 1, Name: "A", Email: "a@x.io"}, result.User)

	claims, err := f.tokens.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
}

func TestService_Login_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "A", "a@x.io", "pw1")
	require.NoError(t, err)

	_, wrongPassword := f.service.Login(ctx, "a@x.io", "nope")
	_, unknownEmail := f.service.Login(ctx, "b@x.io", "pw1")

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestService_Login_EmailIsCaseSensitive(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "A", "a@x.io", "pw1")
	require.NoError(t, err)

	_, err = f.service.Login(ctx, "A@X.IO", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_MissingFields(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Login(context.Background(), "", "pw1")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = f.service.Login(context.Background(), "a@x.io", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestService_Login_CorruptHash(t *testing.T) {
	f := newServiceFixture(t)
	f.store.users = append(f.store.users, &user.User{ID: 1, Name: "A", Email: "a@x.io", PasswordHash: "not-bcrypt"})

	_, err := f.service.Login(context.Background(), "a@x.io", "pw1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_CurrentUser(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, "A", "a@x.io", "pw1")
	require.NoError(t, err)

	current, err := f.service.CurrentUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &user.Public{ID: 1, Name: "A", Email: "a@x.io"}, current)

	_, err = f.service.CurrentUser(ctx, 99)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw1")
	require.NoError(t, err)

	ok, err := h.Compare(hash, "pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(hash, "pw2")
	require.NoError(t, err)
	assert.False(t, ok)

	other, err := h.Hash("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes are salted")

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
