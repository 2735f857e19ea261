package user_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/ledger-api/internal/testutil"
	"github.com/redmonkez12/ledger-api/internal/user"
)

func TestRepository_CreateAndGet(t *testing.T) {
	repo := user.NewRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, "Alice", "a@x.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, "a@x.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)
}

func TestRepository_IDsAreSequential(t *testing.T) {
	repo := user.NewRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, "Alice", "a@x.com", "hash")
	require.NoError(t, err)
	second, err := repo.Create(ctx, "Bob", "b@x.com", "hash")
	require.NoError(t, err)

	assert.Greater(t, second.ID, first.ID)
}

func TestRepository_DuplicateEmail(t *testing.T) {
	repo := user.NewRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "Alice", "a@x.com", "hash")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "Bob", "a@x.com", "other")
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestRepository_EmailIsCaseSensitiveAsStored(t *testing.T) {
	repo := user.NewRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "Alice", "a@x.com", "hash")
	require.NoError(t, err)

	_, err = repo.GetByEmail(ctx, "A@X.COM")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestRepository_NotFound(t *testing.T) {
	repo := user.NewRepository(testutil.NewSQLiteDB(t))
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUser_JSONOmitsPasswordHash(t *testing.T) {
	u := &user.User{ID: 1, Name: "Alice", Email: "a@x.com", PasswordHash: "secret-hash"}

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-hash")

	pub, err := json.Marshal(u.Public())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Alice","email":"a@x.com"}`, string(pub))
}
