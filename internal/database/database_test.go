package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/ledger-api/internal/config"
	"github.com/redmonkez12/ledger-api/internal/database"
	"github.com/redmonkez12/ledger-api/internal/testutil"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open(context.Background(), config.DatabaseConfig{Driver: "mysql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := testutil.NewSQLiteDB(t)

	require.NoError(t, database.Migrate(context.Background(), db))
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()

	first := &database.User{Name: "Alice", Email: "a@x.com", PasswordHash: "h"}
	_, err := db.NewInsert().Model(first).Exec(ctx)
	require.NoError(t, err)

	second := &database.User{Name: "Bob", Email: "a@x.com", PasswordHash: "h"}
	_, err = db.NewInsert().Model(second).Exec(ctx)
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestIsUniqueViolation_OtherErrors(t *testing.T) {
	assert.False(t, database.IsUniqueViolation(nil))
	assert.False(t, database.IsUniqueViolation(errors.New("duplicate key value violates unique constraint")))
}
