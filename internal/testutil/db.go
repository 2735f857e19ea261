// Package testutil provides helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/uptrace/bun"

	"github.com/redmonkez12/ledger-api/internal/config"
	"github.com/redmonkez12/ledger-api/internal/database"
)

// NewSQLiteDB returns a migrated in-memory database that is closed when the
// test finishes.
func NewSQLiteDB(t testing.TB) *bun.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    ":memory:",
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}
