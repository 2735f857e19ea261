package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Migrate applies the embedded schema migrations for the dialect of db.
func Migrate(ctx context.Context, db *bun.DB) error {
	var (
		gooseDialect goose.Dialect
		dir          string
	)
	switch db.Dialect().Name() {
	case dialect.PG:
		gooseDialect, dir = goose.DialectPostgres, "migrations/postgres"
	case dialect.SQLite:
		gooseDialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	default:
		return fmt.Errorf("no migrations for dialect %s", db.Dialect().Name())
	}

	fsys, err := fs.Sub(migrations, dir)
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(gooseDialect, db.DB, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
