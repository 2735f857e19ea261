package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "github.com/lib/pq"              // registers the "postgres" driver
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/redmonkez12/ledger-api/internal/config"
)

// Open connects to the configured database, verifies the connection and
// returns a Bun DB instance with the matching dialect.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*bun.DB, error) {
	var dialect schema.Dialect
	switch cfg.Driver {
	case config.DriverPostgres, config.DriverPgx:
		dialect = pgdialect.New()
	case config.DriverSQLite:
		dialect = sqlitedialect.New()
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	sqlDB, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// A single connection keeps in-memory databases alive and serializes writers.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	// Verify connection
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return bun.NewDB(sqlDB, dialect), nil
}
