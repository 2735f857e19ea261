package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
	DriverSQLite   = "sqlite"
)

// Supported session token formats
const (
	TokenFormatJWT    = "jwt"
	TokenFormatPaseto = "paseto"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"3000"`
	Env             string        `env:"APP_ENV" envDefault:"dev"` // dev or prod
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	TrustedOrigins  []string      `env:"TRUSTED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"dist"` // built SPA bundle
}

type DatabaseConfig struct {
	Driver       string `env:"DB_DRIVER" envDefault:"postgres"`
	URL          string `env:"DATABASE_URL"` // overrides the discrete settings below
	Host         string `env:"DB_HOST" envDefault:"localhost"`
	Port         string `env:"DB_PORT" envDefault:"5432"`
	User         string `env:"DB_USER" envDefault:"postgres"`
	Password     string `env:"DB_PASSWORD" envDefault:"postgres"`
	Name         string `env:"DB_NAME" envDefault:"ledger"`
	SSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
}

type AuthConfig struct {
	// Signing secret. Removed from the process environment once read.
	TokenSecret string        `env:"JWT_SECRET,required,notEmpty,unset"`
	TokenTTL    time.Duration `env:"JWT_EXPIRES_IN" envDefault:"1h"`
	TokenFormat string        `env:"AUTH_TOKEN_FORMAT" envDefault:"jwt"`
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverPgx, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be positive, got %s", c.Auth.TokenTTL)
	}

	switch c.Auth.TokenFormat {
	case TokenFormatJWT:
	case TokenFormatPaseto:
		// PASETO v4.local needs a raw 32 byte symmetric key
		if len(c.Auth.TokenSecret) != 32 {
			return fmt.Errorf("JWT_SECRET must be exactly 32 bytes for paseto tokens, got %d", len(c.Auth.TokenSecret))
		}
	default:
		return fmt.Errorf("unsupported AUTH_TOKEN_FORMAT %q", c.Auth.TokenFormat)
	}

	return nil
}

// DSN returns the data source name for the configured driver.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	if c.Driver == DriverSQLite {
		return "file:" + c.Name + ".db?_pragma=busy_timeout(5000)"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// IsDevelopment returns true if the environment is set to dev
func (c *ServerConfig) IsDevelopment() bool {
	return c.Env == "dev"
}

// LogValue keeps the signing secret out of structured logs.
func (a AuthConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("token_format", a.TokenFormat),
		slog.Duration("token_ttl", a.TokenTTL),
		slog.String("token_secret", "[redacted]"),
	)
}
