package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/redmonkez12/ledger-api/docs" // Swagger docs (generated)
	"github.com/redmonkez12/ledger-api/internal/auth"
	"github.com/redmonkez12/ledger-api/internal/config"
	"github.com/redmonkez12/ledger-api/internal/database"
	httpServer "github.com/redmonkez12/ledger-api/internal/http"
	"github.com/redmonkez12/ledger-api/internal/logging"
	"github.com/redmonkez12/ledger-api/internal/metrics"
	"github.com/redmonkez12/ledger-api/internal/transaction"
	"github.com/redmonkez12/ledger-api/internal/user"
)

// @title           Ledger API
// @version         1.0
// @description     Transaction ledger with register/login authentication.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"auth", cfg.Auth,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	userRepo := user.NewRepository(db)
	transactionRepo := transaction.NewRepository(db)

	// Initialize token service
	tokenService, err := newTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	// Initialize services
	authService := auth.NewService(
		userRepo,
		auth.NewBcryptHasher(auth.DefaultBcryptCost),
		tokenService,
		logger,
		cfg.Auth.TokenTTL,
	)
	transactionService := transaction.NewService(transactionRepo)

	// Initialize HTTP handlers
	m := metrics.New()
	router := httpServer.NewRouter(cfg, httpServer.Handlers{
		Auth:           auth.NewHandler(authService, m),
		AuthMiddleware: auth.NewMiddleware(tokenService),
		Transactions:   transaction.NewHandler(transactionService),
		Metrics:        m,
		Static:         httpServer.SPAHandler(cfg.Server.StaticDir),
	}, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("received shutdown signal")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// newTokenService builds the token codec selected by AUTH_TOKEN_FORMAT.
func newTokenService(cfg config.AuthConfig) (auth.TokenService, error) {
	switch cfg.TokenFormat {
	case config.TokenFormatPaseto:
		return auth.NewPasetoService([]byte(cfg.TokenSecret))
	default:
		return auth.NewJWTService([]byte(cfg.TokenSecret))
	}
}
