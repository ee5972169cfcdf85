package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/posts/internal/posts/http"
	"github.com/aussiebroadwan/posts/internal/posts/service"
	"github.com/aussiebroadwan/posts/internal/posts/store"
	"github.com/aussiebroadwan/posts/internal/posts/store/drivers/postgres"
	"github.com/aussiebroadwan/posts/internal/posts/store/drivers/sqlite"
	"github.com/aussiebroadwan/posts/pkg/authn"
	"github.com/aussiebroadwan/posts/pkg/cryptox"
	"github.com/aussiebroadwan/posts/pkg/jwtx"
	"github.com/aussiebroadwan/posts/pkg/secretx"
	"github.com/aussiebroadwan/posts/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// Application encapsulates the posts service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	secrets  *secretx.Provider
	hasher   *cryptox.Hasher
	sessions *jwtx.Sessions

	// Services
	userService *service.UserService
	postService *service.PostService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg:    cfg,
		logger: newLogger(cfg),
	}

	secrets, err := NewSecrets(cfg)
	if err != nil {
		return nil, err
	}
	app.secrets = secrets

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

func newLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "posts",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("posts service starting",
		"port", app.cfg.Port,
		"driver", app.cfg.DatabaseDriver,
		"hash_workers", app.cfg.HashWorkers,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down posts service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("posts service stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase() error {
	db, err := openStore(app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func openStore(cfg Config) (store.Store, error) {
	switch cfg.DatabaseDriver {
	case DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return postgres.NewStore(ctx, cfg.DatabaseURL)
	default:
		return sqlite.NewStore(cfg.DatabaseFile)
	}
}

// Migrate applies pending migrations and exits without serving.
func Migrate(cfg Config) error {
	if err := cfg.Validate(); err != nil && !errors.Is(err, ErrMissingJWTSecret) {
		return err
	}
	logger := newLogger(cfg)

	db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	logger.Info("database migrations applied successfully", "driver", cfg.DatabaseDriver)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.hasher = cryptox.NewHasher(
		app.secrets,
		cryptox.NewPool(app.cfg.HashWorkers),
		cryptox.WithTimeout(app.cfg.HashTimeout),
	)
	app.sessions = jwtx.NewSessions(app.secrets)

	app.userService = &service.UserService{
		Store:    app.db,
		Hasher:   app.hasher,
		Sessions: app.sessions,
	}
	app.postService = &service.PostService{Store: app.db}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		authn.New(app.sessions),
		BuildVersion,
		app.db,
		app.logger,
	)

	router.UserService = app.userService
	router.PostService = app.postService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
