package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sindh-police/spims/internal/pims/domain"
	httpapi "github.com/sindh-police/spims/internal/pims/http"
	"github.com/sindh-police/spims/internal/pims/mail"
	"github.com/sindh-police/spims/internal/pims/service"
	"github.com/sindh-police/spims/internal/pims/store"
	"github.com/sindh-police/spims/internal/pims/store/drivers/sqlite"
	"github.com/sindh-police/spims/pkg/cryptox"
	"github.com/sindh-police/spims/pkg/jwtx"
	"github.com/sindh-police/spims/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the personnel management service with all its
// dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db     store.Store
	tokens *jwtx.HS256

	// Services
	authService      *service.AuthService
	userService      *service.UserService
	personnelService *service.PersonnelService
	crimeService     *service.CrimeService
	alertService     *service.AlertService
	activityService  *service.ActivityService
	recorder         *service.ActivityRecorder

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "pims",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	tokens, err := jwtx.NewHS256(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.tokens = tokens

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	// Start the background activity writer
	app.recorder.Start()

	app.logger.Info("pims service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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
	app.logger.Info("shutting down pims service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Drain the activity queue before closing the database
	app.recorder.Stop()

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("pims service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations. Transactions
// are opened immediate so registration's quota check serializes against
// concurrent writers.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	mailer := mail.NewResendMailer(app.cfg.ResendAPIKey, app.cfg.EmailFrom)

	app.authService = service.NewAuthService(
		app.db,
		app.tokens,
		domain.DefaultRolePolicies(),
		mailer,
		app.cfg.FrontendURL,
	)
	app.userService = service.NewUserService(app.db)
	app.personnelService = service.NewPersonnelService(app.db)
	app.crimeService = service.NewCrimeService(app.db)
	app.alertService = service.NewAlertService(app.db)
	app.activityService = service.NewActivityService(app.db)
	app.recorder = service.NewActivityRecorder(app.db)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.UserService = app.userService
	router.PersonnelService = app.personnelService
	router.CrimeService = app.crimeService
	router.AlertService = app.alertService
	router.ActivityService = app.activityService
	router.Recorder = app.recorder
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
