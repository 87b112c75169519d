package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpapi "github.com/aussiebroadwan/localserve/internal/identity/http"
	"github.com/aussiebroadwan/localserve/internal/identity/metrics"
	"github.com/aussiebroadwan/localserve/internal/identity/notify"
	"github.com/aussiebroadwan/localserve/internal/identity/service"
	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/internal/identity/store/drivers/mongo"
	"github.com/aussiebroadwan/localserve/internal/identity/store/drivers/postgres"
	"github.com/aussiebroadwan/localserve/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/localserve/pkg/cryptox"
	"github.com/aussiebroadwan/localserve/pkg/httpx"
	"github.com/aussiebroadwan/localserve/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// BuildVersion is overridden at build time with
// -ldflags "-X github.com/aussiebroadwan/localserve/internal/identity/app.BuildVersion=..."
var BuildVersion = "v0.1.0"

// Application encapsulates the identity service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	notifier notify.Notifier
	metrics  *metrics.Metrics

	// Services
	identityService     *service.IdentityService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "identity-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Redact:  []string{"password", "smtp_password"},
		}),
	}

	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initDatabase(context.Background()); err != nil {
		return nil, err
	}

	if err := app.initNotifier(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initMetrics()

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run(ctx context.Context) error {
	app.housekeepingService.Start()

	app.logger.Info("identity service starting",
		slog.Int("port", app.cfg.Port),
		slog.String("version", BuildVersion),
		slog.String("store", app.cfg.StoreDriver),
		slog.String("notifier", app.cfg.Notifier),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		app.logger.Info("shutdown requested", slog.Any("cause", context.Cause(ctx)))

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down identity service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slog.Any("error", err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slog.Any("error", err))
		}
	}

	app.housekeepingService.Stop()

	// Let in-flight welcome messages finish before the store goes away
	app.identityService.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slog.Any("error", err))
		return err
	}

	app.logger.Info("identity service stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	db, err := openStore(ctx, app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", slog.String("driver", app.cfg.StoreDriver))
	return nil
}

func openStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case DriverPostgres:
		return postgres.NewStore(ctx, cfg.DatabaseURL)
	case DriverMongo:
		return mongo.NewStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case DriverSQLite:
		return sqlite.NewStore(fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", cfg.DatabaseFile))
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (app *Application) initNotifier() error {
	switch app.cfg.Notifier {
	case NotifierSMTP:
		n, err := notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.SMTPFrom,
			CodeTTL:  app.cfg.OTPTTL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize smtp notifier: %w", err)
		}
		app.notifier = n
	default:
		app.logger.Warn("codes are written to the log, do not use this notifier outside development")
		app.notifier = notify.LogNotifier{}
	}
	return nil
}

func (app *Application) initMetrics() {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(reg)
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	codes, err := cryptox.NewOTPGenerator(otp.Digits(app.cfg.OTPDigits))
	if err != nil {
		return err
	}

	app.identityService = &service.IdentityService{
		Credentials:   &service.CredentialStore{Store: app.db},
		Codes:         codes,
		Notifier:      app.notifier,
		Metrics:       app.metrics,
		OTPTTL:        app.cfg.OTPTTL,
		NotifyTimeout: app.cfg.NotifyTimeout,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.OTPRetention,
	)
	app.housekeepingService.Metrics = app.metrics
	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.cfg.APIBasePath,
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
		app.cfg.CORSAllowedOrigins,
	)

	router.IdentityService = app.identityService
	router.SignupLimit = httpx.ParseRateLimitFromEnv("SIGNUP", httpx.ModerateLimit)
	router.LoginLimit = httpx.ParseRateLimitFromEnv("LOGIN", httpx.StrictLimit)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
