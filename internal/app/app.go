// Package app wires configuration, logging, services, and the HTTP router
// into a runnable server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"wealthgap/internal/config"
	"wealthgap/internal/errors"
	"wealthgap/internal/infrastructure"
	customMiddleware "wealthgap/internal/middleware"
	"wealthgap/internal/services"
	handlers "wealthgap/internal/transport/http"
	"wealthgap/internal/validation"
)

const (
	Version = "1.0.0"
	AppName = "Wealth Gap Analytics"
)

// BuildTime is set at compile time via -ldflags.
var BuildTime = ""

// Application represents the main application container
type Application struct {
	Config    *config.Config
	Router    *chi.Mux
	Server    *http.Server
	Logger    *slog.Logger
	Metrics   *infrastructure.Metrics
	Dashboard *services.DashboardService
	Health    *services.HealthService
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", Version))

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: infrastructure.NewMetrics(),
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() {
	a.Dashboard = services.NewDashboardService(a.Config.Upload, a.Metrics, a.Logger)
	a.Health = services.NewHealthService(Version, BuildTime, a.Dashboard, a.Logger)
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Middleware order: RequestID → RealIP → Logger → Recoverer → the rest.
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.RequestMetrics(a.Metrics))

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(a.getCORSConfig()))
	}
	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := errors.NewErrorHandler(a.Logger, false)

	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.Health)
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.GetVersion)

		uploads := validation.NewUploadValidator(
			a.Logger,
			a.Config.Upload.MaxSizeBytes,
			a.Config.Upload.AllowedExtensions,
		)
		dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, uploads, a.Logger, errorHandler)
		r.Mount("/datasets", dashboardHandler.Routes())
	})

	// Scrape endpoint stays outside the API timeout group.
	r.Handle("/metrics", handlers.MetricsHandler(a.Metrics))

	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	a.Router = r
}

// getCORSConfig returns the CORS configuration
func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"X-Requested-With",
		},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
		Logger:           a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.ListenAddr(),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run serves until the context is cancelled or an interrupt arrives, then
// shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(ctx, "HTTP server listening",
			slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("Shutting down application")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		infrastructure.CloseLogFile()
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.Logger.Info("Application shutdown complete")
	return nil
}
