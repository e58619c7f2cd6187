package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"energyforecast/internal/config"
	apierrors "energyforecast/internal/errors"
	"energyforecast/internal/forecast"
	"energyforecast/internal/infrastructure"
	customMiddleware "energyforecast/internal/middleware"
	"energyforecast/internal/services"
	handlers "energyforecast/internal/transport/http"
	ws "energyforecast/internal/websocket"
	"energyforecast/pkg/contracts"
)

// AppName is shown in startup logs
const AppName = "Energy Forecast"

// Application represents the main application container
type Application struct {
	Config          *config.Config
	Router          *chi.Mux
	Server          *http.Server
	Logger          *slog.Logger
	OTelProviders   *infrastructure.OTelProviders
	Metrics         *infrastructure.ForecastMetrics
	ErrorHandler    *apierrors.ErrorHandler
	Store           *forecast.Store
	WebSocketHub    *ws.Hub
	ForecastService *services.ForecastService
	HealthService   *services.HealthService
}

// NewApplication loads configuration, initializes the process logger and
// builds the application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires every component around cfg
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version))

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, contracts.Version, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateForecastMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Telemetry.Environment == "development"),
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices creates the store and the services around it
func (a *Application) initializeServices() {
	a.Store = forecast.NewStore()
	a.WebSocketHub = ws.NewHub(a.Logger)
	a.ForecastService = services.NewForecastService(
		a.Store,
		a.WebSocketHub,
		a.OTelProviders.Tracer,
		a.Metrics,
		a.Logger,
	)
	a.HealthService = services.NewHealthService(a.ForecastService, a.WebSocketHub, a.Logger)
}

// setupRouter builds the HTTP routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	// Order: RequestID → RealIP → OTel → Logger → Recoverer → Timeout
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	// The upgrade needs the raw connection, so /ws skips the wrapping middleware
	r.Get("/ws", ws.Handler(a.WebSocketHub, a.Config.WebSocket, a.Config.Security.AllowedOrigins, a.Logger))

	r.Method(http.MethodGet, "/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.ErrorHandler))

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(apierrors.RecoveryMiddleware(a.ErrorHandler))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.corsConfig()))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.ErrorHandler,
				a.Logger,
			).Handler)
		}

		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.ErrorHandler))

		a.setupHTMLRoutes(r)
		a.setupAPIRoutes(r)
	})

	a.Router = r
}

// setupHTMLRoutes serves the upload form
func (a *Application) setupHTMLRoutes(r chi.Router) {
	pages := handlers.NewPageHandler(a.ForecastService, a.Config.Upload.FormField, a.Logger, a.ErrorHandler)
	limit := customMiddleware.MaxBodySize(a.Config.Upload.MaxBytes)

	r.Get("/", pages.Index)
	r.With(limit).Post("/upload", pages.Upload)
	r.Post("/predict", pages.Predict)
}

// setupAPIRoutes configures the JSON endpoints under /api
func (a *Application) setupAPIRoutes(r chi.Router) {
	api := chi.NewRouter()
	api.NotFound(a.ErrorHandler.NotFound)
	api.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)
	api.Use(customMiddleware.JSONContent)

	health := handlers.NewHealthHandler(a.HealthService, a.Logger)
	api.Get("/health", health.HealthCheck)
	api.Get("/health/live", health.LivenessCheck)
	api.Get("/health/ready", health.ReadinessCheck)
	api.Get("/version", health.Version)

	forecastHandler := handlers.NewForecastHandler(a.ForecastService, a.Config.Upload.FormField, a.Logger, a.ErrorHandler)
	api.With(customMiddleware.MaxBodySize(a.Config.Upload.MaxBytes)).Mount("/", forecastHandler.Routes())

	r.Mount("/api", api)
}

func (a *Application) corsConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"X-Requested-With",
		},
		ExposedHeaders: []string{
			customMiddleware.RequestIDHeader,
		},
		MaxAge: 300,
		Logger: a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.Address(),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run listens on the configured port and serves until ctx is cancelled or
// the process receives SIGINT or SIGTERM
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}

	return a.Serve(ctx, ln)
}

// Serve runs the hub and the HTTP server on ln until ctx is cancelled, then
// shuts both down
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.WebSocketHub.Run(gctx)
		return nil
	})

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "HTTP server listening",
			slog.String("address", ln.Addr().String()))
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")

	if err := infrastructure.CloseLogFile(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
