// Package api provides the HTTP API for aircast.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/aircast/aircast/internal/api/handler"
	"github.com/aircast/aircast/internal/api/middleware"
	"github.com/aircast/aircast/internal/featureflags"
	"github.com/aircast/aircast/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	// DB is the storage backend checked by readiness and status endpoints.
	DB handler.Pinger

	// Registry reports provider circuit breaker health on the status
	// endpoint. Defaults to resilience.GlobalRegistry.
	Registry *resilience.Registry

	GeocodeService     handler.GeocodeService
	WeatherService     handler.WeatherService
	AirQualityService  handler.AirQualityService
	BookmarkService    handler.BookmarkService
	FeatureFlagService *featureflags.Service

	// Synthetic generates placeholder air quality data for fallback
	// responses. Optional.
	Synthetic handler.SyntheticSource
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "aircast-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// A nil *Service must not become a non-nil FlagChecker interface.
	var flagChecker handler.FlagChecker
	if cfg.FeatureFlagService != nil {
		flagChecker = cfg.FeatureFlagService
	}

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(handler.OpsHandlerConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		DB:        cfg.DB,
		Registry:  cfg.Registry,
	})
	searchHandler := handler.NewSearchHandler(cfg.GeocodeService)
	weatherHandler := handler.NewWeatherHandler(cfg.WeatherService)
	airQualityHandler := handler.NewAirQualityHandler(handler.AirQualityHandlerConfig{
		Service:   cfg.AirQualityService,
		Synthetic: cfg.Synthetic,
		Flags:     flagChecker,
	})
	clusterHandler := handler.NewClusterHandler(flagChecker)
	bookmarkHandler := handler.NewBookmarkHandler(cfg.BookmarkService)
	exportHandler := handler.NewExportHandler(cfg.BookmarkService, cfg.AirQualityService)
	featureFlagsHandler := handler.NewFeatureFlagsHandler(cfg.FeatureFlagService)

	// Create rate limit middleware for different endpoint categories
	adminRateLimit := middleware.RateLimitByIP(middleware.AdminRateLimit)         // 10 req/min
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// City search - standard rate limiting
		r.With(standardRateLimit).Get("/search", searchHandler.Search)

		// Weather endpoints - standard rate limiting
		r.Route("/weather", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/current", weatherHandler.GetCurrent)
			r.Get("/forecast", weatherHandler.GetForecast)
		})

		// Air quality endpoints
		r.Route("/air-quality", func(r chi.Router) {
			r.With(standardRateLimit).Get("/nearby", airQualityHandler.GetNearby)
			r.With(standardRateLimit).Get("/history", airQualityHandler.GetHistory)

			// CSV export and cluster aggregation are heavier - strict limits
			r.With(expensiveRateLimit).Get("/history/export.csv", exportHandler.ExportStationHistory)
			r.With(expensiveRateLimit).Post("/clusters:aggregate", clusterHandler.Aggregate)
		})

		// Bookmark endpoints
		r.Route("/bookmarks", func(r chi.Router) {
			r.With(expensiveRateLimit).Get("/export.csv", exportHandler.ExportBookmarks)

			r.Group(func(r chi.Router) {
				r.Use(standardRateLimit)
				r.Get("/", bookmarkHandler.ListBookmarks)
				r.Post("/", bookmarkHandler.ToggleBookmark)
				r.Delete("/", bookmarkHandler.ClearBookmarks)
				r.Delete("/{bookmarkId}", bookmarkHandler.RemoveBookmark)
			})
		})

		// Admin endpoints - for internal operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(adminRateLimit)

			// Feature flags management
			r.Route("/feature-flags", func(r chi.Router) {
				r.Get("/", featureFlagsHandler.ListFeatureFlags)
				r.Put("/", featureFlagsHandler.UpsertFeatureFlags)
				r.Post("/invalidate", featureFlagsHandler.InvalidateCache)
			})
		})
	})

	return r
}
