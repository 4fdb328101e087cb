// Package main provides the entrypoint for the aircast API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aircast/aircast/internal/airquality"
	"github.com/aircast/aircast/internal/airquality/openaq"
	"github.com/aircast/aircast/internal/api"
	"github.com/aircast/aircast/internal/api/middleware"
	"github.com/aircast/aircast/internal/bookmark"
	"github.com/aircast/aircast/internal/database"
	"github.com/aircast/aircast/internal/featureflags"
	"github.com/aircast/aircast/internal/geocode"
	geocodeclient "github.com/aircast/aircast/internal/geocode/openmeteo"
	"github.com/aircast/aircast/internal/provider/resilience"
	"github.com/aircast/aircast/internal/synthetic"
	"github.com/aircast/aircast/internal/telemetry"
	"github.com/aircast/aircast/internal/weather"
	weatherclient "github.com/aircast/aircast/internal/weather/openmeteo"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "aircast-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting aircast API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Build resilient HTTP clients up front and register them so the status
	// endpoint can report circuit breaker health per provider.
	openaqHTTP := resilience.NewClient(resilience.ClientConfig{
		Name:    openaq.ProviderName,
		Timeout: 10 * time.Second,
	})
	resilience.GlobalRegistry.Register(openaq.ProviderName, openaqHTTP)

	openMeteoHTTP := resilience.NewClient(resilience.ClientConfig{
		Name:    weatherclient.ProviderName,
		Timeout: 10 * time.Second,
	})
	resilience.GlobalRegistry.Register(weatherclient.ProviderName, openMeteoHTTP)

	geocodeHTTP := resilience.NewClient(resilience.ClientConfig{
		Name:    geocodeclient.ProviderName,
		Timeout: 10 * time.Second,
	})
	resilience.GlobalRegistry.Register(geocodeclient.ProviderName, geocodeHTTP)

	// Air quality service backed by OpenAQ
	airQualityService := airquality.NewService(airquality.ServiceConfig{
		Provider: openaq.NewClient(openaq.ClientConfig{
			APIKey:     os.Getenv("OPENAQ_API_KEY"),
			HTTPClient: openaqHTTP,
		}),
		Logger: log,
	})
	if os.Getenv("OPENAQ_API_KEY") == "" {
		log.Warn().Msg("OPENAQ_API_KEY not set - using unauthenticated rate limits")
	}
	log.Info().Msg("air quality service initialized")

	// Weather service backed by Open-Meteo
	weatherService := weather.NewService(weather.ServiceConfig{
		Provider: weatherclient.NewClient(weatherclient.ClientConfig{
			HTTPClient: openMeteoHTTP,
		}),
		Logger: log,
	})
	log.Info().Msg("weather service initialized")

	// Geocoding service backed by the Open-Meteo geocoding API
	geocodeService := geocode.NewService(geocode.ServiceConfig{
		Provider: geocodeclient.NewClient(geocodeclient.ClientConfig{
			HTTPClient: geocodeHTTP,
		}),
		Logger: log,
	})
	log.Info().Msg("geocode service initialized")

	// Bookmark service with Postgres persistence
	bookmarkService := bookmark.NewService(bookmark.ServiceConfig{
		Repository: bookmark.NewPostgresRepository(pool),
		Logger:     log,
	})
	log.Info().Msg("bookmark service initialized")

	// Feature flags repository and service
	ffRepo := featureflags.NewPostgresRepository(pool)
	ffService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: ffRepo,
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})
	log.Info().Msg("feature flags service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            metrics,
		DB:                 pool,
		GeocodeService:     geocodeService,
		WeatherService:     weatherService,
		AirQualityService:  airQualityService,
		BookmarkService:    bookmarkService,
		FeatureFlagService: ffService,
		Synthetic:          synthetic.New(time.Now().UnixNano()),
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
