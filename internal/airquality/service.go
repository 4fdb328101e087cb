package airquality

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aircast/aircast/internal/history"
	"github.com/aircast/aircast/internal/station"
)

// Provider defines the interface for air quality measurement providers.
type Provider interface {
	// NearbyMeasurements fetches raw measurements around a coordinate.
	NearbyMeasurements(ctx context.Context, lat, lon float64, radiusMeters, limit int) ([]station.Measurement, error)

	// History fetches raw PM2.5 readings for a single station.
	History(ctx context.Context, q HistoryQuery) ([]history.RawPoint, error)
}

// ServiceConfig holds configuration for the air quality service.
type ServiceConfig struct {
	// Provider is the air quality data provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache nearby results per coordinate cell
	// (default: 5 minutes).
	CacheTTL time.Duration

	// StaleIfErrorTTL allows serving stale data on provider errors
	// (default: 30 minutes).
	StaleIfErrorTTL time.Duration

	// RadiusMeters is the nearby search radius (default: DefaultRadiusMeters).
	RadiusMeters int

	// NearbyLimit caps raw measurements per nearby request
	// (default: DefaultNearbyLimit).
	NearbyLimit int
}

// Service provides aggregated nearby stations and station history with
// per-cell caching.
type Service struct {
	provider        Provider
	logger          zerolog.Logger
	cacheTTL        time.Duration
	staleIfErrorTTL time.Duration
	radiusMeters    int
	nearbyLimit     int

	mu    sync.RWMutex
	cells map[string]*cellEntry
}

type cellEntry struct {
	summaries []station.Summary
	fetchedAt time.Time
	expiresAt time.Time
}

// NewService creates a new air quality service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	staleIfErrorTTL := cfg.StaleIfErrorTTL
	if staleIfErrorTTL == 0 {
		staleIfErrorTTL = 30 * time.Minute
	}

	radius := cfg.RadiusMeters
	if radius == 0 {
		radius = DefaultRadiusMeters
	}

	limit := cfg.NearbyLimit
	if limit == 0 {
		limit = DefaultNearbyLimit
	}

	return &Service{
		provider:        cfg.Provider,
		logger:          cfg.Logger,
		cacheTTL:        cacheTTL,
		staleIfErrorTTL: staleIfErrorTTL,
		radiusMeters:    radius,
		nearbyLimit:     limit,
		cells:           make(map[string]*cellEntry),
	}
}

// Nearby returns aggregated station summaries around a coordinate. An empty
// non-nil slice means the provider answered but no stations are in range;
// ErrProviderUnavailable means the upstream could not be reached and no
// usable stale data exists.
func (s *Service) Nearby(ctx context.Context, lat, lon float64) ([]station.Summary, error) {
	if !ValidCoordinates(lat, lon) {
		return nil, fmt.Errorf("%w: %v,%v", ErrInvalidCoordinates, lat, lon)
	}

	key := cellKey(lat, lon)

	s.mu.RLock()
	entry, ok := s.cells[key]
	if ok && time.Now().Before(entry.expiresAt) {
		summaries := entry.summaries
		s.mu.RUnlock()
		return summaries, nil
	}
	s.mu.RUnlock()

	return s.refreshCell(ctx, key, lat, lon)
}

// History returns the normalized PM2.5 time series for a station, most
// recent first.
func (s *Service) History(ctx context.Context, q HistoryQuery) ([]history.Point, error) {
	if !q.Valid() {
		return nil, ErrInvalidQuery
	}
	if q.HasCoords && !ValidCoordinates(q.Latitude, q.Longitude) {
		return nil, fmt.Errorf("%w: %v,%v", ErrInvalidCoordinates, q.Latitude, q.Longitude)
	}
	if q.Limit <= 0 {
		q.Limit = DefaultHistoryLimit
	}

	raw, err := s.provider.History(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).Str("location", q.Location).Msg("history fetch failed")
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	return history.Normalize(raw), nil
}

// InvalidateCache clears all cached nearby results.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells = make(map[string]*cellEntry)
}

// refreshCell fetches fresh data for one coordinate cell.
func (s *Service) refreshCell(ctx context.Context, key string, lat, lon float64) ([]station.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check: another goroutine might have refreshed while we waited.
	if entry, ok := s.cells[key]; ok && time.Now().Before(entry.expiresAt) {
		return entry.summaries, nil
	}

	s.logger.Debug().Str("cell", key).Msg("refreshing nearby air quality")

	raw, err := s.provider.NearbyMeasurements(ctx, lat, lon, s.radiusMeters, s.nearbyLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("cell", key).Msg("failed to fetch nearby measurements")

		if entry, ok := s.cells[key]; ok && time.Now().Before(entry.fetchedAt.Add(s.staleIfErrorTTL)) {
			s.logger.Warn().
				Str("cell", key).
				Time("fetched_at", entry.fetchedAt).
				Msg("serving stale air quality data due to provider error")
			return entry.summaries, nil
		}

		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	summaries := station.Aggregate(raw)
	if summaries == nil {
		summaries = []station.Summary{}
	}

	now := time.Now()
	s.cells[key] = &cellEntry{
		summaries: summaries,
		fetchedAt: now,
		expiresAt: now.Add(s.cacheTTL),
	}

	s.logger.Info().
		Str("cell", key).
		Int("stations", len(summaries)).
		Msg("nearby air quality refreshed")

	return summaries, nil
}

// cellKey buckets coordinates to ~1 km so nearby lookups from almost the
// same point share a cache entry.
func cellKey(lat, lon float64) string {
	return fmt.Sprintf("%.2f,%.2f", lat, lon)
}
