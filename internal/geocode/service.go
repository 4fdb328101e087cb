package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Provider defines the interface for geocoding providers.
type Provider interface {
	// Search resolves a free-text name to the best-matching place.
	// Returns ErrNotFound when nothing matches.
	Search(ctx context.Context, name string) (*Place, error)
}

// ServiceConfig holds configuration for the geocoding service.
type ServiceConfig struct {
	// Provider is the geocoding provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache resolved places (default: 24 hours).
	// City coordinates do not move.
	CacheTTL time.Duration
}

// Service resolves city names with caching. Results, including not-found
// outcomes, are cached by the normalized query string.
type Service struct {
	provider Provider
	logger   zerolog.Logger
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]*cachedPlace
}

type cachedPlace struct {
	place     *Place // nil means cached not-found
	expiresAt time.Time
}

// NewService creates a new geocoding service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
		cacheTTL: cacheTTL,
		cache:    make(map[string]*cachedPlace),
	}
}

// Search resolves a city name to coordinates.
func (s *Service) Search(ctx context.Context, name string) (*Place, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, ErrEmptyQuery
	}

	s.mu.RLock()
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		if cached.place == nil {
			return nil, ErrNotFound
		}
		return cached.place, nil
	}
	s.mu.RUnlock()

	place, err := s.provider.Search(ctx, name)
	switch {
	case err == nil:
		s.store(key, place)
		return place, nil
	case errors.Is(err, ErrNotFound):
		s.store(key, nil)
		return nil, ErrNotFound
	default:
		s.logger.Error().Err(err).Str("query", name).Msg("geocoding failed")
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
}

func (s *Service) store(key string, place *Place) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = &cachedPlace{
		place:     place,
		expiresAt: time.Now().Add(s.cacheTTL),
	}
}
