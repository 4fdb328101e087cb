package bookmark

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ServiceConfig holds configuration for the bookmark service.
type ServiceConfig struct {
	// Repository is the durable storage backend.
	Repository Repository

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service maintains the ordered bookmark list. Every mutation is a whole-list
// read-modify-write; the mutex makes that a critical section so the
// "no duplicate id" invariant holds under concurrent callers.
type Service struct {
	repo   Repository
	logger zerolog.Logger

	mu sync.Mutex

	now func() time.Time
}

// NewService creates a new bookmark service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
		now:    time.Now,
	}
}

// List returns all bookmarks in saved order. Legacy bare-string entries are
// returned normalized as {id, station: nil}.
func (s *Service) List(ctx context.Context) ([]Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Add toggles a station bookmark. If the derived id is not in the list the
// snapshot is appended with a fresh BookmarkedAt stamp and added=true is
// returned. If the id already exists the entry is removed and added=false is
// returned, so re-adding doubles as the unbookmark path.
func (s *Service) Add(ctx context.Context, snap Snapshot) (string, bool, error) {
	id := IDFor(&snap)
	if id == "" {
		return "", false, fmt.Errorf("%w: snapshot has no identity", ErrBookmarkNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return "", false, err
	}

	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			if err := s.save(ctx, list); err != nil {
				return "", false, err
			}
			s.logger.Debug().Str("bookmark_id", id).Msg("bookmark toggled off")
			return id, false, nil
		}
	}

	snap.BookmarkedAt = s.now().UTC()
	list = append(list, Bookmark{ID: id, Station: &snap})
	if err := s.save(ctx, list); err != nil {
		return "", false, err
	}

	s.logger.Debug().Str("bookmark_id", id).Msg("bookmark added")
	return id, true, nil
}

// Remove deletes a bookmark by id. Returns ErrBookmarkNotFound when the id is
// not in the list.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range list {
		if list[i].ID == id {
			list = append(list[:i], list[i+1:]...)
			return s.save(ctx, list)
		}
	}

	return ErrBookmarkNotFound
}

// Clear removes all bookmarks.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Clear(ctx)
}

func (s *Service) load(ctx context.Context) ([]Bookmark, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if len(doc) == 0 {
		return []Bookmark{}, nil
	}

	var list []Bookmark
	if err := json.Unmarshal(doc, &list); err != nil {
		// A corrupt document is unrecoverable; treat it as empty rather than
		// wedging every bookmark operation.
		s.logger.Warn().Err(err).Msg("discarding unreadable bookmark document")
		return []Bookmark{}, nil
	}

	return list, nil
}

func (s *Service) save(ctx context.Context, list []Bookmark) error {
	doc, err := json.Marshal(list)
	if err != nil {
		return err
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
