package bookmark

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu  sync.RWMutex
	doc []byte
}

// NewInMemoryRepository creates a new in-memory bookmark repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Load returns the stored document, or nil when nothing has been saved.
func (r *InMemoryRepository) Load(_ context.Context) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.doc == nil {
		return nil, nil
	}
	cpy := make([]byte, len(r.doc))
	copy(cpy, r.doc)
	return cpy, nil
}

// Save replaces the stored document.
func (r *InMemoryRepository) Save(_ context.Context, doc []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := make([]byte, len(doc))
	copy(cpy, doc)
	r.doc = cpy
	return nil
}

// Clear removes the stored document.
func (r *InMemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.doc = nil
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
