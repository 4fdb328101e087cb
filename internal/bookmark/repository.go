package bookmark

import "context"

// StorageKey is the durable slot under which the bookmark list is stored as
// one JSON document. The version suffix allows a future format migration to
// move to a fresh key.
const StorageKey = "aq_bookmarks_v1"

// Repository abstracts the durable key-value slot holding the encoded
// bookmark list. Implementations store the document as an opaque unit; all
// list semantics (toggle, legacy normalization, ordering) live in Service.
type Repository interface {
	// Load returns the stored document, or nil when nothing has been saved.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored document.
	Save(ctx context.Context, doc []byte) error

	// Clear removes the stored document.
	Clear(ctx context.Context) error
}
