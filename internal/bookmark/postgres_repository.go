package bookmark

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores the bookmark document in a single-row key-value
// table, preserving the whole-document read-modify-write semantics of the
// storage contract.
type PostgresRepository struct {
	pool *pgxpool.Pool
	key  string
}

// NewPostgresRepository creates a new PostgreSQL bookmark repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, key: StorageKey}
}

// Load returns the stored document, or nil when nothing has been saved.
func (r *PostgresRepository) Load(ctx context.Context) ([]byte, error) {
	query := `SELECT value FROM kv_documents WHERE key = $1`

	var doc []byte
	err := r.pool.QueryRow(ctx, query, r.key).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return doc, nil
}

// Save replaces the stored document.
func (r *PostgresRepository) Save(ctx context.Context, doc []byte) error {
	query := `
		INSERT INTO kv_documents (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now()
	`

	_, err := r.pool.Exec(ctx, query, r.key, doc)
	return err
}

// Clear removes the stored document.
func (r *PostgresRepository) Clear(ctx context.Context) error {
	query := `DELETE FROM kv_documents WHERE key = $1`
	_, err := r.pool.Exec(ctx, query, r.key)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
