package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"

	_ "modernc.org/sqlite"
)

var _ domain.EntityStore = (*SQLiteEntityStore)(nil)

// SQLiteEntityStore is a single-file store for local, single-user deployments.
type SQLiteEntityStore struct {
	db *sql.DB
}

// OpenSQLiteEntityStore opens or creates the database at path and applies the schema.
func OpenSQLiteEntityStore(path string) (*SQLiteEntityStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	s := &SQLiteEntityStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (r *SQLiteEntityStore) Close() error {
	return r.db.Close()
}

func (r *SQLiteEntityStore) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteEntityStore) migrate() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS entity_collections (
		entity_type TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
	);`)
	if err != nil {
		return fmt.Errorf("failed to migrate sqlite: %w", err)
	}
	return nil
}

func (r *SQLiteEntityStore) ReadAll(ctx context.Context, entityType domain.EntityType) ([]*domain.Entity, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM entity_collections WHERE entity_type = ?`, string(entityType),
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*domain.Entity{}, nil
		}
		return nil, fmt.Errorf("read collection failed: %w", err)
	}

	return decodeEntities([]byte(payload))
}

func (r *SQLiteEntityStore) WriteAll(ctx context.Context, entityType domain.EntityType, entities []*domain.Entity) error {
	payload, err := encodeEntities(entities)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO entity_collections (entity_type, payload, updated_at)
		 VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		 ON CONFLICT(entity_type) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		string(entityType), string(payload),
	)
	if err != nil {
		return fmt.Errorf("write collection failed: %w", err)
	}
	return nil
}
