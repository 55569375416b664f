package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

var _ domain.EntityStore = (*PostgresEntityStore)(nil)

const postgresSchema = `
    CREATE TABLE IF NOT EXISTS entity_collections (
        entity_type TEXT PRIMARY KEY,
        payload     JSONB NOT NULL,
        updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`

type PostgresEntityStore struct {
	db *sqlx.DB
}

func NewPostgresEntityStore(db *sqlx.DB) *PostgresEntityStore {
	return &PostgresEntityStore{db: db}
}

// EnsureSchema creates the collections table when missing.
func (r *PostgresEntityStore) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (r *PostgresEntityStore) ReadAll(ctx context.Context, entityType domain.EntityType) ([]*domain.Entity, error) {
	query := `SELECT payload FROM entity_collections WHERE entity_type = $1`

	var payload []byte
	err := r.db.GetContext(ctx, &payload, query, string(entityType))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*domain.Entity{}, nil
		}
		return nil, fmt.Errorf("read collection query failed: %w", err)
	}

	return decodeEntities(payload)
}

func (r *PostgresEntityStore) WriteAll(ctx context.Context, entityType domain.EntityType, entities []*domain.Entity) error {
	payload, err := encodeEntities(entities)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO entity_collections (entity_type, payload, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (entity_type) DO UPDATE
        SET payload = EXCLUDED.payload, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, string(entityType), string(payload)); err != nil {
		return fmt.Errorf("write collection query failed: %w", err)
	}
	return nil
}
