package domain

import (
	"context"
	"errors"
)

var (
	ErrEntityNotFound = errors.New("entity not found")
	ErrEntityExists   = errors.New("an entity with this name already exists")
)

// EntityStore persists whole collections of entities, one collection per entity type.
// Writes replace the collection; the last writer wins.
type EntityStore interface {
	// ReadAll returns every stored entity of the given type. A missing collection is empty, not an error.
	ReadAll(ctx context.Context, entityType EntityType) ([]*Entity, error)

	// WriteAll replaces the stored collection of the given type.
	WriteAll(ctx context.Context, entityType EntityType, entities []*Entity) error
}
