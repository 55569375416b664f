package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
)

var _ domain.EntityStore = (*InMemoryEntityStore)(nil)

// InMemoryEntityStore keeps serialized collections so callers never share grids with the store.
type InMemoryEntityStore struct {
	store map[domain.EntityType][]byte

	mu sync.RWMutex
}

func NewInMemoryEntityStore() *InMemoryEntityStore {
	return &InMemoryEntityStore{
		store: make(map[domain.EntityType][]byte),
	}
}

func (r *InMemoryEntityStore) ReadAll(ctx context.Context, entityType domain.EntityType) ([]*domain.Entity, error) {
	r.mu.RLock()
	data := r.store[entityType]
	r.mu.RUnlock()

	return decodeEntities(data)
}

func (r *InMemoryEntityStore) WriteAll(ctx context.Context, entityType domain.EntityType, entities []*domain.Entity) error {
	data, err := encodeEntities(entities)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[entityType] = data
	return nil
}
