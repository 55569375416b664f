package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

var _ domain.EntityStore = (*CachedEntityStore)(nil)

// CachedEntityStore is a read-through Redis cache in front of another store.
type CachedEntityStore struct {
	next  domain.EntityStore
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedEntityStore(next domain.EntityStore, cache *redis.Client, ttl time.Duration) *CachedEntityStore {
	return &CachedEntityStore{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}

func (r *CachedEntityStore) cacheKey(entityType domain.EntityType) string {
	return fmt.Sprintf("entities:%s", entityType)
}

func (r *CachedEntityStore) invalidate(ctx context.Context, entityType domain.EntityType) {
	if err := r.cache.Del(ctx, r.cacheKey(entityType)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate %s collection: %v", entityType, err)
	}
}

func (r *CachedEntityStore) ReadAll(ctx context.Context, entityType domain.EntityType) ([]*domain.Entity, error) {
	key := r.cacheKey(entityType)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		if entities, err := decodeEntities(val); err == nil {
			return entities, nil
		}

		log.Printf("[CACHE] Corrupted data for %s collection, cleaning up key", entityType)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	entities, err := r.next.ReadAll(ctx, entityType)
	if err != nil {
		return nil, err
	}

	if data, err := encodeEntities(entities); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return entities, nil
}

func (r *CachedEntityStore) WriteAll(ctx context.Context, entityType domain.EntityType, entities []*domain.Entity) error {
	if err := r.next.WriteAll(ctx, entityType, entities); err != nil {
		return err
	}
	r.invalidate(ctx, entityType)
	return nil
}
