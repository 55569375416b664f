package domain

import "sync"

// CollectionLocks serializes read-modify-write cycles on one entity collection. Every writer
// of the same store must share one instance.
type CollectionLocks struct {
	mu    sync.Mutex
	locks map[EntityType]*sync.Mutex
}

func NewCollectionLocks() *CollectionLocks {
	return &CollectionLocks{locks: make(map[EntityType]*sync.Mutex)}
}

// Lock blocks until the collection is free and returns the matching unlock.
func (l *CollectionLocks) Lock(entityType EntityType) func() {
	l.mu.Lock()
	m, ok := l.locks[entityType]
	if !ok {
		m = &sync.Mutex{}
		l.locks[entityType] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
