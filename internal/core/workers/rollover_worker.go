package workers

import (
	"context"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
)

type RolloverJob struct {
	Type domain.EntityType
}

// RolloverWorker keeps the stored active flags in step with the calendar. Jobs refresh
// one entity collection; the ticker refreshes all of them.
type RolloverWorker struct {
	store    domain.EntityStore
	jobs     chan RolloverJob
	interval time.Duration
	locks    *domain.CollectionLocks
	now      func() time.Time
}

func NewRolloverWorker(store domain.EntityStore, interval time.Duration) *RolloverWorker {
	return &RolloverWorker{
		store:    store,
		jobs:     make(chan RolloverJob, 100),
		interval: interval,
		locks:    domain.NewCollectionLocks(),
		now:      time.Now,
	}
}

func (w *RolloverWorker) WithClock(now func() time.Time) *RolloverWorker {
	w.now = now
	return w
}

// WithLocks shares collection locks with the services writing the same store.
func (w *RolloverWorker) WithLocks(locks *domain.CollectionLocks) *RolloverWorker {
	w.locks = locks
	return w
}

func (w *RolloverWorker) Start(ctx context.Context) {
	go func() {
		log.Println("[WORKER] Rollover worker started in background...")

		var tick <-chan time.Time
		if w.interval > 0 {
			ticker := time.NewTicker(w.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-tick:
				for _, t := range domain.EntityTypes {
					w.processJob(ctx, RolloverJob{Type: t})
				}
			case <-ctx.Done():
				log.Println("[WORKER] Rollover worker shutting down...")
				return
			}
		}
	}()
}

func (w *RolloverWorker) Enqueue(entityType domain.EntityType) {
	select {
	case w.jobs <- RolloverJob{Type: entityType}:
	default:
		log.Printf("[WORKER] Queue full! Dropping rollover job for %s", entityType)
	}
}

func (w *RolloverWorker) processJob(ctx context.Context, job RolloverJob) {
	unlock := w.locks.Lock(job.Type)
	refreshed, err := RefreshCollection(ctx, w.store, job.Type, w.now())
	unlock()
	if err != nil {
		log.Printf("[WORKER] Error refreshing %s collection: %v", job.Type, err)
		return
	}
	if refreshed > 0 {
		log.Printf("[WORKER] Active cells moved for %d %s entities", refreshed, job.Type)
	}
}

// RefreshCollection recomputes active flags for every entity of one type and writes the
// collection back only when something changed. It returns how many entities changed.
// Callers must hold the collection's lock.
func RefreshCollection(ctx context.Context, store domain.EntityStore, entityType domain.EntityType, now time.Time) (int, error) {
	entities, err := store.ReadAll(ctx, entityType)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, e := range entities {
		if e.RefreshActiveFlags(now) {
			changed++
		}
	}

	if changed == 0 {
		return 0, nil
	}
	if err := store.WriteAll(ctx, entityType, entities); err != nil {
		return 0, err
	}
	return changed, nil
}
