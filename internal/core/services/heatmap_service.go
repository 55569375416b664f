package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
)

type HeatmapService struct {
	store       domain.EntityStore
	formatter   domain.DateFormatter
	defaultLang string
	locks       *domain.CollectionLocks
	now         func() time.Time
}

func NewHeatmapService(store domain.EntityStore, formatter domain.DateFormatter, defaultLang string) *HeatmapService {
	return &HeatmapService{
		store:       store,
		formatter:   formatter,
		defaultLang: defaultLang,
		locks:       domain.NewCollectionLocks(),
		now:         time.Now,
	}
}

// WithClock replaces the time source. Each operation samples it once.
func (s *HeatmapService) WithClock(now func() time.Time) *HeatmapService {
	s.now = now
	return s
}

// WithLocks shares collection locks with the other writers of the same store.
func (s *HeatmapService) WithLocks(locks *domain.CollectionLocks) *HeatmapService {
	s.locks = locks
	return s
}

type CheckInInput struct {
	UserID string
	Type   domain.EntityType
	Name   string
	Row    int
	Col    int
	Status domain.CellStatus
	Value  float64
}

type HeatmapQuery struct {
	UserID string
	Type   domain.EntityType
	Name   string
	Lang   string
}

type OverviewInput struct {
	UserID string
	// Types limits the overview to the given entity types; empty means every type.
	Types []domain.EntityType
	Ratio domain.AspectRatio
	Lang  string
}

// CheckIn records progress on one cycle and refreshes the active cell. Nothing is written
// when the entity does not exist or the cell is out of range.
func (s *HeatmapService) CheckIn(ctx context.Context, input CheckInInput) (*domain.Entity, error) {
	defer s.locks.Lock(input.Type)()
	now := s.now()

	entities, err := s.store.ReadAll(ctx, input.Type)
	if err != nil {
		return nil, err
	}

	i := domain.FindEntity(entities, input.UserID, input.Name)
	if i < 0 {
		return nil, domain.ErrEntityNotFound
	}
	entity := entities[i]

	if err := entity.Grid.ApplyCheckIn(input.Row, input.Col, input.Status, input.Value); err != nil {
		return nil, err
	}
	entity.RefreshActiveFlags(now)

	if err := s.store.WriteAll(ctx, input.Type, entities); err != nil {
		return nil, err
	}
	return entity, nil
}

// Heatmap returns the entity's grid with labels rendered in the requested language and the
// current cycle highlighted. The refreshed grid is persisted.
func (s *HeatmapService) Heatmap(ctx context.Context, q HeatmapQuery) (domain.Grid, error) {
	defer s.locks.Lock(q.Type)()
	now := s.now()

	entities, err := s.store.ReadAll(ctx, q.Type)
	if err != nil {
		return nil, err
	}

	i := domain.FindEntity(entities, q.UserID, q.Name)
	if i < 0 {
		return nil, domain.ErrEntityNotFound
	}
	entity := entities[i]

	entity.Relabel(labelerFor(s.formatter, q.Lang, s.defaultLang))
	entity.RefreshActiveFlags(now)

	if err := s.store.WriteAll(ctx, q.Type, entities); err != nil {
		return nil, err
	}
	return entity.Grid, nil
}

// CurrentCell reports the cell of the cycle containing now. ok is false outside the
// entity's lifetime.
func (s *HeatmapService) CurrentCell(ctx context.Context, entityType domain.EntityType, userID, name string) (domain.CellPosition, bool, error) {
	entities, err := s.store.ReadAll(ctx, entityType)
	if err != nil {
		return domain.CellPosition{}, false, err
	}

	i := domain.FindEntity(entities, userID, name)
	if i < 0 {
		return domain.CellPosition{}, false, domain.ErrEntityNotFound
	}

	pos, ok := entities[i].CurrentCell(s.now())
	return pos, ok, nil
}

// HighlightCurrentCell persists the active flags of one entity for the current time.
func (s *HeatmapService) HighlightCurrentCell(ctx context.Context, entityType domain.EntityType, userID, name string) error {
	defer s.locks.Lock(entityType)()

	entities, err := s.store.ReadAll(ctx, entityType)
	if err != nil {
		return err
	}

	i := domain.FindEntity(entities, userID, name)
	if i < 0 {
		return domain.ErrEntityNotFound
	}

	if !entities[i].RefreshActiveFlags(s.now()) {
		return nil
	}
	return s.store.WriteAll(ctx, entityType, entities)
}

// Overview aggregates every entity the user owns into one day-bucketed grid. It never writes.
func (s *HeatmapService) Overview(ctx context.Context, input OverviewInput) (domain.Grid, error) {
	if err := input.Ratio.Validate(); err != nil {
		return nil, err
	}

	types := input.Types
	if len(types) == 0 {
		types = domain.EntityTypes
	}

	var owned []*domain.Entity
	for _, t := range types {
		entities, err := s.store.ReadAll(ctx, t)
		if err != nil {
			return nil, err
		}
		owned = append(owned, domain.OwnedBy(entities, input.UserID)...)
	}

	return domain.Aggregate(owned, input.Ratio, labelerFor(s.formatter, input.Lang, s.defaultLang)), nil
}
