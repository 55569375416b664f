package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
)

type EntityService struct {
	store       domain.EntityStore
	formatter   domain.DateFormatter
	defaultLang string
	rater       domain.SuccessRater
	locks       *domain.CollectionLocks
	now         func() time.Time
}

func NewEntityService(store domain.EntityStore, formatter domain.DateFormatter, defaultLang string) *EntityService {
	return &EntityService{
		store:       store,
		formatter:   formatter,
		defaultLang: defaultLang,
		rater:       domain.CycleSuccessRate,
		locks:       domain.NewCollectionLocks(),
		now:         time.Now,
	}
}

// WithClock replaces the time source. Each operation samples it once.
func (s *EntityService) WithClock(now func() time.Time) *EntityService {
	s.now = now
	return s
}

// WithLocks shares collection locks with the other writers of the same store.
func (s *EntityService) WithLocks(locks *domain.CollectionLocks) *EntityService {
	s.locks = locks
	return s
}

func (s *EntityService) WithSuccessRater(rater domain.SuccessRater) *EntityService {
	s.rater = rater
	return s
}

type CreateEntityInput struct {
	UserID           string
	Type             domain.EntityType
	Name             string
	Motivation       string
	RequirementsText string
	Frequency        int
	RequiredValue    float64
	SuccessThreshold int
	Lang             string
}

type EditEntityInput struct {
	UserID           string
	Type             domain.EntityType
	Name             string
	Motivation       string
	RequirementsText string
	SuccessThreshold *int
}

func labelerFor(formatter domain.DateFormatter, lang, fallback string) *domain.Labeler {
	if lang == "" {
		lang = fallback
	}
	return &domain.Labeler{Formatter: formatter, Lang: lang}
}

func (s *EntityService) Create(ctx context.Context, input CreateEntityInput) (*domain.Entity, error) {
	now := s.now()

	entity, err := domain.NewEntity(domain.NewEntityParams{
		Type:             input.Type,
		Name:             input.Name,
		OwnerID:          input.UserID,
		Motivation:       input.Motivation,
		RequirementsText: input.RequirementsText,
		Frequency:        input.Frequency,
		RequiredValue:    input.RequiredValue,
		SuccessThreshold: input.SuccessThreshold,
	}, now, labelerFor(s.formatter, input.Lang, s.defaultLang))
	if err != nil {
		return nil, err
	}

	defer s.locks.Lock(entity.Type)()

	entities, err := s.store.ReadAll(ctx, entity.Type)
	if err != nil {
		return nil, err
	}

	if domain.FindEntity(entities, entity.OwnerID, entity.Name) >= 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEntityExists, entity.Name)
	}

	entity.RefreshActiveFlags(now)
	entities = append(entities, entity)

	if err := s.store.WriteAll(ctx, entity.Type, entities); err != nil {
		return nil, err
	}

	return entity, nil
}

func (s *EntityService) Get(ctx context.Context, entityType domain.EntityType, userID, name string) (*domain.Entity, error) {
	entities, err := s.store.ReadAll(ctx, entityType)
	if err != nil {
		return nil, err
	}

	i := domain.FindEntity(entities, userID, name)
	if i < 0 {
		return nil, domain.ErrEntityNotFound
	}
	return entities[i], nil
}

func (s *EntityService) ListByUserID(ctx context.Context, entityType domain.EntityType, userID string) ([]*domain.Entity, error) {
	entities, err := s.store.ReadAll(ctx, entityType)
	if err != nil {
		return nil, err
	}
	return domain.OwnedBy(entities, userID), nil
}

// Categorize splits the user's entities of one type into active, completed and failed.
func (s *EntityService) Categorize(ctx context.Context, entityType domain.EntityType, userID string) (domain.Classification, error) {
	owned, err := s.ListByUserID(ctx, entityType, userID)
	if err != nil {
		return domain.Classification{}, err
	}
	return domain.Classify(owned, s.now(), s.rater), nil
}

func (s *EntityService) Edit(ctx context.Context, input EditEntityInput) (*domain.Entity, error) {
	defer s.locks.Lock(input.Type)()

	entities, err := s.store.ReadAll(ctx, input.Type)
	if err != nil {
		return nil, err
	}

	i := domain.FindEntity(entities, input.UserID, input.Name)
	if i < 0 {
		return nil, domain.ErrEntityNotFound
	}
	entity := entities[i]

	threshold := entity.SuccessThreshold
	if input.SuccessThreshold != nil {
		threshold = *input.SuccessThreshold
	}

	err = entity.Edit(
		mergeString(input.Motivation, entity.Motivation),
		mergeString(input.RequirementsText, entity.RequirementsText),
		threshold,
	)
	if err != nil {
		return nil, err
	}

	if err := s.store.WriteAll(ctx, input.Type, entities); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *EntityService) Delete(ctx context.Context, entityType domain.EntityType, userID, name string) error {
	defer s.locks.Lock(entityType)()

	entities, err := s.store.ReadAll(ctx, entityType)
	if err != nil {
		return err
	}

	i := domain.FindEntity(entities, userID, name)
	if i < 0 {
		return domain.ErrEntityNotFound
	}

	entities = append(entities[:i], entities[i+1:]...)
	return s.store.WriteAll(ctx, entityType, entities)
}

func mergeString(newVal, oldVal string) string {
	if newVal == "" {
		return oldVal
	}
	return newVal
}
