package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEntityNameEmpty    = errors.New("entity name cannot be empty")
	ErrEntityNameTooLong  = errors.New("entity name is too long (max 100 chars)")
	ErrEntityTextTooLong  = errors.New("entity text field is too long (max 500 chars)")
	ErrInvalidEntityType  = errors.New("invalid entity type (must be habit or skill)")
	ErrInvalidFrequency   = errors.New("frequency must be at least 1 day")
	ErrInvalidThreshold   = errors.New("success rate threshold must be between 0 and 100")
	ErrInvalidRequirement = errors.New("required value per cycle must be a positive finite number")
)

type EntityType string

const (
	EntityTypeHabit EntityType = "habit"
	EntityTypeSkill EntityType = "skill"

	AnonymousOwner = "anonymous"
	MaxNameLen     = 100
	MaxTextLen     = 500
)

// EntityTypes lists every type the store keeps a collection for.
var EntityTypes = []EntityType{EntityTypeHabit, EntityTypeSkill}

func ParseEntityType(s string) (EntityType, error) {
	switch t := EntityType(strings.ToLower(strings.TrimSpace(s))); t {
	case EntityTypeHabit, EntityTypeSkill:
		return t, nil
	}
	return "", ErrInvalidEntityType
}

// Entity is a habit or skill tracked as a square grid of cycles.
type Entity struct {
	ID               string     `json:"id"`
	Type             EntityType `json:"type"`
	Name             string     `json:"name"`
	OwnerID          string     `json:"owner_id"`
	Motivation       string     `json:"motivation,omitempty"`
	RequirementsText string     `json:"requirements_text,omitempty"`
	StartTime        int64      `json:"start_time"`
	Frequency        int        `json:"frequency"`
	RequiredValue    float64    `json:"required_value"`
	SuccessThreshold int        `json:"success_threshold"`
	Grid             Grid       `json:"grid"`
}

type NewEntityParams struct {
	Type             EntityType
	Name             string
	OwnerID          string
	Motivation       string
	RequirementsText string
	Frequency        int
	RequiredValue    float64
	SuccessThreshold int
}

func validateText(motivation, requirements string) error {
	if len(strings.TrimSpace(motivation)) > MaxTextLen || len(strings.TrimSpace(requirements)) > MaxTextLen {
		return ErrEntityTextTooLong
	}
	return nil
}

func validateThreshold(threshold int) error {
	if threshold < 0 || threshold > 100 {
		return ErrInvalidThreshold
	}
	return nil
}

// NewEntity validates params and builds an entity starting at the local day of now,
// with a labelled grid sized for its frequency.
func NewEntity(p NewEntityParams, now time.Time, labels *Labeler) (*Entity, error) {
	if p.Type != EntityTypeHabit && p.Type != EntityTypeSkill {
		return nil, ErrInvalidEntityType
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrEntityNameEmpty
	}
	if len(name) > MaxNameLen {
		return nil, ErrEntityNameTooLong
	}

	owner := strings.TrimSpace(p.OwnerID)
	if owner == "" {
		owner = AnonymousOwner
	}

	if p.Frequency < 1 {
		return nil, ErrInvalidFrequency
	}
	if err := validateThreshold(p.SuccessThreshold); err != nil {
		return nil, err
	}
	if err := validateText(p.Motivation, p.RequirementsText); err != nil {
		return nil, err
	}

	required := p.RequiredValue
	if p.Type == EntityTypeHabit && required == 0 {
		required = 1
	}
	if required <= 0 || math.IsInf(required, 0) || math.IsNaN(required) {
		return nil, ErrInvalidRequirement
	}

	startMs := TruncateDay(now).UnixMilli()

	return &Entity{
		ID:               uuid.New().String(),
		Type:             p.Type,
		Name:             name,
		OwnerID:          owner,
		Motivation:       strings.TrimSpace(p.Motivation),
		RequirementsText: strings.TrimSpace(p.RequirementsText),
		StartTime:        startMs,
		Frequency:        p.Frequency,
		RequiredValue:    required,
		SuccessThreshold: p.SuccessThreshold,
		Grid:             InitGrid(SizeFor(p.Frequency), startMs, p.Frequency, Target(required), labels),
	}, nil
}

// Edit replaces the free-text fields and the success threshold. Identity and grid are untouched.
func (e *Entity) Edit(motivation, requirements string, threshold int) error {
	if err := validateThreshold(threshold); err != nil {
		return err
	}
	if err := validateText(motivation, requirements); err != nil {
		return err
	}

	e.Motivation = strings.TrimSpace(motivation)
	e.RequirementsText = strings.TrimSpace(requirements)
	e.SuccessThreshold = threshold
	return nil
}

// CurrentCell locates the cycle containing now on this entity's grid.
func (e *Entity) CurrentCell(now time.Time) (CellPosition, bool) {
	return LocateCurrentCell(now, e.StartTime, e.Frequency, e.Grid.Rows())
}

// RefreshActiveFlags marks the current cycle's cell active and clears every other cell.
// It reports whether any flag changed.
func (e *Entity) RefreshActiveFlags(now time.Time) bool {
	pos, ok := e.CurrentCell(now)
	changed := false

	for row := range e.Grid {
		for col := range e.Grid[row] {
			active := ok && row == pos.Row && col == pos.Col
			if e.Grid[row][col].IsActive != active {
				e.Grid[row][col].IsActive = active
				changed = true
			}
		}
	}
	return changed
}

// Relabel recomputes every cell label in labels' language.
func (e *Entity) Relabel(labels *Labeler) {
	e.Grid.Relabel(e.StartTime, e.Frequency, labels)
}

// FindEntity returns the index of the entity owned by ownerID named name, or -1.
func FindEntity(entities []*Entity, ownerID, name string) int {
	for i, e := range entities {
		if e.OwnerID == ownerID && e.Name == name {
			return i
		}
	}
	return -1
}

// OwnedBy filters entities down to those owned by ownerID, preserving order.
func OwnedBy(entities []*Entity, ownerID string) []*Entity {
	owned := make([]*Entity, 0, len(entities))
	for _, e := range entities {
		if e.OwnerID == ownerID {
			owned = append(owned, e)
		}
	}
	return owned
}
