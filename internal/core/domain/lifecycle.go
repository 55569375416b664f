package domain

import "time"

type EntityStatus string

const (
	EntityStatusActive    EntityStatus = "active"
	EntityStatusCompleted EntityStatus = "completed"
	EntityStatusFailed    EntityStatus = "failed"
)

// SuccessRater scores an entity's grid as a percentage in [0, 100].
type SuccessRater func(e *Entity) float64

// EndTime is the start of the last day of the final cycle, in milliseconds.
func EndTime(e *Entity) int64 {
	cycles := int64(e.Grid.Rows()) * int64(e.Grid.Cols()) * int64(e.Frequency)
	return e.StartTime + DaysToMs(cycles-1)
}

// StatusOf classifies a single entity at now.
func StatusOf(e *Entity, now time.Time, rate SuccessRater) EntityStatus {
	nowMs := now.UnixMilli()
	if e.StartTime <= nowMs && nowMs < EndTime(e) {
		return EntityStatusActive
	}
	if rate(e) >= float64(e.SuccessThreshold) {
		return EntityStatusCompleted
	}
	return EntityStatusFailed
}

type Classification struct {
	Active    []*Entity `json:"active"`
	Completed []*Entity `json:"completed"`
	Failed    []*Entity `json:"failed"`
}

// Classify partitions entities into active, completed and failed. Every input entity lands
// in exactly one partition.
func Classify(entities []*Entity, now time.Time, rate SuccessRater) Classification {
	out := Classification{
		Active:    []*Entity{},
		Completed: []*Entity{},
		Failed:    []*Entity{},
	}

	for _, e := range entities {
		switch StatusOf(e, now, rate) {
		case EntityStatusActive:
			out.Active = append(out.Active, e)
		case EntityStatusCompleted:
			out.Completed = append(out.Completed, e)
		default:
			out.Failed = append(out.Failed, e)
		}
	}
	return out
}

// CycleSuccessRate is the percentage of non-skipped cycles that reached their target,
// either by being marked completed or by a value at or above a finite target.
func CycleSuccessRate(e *Entity) float64 {
	counted, achieved := 0, 0
	for _, row := range e.Grid {
		for _, cell := range row {
			if cell.Status == CellStatusSkipped {
				continue
			}
			counted++

			if cell.Status == CellStatusCompleted {
				achieved++
				continue
			}
			if !cell.TargetValue.IsUnbounded() && cell.TargetValue > 0 && cell.CurrentValue >= float64(cell.TargetValue) {
				achieved++
			}
		}
	}

	if counted == 0 {
		return 0
	}
	return float64(achieved) / float64(counted) * 100
}
