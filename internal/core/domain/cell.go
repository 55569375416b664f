package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidIndex  = errors.New("heatmap cell index out of range")
	ErrInvalidStatus = errors.New("invalid heatmap cell status")
)

type CellStatus string

const (
	CellStatusNew       CellStatus = "new"
	CellStatusActive    CellStatus = "active"
	CellStatusSkipped   CellStatus = "skipped"
	CellStatusCompleted CellStatus = "completed-cycle"
	CellStatusNormal    CellStatus = "normal"
)

func (s CellStatus) Valid() bool {
	switch s {
	case CellStatusNew, CellStatusActive, CellStatusSkipped, CellStatusCompleted, CellStatusNormal:
		return true
	}
	return false
}

const unboundedLiteral = "Infinity"

// Target is a per-cell goal. The zero value is a real target of 0; use Unbounded for "no cap".
type Target float64

func Unbounded() Target {
	return Target(math.Inf(1))
}

func (t Target) IsUnbounded() bool {
	return math.IsInf(float64(t), 1)
}

func (t Target) String() string {
	return FormatValue(float64(t))
}

func (t Target) MarshalJSON() ([]byte, error) {
	if t.IsUnbounded() {
		return json.Marshal(unboundedLiteral)
	}
	return json.Marshal(float64(t))
}

func (t *Target) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != unboundedLiteral {
			return fmt.Errorf("invalid target literal %q", s)
		}
		*t = Unbounded()
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}
	*t = Target(f)
	return nil
}

// FormatValue renders a number the way labels show it: shortest decimal form, "Infinity" for no cap.
func FormatValue(v float64) string {
	if math.IsInf(v, 1) {
		return unboundedLiteral
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type Cell struct {
	Status       CellStatus `json:"status"`
	CurrentValue float64    `json:"current_value"`
	TargetValue  Target     `json:"target_value"`
	IsActive     bool       `json:"is_active"`
	Label        string     `json:"label,omitempty"`
}

// Grid is a row-major square matrix of cells, one per cycle.
type Grid [][]Cell

func (g Grid) Rows() int {
	return len(g)
}

func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g Grid) inRange(row, col int) bool {
	return row >= 0 && row < g.Rows() && col >= 0 && col < len(g[row])
}

// ApplyCheckIn records a status and value on one cell. Only the numeric suffix after the
// last ':' of an existing label is rewritten.
func (g Grid) ApplyCheckIn(row, col int, status CellStatus, value float64) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if !g.inRange(row, col) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrInvalidIndex, row, col, g.Rows(), g.Cols())
	}

	cell := &g[row][col]
	cell.Status = status
	cell.CurrentValue = value

	if cell.Label != "" {
		cell.Label = replaceLabelValue(cell.Label, value)
	}

	return nil
}

func replaceLabelValue(label string, value float64) string {
	prefix := label
	if i := strings.LastIndex(label, ":"); i >= 0 {
		prefix = label[:i]
	}
	return prefix + ": " + FormatValue(value)
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}
