package domain

import "time"

// CellPosition addresses one cell of a grid.
type CellPosition struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// LocateCurrentCell returns the cell whose cycle contains now. ok is false when now
// falls before the first cycle or after the last one.
func LocateCurrentCell(now time.Time, startMs int64, frequency, size int) (CellPosition, bool) {
	if frequency < 1 || size < 1 {
		return CellPosition{}, false
	}

	dayDiff := WholeDaysBetween(now, startMs)
	if dayDiff < 0 {
		return CellPosition{}, false
	}

	cycle := dayDiff / int64(frequency)
	if cycle >= int64(size*size) {
		return CellPosition{}, false
	}

	idx := int(cycle)
	return CellPosition{Row: idx / size, Col: idx % size}, true
}
