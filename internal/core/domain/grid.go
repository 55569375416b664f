package domain

// InitGrid builds a size x size grid of fresh cells. When labels is non-nil every cell
// gets a date label for its cycle.
func InitGrid(size int, startMs int64, frequency int, target Target, labels *Labeler) Grid {
	grid := make(Grid, size)
	for row := 0; row < size; row++ {
		grid[row] = make([]Cell, size)
		for col := 0; col < size; col++ {
			cell := Cell{
				Status:       CellStatusNew,
				CurrentValue: 0,
				TargetValue:  target,
				IsActive:     false,
			}
			if labels != nil {
				cell.Label = labels.CycleLabel(startMs, frequency, row*size+col, 0)
			}
			grid[row][col] = cell
		}
	}
	return grid
}

// Relabel recomputes every label of the grid, keeping each cell's current value.
func (g Grid) Relabel(startMs int64, frequency int, labels *Labeler) {
	cols := g.Cols()
	for row := range g {
		for col := range g[row] {
			g[row][col].Label = labels.CycleLabel(startMs, frequency, row*cols+col, g[row][col].CurrentValue)
		}
	}
}
