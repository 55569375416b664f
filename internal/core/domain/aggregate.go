package domain

import (
	"errors"
	"math"
	"sort"
)

// MaxRatio bounds each aspect ratio component so overview grids stay small.
const MaxRatio = 50

var ErrInvalidRatio = errors.New("aspect ratio width and height must be between 1 and 50")

// AspectRatio holds width and height multipliers for the overview grid.
type AspectRatio struct {
	W int `json:"w"`
	H int `json:"h"`
}

func (r AspectRatio) Validate() error {
	if r.W < 1 || r.H < 1 || r.W > MaxRatio || r.H > MaxRatio {
		return ErrInvalidRatio
	}
	return nil
}

const (
	emptyOverviewScale = 4
	daysPerUnit        = 6
)

// DayBucket accumulates normalized contributions of every cycle covering one day.
type DayBucket struct {
	Day        int64
	At         int64
	CurrentSum float64
	TargetSum  float64
}

func roundTwo(v float64) float64 {
	return math.Round(v*100) / 100
}

func collectDayBuckets(entities []*Entity) []*DayBucket {
	buckets := make(map[int64]*DayBucket)

	for _, e := range entities {
		if e.Frequency < 1 {
			continue
		}
		f := int64(e.Frequency)
		cols := e.Grid.Cols()
		targetShare := roundTwo(e.RequiredValue / float64(f))

		for row := range e.Grid {
			for col := range e.Grid[row] {
				cell := e.Grid[row][col]
				if cell.Status == CellStatusSkipped {
					continue
				}

				idx := int64(row*cols + col)
				firstMs := e.StartTime + DaysToMs(idx*f)
				fromDay := MsToDays(firstMs)
				toDay := MsToDays(e.StartTime + DaysToMs((idx+1)*f-1))
				currentShare := roundTwo(math.Min(cell.CurrentValue, float64(cell.TargetValue)) / float64(f))

				for d := fromDay; d <= toDay; d++ {
					b, ok := buckets[d]
					if !ok {
						b = &DayBucket{Day: d, At: firstMs + DaysToMs(d-fromDay)}
						buckets[d] = b
					}
					b.CurrentSum += currentShare
					b.TargetSum += targetShare
				}
			}
		}
	}

	sorted := make([]*DayBucket, 0, len(buckets))
	for _, b := range buckets {
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Day < sorted[j].Day
	})
	return sorted
}

func emptyOverallCell() Cell {
	return Cell{
		Status:       CellStatusNormal,
		CurrentValue: 0,
		TargetValue:  Unbounded(),
		IsActive:     false,
	}
}

func filledGrid(rows, cols int) Grid {
	grid := make(Grid, rows)
	for i := range grid {
		grid[i] = make([]Cell, cols)
		for j := range grid[i] {
			grid[i][j] = emptyOverallCell()
		}
	}
	return grid
}

// Aggregate projects every entity onto a shared day timeline and lays the resulting days
// out row-major in an overview grid shaped by ratio. Skipped cycles contribute nothing.
// Each per-day share is rounded to two decimals before it is summed.
func Aggregate(entities []*Entity, ratio AspectRatio, labels *Labeler) Grid {
	days := collectDayBuckets(entities)
	if len(days) == 0 {
		return filledGrid(emptyOverviewScale*ratio.H, emptyOverviewScale*ratio.W)
	}

	units := int(math.Ceil(float64(len(days)) / daysPerUnit))
	k := int(math.Ceil(math.Sqrt(float64(units))))

	grid := filledGrid(k*ratio.H, k*ratio.W)
	cols := grid.Cols()
	capacity := grid.Rows() * cols

	// Narrow ratios can hold fewer cells than days; the earliest days win.
	for i, b := range days {
		if i >= capacity {
			break
		}
		cell := &grid[i/cols][i%cols]
		cell.CurrentValue = b.CurrentSum
		cell.TargetValue = Target(b.TargetSum)
		if labels != nil {
			cell.Label = labels.Formatter.FormatDate(labels.Lang, b.At) + ": " +
				FormatValue(b.CurrentSum) + " / " + FormatValue(b.TargetSum)
		}
	}

	return grid
}
