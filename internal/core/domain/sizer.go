package domain

// sizeThresholds maps a minimum frequency to a grid side, checked top-down.
var sizeThresholds = []struct {
	minFrequency int
	size         int
}{
	{80, 2},
	{60, 3},
	{40, 4},
	{20, 5},
	{9, 6},
	{7, 7},
	{5, 8},
	{3, 9},
}

const MaxGridSize = 10

// SizeFor returns the side of the square grid used for an entity checked in every
// frequency days. Callers validate frequency >= 1.
func SizeFor(frequency int) int {
	for _, th := range sizeThresholds {
		if frequency >= th.minFrequency {
			return th.size
		}
	}
	return MaxGridSize
}
