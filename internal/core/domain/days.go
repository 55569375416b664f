package domain

import "time"

const MsPerDay int64 = 24 * 60 * 60 * 1000

func DaysToMs(days int64) int64 {
	return days * MsPerDay
}

// MsToDays converts milliseconds to whole days, rounding towards negative infinity.
func MsToDays(ms int64) int64 {
	days := ms / MsPerDay
	if ms%MsPerDay != 0 && ms < 0 {
		days--
	}
	return days
}

// WholeDaysBetween returns the number of complete days elapsed from start to now.
func WholeDaysBetween(now time.Time, startMs int64) int64 {
	return MsToDays(now.UnixMilli() - startMs)
}

// TruncateDay returns local midnight of the wall-clock day containing t.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
