package domain

// DateFormatter renders calendar dates for heatmap labels in a given language.
type DateFormatter interface {
	// FormatDate formats the wall-clock date of a millisecond timestamp.
	FormatDate(lang string, ms int64) string
	// FormatDateRange formats the date spanDays after startMs.
	FormatDateRange(lang string, startMs int64, spanDays int64) string
}

// Labeler couples a formatter with the language labels are rendered in.
// A nil *Labeler means "no labels".
type Labeler struct {
	Formatter DateFormatter
	Lang      string
}

// CycleLabel renders "<first day>[ - <last day>]: <value>" for cycle idx.
func (l *Labeler) CycleLabel(startMs int64, frequency, idx int, value float64) string {
	f := int64(frequency)
	i := int64(idx)

	label := l.Formatter.FormatDateRange(l.Lang, startMs, f*i)
	if frequency > 1 {
		label += " - " + l.Formatter.FormatDateRange(l.Lang, startMs, f*(i+1)-1)
	}
	return label + ": " + FormatValue(value)
}
