package domain_test

import (
	"strconv"
	"time"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
)

type isoFormatter struct{}

func (isoFormatter) FormatDate(lang string, ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}

func (f isoFormatter) FormatDateRange(lang string, startMs int64, spanDays int64) string {
	return f.FormatDate(lang, startMs+domain.DaysToMs(spanDays))
}

var testLabels = &domain.Labeler{Formatter: isoFormatter{}, Lang: "en"}

var day0 = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func at(days int, extra time.Duration) time.Time {
	return day0.AddDate(0, 0, days).Add(extra)
}

func newTestEntity(frequency int, required float64) *domain.Entity {
	start := day0.UnixMilli()
	return &domain.Entity{
		ID:            "e-" + strconv.Itoa(frequency),
		Type:          domain.EntityTypeSkill,
		Name:          "test",
		OwnerID:       "u1",
		StartTime:     start,
		Frequency:     frequency,
		RequiredValue: required,
		Grid:          domain.InitGrid(domain.SizeFor(frequency), start, frequency, domain.Target(required), nil),
	}
}
