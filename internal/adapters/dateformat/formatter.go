// Package dateformat renders heatmap dates and frequency labels in the supported languages.
package dateformat

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/comitanigiacomo/kanso-heatmap/internal/core/domain"
)

var _ domain.DateFormatter = (*Formatter)(nil)

var supported = []language.Tag{
	language.English,
	language.Italian,
	language.Russian,
}

var shortMonths = map[language.Tag][12]string{
	language.Italian: {"gen", "feb", "mar", "apr", "mag", "giu", "lug", "ago", "set", "ott", "nov", "dic"},
	language.Russian: {"янв.", "февр.", "мар.", "апр.", "мая", "июн.", "июл.", "авг.", "сент.", "окт.", "нояб.", "дек."},
}

func init() {
	_ = message.SetString(language.Italian, "daily", "ogni giorno")
	_ = message.SetString(language.Italian, "every %d days", "ogni %d giorni")
	_ = message.SetString(language.Russian, "daily", "ежедневно")
	_ = message.SetString(language.Russian, "every %d days", "каждые %d дн.")
}

type Formatter struct {
	loc     *time.Location
	matcher language.Matcher
}

func New(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{
		loc:     loc,
		matcher: language.NewMatcher(supported),
	}
}

// Resolve maps a BCP 47 string onto the closest supported language, English by default.
func (f *Formatter) Resolve(lang string) language.Tag {
	_, index := language.MatchStrings(f.matcher, lang)
	return supported[index]
}

func (f *Formatter) FormatDate(lang string, ms int64) string {
	return f.format(lang, time.UnixMilli(ms).In(f.loc))
}

// FormatDateRange labels the calendar day spanDays after startMs. Days are counted on the
// local calendar so a DST shift never repeats or skips a label.
func (f *Formatter) FormatDateRange(lang string, startMs int64, spanDays int64) string {
	return f.format(lang, time.UnixMilli(startMs).In(f.loc).AddDate(0, 0, int(spanDays)))
}

func (f *Formatter) format(lang string, t time.Time) string {
	tag := f.Resolve(lang)

	months, ok := shortMonths[tag]
	if !ok {
		return t.Format("Jan 2, 2006")
	}
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// FrequencyLabel describes how often an entity recurs, e.g. "daily" or "every 3 days".
func (f *Formatter) FrequencyLabel(lang string, frequency int) string {
	p := message.NewPrinter(f.Resolve(lang))
	if frequency == 1 {
		return p.Sprintf("daily")
	}
	return p.Sprintf("every %d days", frequency)
}
