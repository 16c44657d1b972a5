// Package period classifies events into time-window buckets.
//
// A selected period is "all", "today", "this_week", or a composite
// "<zero-based month>_<year>" key such as "6_2025" for July 2025. Dates
// before the configured minimum floor are excluded from every bucket.
package period

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aldeia/rankboard/internal/domain/model"
)

// Built-in period tags. Anything else is parsed as a month/year key.
const (
	All      = "all"
	Today    = "today"
	ThisWeek = "this_week"
)

// Portuguese month names, zero-based to match the month key encoding.
var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// ParseDate accepts "YYYY-MM-DD" or "DD/MM/YYYY" and returns the calendar
// date with the time of day zeroed. Any other format yields nil.
func ParseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}

	if parts := strings.Split(raw, "-"); len(parts) == 3 {
		return dateFromParts(parts[0], parts[1], parts[2])
	}
	if parts := strings.Split(raw, "/"); len(parts) == 3 {
		return dateFromParts(parts[2], parts[1], parts[0])
	}
	return nil
}

func dateFromParts(year, month, day string) *time.Time {
	y, err := strconv.Atoi(year)
	if err != nil {
		return nil
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return nil
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return nil
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local)
	return &t
}

// MonthKey encodes a date as its "<zero-based month>_<year>" bucket key.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%d_%d", int(t.Month())-1, t.Year())
}

// MonthLabel renders the display text for a date's month bucket.
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[int(t.Month())-1], t.Year())
}

// Filter classifies event dates against a selected period. Stateless per
// call; the clock is injected so tests can pin "today".
type Filter struct {
	minDate time.Time
	now     func() time.Time
}

// NewFilter creates a Filter. The default floor is July 1, 2025 and the
// default clock is time.Now.
func NewFilter(opts ...Option) *Filter {
	f := &Filter{
		minDate: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.Local),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Include reports whether an event with the given parsed date belongs in the
// selected period. A nil date is included only under "all". Dates strictly
// before the minimum floor are excluded from every period, "all" included.
func (f *Filter) Include(parsed *time.Time, selected string) bool {
	if parsed == nil {
		return selected == All
	}

	day := truncateDay(*parsed)
	if day.Before(f.minDate) {
		return false
	}

	today := truncateDay(f.now())

	switch selected {
	case All:
		return true
	case Today:
		return day.Equal(today)
	case ThisWeek:
		start := startOfWeek(today)
		return !day.Before(start) && !day.After(today)
	default:
		return MonthKey(day) == selected
	}
}

// Available lists the month/year buckets present in the raw rows, on or
// after the minimum floor, sorted by year then month descending.
func (f *Filter) Available(rows []model.Raw) []model.PeriodOption {
	seen := make(map[string]model.PeriodOption)
	for _, row := range rows {
		date := ParseDate(row.StringField(model.FieldDate))
		if date == nil {
			continue
		}
		day := truncateDay(*date)
		if day.Before(f.minDate) {
			continue
		}
		key := MonthKey(day)
		if _, ok := seen[key]; !ok {
			seen[key] = model.PeriodOption{Value: key, Text: MonthLabel(day)}
		}
	}

	options := make([]model.PeriodOption, 0, len(seen))
	for _, opt := range seen {
		options = append(options, opt)
	}
	sort.Slice(options, func(i, j int) bool {
		im, iy := splitMonthKey(options[i].Value)
		jm, jy := splitMonthKey(options[j].Value)
		if iy != jy {
			return iy > jy
		}
		return im > jm
	})
	return options
}

// MinDate returns the configured floor.
func (f *Filter) MinDate() time.Time {
	return f.minDate
}

func splitMonthKey(key string) (month, year int) {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	month, _ = strconv.Atoi(parts[0])
	year, _ = strconv.Atoi(parts[1])
	return month, year
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday of the week containing day. Sunday counts
// as the last day of the previous Monday-based week.
func startOfWeek(day time.Time) time.Time {
	back := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -back)
}
