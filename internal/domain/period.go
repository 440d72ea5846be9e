package domain

import (
	"fmt"
	"time"
)

// Layout for day keys used throughout assignments ("YYYY-MM-DD").
const DayKeyLayout = "2006-01-02"

// View period granularities used for navigation and reporting.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// DayKey returns the canonical calendar-day key for t.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// WeekKey returns the canonical ISO-week key for t ("YYYY-WW").
//
// The year component is the ISO week-numbering year, so days in
// late December or early January key into the week they actually
// belong to rather than their calendar year.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-%02d", year, week)
}

// ParseDayKey parses a canonical day key back into a time value.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.Parse(DayKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day key %q: %w", key, err)
	}
	return t, nil
}

// StartOfISOWeek returns the Monday of t's ISO week, truncated to midnight.
func StartOfISOWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	return day.AddDate(0, 0, -offset)
}

// WeekdayKeys returns the five weekday keys (Monday through Friday)
// of t's ISO week, in order.
func WeekdayKeys(t time.Time) []string {
	monday := StartOfISOWeek(t)
	keys := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		keys = append(keys, DayKey(monday.AddDate(0, 0, i)))
	}
	return keys
}

// StartOfMonth returns the first day of t's month at midnight.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last day of t's month at midnight.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// StartOfYear returns January 1st of t's year at midnight.
func StartOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}

// EndOfYear returns December 31st of t's year at midnight.
func EndOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, t.Location())
}

// NextPeriod advances t by one unit of the given period.
func NextPeriod(t time.Time, p Period) time.Time {
	switch p {
	case PeriodMonth:
		return t.AddDate(0, 1, 0)
	case PeriodYear:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 7)
	}
}

// PrevPeriod moves t back by one unit of the given period.
func PrevPeriod(t time.Time, p Period) time.Time {
	switch p {
	case PeriodMonth:
		return t.AddDate(0, -1, 0)
	case PeriodYear:
		return t.AddDate(-1, 0, 0)
	default:
		return t.AddDate(0, 0, -7)
	}
}
