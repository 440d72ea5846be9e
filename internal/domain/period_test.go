package domain

import (
	"testing"
	"time"
)

func TestDayAndWeekKeys(t *testing.T) {
	cases := []struct {
		name    string
		date    time.Time
		dayKey  string
		weekKey string
	}{
		{
			name:    "mid year wednesday",
			date:    time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC),
			dayKey:  "2024-05-15",
			weekKey: "2024-20",
		},
		{
			name:    "single digit iso week is zero padded",
			date:    time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
			dayKey:  "2024-02-05",
			weekKey: "2024-06",
		},
		{
			name:    "late december belongs to next iso year",
			date:    time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC),
			dayKey:  "2024-12-30",
			weekKey: "2025-01",
		},
		{
			name:    "early january belongs to previous iso year",
			date:    time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			dayKey:  "2027-01-01",
			weekKey: "2026-53",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DayKey(tc.date); got != tc.dayKey {
				t.Errorf("DayKey = %q, want %q", got, tc.dayKey)
			}
			if got := WeekKey(tc.date); got != tc.weekKey {
				t.Errorf("WeekKey = %q, want %q", got, tc.weekKey)
			}
		})
	}
}

func TestStartOfISOWeek(t *testing.T) {
	monday := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		date time.Time
	}{
		{"monday itself", time.Date(2024, 5, 13, 9, 0, 0, 0, time.UTC)},
		{"wednesday", time.Date(2024, 5, 15, 23, 59, 0, 0, time.UTC)},
		{"sunday", time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StartOfISOWeek(tc.date); !got.Equal(monday) {
				t.Errorf("StartOfISOWeek(%v) = %v, want %v", tc.date, got, monday)
			}
		})
	}
}

func TestWeekdayKeys(t *testing.T) {
	keys := WeekdayKeys(time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC))

	want := []string{"2024-05-13", "2024-05-14", "2024-05-15", "2024-05-16", "2024-05-17"}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestMonthAndYearBounds(t *testing.T) {
	d := time.Date(2024, 2, 14, 8, 0, 0, 0, time.UTC)

	if got := StartOfMonth(d); DayKey(got) != "2024-02-01" {
		t.Errorf("StartOfMonth = %v", got)
	}
	if got := EndOfMonth(d); DayKey(got) != "2024-02-29" {
		t.Errorf("EndOfMonth = %v (leap year)", got)
	}
	if got := StartOfYear(d); DayKey(got) != "2024-01-01" {
		t.Errorf("StartOfYear = %v", got)
	}
	if got := EndOfYear(d); DayKey(got) != "2024-12-31" {
		t.Errorf("EndOfYear = %v", got)
	}
}

func TestPeriodNavigation(t *testing.T) {
	d := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

	if got := NextPeriod(d, PeriodWeek); DayKey(got) != "2024-05-22" {
		t.Errorf("next week = %v", got)
	}
	if got := PrevPeriod(d, PeriodMonth); DayKey(got) != "2024-04-15" {
		t.Errorf("prev month = %v", got)
	}
	if got := NextPeriod(d, PeriodYear); DayKey(got) != "2025-05-15" {
		t.Errorf("next year = %v", got)
	}
}
