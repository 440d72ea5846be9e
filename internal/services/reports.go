package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"route-plan-service/internal/domain"
	"route-plan-service/internal/ports"
)

// Report labels match the artifacts the workbook consumers already use.
var (
	weeklyGridColumns = []string{
		"ROTA / GRUPO", "SEGUNDA", "TERÇA", "QUARTA", "QUINTA", "SEXTA",
		"PADRÃO / FERRAMENTAS / INSUMOS", "CARRO", "META PCE", "OBSERVAÇÃO",
	}
	listColumns = []string{"Data", "Rota", "Técnicos", "Veículo", "Ferramentas", "Observações"}

	ptWeekdaysMin = []string{"seg", "ter", "qua", "qui", "sex", "sáb", "dom"}
	ptMonths      = []string{
		"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	}
)

const displayDateLayout = "02/01/2006"

// MonthName returns the pt-BR name of t's month.
func MonthName(t time.Time) string { return ptMonths[int(t.Month())-1] }

// WeekPeriodLabel renders the "Período: DD/MM/YYYY a DD/MM/YYYY" banner
// for the five weekdays of t's ISO week.
func WeekPeriodLabel(t time.Time) string {
	monday := domain.StartOfISOWeek(t)
	friday := monday.AddDate(0, 0, 4)
	return fmt.Sprintf("Período: %s a %s", monday.Format(displayDateLayout), friday.Format(displayDateLayout))
}

// One rendered row of the weekly grid.
type WeeklyGridRow struct {
	Kind    string   `json:"kind"` // "group" or "route"
	Name    string   `json:"name"`
	Days    []string `json:"days,omitempty"` // Monday..Friday technician names
	Tools   string   `json:"tools,omitempty"`
	Vehicle string   `json:"vehicle,omitempty"`
	Meta    string   `json:"meta,omitempty"`
	Notes   string   `json:"notes,omitempty"`
}

// The weekly projection: one row per plan row for the reference week.
type WeeklyGrid struct {
	Region  string          `json:"region"`
	WeekKey string          `json:"weekKey"`
	Period  string          `json:"period"`
	DayKeys []string        `json:"dayKeys"`
	Rows    []WeeklyGridRow `json:"rows"`
}

// One record of the monthly/annual flat list: a (route, day) pair.
type PeriodEntry struct {
	Date        time.Time `json:"-"`
	Day         string    `json:"date"` // DD/MM/YYYY
	RouteName   string    `json:"route"`
	Technicians string    `json:"technicians"`
	Vehicle     string    `json:"vehicle"`
	Tools       string    `json:"tools"`
	Notes       string    `json:"notes"`
}

// BuildWeeklyGrid projects a plan into the weekly grid shape for the
// ISO week of referenceDate. Group rows become single spanning labels;
// route rows carry the five weekday assignments and the week's record
// (all-empty when absent).
func BuildWeeklyGrid(
	region string,
	plan domain.Plan,
	technicians []domain.Technician,
	vehicles []domain.Vehicle,
	referenceDate time.Time,
) WeeklyGrid {
	dayKeys := domain.WeekdayKeys(referenceDate)
	weekKey := domain.WeekKey(referenceDate)

	rows := make([]WeeklyGridRow, 0, len(plan))
	for _, row := range plan {
		if row.IsGroup() {
			rows = append(rows, WeeklyGridRow{Kind: "group", Name: row.Name})
			continue
		}

		record := row.WeeklyRecordFor(weekKey)
		days := make([]string, len(dayKeys))
		for i, dayKey := range dayKeys {
			days[i] = technicianNames(technicians, row.AssignmentFor(dayKey).TechnicianIDs, "\n")
		}
		rows = append(rows, WeeklyGridRow{
			Kind:    "route",
			Name:    row.Name,
			Days:    days,
			Tools:   record.Tools,
			Vehicle: domain.VehicleName(vehicles, record.VehicleID),
			Meta:    record.Meta,
			Notes:   record.Notes,
		})
	}

	return WeeklyGrid{
		Region:  region,
		WeekKey: weekKey,
		Period:  WeekPeriodLabel(referenceDate),
		DayKeys: dayKeys,
		Rows:    rows,
	}
}

// BuildMonthlyList flattens every assignment of referenceDate's month
// into one record per (route, day), sorted ascending by date.
func BuildMonthlyList(
	plan domain.Plan,
	technicians []domain.Technician,
	vehicles []domain.Vehicle,
	referenceDate time.Time,
) []PeriodEntry {
	return listBetween(plan, technicians, vehicles, domain.StartOfMonth(referenceDate), domain.EndOfMonth(referenceDate))
}

// BuildAnnualList is the same flattening over a whole calendar year.
func BuildAnnualList(
	plan domain.Plan,
	technicians []domain.Technician,
	vehicles []domain.Vehicle,
	referenceDate time.Time,
) []PeriodEntry {
	return listBetween(plan, technicians, vehicles, domain.StartOfYear(referenceDate), domain.EndOfYear(referenceDate))
}

// listBetween emits one record per assigned (route, day) pair with
// dayKey in [from, to]. A day whose week has no stored record still
// yields a row with empty tools/vehicle/notes: technician presence is
// sufficient to emit.
func listBetween(
	plan domain.Plan,
	technicians []domain.Technician,
	vehicles []domain.Vehicle,
	from, to time.Time,
) []PeriodEntry {
	// Bounds carry the caller's location while day keys parse as UTC
	// midnights. Day keys sort chronologically, so the range check
	// happens in key space to keep boundary days in the report.
	fromKey, toKey := domain.DayKey(from), domain.DayKey(to)

	entries := []PeriodEntry{}
	for _, row := range plan {
		if !row.IsRoute() {
			continue
		}
		for dayKey, assignment := range row.Assignments {
			if assignment.Empty() {
				continue
			}
			if dayKey < fromKey || dayKey > toKey {
				continue
			}
			date, err := domain.ParseDayKey(dayKey)
			if err != nil {
				continue // malformed key, skip rather than fail the report
			}

			record := row.WeeklyRecordFor(domain.WeekKey(date))
			entries = append(entries, PeriodEntry{
				Date:        date,
				Day:         date.Format(displayDateLayout),
				RouteName:   row.Name,
				Technicians: technicianNames(technicians, assignment.TechnicianIDs, ", "),
				Vehicle:     domain.VehicleName(vehicles, record.VehicleID),
				Tools:       record.Tools,
				Notes:       record.Notes,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].RouteName < entries[j].RouteName
	})
	return entries
}

// BuildMonthCalendar projects one month into the calendar grid handed
// to the image sink: six Monday-first weeks covering the month, each
// day listing its route assignments. With hideEmptyWeeks, weeks with no
// in-month assignment are omitted.
func BuildMonthCalendar(
	region string,
	plan domain.Plan,
	technicians []domain.Technician,
	referenceDate time.Time,
	hideEmptyWeeks bool,
) ports.CalendarDocument {
	first := domain.StartOfMonth(referenceDate)
	cursor := domain.StartOfISOWeek(first)

	weeks := make([][]ports.CalendarCell, 0, 6)
	for w := 0; w < 6; w++ {
		week := make([]ports.CalendarCell, 0, 7)
		hasEntries := false
		for d := 0; d < 7; d++ {
			inMonth := cursor.Month() == referenceDate.Month()
			entries := assignmentsForDay(plan, technicians, domain.DayKey(cursor))
			if inMonth && len(entries) > 0 {
				hasEntries = true
			}
			week = append(week, ports.CalendarCell{
				Day:     cursor.Day(),
				InMonth: inMonth,
				Entries: entries,
			})
			cursor = cursor.AddDate(0, 0, 1)
		}
		if hideEmptyWeeks && !hasEntries {
			continue
		}
		weeks = append(weeks, week)
	}

	return ports.CalendarDocument{
		Title:    region,
		Subtitle: fmt.Sprintf("%s de %d", MonthName(referenceDate), referenceDate.Year()),
		Weekdays: ptWeekdaysMin,
		Weeks:    weeks,
	}
}

// BuildYearCalendars returns the twelve month grids of referenceDate's
// year (entries included, so the sink can highlight assigned days).
func BuildYearCalendars(
	region string,
	plan domain.Plan,
	technicians []domain.Technician,
	referenceDate time.Time,
) []ports.CalendarDocument {
	months := make([]ports.CalendarDocument, 0, 12)
	for m := time.January; m <= time.December; m++ {
		ref := time.Date(referenceDate.Year(), m, 1, 0, 0, 0, 0, referenceDate.Location())
		months = append(months, BuildMonthCalendar(region, plan, technicians, ref, false))
	}
	return months
}

// assignmentsForDay collects every route's non-empty assignment on the
// given day, in plan order.
func assignmentsForDay(plan domain.Plan, technicians []domain.Technician, dayKey string) []ports.CalendarEntry {
	var entries []ports.CalendarEntry
	for _, row := range plan {
		if !row.IsRoute() {
			continue
		}
		assignment := row.AssignmentFor(dayKey)
		if assignment.Empty() {
			continue
		}
		names := make([]string, 0, len(assignment.TechnicianIDs))
		for _, id := range assignment.TechnicianIDs {
			names = append(names, domain.TechnicianName(technicians, id))
		}
		entries = append(entries, ports.CalendarEntry{RouteName: row.Name, Technicians: names})
	}
	return entries
}

// technicianNames joins resolved names with sep, falling back to raw
// ids for technicians that no longer exist.
func technicianNames(technicians []domain.Technician, ids []string, sep string) string {
	if len(ids) == 0 {
		return ""
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, domain.TechnicianName(technicians, id))
	}
	return strings.Join(names, sep)
}
