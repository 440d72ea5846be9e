package handlers

import (
	"net/http"
	"time"

	logrus "github.com/sirupsen/logrus"

	"route-plan-service/internal/domain"
	"route-plan-service/internal/ports"
	"route-plan-service/internal/services"
)

// ReportHandler serves the JSON report projections. The date query
// parameter picks the reference week/month/year; it defaults to today.
// nav=prev or nav=next steps the reference date one period back or
// forward, which is how clients page between weeks, months and years.
type ReportHandler struct {
	Plans       ports.PlanRepository
	Technicians ports.TechnicianRepository
	Vehicles    ports.VehicleRepository

	// RegionName maps a region id to its display name for titles.
	RegionName func(string) string
	// HideEmptyWeeks is the configured default for the monthly
	// calendar view.
	HideEmptyWeeks bool
}

func (h *ReportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	in, ok := h.inputs(w, r, domain.PeriodWeek)
	if !ok {
		return
	}
	grid := services.BuildWeeklyGrid(in.regionName, in.plan, in.technicians, in.vehicles, in.date)
	writeJSON(w, r, http.StatusOK, grid)
}

func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	in, ok := h.inputs(w, r, domain.PeriodMonth)
	if !ok {
		return
	}

	if r.URL.Query().Get("view") == "calendar" {
		doc := services.BuildMonthCalendar(in.regionName, in.plan, in.technicians, in.date, h.HideEmptyWeeks)
		writeJSON(w, r, http.StatusOK, doc)
		return
	}

	entries := services.BuildMonthlyList(in.plan, in.technicians, in.vehicles, in.date)
	writeJSON(w, r, http.StatusOK, entries)
}

func (h *ReportHandler) Annual(w http.ResponseWriter, r *http.Request) {
	in, ok := h.inputs(w, r, domain.PeriodYear)
	if !ok {
		return
	}

	if r.URL.Query().Get("view") == "calendar" {
		docs := services.BuildYearCalendars(in.regionName, in.plan, in.technicians, in.date)
		writeJSON(w, r, http.StatusOK, docs)
		return
	}

	entries := services.BuildAnnualList(in.plan, in.technicians, in.vehicles, in.date)
	writeJSON(w, r, http.StatusOK, entries)
}

type reportInputs struct {
	regionName  string
	plan        domain.Plan
	technicians []domain.Technician
	vehicles    []domain.Vehicle
	date        time.Time
}

// inputs gathers the report dependencies shared by every projection:
// region, reference date (shifted by nav when given), plan and both
// identity lists.
func (h *ReportHandler) inputs(w http.ResponseWriter, r *http.Request, period domain.Period) (reportInputs, bool) {
	region := r.URL.Query().Get("region")
	if region == "" {
		writeError(w, r, http.StatusBadRequest, "region is required")
		return reportInputs{}, false
	}

	date, ok := referenceDate(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "date must be a YYYY-MM-DD date")
		return reportInputs{}, false
	}

	switch nav := r.URL.Query().Get("nav"); nav {
	case "":
	case "next":
		date = domain.NextPeriod(date, period)
	case "prev":
		date = domain.PrevPeriod(date, period)
	default:
		writeError(w, r, http.StatusBadRequest, "nav must be prev or next")
		return reportInputs{}, false
	}

	plans, err := h.Plans.LoadPlans(r.Context())
	if err != nil {
		logrus.Errorf("report inputs failed: load plans: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return reportInputs{}, false
	}
	technicians, err := h.Technicians.LoadTechnicians(r.Context())
	if err != nil {
		logrus.Errorf("report inputs failed: load technicians: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return reportInputs{}, false
	}
	vehicles, err := h.Vehicles.LoadVehicles(r.Context())
	if err != nil {
		logrus.Errorf("report inputs failed: load vehicles: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return reportInputs{}, false
	}

	name := region
	if h.RegionName != nil {
		name = h.RegionName(region)
	}

	return reportInputs{
		regionName:  name,
		plan:        plans[region],
		technicians: technicians,
		vehicles:    vehicles,
		date:        date,
	}, true
}
