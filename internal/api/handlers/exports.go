package handlers

import (
	"net/http"

	"route-plan-service/internal/api/dto"
	"route-plan-service/internal/domain"
	"route-plan-service/internal/services"
)

// ExportHandler turns report projections into downloadable artifacts.
// Responses come back as soon as the payload is built; rendering is
// dispatched in the background and failures surface in the log only.
type ExportHandler struct {
	Reports  *ReportHandler
	Exporter *services.Exporter
}

func (h *ExportHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	in, ok := h.Reports.inputs(w, r, domain.PeriodWeek)
	if !ok {
		return
	}

	grid := services.BuildWeeklyGrid(in.regionName, in.plan, in.technicians, in.vehicles, in.date)
	name, err := h.Exporter.ExportWeekly(grid, r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusAccepted, dto.ExportResponse{File: name})
}

func (h *ExportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	in, ok := h.Reports.inputs(w, r, domain.PeriodMonth)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")

	// PNG means the calendar rendering; pdf/csv the flat list.
	if format == services.FormatPNG {
		doc := services.BuildMonthCalendar(in.regionName, in.plan, in.technicians, in.date, h.Reports.HideEmptyWeeks)
		name, err := h.Exporter.ExportMonthCalendar(doc, in.regionName, in.date, format)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, r, http.StatusAccepted, dto.ExportResponse{File: name})
		return
	}

	entries := services.BuildMonthlyList(in.plan, in.technicians, in.vehicles, in.date)
	name, err := h.Exporter.ExportMonthly(in.regionName, entries, in.date, format)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusAccepted, dto.ExportResponse{File: name})
}

func (h *ExportHandler) Annual(w http.ResponseWriter, r *http.Request) {
	in, ok := h.Reports.inputs(w, r, domain.PeriodYear)
	if !ok {
		return
	}

	entries := services.BuildAnnualList(in.plan, in.technicians, in.vehicles, in.date)
	name, err := h.Exporter.ExportAnnual(in.regionName, entries, in.date, r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusAccepted, dto.ExportResponse{File: name})
}
