package handlers

import (
	"net/http"
	"strings"

	logrus "github.com/sirupsen/logrus"

	"route-plan-service/internal/api/dto"
	"route-plan-service/internal/domain"
	"route-plan-service/internal/ports"
	"route-plan-service/internal/services"
)

// PlanHandler exposes the plan collection and its row operations.
// Every mutation is load, pure transform, save; the repository is the
// only shared state.
type PlanHandler struct {
	Plans ports.PlanRepository
}

// ListAll returns the whole collection keyed by region.
func (h *PlanHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Plans.LoadPlans(r.Context())
	if err != nil {
		logrus.Errorf("list plans failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	writeJSON(w, r, http.StatusOK, plans)
}

// Get returns one region's plan. With a week parameter the plan is
// narrowed to rows visible in that week; an empty array then means
// "routes exist but none is active".
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	plans, err := h.Plans.LoadPlans(r.Context())
	if err != nil {
		logrus.Errorf("get plan failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	plan := plans[r.PathValue("region")]
	if plan == nil {
		plan = domain.Plan{}
	}

	if raw := r.URL.Query().Get("week"); raw != "" {
		date, err := domain.ParseDayKey(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "week must be a YYYY-MM-DD date")
			return
		}
		plan = services.FilterForWeek(plan, date)
	}

	writeJSON(w, r, http.StatusOK, plan)
}

// Replace swaps one region's plan wholesale, the bulk-edit save path.
func (h *PlanHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var plan domain.Plan
	if !decodeJSON(w, r, &plan) {
		return
	}

	for _, row := range plan {
		if row.Type != domain.RowTypeGroup && row.Type != domain.RowTypeRoute {
			writeError(w, r, http.StatusBadRequest, "row has unknown type")
			return
		}
		if strings.TrimSpace(row.ID) == "" {
			writeError(w, r, http.StatusBadRequest, "row is missing an id")
			return
		}
	}

	h.mutate(w, r, func(plans domain.PlanCollection) domain.PlanCollection {
		out := clone(plans)
		out[r.PathValue("region")] = plan
		return out
	}, http.StatusNoContent, nil)
}

// InsertGroup appends a group header row.
func (h *PlanHandler) InsertGroup(w http.ResponseWriter, r *http.Request) {
	var req dto.InsertGroupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	var created string
	h.mutate(w, r, func(plans domain.PlanCollection) domain.PlanCollection {
		out := clone(plans)
		region := r.PathValue("region")
		updated := out[region].InsertGroup(req.Name)
		created = updated[len(updated)-1].ID
		out[region] = updated
		return out
	}, http.StatusCreated, func() any { return dto.RowResponse{ID: created} })
}

// InsertRoute adds a route at the end of the target group's block, or
// at the end of the plan for an unknown or absent group.
func (h *PlanHandler) InsertRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.InsertRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	var created string
	h.mutate(w, r, func(plans domain.PlanCollection) domain.PlanCollection {
		out := clone(plans)
		region := r.PathValue("region")
		updated := out[region].InsertRoute(req.AfterGroupID, req.Name)
		for _, row := range updated {
			if _, exists := out[region].FindRow(row.ID); !exists {
				created = row.ID
			}
		}
		out[region] = updated
		return out
	}, http.StatusCreated, func() any { return dto.RowResponse{ID: created} })
}

// DeleteRow removes a row; deleting a group detaches its members.
func (h *PlanHandler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(plans domain.PlanCollection) domain.PlanCollection {
		out := clone(plans)
		region := r.PathValue("region")
		out[region] = out[region].DeleteRow(r.PathValue("id"))
		return out
	}, http.StatusNoContent, nil)
}

// UpdateRoute replaces a route's editable fields in place.
func (h *PlanHandler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.mutate(w, r, func(plans domain.PlanCollection) domain.PlanCollection {
		out := clone(plans)
		region := r.PathValue("region")
		out[region] = out[region].UpdateRoute(r.PathValue("id"), domain.PlanRow{
			Name:        req.Name,
			GroupID:     req.GroupID,
			Assignments: req.Assignments,
			WeeklyData:  req.WeeklyData,
		})
		return out
	}, http.StatusNoContent, nil)
}

// SetAssignment writes one route's technician list for a single day.
// An empty list clears the day entry.
func (h *PlanHandler) SetAssignment(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	day := r.PathValue("day")
	if _, err := domain.ParseDayKey(day); err != nil {
		writeError(w, r, http.StatusBadRequest, "day must be a YYYY-MM-DD date")
		return
	}

	h.mutateRoute(w, r, func(row domain.PlanRow) domain.PlanRow {
		return row.SetDailyAssignment(day, req.TechnicianIDs)
	})
}

// SetWeeklyField writes one field of a route's weekly record.
func (h *PlanHandler) SetWeeklyField(w http.ResponseWriter, r *http.Request) {
	var req dto.WeeklyFieldRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	field := domain.WeeklyField(req.Field)
	switch field {
	case domain.FieldTools, domain.FieldVehicle, domain.FieldMeta, domain.FieldNotes:
	default:
		writeError(w, r, http.StatusBadRequest, "unknown weekly field")
		return
	}

	week := r.PathValue("week")
	h.mutateRoute(w, r, func(row domain.PlanRow) domain.PlanRow {
		return row.SetWeeklyField(week, field, req.Value)
	})
}

// ClearWeek wipes a route's weekday assignments and weekly record for
// the week containing the given date.
func (h *PlanHandler) ClearWeek(w http.ResponseWriter, r *http.Request) {
	var req dto.ClearWeekRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := domain.ParseDayKey(req.Week)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "week must be a YYYY-MM-DD date")
		return
	}

	weekKey := domain.WeekKey(date)
	weekDays := domain.WeekdayKeys(date)
	h.mutateRoute(w, r, func(row domain.PlanRow) domain.PlanRow {
		return row.ClearWeek(weekKey, weekDays)
	})
}

// mutate runs transform over the loaded collection and persists the
// result, then answers with status and the optional response body.
func (h *PlanHandler) mutate(
	w http.ResponseWriter,
	r *http.Request,
	transform func(domain.PlanCollection) domain.PlanCollection,
	status int,
	respond func() any,
) {
	plans, err := h.Plans.LoadPlans(r.Context())
	if err != nil {
		logrus.Errorf("mutate plan failed: load: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.Plans.SavePlans(r.Context(), transform(plans)); err != nil {
		logrus.Errorf("mutate plan failed: save: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if respond != nil {
		writeJSON(w, r, status, respond())
		return
	}
	w.WriteHeader(status)
}

// mutateRoute applies fn to one route row, 404ing when the row is
// missing or a group.
func (h *PlanHandler) mutateRoute(w http.ResponseWriter, r *http.Request, fn func(domain.PlanRow) domain.PlanRow) {
	region, id := r.PathValue("region"), r.PathValue("id")

	plans, err := h.Plans.LoadPlans(r.Context())
	if err != nil {
		logrus.Errorf("mutate route failed: load: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	row, ok := plans[region].FindRow(id)
	if !ok || !row.IsRoute() {
		writeError(w, r, http.StatusNotFound, "route not found")
		return
	}

	out := clone(plans)
	out[region] = out[region].UpdateRow(id, fn(row))
	if err := h.Plans.SavePlans(r.Context(), out); err != nil {
		logrus.Errorf("mutate route failed: save: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func clone(plans domain.PlanCollection) domain.PlanCollection {
	out := make(domain.PlanCollection, len(plans))
	for region, plan := range plans {
		out[region] = plan
	}
	return out
}
