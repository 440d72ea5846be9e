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

// IdentityHandler manages the technician and vehicle lists. Replacing a
// list diffs the removed ids and cascades the prune across every plan
// before anything is saved, so a deleted identity never leaves dangling
// references behind.
type IdentityHandler struct {
	Plans       ports.PlanRepository
	Technicians ports.TechnicianRepository
	Vehicles    ports.VehicleRepository
}

func (h *IdentityHandler) ListTechnicians(w http.ResponseWriter, r *http.Request) {
	technicians, err := h.Technicians.LoadTechnicians(r.Context())
	if err != nil {
		logrus.Errorf("list technicians failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.IdentityListResponse{Items: make([]dto.IdentityItem, 0, len(technicians))}
	for _, t := range technicians {
		res.Items = append(res.Items, dto.IdentityItem{ID: t.ID, Name: t.Name})
	}
	writeJSON(w, r, http.StatusOK, res)
}

// CreateTechnician appends a technician with a server-generated id, so
// clients never have to mint ids for single additions.
func (h *IdentityHandler) CreateTechnician(w http.ResponseWriter, r *http.Request) {
	var req dto.IdentityCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	technicians, err := h.Technicians.LoadTechnicians(r.Context())
	if err != nil {
		logrus.Errorf("create technician failed: load: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	created := domain.NewTechnician(req.Name)
	if err := h.Technicians.SaveTechnicians(r.Context(), append(technicians, created)); err != nil {
		logrus.Errorf("create technician failed: save: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.IdentityItem{ID: created.ID, Name: created.Name})
}

func (h *IdentityHandler) ReplaceTechnicians(w http.ResponseWriter, r *http.Request) {
	var req dto.IdentityListRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validItems(w, r, req.Items) {
		return
	}

	current, err := h.Technicians.LoadTechnicians(r.Context())
	if err != nil {
		logrus.Errorf("replace technicians failed: load: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	currentIDs := make([]string, 0, len(current))
	for _, t := range current {
		currentIDs = append(currentIDs, t.ID)
	}

	removed := removedIDs(currentIDs, req.Items)
	if len(removed) > 0 {
		plans, err := h.Plans.LoadPlans(r.Context())
		if err != nil {
			logrus.Errorf("replace technicians failed: load plans: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		for _, id := range removed {
			plans = services.PruneTechnician(plans, id)
		}
		if err := h.Plans.SavePlans(r.Context(), plans); err != nil {
			logrus.Errorf("replace technicians failed: save plans: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	technicians := make([]domain.Technician, 0, len(req.Items))
	for _, item := range req.Items {
		technicians = append(technicians, domain.Technician{ID: item.ID, Name: item.Name})
	}
	if err := h.Technicians.SaveTechnicians(r.Context(), technicians); err != nil {
		logrus.Errorf("replace technicians failed: save: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *IdentityHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Vehicles.LoadVehicles(r.Context())
	if err != nil {
		logrus.Errorf("list vehicles failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.IdentityListResponse{Items: make([]dto.IdentityItem, 0, len(vehicles))}
	for _, v := range vehicles {
		res.Items = append(res.Items, dto.IdentityItem{ID: v.ID, Name: v.Name})
	}
	writeJSON(w, r, http.StatusOK, res)
}

// CreateVehicle mirrors CreateTechnician for the vehicle list.
func (h *IdentityHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req dto.IdentityCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	vehicles, err := h.Vehicles.LoadVehicles(r.Context())
	if err != nil {
		logrus.Errorf("create vehicle failed: load: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	created := domain.NewVehicle(req.Name)
	if err := h.Vehicles.SaveVehicles(r.Context(), append(vehicles, created)); err != nil {
		logrus.Errorf("create vehicle failed: save: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.IdentityItem{ID: created.ID, Name: created.Name})
}

func (h *IdentityHandler) ReplaceVehicles(w http.ResponseWriter, r *http.Request) {
	var req dto.IdentityListRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validItems(w, r, req.Items) {
		return
	}

	current, err := h.Vehicles.LoadVehicles(r.Context())
	if err != nil {
		logrus.Errorf("replace vehicles failed: load: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	currentIDs := make([]string, 0, len(current))
	for _, v := range current {
		currentIDs = append(currentIDs, v.ID)
	}

	removed := removedIDs(currentIDs, req.Items)
	if len(removed) > 0 {
		plans, err := h.Plans.LoadPlans(r.Context())
		if err != nil {
			logrus.Errorf("replace vehicles failed: load plans: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		for _, id := range removed {
			plans = services.PruneVehicle(plans, id)
		}
		if err := h.Plans.SavePlans(r.Context(), plans); err != nil {
			logrus.Errorf("replace vehicles failed: save plans: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	vehicles := make([]domain.Vehicle, 0, len(req.Items))
	for _, item := range req.Items {
		vehicles = append(vehicles, domain.Vehicle{ID: item.ID, Name: item.Name})
	}
	if err := h.Vehicles.SaveVehicles(r.Context(), vehicles); err != nil {
		logrus.Errorf("replace vehicles failed: save: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func validItems(w http.ResponseWriter, r *http.Request, items []dto.IdentityItem) bool {
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.Name) == "" {
			writeError(w, r, http.StatusBadRequest, "items need an id and a name")
			return false
		}
	}
	return true
}

// removedIDs lists the ids present in current but absent from next.
func removedIDs(current []string, next []dto.IdentityItem) []string {
	kept := make(map[string]struct{}, len(next))
	for _, item := range next {
		kept[item.ID] = struct{}{}
	}

	var removed []string
	for _, id := range current {
		if _, ok := kept[id]; !ok {
			removed = append(removed, id)
		}
	}
	return removed
}
