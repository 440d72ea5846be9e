package ports

import (
	"context"

	"route-plan-service/internal/domain"
)

// Port: a boundary for loading and saving the plan collection.
//
// Load never fails hard: missing and corrupt stored data both degrade
// to an empty collection so the caller can fall back to defaults.
type PlanRepository interface {
	LoadPlans(ctx context.Context) (domain.PlanCollection, error)
	SavePlans(ctx context.Context, plans domain.PlanCollection) error
}

// Port: a boundary for the technician list.
type TechnicianRepository interface {
	LoadTechnicians(ctx context.Context) ([]domain.Technician, error)
	SaveTechnicians(ctx context.Context, technicians []domain.Technician) error
}

// Port: a boundary for the vehicle list.
type VehicleRepository interface {
	LoadVehicles(ctx context.Context) ([]domain.Vehicle, error)
	SaveVehicles(ctx context.Context, vehicles []domain.Vehicle) error
}
