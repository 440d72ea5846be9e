package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"route-plan-service/internal/domain"
	"route-plan-service/internal/ports"
)

// Versioned storage keys. The plans key is bumped on schema changes so
// old and new shapes never collide in the same document.
const (
	PlansKey       = "routeplanner:plans:v3"
	LegacyPlansKey = "routeplanner:plans:v2"
	TechniciansKey = "routeplanner:technicians:v1"
	VehiclesKey    = "routeplanner:vehicles:v1"
)

// Gateway persists the plan collection and the identity lists through a
// key-value document store.
//
// Loads fail open: a missing key, a store error and a corrupt document
// all degrade to the empty default with a logged warning, never an
// error to the caller. Saves report their errors after logging them.
type Gateway struct {
	KV  ports.KeyValueStore
	Log *logrus.Logger
}

func NewGateway(kv ports.KeyValueStore, log *logrus.Logger) *Gateway {
	return &Gateway{KV: kv, Log: log}
}

// LoadPlans reads the current plans document, falling back to the
// legacy key once, and runs the schema migration before decoding. The
// migrated shape is only written back on the next SavePlans.
func (g *Gateway) LoadPlans(ctx context.Context) (domain.PlanCollection, error) {
	body, ok, err := g.KV.Get(ctx, PlansKey)
	if err != nil {
		g.Log.Warnf("load plans: read %s: %v", PlansKey, err)
		return domain.PlanCollection{}, nil
	}
	if !ok {
		body, ok, err = g.KV.Get(ctx, LegacyPlansKey)
		if err != nil {
			g.Log.Warnf("load plans: read %s: %v", LegacyPlansKey, err)
			return domain.PlanCollection{}, nil
		}
	}
	if !ok {
		return domain.PlanCollection{}, nil
	}

	migrated, err := MigratePlansDocument([]byte(body))
	if err != nil {
		g.Log.Warnf("load plans: %v", err)
		return domain.PlanCollection{}, nil
	}

	var plans domain.PlanCollection
	if err := json.Unmarshal(migrated, &plans); err != nil {
		g.Log.Warnf("load plans: decode migrated document: %v", err)
		return domain.PlanCollection{}, nil
	}
	return plans, nil
}

// SavePlans writes the full collection under the current versioned key.
func (g *Gateway) SavePlans(ctx context.Context, plans domain.PlanCollection) error {
	body, err := json.Marshal(plans)
	if err != nil {
		g.Log.Errorf("save plans: encode collection: %v", err)
		return fmt.Errorf("save plans: encode collection: %w", err)
	}
	if err := g.KV.Set(ctx, PlansKey, string(body)); err != nil {
		g.Log.Errorf("save plans: write %s: %v", PlansKey, err)
		return fmt.Errorf("save plans: write %s: %w", PlansKey, err)
	}
	return nil
}

// LoadTechnicians reads the technician list; no migration applies.
func (g *Gateway) LoadTechnicians(ctx context.Context) ([]domain.Technician, error) {
	var technicians []domain.Technician
	g.loadList(ctx, TechniciansKey, &technicians)
	if technicians == nil {
		technicians = []domain.Technician{}
	}
	return technicians, nil
}

func (g *Gateway) SaveTechnicians(ctx context.Context, technicians []domain.Technician) error {
	return g.saveList(ctx, TechniciansKey, technicians)
}

// LoadVehicles reads the vehicle list; no migration applies.
func (g *Gateway) LoadVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	g.loadList(ctx, VehiclesKey, &vehicles)
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return vehicles, nil
}

func (g *Gateway) SaveVehicles(ctx context.Context, vehicles []domain.Vehicle) error {
	return g.saveList(ctx, VehiclesKey, vehicles)
}

func (g *Gateway) loadList(ctx context.Context, key string, into any) {
	body, ok, err := g.KV.Get(ctx, key)
	if err != nil {
		g.Log.Warnf("load %s: %v", key, err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(body), into); err != nil {
		g.Log.Warnf("load %s: decode document: %v", key, err)
	}
}

func (g *Gateway) saveList(ctx context.Context, key string, list any) error {
	body, err := json.Marshal(list)
	if err != nil {
		g.Log.Errorf("save %s: encode document: %v", key, err)
		return fmt.Errorf("save %s: encode document: %w", key, err)
	}
	if err := g.KV.Set(ctx, key, string(body)); err != nil {
		g.Log.Errorf("save %s: %v", key, err)
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
