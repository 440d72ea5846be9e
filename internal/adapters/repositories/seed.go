package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"route-plan-service/internal/domain"
)

// Populate the store with plan, technician and vehicle data from the
// JSON files in dir (plans.json, technicians.json, vehicles.json).
// Existing documents are replaced.
func SeedFromJSON(ctx context.Context, g *Gateway, dir string) error {
	plans, err := readSeedPlans(filepath.Join(dir, "plans.json"))
	if err != nil {
		return err
	}
	technicians, err := readSeedTechnicians(filepath.Join(dir, "technicians.json"))
	if err != nil {
		return err
	}
	vehicles, err := readSeedVehicles(filepath.Join(dir, "vehicles.json"))
	if err != nil {
		return err
	}

	if err := g.SavePlans(ctx, plans); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := g.SaveTechnicians(ctx, technicians); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := g.SaveVehicles(ctx, vehicles); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	return nil
}

// HasPlans reports whether a plans document already exists under either
// the current or the legacy key, so first-run seeding can be skipped.
func (g *Gateway) HasPlans(ctx context.Context) (bool, error) {
	if _, ok, err := g.KV.Get(ctx, PlansKey); err != nil || ok {
		return ok, err
	}
	_, ok, err := g.KV.Get(ctx, LegacyPlansKey)
	return ok, err
}

func readSeedPlans(path string) (domain.PlanCollection, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed plans: read %q: %w", path, err)
	}

	var plans domain.PlanCollection
	if err := json.Unmarshal(bytes, &plans); err != nil {
		return nil, fmt.Errorf("seed plans: parse json: %w", err)
	}

	for region, plan := range plans {
		if strings.TrimSpace(region) == "" {
			return nil, fmt.Errorf("seed plans: empty region name")
		}
		for i, row := range plan {
			if row.Type != domain.RowTypeGroup && row.Type != domain.RowTypeRoute {
				return nil, fmt.Errorf("seed plans: region %q row %d: unknown type %q", region, i+1, row.Type)
			}
			if strings.TrimSpace(row.ID) == "" {
				return nil, fmt.Errorf("seed plans: region %q row %d: id cannot be empty", region, i+1)
			}
		}
	}

	return plans, nil
}

func readSeedTechnicians(path string) ([]domain.Technician, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed technicians: read %q: %w", path, err)
	}

	var items []domain.Technician
	if err := json.Unmarshal(bytes, &items); err != nil {
		return nil, fmt.Errorf("seed technicians: parse json: %w", err)
	}
	for i, item := range items {
		if err := validateIdentity(item.ID, item.Name); err != nil {
			return nil, fmt.Errorf("seed technicians: item at index %d: %w", i+1, err)
		}
	}

	return items, nil
}

func readSeedVehicles(path string) ([]domain.Vehicle, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed vehicles: read %q: %w", path, err)
	}

	var items []domain.Vehicle
	if err := json.Unmarshal(bytes, &items); err != nil {
		return nil, fmt.Errorf("seed vehicles: parse json: %w", err)
	}
	for i, item := range items {
		if err := validateIdentity(item.ID, item.Name); err != nil {
			return nil, fmt.Errorf("seed vehicles: item at index %d: %w", i+1, err)
		}
	}

	return items, nil
}

func validateIdentity(id, name string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}
