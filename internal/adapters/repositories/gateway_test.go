package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"route-plan-service/internal/adapters/kvstore"
	"route-plan-service/internal/domain"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestGateway() (*Gateway, *kvstore.MemoryStore) {
	store := kvstore.NewMemoryStore()
	return NewGateway(store, quietLogger()), store
}

func TestLoadPlansMissingKeyReturnsEmpty(t *testing.T) {
	g, _ := newTestGateway()

	plans, err := g.LoadPlans(context.Background())
	if err != nil {
		t.Fatalf("LoadPlans: %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("plans = %v, want empty collection", plans)
	}
}

func TestLoadPlansCorruptDocumentFailsOpen(t *testing.T) {
	g, store := newTestGateway()
	ctx := context.Background()
	store.Set(ctx, PlansKey, "{not json")

	plans, err := g.LoadPlans(ctx)
	if err != nil {
		t.Fatalf("LoadPlans: %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("plans = %v, want empty collection", plans)
	}
}

func TestSaveThenLoadPlansRoundTrip(t *testing.T) {
	g, _ := newTestGateway()
	ctx := context.Background()

	in := domain.PlanCollection{
		"Central": {
			domain.NewGroupRow("NORTE"),
		},
	}
	in["Central"] = in["Central"].InsertRoute(in["Central"][0].ID, "BETIM")

	if err := g.SavePlans(ctx, in); err != nil {
		t.Fatalf("SavePlans: %v", err)
	}

	out, err := g.LoadPlans(ctx)
	if err != nil {
		t.Fatalf("LoadPlans: %v", err)
	}
	plan := out["Central"]
	if len(plan) != 2 {
		t.Fatalf("rows = %d, want 2", len(plan))
	}
	if !plan[0].IsGroup() || plan[0].Name != "NORTE" {
		t.Errorf("row 0 = %+v", plan[0])
	}
	if !plan[1].IsRoute() || plan[1].GroupID != plan[0].ID {
		t.Errorf("row 1 = %+v, want member of %q", plan[1], plan[0].ID)
	}
	if plan[1].Assignments == nil || plan[1].WeeklyData == nil {
		t.Error("route maps decoded as nil, want empty maps")
	}
}

func TestLoadPlansFallsBackToLegacyKey(t *testing.T) {
	g, store := newTestGateway()
	ctx := context.Background()

	legacy := `{"Central":[
		{"type":"group","id":"g1","name":"NORTE"},
		{"type":"route","id":"r1","name":"BETIM","assignments":{},
		 "tools":"escada","vehicleId":"v1","meta":"10","notes":"obs"}
	]}`
	store.Set(ctx, LegacyPlansKey, legacy)

	plans, err := g.LoadPlans(ctx)
	if err != nil {
		t.Fatalf("LoadPlans: %v", err)
	}

	route, ok := plans["Central"].FindRow("r1")
	if !ok {
		t.Fatal("route r1 missing after migration")
	}
	if route.GroupID != "g1" {
		t.Errorf("groupId = %q, want adjacency-derived g1", route.GroupID)
	}
	if route.WeeklyData == nil || len(route.WeeklyData) != 0 {
		t.Errorf("weeklyData = %v, want added empty map", route.WeeklyData)
	}
}

func TestMigrateDropsLegacyFieldsAndAddsMaps(t *testing.T) {
	raw := []byte(`{"Central":[
		{"type":"route","id":"r1","name":"BETIM",
		 "tools":"escada","vehicleId":"v1","meta":"10","notes":"obs"}
	]}`)

	migrated, err := MigratePlansDocument(raw)
	if err != nil {
		t.Fatalf("MigratePlansDocument: %v", err)
	}

	var doc map[string][]map[string]json.RawMessage
	if err := json.Unmarshal(migrated, &doc); err != nil {
		t.Fatalf("parse migrated: %v", err)
	}
	row := doc["Central"][0]
	for _, field := range []string{"tools", "vehicleId", "meta", "notes"} {
		if _, ok := row[field]; ok {
			t.Errorf("legacy field %q survived migration", field)
		}
	}
	for _, field := range []string{"weeklyData", "assignments", "groupId"} {
		if _, ok := row[field]; !ok {
			t.Errorf("field %q missing after migration", field)
		}
	}
}

func TestMigrateDerivesGroupFromAdjacency(t *testing.T) {
	raw := []byte(`{"Central":[
		{"type":"route","id":"r0","name":"SOLO","assignments":{},"weeklyData":{}},
		{"type":"group","id":"g1","name":"NORTE"},
		{"type":"route","id":"r1","name":"BETIM","assignments":{},"weeklyData":{}},
		{"type":"route","id":"r2","name":"SETE LAGOAS","assignments":{},"weeklyData":{},"groupId":""}
	]}`)

	migrated, err := MigratePlansDocument(raw)
	if err != nil {
		t.Fatalf("MigratePlansDocument: %v", err)
	}

	var plans domain.PlanCollection
	if err := json.Unmarshal(migrated, &plans); err != nil {
		t.Fatalf("parse migrated: %v", err)
	}
	plan := plans["Central"]

	if row, _ := plan.FindRow("r0"); row.GroupID != "" {
		t.Errorf("route before any group got groupId %q", row.GroupID)
	}
	if row, _ := plan.FindRow("r1"); row.GroupID != "g1" {
		t.Errorf("r1 groupId = %q, want g1", row.GroupID)
	}
	// An explicit groupId, even empty, is left alone.
	if row, _ := plan.FindRow("r2"); row.GroupID != "" {
		t.Errorf("r2 groupId = %q, want the stored empty value", row.GroupID)
	}
}

func TestMigrateIsByteIdenticalOnSecondPass(t *testing.T) {
	raw := []byte(`{"Central":[
		{"type":"group","id":"g1","name":"NORTE"},
		{"type":"route","id":"r1","name":"BETIM",
		 "assignments":{"2026-05-04":{"technicianIds":["t1"]}},
		 "tools":"escada","notes":"obs"}
	]}`)

	once, err := MigratePlansDocument(raw)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	twice, err := MigratePlansDocument(once)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if !bytes.Equal(once, twice) {
		t.Fatalf("second pass changed bytes:\n%s\n%s", once, twice)
	}
}

func TestIdentityListsRoundTripWithEmptyDefaults(t *testing.T) {
	g, store := newTestGateway()
	ctx := context.Background()

	technicians, err := g.LoadTechnicians(ctx)
	if err != nil {
		t.Fatalf("LoadTechnicians: %v", err)
	}
	if technicians == nil || len(technicians) != 0 {
		t.Errorf("technicians = %v, want empty non-nil default", technicians)
	}

	if err := g.SaveTechnicians(ctx, []domain.Technician{{ID: "t1", Name: "Carlos"}}); err != nil {
		t.Fatalf("SaveTechnicians: %v", err)
	}
	if err := g.SaveVehicles(ctx, []domain.Vehicle{{ID: "v1", Name: "Fiorino"}}); err != nil {
		t.Fatalf("SaveVehicles: %v", err)
	}

	technicians, _ = g.LoadTechnicians(ctx)
	if len(technicians) != 1 || technicians[0].Name != "Carlos" {
		t.Errorf("technicians = %v", technicians)
	}
	vehicles, _ := g.LoadVehicles(ctx)
	if len(vehicles) != 1 || vehicles[0].ID != "v1" {
		t.Errorf("vehicles = %v", vehicles)
	}

	store.Set(ctx, VehiclesKey, "corrupt")
	vehicles, err = g.LoadVehicles(ctx)
	if err != nil {
		t.Fatalf("LoadVehicles corrupt: %v", err)
	}
	if len(vehicles) != 0 {
		t.Errorf("vehicles = %v, want empty on corrupt document", vehicles)
	}
}

func TestHasPlans(t *testing.T) {
	g, store := newTestGateway()
	ctx := context.Background()

	if ok, err := g.HasPlans(ctx); err != nil || ok {
		t.Fatalf("HasPlans on empty store: ok=%v err=%v", ok, err)
	}

	store.Set(ctx, LegacyPlansKey, "{}")
	if ok, err := g.HasPlans(ctx); err != nil || !ok {
		t.Fatalf("HasPlans with legacy data: ok=%v err=%v", ok, err)
	}
}
