package services

import (
	"testing"
	"time"

	"route-plan-service/internal/domain"
)

// Week 19 of 2026: Monday 2026-05-04 through Friday 2026-05-08.
var week19 = time.Date(2026, time.May, 6, 0, 0, 0, 0, time.UTC)

func visibilityPlan() domain.Plan {
	return domain.Plan{
		{Type: domain.RowTypeGroup, ID: "gA", Name: "A"},
		{
			Type: domain.RowTypeRoute, ID: "r1", Name: "R1", GroupID: "gA",
			Assignments: map[string]domain.DailyAssignment{
				"2026-05-04": {TechnicianIDs: []string{"t1"}},
			},
		},
		{Type: domain.RowTypeRoute, ID: "r2", Name: "R2", GroupID: "gA"},
	}
}

func rowIDs(p domain.Plan) []string {
	ids := make([]string, len(p))
	for i, row := range p {
		ids[i] = row.ID
	}
	return ids
}

func TestFilterForWeekKeepsActiveRoutesAndTheirGroups(t *testing.T) {
	got := FilterForWeek(visibilityPlan(), week19)

	want := []string{"gA", "r1"}
	ids := rowIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("rows = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("rows = %v, want %v", ids, want)
		}
	}
}

func TestFilterForWeekIgnoresOtherWeeks(t *testing.T) {
	// Same plan, viewed one week later: R1's Monday assignment is out
	// of range, so the plan has routes but nothing visible.
	got := FilterForWeek(visibilityPlan(), week19.AddDate(0, 0, 7))
	if len(got) != 0 {
		t.Fatalf("rows = %v, want empty nothing-to-show result", rowIDs(got))
	}
}

func TestFilterForWeekEmptyAssignmentIsInactive(t *testing.T) {
	plan := domain.Plan{
		{
			Type: domain.RowTypeRoute, ID: "r1", Name: "R1",
			Assignments: map[string]domain.DailyAssignment{
				"2026-05-04": {TechnicianIDs: []string{}},
			},
		},
	}
	if got := FilterForWeek(plan, week19); len(got) != 0 {
		t.Fatalf("rows = %v, want empty", rowIDs(got))
	}
}

func TestFilterForWeekKeepsUngroupedActiveRoute(t *testing.T) {
	plan := domain.Plan{
		{
			Type: domain.RowTypeRoute, ID: "r9", Name: "SOLO",
			Assignments: map[string]domain.DailyAssignment{
				"2026-05-08": {TechnicianIDs: []string{"t3"}},
			},
		},
	}
	got := FilterForWeek(plan, week19)
	if len(got) != 1 || got[0].ID != "r9" {
		t.Fatalf("rows = %v, want [r9]", rowIDs(got))
	}
}

func TestFilterForWeekDropsMemberlessGroups(t *testing.T) {
	plan := append(visibilityPlan(),
		domain.PlanRow{Type: domain.RowTypeGroup, ID: "gB", Name: "B"},
		domain.PlanRow{Type: domain.RowTypeRoute, ID: "r3", Name: "R3", GroupID: "gB"},
	)
	got := FilterForWeek(plan, week19)
	for _, row := range got {
		if row.ID == "gB" {
			t.Fatal("group without active members kept")
		}
	}
}

func TestFilterForWeekGroupsOnlyPlanStaysEmpty(t *testing.T) {
	plan := domain.Plan{{Type: domain.RowTypeGroup, ID: "gA", Name: "A"}}
	if got := FilterForWeek(plan, week19); len(got) != 0 {
		t.Fatalf("rows = %v, want empty", rowIDs(got))
	}
}
