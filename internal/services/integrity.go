package services

import "route-plan-service/internal/domain"

// Referential-integrity maintenance for deleted technicians and
// vehicles. Both operations run across every plan in the collection —
// deleting an identity is a global operation — and are idempotent, so
// re-running them after a partial save is always safe. Inputs are never
// mutated; untouched plans and rows are shared with the input value.

// PruneTechnician removes technicianID from every daily assignment of
// every route. The day entry itself is kept even when it ends up empty:
// displays already treat an empty id list as "no assignment", and
// deleting the key here would diverge from data persisted by older
// versions. Lazy deletion of empty assignments only happens on direct
// writes (see PlanRow.SetDailyAssignment).
func PruneTechnician(plans domain.PlanCollection, technicianID string) domain.PlanCollection {
	return transformRoutes(plans, func(row domain.PlanRow) (domain.PlanRow, bool) {
		changedDays := map[string]domain.DailyAssignment{}
		for dayKey, assignment := range row.Assignments {
			ids, removed := removeID(assignment.TechnicianIDs, technicianID)
			if removed {
				changedDays[dayKey] = domain.DailyAssignment{TechnicianIDs: ids}
			}
		}
		if len(changedDays) == 0 {
			return row, false
		}

		assignments := make(map[string]domain.DailyAssignment, len(row.Assignments))
		for k, v := range row.Assignments {
			assignments[k] = v
		}
		for k, v := range changedDays {
			assignments[k] = v
		}
		row.Assignments = assignments
		return row, true
	})
}

// PruneVehicle clears the vehicle reference of every weekly record that
// points at vehicleID. The record itself is kept; tools, meta and notes
// are untouched.
func PruneVehicle(plans domain.PlanCollection, vehicleID string) domain.PlanCollection {
	if vehicleID == "" {
		return plans
	}
	return transformRoutes(plans, func(row domain.PlanRow) (domain.PlanRow, bool) {
		changed := false
		for _, record := range row.WeeklyData {
			if record.VehicleID == vehicleID {
				changed = true
				break
			}
		}
		if !changed {
			return row, false
		}

		weekly := make(map[string]domain.WeeklyRecord, len(row.WeeklyData))
		for weekKey, record := range row.WeeklyData {
			if record.VehicleID == vehicleID {
				record.VehicleID = ""
			}
			weekly[weekKey] = record
		}
		row.WeeklyData = weekly
		return row, true
	})
}

// transformRoutes applies fn to every route row of every plan, building
// new plans only where fn reports a change.
func transformRoutes(plans domain.PlanCollection, fn func(domain.PlanRow) (domain.PlanRow, bool)) domain.PlanCollection {
	out := make(domain.PlanCollection, len(plans))
	for region, plan := range plans {
		updated := plan
		copied := false
		for i, row := range plan {
			if !row.IsRoute() {
				continue
			}
			newRow, changed := fn(row)
			if !changed {
				continue
			}
			if !copied {
				updated = make(domain.Plan, len(plan))
				copy(updated, plan)
				copied = true
			}
			updated[i] = newRow
		}
		out[region] = updated
	}
	return out
}

// removeID filters id out of ids, reporting whether anything was removed.
func removeID(ids []string, id string) ([]string, bool) {
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			break
		}
	}
	if !found {
		return ids, false
	}

	out := make([]string, 0, len(ids)-1)
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out, true
}
