package services

import (
	"time"

	"route-plan-service/internal/domain"
)

// FilterForWeek derives the subset of plan rows visible under the
// "hide rows with no assignment this week" rule.
//
// A route is active when at least one of the five weekdays (Mon–Fri) of
// referenceDate's ISO week has a non-empty assignment. The result keeps,
// in original order, every active route and every group with at least
// one active member. Inactive routes and memberless groups are dropped.
//
// When the plan has routes but none is active, the result is an empty
// plan — a deliberate "nothing to show" signal, distinct from not
// filtering at all.
func FilterForWeek(plan domain.Plan, referenceDate time.Time) domain.Plan {
	weekDays := domain.WeekdayKeys(referenceDate)

	activeRoutes := map[string]bool{}
	activeGroups := map[string]bool{}
	for _, row := range plan {
		if !row.IsRoute() {
			continue
		}
		for _, dayKey := range weekDays {
			if row.AssignedOn(dayKey) {
				activeRoutes[row.ID] = true
				if row.GroupID != "" {
					activeGroups[row.GroupID] = true
				}
				break
			}
		}
	}

	if len(activeRoutes) == 0 && plan.HasRoutes() {
		return domain.Plan{}
	}

	out := make(domain.Plan, 0, len(plan))
	for _, row := range plan {
		if row.IsGroup() && activeGroups[row.ID] {
			out = append(out, row)
		}
		if row.IsRoute() && activeRoutes[row.ID] {
			out = append(out, row)
		}
	}
	return out
}
