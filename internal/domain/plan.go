package domain

import "encoding/json"

// Row discriminators for the PlanRow tagged union.
const (
	RowTypeGroup = "group"
	RowTypeRoute = "route"
)

// Sentinel accepted by InsertRoute for "no group".
const NoGroup = "__none__"

// One set of technician assignments for a route on a single calendar day.
// The id order is the order technicians were picked in; callers must not
// insert duplicates.
type DailyAssignment struct {
	TechnicianIDs []string `json:"technicianIds"`
}

// Empty reports whether the assignment carries no technicians.
// An empty assignment is equivalent to no assignment at all.
func (a DailyAssignment) Empty() bool { return len(a.TechnicianIDs) == 0 }

// Per-week metadata attached to one route for one ISO week.
// VehicleID == "" means no vehicle selected.
type WeeklyRecord struct {
	Tools     string `json:"tools"`
	VehicleID string `json:"vehicleId"`
	Meta      string `json:"meta"`
	Notes     string `json:"notes"`
}

// A single row of a plan: either a group header or a route.
//
// GroupID, Assignments and WeeklyData are meaningful for route rows only.
// GroupID is the source of truth for group membership ("" = ungrouped);
// the row sequence inside a Plan remains the display order, and contiguous
// adjacency is only a derived view of membership.
type PlanRow struct {
	Type        string                     `json:"type"`
	ID          string                     `json:"id"`
	Name        string                     `json:"name"`
	GroupID     string                     `json:"groupId"`
	Assignments map[string]DailyAssignment `json:"assignments"`
	WeeklyData  map[string]WeeklyRecord    `json:"weeklyData"`
}

// An ordered sequence of plan rows for one region. Ordering is
// semantically significant: it is the display order of the grid.
type Plan []PlanRow

// All named plans, keyed by region identifier (e.g. "MG", "ES").
type PlanCollection map[string]Plan

// MarshalJSON keeps the persisted shape of the two row variants distinct:
// group rows serialize as {type,id,name}, route rows always carry their
// groupId and both sub-record maps (never null).
func (r PlanRow) MarshalJSON() ([]byte, error) {
	if r.Type == RowTypeGroup {
		return json.Marshal(struct {
			Type string `json:"type"`
			ID   string `json:"id"`
			Name string `json:"name"`
		}{r.Type, r.ID, r.Name})
	}

	assignments := r.Assignments
	if assignments == nil {
		assignments = map[string]DailyAssignment{}
	}
	weekly := r.WeeklyData
	if weekly == nil {
		weekly = map[string]WeeklyRecord{}
	}

	type routeJSON struct {
		Type        string                     `json:"type"`
		ID          string                     `json:"id"`
		Name        string                     `json:"name"`
		GroupID     string                     `json:"groupId"`
		Assignments map[string]DailyAssignment `json:"assignments"`
		WeeklyData  map[string]WeeklyRecord    `json:"weeklyData"`
	}
	return json.Marshal(routeJSON{r.Type, r.ID, r.Name, r.GroupID, assignments, weekly})
}

// NewGroupRow creates a group header with a fresh "g"-prefixed id.
func NewGroupRow(name string) PlanRow {
	return PlanRow{Type: RowTypeGroup, ID: newID("g"), Name: name}
}

// NewRouteRow creates a fresh route with no assignments or weekly data.
// A fresh route is valid; emptiness is not an error state.
func NewRouteRow(name, groupID string) PlanRow {
	return PlanRow{
		Type:        RowTypeRoute,
		ID:          newID("r"),
		Name:        name,
		GroupID:     groupID,
		Assignments: map[string]DailyAssignment{},
		WeeklyData:  map[string]WeeklyRecord{},
	}
}

// IsGroup reports whether the row is a group header.
func (r PlanRow) IsGroup() bool { return r.Type == RowTypeGroup }

// IsRoute reports whether the row is a route.
func (r PlanRow) IsRoute() bool { return r.Type == RowTypeRoute }

// FindRow returns the row with the given id and whether it exists.
func (p Plan) FindRow(id string) (PlanRow, bool) {
	for _, row := range p {
		if row.ID == id {
			return row, true
		}
	}
	return PlanRow{}, false
}

// GroupMembers returns the routes belonging to the given group, in
// display order. This is the derived membership view.
func (p Plan) GroupMembers(groupID string) []PlanRow {
	var members []PlanRow
	for _, row := range p {
		if row.IsRoute() && row.GroupID == groupID {
			members = append(members, row)
		}
	}
	return members
}

// InsertGroup appends a new group header and returns the new plan.
// The input plan is never mutated.
func (p Plan) InsertGroup(name string) Plan {
	out := make(Plan, 0, len(p)+1)
	out = append(out, p...)
	return append(out, NewGroupRow(name))
}

// InsertRoute adds a new route. If afterGroupID names an existing group,
// the route joins that group and is placed at the end of the group's
// contiguous run so routes keep following their header. Otherwise (absent
// id, unknown id, or the NoGroup sentinel) the route is appended at the
// end of the plan, ungrouped.
func (p Plan) InsertRoute(afterGroupID, name string) Plan {
	groupIdx := -1
	if afterGroupID != "" && afterGroupID != NoGroup {
		for i, row := range p {
			if row.IsGroup() && row.ID == afterGroupID {
				groupIdx = i
				break
			}
		}
	}

	if groupIdx == -1 {
		out := make(Plan, 0, len(p)+1)
		out = append(out, p...)
		return append(out, NewRouteRow(name, ""))
	}

	insertAt := groupIdx + 1
	for insertAt < len(p) && p[insertAt].IsRoute() {
		insertAt++
	}

	route := NewRouteRow(name, afterGroupID)
	out := make(Plan, 0, len(p)+1)
	out = append(out, p[:insertAt]...)
	out = append(out, route)
	return append(out, p[insertAt:]...)
}

// DeleteRow removes the row with the given id. Deleting a group header
// does not remove its member routes; they become ungrouped until
// reassigned. Unknown ids are a no-op.
func (p Plan) DeleteRow(id string) Plan {
	target, ok := p.FindRow(id)
	if !ok {
		return p
	}

	out := make(Plan, 0, len(p)-1)
	for _, row := range p {
		if row.ID == id {
			continue
		}
		if target.IsGroup() && row.IsRoute() && row.GroupID == id {
			row.GroupID = ""
		}
		out = append(out, row)
	}
	return out
}

// UpdateRoute replaces the route with the given id by updated, keeping
// the original id, type and position. Used for full-record edits (name,
// assignments, the edited week's data). Unknown ids are a no-op.
func (p Plan) UpdateRoute(routeID string, updated PlanRow) Plan {
	idx := -1
	for i, row := range p {
		if row.ID == routeID && row.IsRoute() {
			idx = i
			break
		}
	}
	if idx == -1 {
		return p
	}

	updated.Type = RowTypeRoute
	updated.ID = routeID

	out := make(Plan, len(p))
	copy(out, p)
	out[idx] = updated
	return out
}

// UpdateRow replaces any row (group or route) by id, preserving id, type
// and position. Used by the settings flow that renames rows in bulk.
func (p Plan) UpdateRow(rowID string, updated PlanRow) Plan {
	idx := -1
	for i, row := range p {
		if row.ID == rowID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return p
	}

	updated.Type = p[idx].Type
	updated.ID = rowID

	out := make(Plan, len(p))
	copy(out, p)
	out[idx] = updated
	return out
}

// HasRoutes reports whether the plan contains at least one route row.
func (p Plan) HasRoutes() bool {
	for _, row := range p {
		if row.IsRoute() {
			return true
		}
	}
	return false
}
