package domain

// Weekly record fields addressable by SetWeeklyField.
type WeeklyField string

const (
	FieldTools   WeeklyField = "tools"
	FieldVehicle WeeklyField = "vehicleId"
	FieldMeta    WeeklyField = "meta"
	FieldNotes   WeeklyField = "notes"
)

// Route transformations. All of them are value-to-value: the receiver is
// never mutated and the returned row owns fresh copies of any map it
// changed. Calling them on a group row returns the row unchanged.

func cloneAssignments(src map[string]DailyAssignment) map[string]DailyAssignment {
	out := make(map[string]DailyAssignment, len(src)+1)
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneWeeklyData(src map[string]WeeklyRecord) map[string]WeeklyRecord {
	out := make(map[string]WeeklyRecord, len(src)+1)
	for k, v := range src {
		out[k] = v
	}
	return out
}

// SetDailyAssignment sets the technicians for one day. An empty id list
// removes the day's entry entirely rather than persisting an empty
// assignment.
func (r PlanRow) SetDailyAssignment(dayKey string, technicianIDs []string) PlanRow {
	if !r.IsRoute() {
		return r
	}
	if len(technicianIDs) == 0 {
		return r.ClearDailyAssignment(dayKey)
	}

	ids := make([]string, len(technicianIDs))
	copy(ids, technicianIDs)

	assignments := cloneAssignments(r.Assignments)
	assignments[dayKey] = DailyAssignment{TechnicianIDs: ids}
	r.Assignments = assignments
	return r
}

// ClearDailyAssignment removes one day's entry if present; otherwise a no-op.
func (r PlanRow) ClearDailyAssignment(dayKey string) PlanRow {
	if !r.IsRoute() {
		return r
	}
	if _, ok := r.Assignments[dayKey]; !ok {
		return r
	}

	assignments := cloneAssignments(r.Assignments)
	delete(assignments, dayKey)
	r.Assignments = assignments
	return r
}

// ClearWeek removes all of weekDayKeys' assignment entries and the
// week's record in one step ("reset this week").
func (r PlanRow) ClearWeek(weekKey string, weekDayKeys []string) PlanRow {
	if !r.IsRoute() {
		return r
	}

	assignments := cloneAssignments(r.Assignments)
	for _, key := range weekDayKeys {
		delete(assignments, key)
	}

	weekly := cloneWeeklyData(r.WeeklyData)
	delete(weekly, weekKey)

	r.Assignments = assignments
	r.WeeklyData = weekly
	return r
}

// SetWeeklyField sets one field of the week's record, creating a
// default-empty record first when the week has none. Unknown field
// names are a no-op.
func (r PlanRow) SetWeeklyField(weekKey string, field WeeklyField, value string) PlanRow {
	if !r.IsRoute() {
		return r
	}

	record := r.WeeklyRecordFor(weekKey)
	switch field {
	case FieldTools:
		record.Tools = value
	case FieldVehicle:
		record.VehicleID = value
	case FieldMeta:
		record.Meta = value
	case FieldNotes:
		record.Notes = value
	default:
		return r
	}

	weekly := cloneWeeklyData(r.WeeklyData)
	weekly[weekKey] = record
	r.WeeklyData = weekly
	return r
}

// WeeklyRecordFor returns the week's record, or the all-empty default
// when the week has none stored.
func (r PlanRow) WeeklyRecordFor(weekKey string) WeeklyRecord {
	if rec, ok := r.WeeklyData[weekKey]; ok {
		return rec
	}
	return WeeklyRecord{}
}

// AssignmentFor returns the day's assignment (possibly empty).
func (r PlanRow) AssignmentFor(dayKey string) DailyAssignment {
	return r.Assignments[dayKey]
}

// AssignedOn reports whether the day has a non-empty assignment.
// Empty entries left behind by pruning count as unassigned.
func (r PlanRow) AssignedOn(dayKey string) bool {
	return !r.Assignments[dayKey].Empty()
}
