package dto

import "route-plan-service/internal/domain"

type InsertGroupRequest struct {
	Name string `json:"name"`
}

type InsertRouteRequest struct {
	Name         string `json:"name"`
	AfterGroupID string `json:"afterGroupId"`
}

// UpdateRouteRequest carries the editable fields of a route row; id,
// type and position are never updated through this request.
type UpdateRouteRequest struct {
	Name        string                            `json:"name"`
	GroupID     string                            `json:"groupId"`
	Assignments map[string]domain.DailyAssignment `json:"assignments"`
	WeeklyData  map[string]domain.WeeklyRecord    `json:"weeklyData"`
}

type AssignmentRequest struct {
	TechnicianIDs []string `json:"technicianIds"`
}

type WeeklyFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type ClearWeekRequest struct {
	Week string `json:"week"` // any day of the target week, YYYY-MM-DD
}

type RowResponse struct {
	ID string `json:"id"`
}
