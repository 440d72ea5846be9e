package domain

import (
	"strconv"
	"time"
)

// A field technician who can be assigned to routes.
// Identity is the ID; the name is free text and mutable.
type Technician struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// A vehicle that can be attached to a route's weekly record.
// Same shape and identity rules as Technician.
type Vehicle struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// newID builds a time-derived identifier with a type prefix
// (e.g. "r1712345678901"). Uniqueness relies on millisecond
// resolution within a single workstation; ids are never generated
// in bulk inside one tick by the UI flows that call this.
func newID(prefix string) string {
	return prefix + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// NewTechnician creates a technician with a fresh "t"-prefixed id.
func NewTechnician(name string) Technician {
	return Technician{ID: newID("t"), Name: name}
}

// NewVehicle creates a vehicle with a fresh "v"-prefixed id.
func NewVehicle(name string) Vehicle {
	return Vehicle{ID: newID("v"), Name: name}
}

// TechnicianName resolves an id against the list, falling back to the
// raw id when the technician no longer exists.
func TechnicianName(technicians []Technician, id string) string {
	for _, t := range technicians {
		if t.ID == id {
			return t.Name
		}
	}
	return id
}

// VehicleName resolves an id against the list. Unknown or empty ids
// resolve to "" ("no vehicle selected").
func VehicleName(vehicles []Vehicle, id string) string {
	for _, v := range vehicles {
		if v.ID == id {
			return v.Name
		}
	}
	return ""
}
