package assignment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lifeline-ems/fleet-dispatch/geo"
)

// Priority is the urgency class inherited from the emergency record.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// ParsePriority maps a request string to a Priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Status is the lifecycle state of a route assignment.
type Status string

const (
	StatusActive    Status = "active"
	StatusCleared   Status = "cleared"
	StatusTimeout   Status = "timeout"
	StatusCompleted Status = "completed"
)

// ParseStatus maps a request string to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusCleared, StatusTimeout, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown assignment status %q", s)
}

// Actor identifies who performed a status transition.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Assignment is one dispatched route. It is only ever mutated through
// Transition, which returns a modified copy; persistence of that copy is the
// caller's job.
type Assignment struct {
	ID          string       `json:"id"`
	VehicleID   string       `json:"vehicle_id"`
	Origin      geo.Position `json:"origin"`
	Destination geo.Position `json:"destination"`
	Priority    Priority     `json:"priority"`
	Status      Status       `json:"status"`
	UpdatedBy   *Actor       `json:"updated_by,omitempty"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
	Notes       *string      `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// New creates an active assignment for a dispatched vehicle.
func New(vehicleID string, origin, destination geo.Position, priority Priority, now time.Time) Assignment {
	return Assignment{
		ID:          uuid.NewString(),
		VehicleID:   vehicleID,
		Origin:      origin,
		Destination: destination,
		Priority:    priority,
		Status:      StatusActive,
		CreatedAt:   now,
	}
}
