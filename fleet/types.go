package fleet

import (
	"fmt"
	"time"

	"github.com/lifeline-ems/fleet-dispatch/geo"
)

// Status is the operational status reported for a vehicle by the roster.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOnDuty      Status = "on_duty"
	StatusMaintenance Status = "maintenance"
	StatusOffline     Status = "offline"
)

// ParseStatus maps a roster status string to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusOnDuty, StatusMaintenance, StatusOffline:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown vehicle status %q", s)
}

// Vehicle is a read-only snapshot of one tracked vehicle. Position, heading,
// speed and LastSeen are nil when the feed has not reported them.
type Vehicle struct {
	ID         string        `json:"id"`
	Position   *geo.Position `json:"position,omitempty"`
	HeadingDeg *float64      `json:"heading_deg,omitempty"`
	SpeedMS    *float64      `json:"speed_ms,omitempty"`
	LastSeen   *time.Time    `json:"last_seen,omitempty"`
	Status     Status        `json:"status"`
}

// NewVehicle builds a Vehicle from optional feed fields. Latitude and
// longitude must be both present or both absent; a partial coordinate is
// rejected rather than coerced to a placeholder.
func NewVehicle(id string, lat, lon *float64, headingDeg, speedMS *float64, lastSeen *time.Time, status Status) (Vehicle, error) {
	if id == "" {
		return Vehicle{}, fmt.Errorf("vehicle id must not be empty")
	}
	if (lat == nil) != (lon == nil) {
		return Vehicle{}, fmt.Errorf("vehicle %s: partial coordinate (lat=%v lon=%v)", id, lat != nil, lon != nil)
	}
	v := Vehicle{ID: id, HeadingDeg: headingDeg, SpeedMS: speedMS, LastSeen: lastSeen, Status: status}
	if lat != nil {
		v.Position = &geo.Position{Lat: *lat, Lon: *lon}
	}
	return v, nil
}
