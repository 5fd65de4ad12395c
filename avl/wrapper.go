package avl

import (
	"encoding/json"
	"fmt"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/lifeline-ems/fleet-dispatch/fleet"
)

// rosterDoc is the optional JSON document carrying per-vehicle operational
// status. Positions come from the AVL feed; status comes from here.
type rosterDoc struct {
	Vehicles []rosterEntry `json:"vehicles"`
}

type rosterEntry struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Wrapper holds one decoded read of the AVL feed in memory for fast lookups.
type Wrapper struct {
	feedEpoch int64
	vehicles  []fleet.Vehicle
}

// NewWrapper decodes a GTFS-RT VehiclePositions protobuf and an optional
// roster JSON document. Vehicles absent from the roster default to available.
// A feed entity with a partial coordinate fails the whole read; coordinates
// are never substituted.
func NewWrapper(vehiclePositions, roster []byte) (*Wrapper, error) {
	statusByID, err := parseRoster(roster)
	if err != nil {
		return nil, err
	}

	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(vehiclePositions, &fm); err != nil {
		return nil, fmt.Errorf("decode vehicle positions: %w", err)
	}

	w := &Wrapper{}
	if fm.Header != nil && fm.Header.Timestamp != nil {
		w.feedEpoch = int64(*fm.Header.Timestamp)
	}

	for _, e := range fm.Entity {
		if e.Vehicle == nil {
			continue
		}
		id := ""
		if e.Vehicle.Vehicle != nil && e.Vehicle.Vehicle.Id != nil {
			id = *e.Vehicle.Vehicle.Id
		}
		if id == "" {
			continue
		}

		var lat, lon, heading, speed *float64
		if p := e.Vehicle.Position; p != nil {
			if p.Latitude != nil {
				v := float64(*p.Latitude)
				lat = &v
			}
			if p.Longitude != nil {
				v := float64(*p.Longitude)
				lon = &v
			}
			if p.Bearing != nil {
				v := float64(*p.Bearing)
				heading = &v
			}
			if p.Speed != nil {
				v := float64(*p.Speed)
				speed = &v
			}
		}

		var lastSeen *time.Time
		if e.Vehicle.Timestamp != nil {
			t := time.Unix(int64(*e.Vehicle.Timestamp), 0).UTC()
			lastSeen = &t
		}

		status := fleet.StatusAvailable
		if s, ok := statusByID[id]; ok {
			status = s
		}

		vehicle, err := fleet.NewVehicle(id, lat, lon, heading, speed, lastSeen, status)
		if err != nil {
			return nil, fmt.Errorf("feed entity: %w", err)
		}
		w.vehicles = append(w.vehicles, vehicle)
	}
	return w, nil
}

func parseRoster(roster []byte) (map[string]fleet.Status, error) {
	byID := map[string]fleet.Status{}
	if len(roster) == 0 {
		return byID, nil
	}
	var doc rosterDoc
	if err := json.Unmarshal(roster, &doc); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	for _, e := range doc.Vehicles {
		s, err := fleet.ParseStatus(e.Status)
		if err != nil {
			return nil, fmt.Errorf("roster entry %s: %w", e.ID, err)
		}
		byID[e.ID] = s
	}
	return byID, nil
}

// FeedEpoch returns the feed header timestamp in unix seconds, 0 when the
// header carried none.
func (w *Wrapper) FeedEpoch() int64 { return w.feedEpoch }

// Vehicles returns the decoded vehicle records in feed order.
func (w *Wrapper) Vehicles() []fleet.Vehicle { return w.vehicles }

// Snapshot materializes this read into a fleet snapshot, deferring to
// previous when this read's feed timestamp is not newer.
func (w *Wrapper) Snapshot(previous *fleet.Snapshot) *fleet.Snapshot {
	return fleet.NewSnapshot(w.vehicles, w.feedEpoch, previous)
}
