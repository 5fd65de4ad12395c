package fleet

import (
	"sort"
)

// Snapshot is an immutable point-in-time capture of the whole fleet, keyed by
// the feed header timestamp it was built from.
type Snapshot struct {
	feedEpoch int64
	vehicles  map[string]Vehicle
}

// NewSnapshot builds a snapshot from a materialized vehicle list. When
// previous is non-nil and carries a feed timestamp at or ahead of feedEpoch,
// previous is returned unchanged: the newest snapshot always wins and
// out-of-order feed reads are discarded.
func NewSnapshot(vehicles []Vehicle, feedEpoch int64, previous *Snapshot) *Snapshot {
	if previous != nil && feedEpoch <= previous.feedEpoch {
		return previous
	}
	s := &Snapshot{feedEpoch: feedEpoch, vehicles: make(map[string]Vehicle, len(vehicles))}
	for _, v := range vehicles {
		s.vehicles[v.ID] = v
	}
	return s
}

// FeedEpoch returns the feed header timestamp (unix seconds) of this snapshot.
func (s *Snapshot) FeedEpoch() int64 { return s.feedEpoch }

// Vehicle looks up one vehicle by ID.
func (s *Snapshot) Vehicle(id string) (Vehicle, bool) {
	v, ok := s.vehicles[id]
	return v, ok
}

// Vehicles returns all vehicles ordered by ID so successive calls over the
// same snapshot are deterministic.
func (s *Snapshot) Vehicles() []Vehicle {
	out := make([]Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Positioned returns the vehicles that reported a coordinate, in ID order.
func (s *Snapshot) Positioned() []Vehicle {
	out := make([]Vehicle, 0, len(s.vehicles))
	for _, v := range s.Vehicles() {
		if v.Position != nil {
			out = append(out, v)
		}
	}
	return out
}

// Dispatchable returns the vehicles eligible for assignment: status available
// with a known position, in ID order.
func (s *Snapshot) Dispatchable() []Vehicle {
	out := make([]Vehicle, 0, len(s.vehicles))
	for _, v := range s.Vehicles() {
		if v.Status == StatusAvailable && v.Position != nil {
			out = append(out, v)
		}
	}
	return out
}
