package cluster

import (
	"fmt"
	"math"
	"sort"

	"github.com/lifeline-ems/fleet-dispatch/fleet"
	"github.com/lifeline-ems/fleet-dispatch/geo"
)

// Options controls when clustering activates and how coarse the grid is.
type Options struct {
	// CellSizeDegrees is the grid cell edge in degrees. 0.01 is roughly
	// 1.1 km at the equator.
	CellSizeDegrees float64
	// MinVehicles is the input count at or below which clustering is
	// skipped entirely.
	MinVehicles int
	// ZoomThreshold is the zoom level at or above which every vehicle gets
	// its own marker.
	ZoomThreshold float64
}

// Marker is a single-vehicle map marker.
type Marker struct {
	VehicleID string       `json:"vehicle_id"`
	Position  geo.Position `json:"position"`
}

// Group is a multi-vehicle cluster. Center is the arithmetic mean of member
// coordinates. Groups are derived per build and carry no identity across
// successive snapshots.
type Group struct {
	Center     geo.Position `json:"center"`
	VehicleIDs []string     `json:"vehicle_ids"`
}

// Layer is the render-ready result of one clustering pass.
type Layer struct {
	Markers  []Marker `json:"markers"`
	Clusters []Group  `json:"clusters"`
}

type bucketKey struct {
	x, y int
}

// Build partitions the positioned vehicles among markers and clusters for the
// given zoom. Vehicles without a position are excluded up front, never folded
// into a cluster with placeholder coordinates. Every positioned vehicle lands
// in exactly one marker or one cluster.
//
// Bucket keys are flat floor(coord/cell) grid indices; cells neighboring
// across the antimeridian or at the poles are not merged. Known limitation.
func Build(vehicles []fleet.Vehicle, zoom float64, opts Options) (Layer, error) {
	if opts.CellSizeDegrees <= 0 {
		return Layer{}, fmt.Errorf("cluster cell size must be positive, got %g", opts.CellSizeDegrees)
	}
	if opts.MinVehicles < 0 {
		return Layer{}, fmt.Errorf("cluster minimum vehicle count must not be negative, got %d", opts.MinVehicles)
	}

	positioned := make([]fleet.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.Position != nil {
			positioned = append(positioned, v)
		}
	}

	if zoom >= opts.ZoomThreshold || len(positioned) <= opts.MinVehicles {
		layer := Layer{Markers: make([]Marker, 0, len(positioned)), Clusters: []Group{}}
		for _, v := range positioned {
			layer.Markers = append(layer.Markers, Marker{VehicleID: v.ID, Position: *v.Position})
		}
		return layer, nil
	}

	buckets := map[bucketKey][]fleet.Vehicle{}
	for _, v := range positioned {
		k := bucketKey{
			x: int(math.Floor(v.Position.Lat / opts.CellSizeDegrees)),
			y: int(math.Floor(v.Position.Lon / opts.CellSizeDegrees)),
		}
		buckets[k] = append(buckets[k], v)
	}

	keys := make([]bucketKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].x != keys[j].x {
			return keys[i].x < keys[j].x
		}
		return keys[i].y < keys[j].y
	})

	layer := Layer{Markers: []Marker{}, Clusters: []Group{}}
	for _, k := range keys {
		members := buckets[k]
		if len(members) == 1 {
			v := members[0]
			layer.Markers = append(layer.Markers, Marker{VehicleID: v.ID, Position: *v.Position})
			continue
		}
		var sumLat, sumLon float64
		ids := make([]string, 0, len(members))
		for _, v := range members {
			sumLat += v.Position.Lat
			sumLon += v.Position.Lon
			ids = append(ids, v.ID)
		}
		layer.Clusters = append(layer.Clusters, Group{
			Center:     geo.Position{Lat: sumLat / float64(len(members)), Lon: sumLon / float64(len(members))},
			VehicleIDs: ids,
		})
	}
	return layer, nil
}
