package geo

import (
	"fmt"
	"math"
)

// Position is a WGS84 coordinate in decimal degrees.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// HaversineKM returns the great-circle distance between two positions in
// kilometers on a spherical earth (R = 6371 km). This is the single distance
// model used across clustering centers, nearest-vehicle search and ETA so the
// numbers shown together in one view agree with each other.
func HaversineKM(a, b Position) float64 {
	const R = 6371.0
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return R * c
}

// Estimate is a distance plus a naive travel-time estimate. The ETA assumes a
// constant average speed with no routing graph and no traffic; it is a known
// simplification, not a defect.
type Estimate struct {
	DistanceKM float64 `json:"distance_km"`
	ETAMinutes int     `json:"eta_minutes"`
}

// EstimateTravel computes the haversine distance between from and to plus the
// minutes needed at averageSpeedKmh, rounded to the nearest whole minute.
func EstimateTravel(from, to Position, averageSpeedKmh float64) (Estimate, error) {
	if averageSpeedKmh <= 0 {
		return Estimate{}, fmt.Errorf("average speed must be positive, got %g km/h", averageSpeedKmh)
	}
	km := HaversineKM(from, to)
	minutes := int(math.Round(km / averageSpeedKmh * 60))
	return Estimate{DistanceKM: km, ETAMinutes: minutes}, nil
}
