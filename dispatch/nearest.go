package dispatch

import (
	"fmt"

	"github.com/lifeline-ems/fleet-dispatch/fleet"
	"github.com/lifeline-ems/fleet-dispatch/geo"
)

// distanceToleranceKM is the band within which two candidate distances count
// as equal and input order decides.
const distanceToleranceKM = 1e-9

// Match is the closest candidate to a target, with its haversine distance.
type Match struct {
	Vehicle    fleet.Vehicle `json:"vehicle"`
	DistanceKM float64       `json:"distance_km"`
}

// Nearest returns the candidate with the minimum haversine distance to
// target. The caller restricts candidates to available vehicles with a known
// position; a candidate without a position is malformed input and rejected.
//
// An empty candidate list is a valid outcome, reported through found=false
// rather than an error; the caller decides whether that is user-facing
// failure or a retry trigger.
//
// Tie-break: when two candidates are equidistant within tolerance, the one
// listed earlier in the input wins. Deterministic and order-dependent.
func Nearest(target geo.Position, candidates []fleet.Vehicle) (Match, bool, error) {
	var best Match
	found := false
	for _, c := range candidates {
		if c.Position == nil {
			return Match{}, false, fmt.Errorf("candidate %s has no position", c.ID)
		}
		d := geo.HaversineKM(target, *c.Position)
		if !found || d < best.DistanceKM-distanceToleranceKM {
			best = Match{Vehicle: c, DistanceKM: d}
			found = true
		}
	}
	return best, found, nil
}
