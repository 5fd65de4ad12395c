package fleetdispatch

import (
	"net/http"

	"github.com/lifeline-ems/fleet-dispatch/dispatch"
	"github.com/lifeline-ems/fleet-dispatch/fleet"
	"github.com/lifeline-ems/fleet-dispatch/geo"
)

type nearestView struct {
	Found      bool           `json:"found"`
	Vehicle    *fleet.Vehicle `json:"vehicle,omitempty"`
	DistanceKM float64        `json:"distance_km,omitempty"`
	ETAMinutes int            `json:"eta_minutes,omitempty"`
}

// dispatchCandidates restricts the snapshot to vehicles worth dispatching:
// available, positioned, and not stale at the given instant.
func (a *App) dispatchCandidates(snap *fleet.Snapshot) []fleet.Vehicle {
	now := a.now()
	out := make([]fleet.Vehicle, 0)
	for _, v := range snap.Dispatchable() {
		if a.Stale.IsStale(v, now) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (a *App) handleDispatchNearest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, err := parseLat(q.Get("lat"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "dispatchNearest", err.Error())
		return
	}
	lon, err := parseLon(q.Get("lon"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "dispatchNearest", err.Error())
		return
	}
	target := geo.Position{Lat: lat, Lon: lon}

	match, found, err := dispatch.Nearest(target, a.dispatchCandidates(a.Snapshot()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "dispatchNearest", err.Error())
		return
	}
	if !found {
		// Empty fleet is a result, not a failure; the client decides whether
		// to retry or widen the search.
		writeJSON(w, http.StatusOK, nearestView{Found: false})
		return
	}

	est, err := geo.EstimateTravel(*match.Vehicle.Position, target, a.Cfg.Dispatch.AverageSpeedKmh)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "dispatchNearest", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, nearestView{
		Found:      true,
		Vehicle:    &match.Vehicle,
		DistanceKM: match.DistanceKM,
		ETAMinutes: est.ETAMinutes,
	})
}
