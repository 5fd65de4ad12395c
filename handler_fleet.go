package fleetdispatch

import (
	"encoding/json"
	"net/http"

	"github.com/lifeline-ems/fleet-dispatch/cluster"
	"github.com/lifeline-ems/fleet-dispatch/fleet"
	"github.com/lifeline-ems/fleet-dispatch/geo"
)

type markerView struct {
	VehicleID string       `json:"vehicle_id"`
	Position  geo.Position `json:"position"`
	Status    fleet.Status `json:"status"`
	Stale     bool         `json:"stale"`
}

type layerView struct {
	FeedEpoch int64           `json:"feed_epoch"`
	Markers   []markerView    `json:"markers"`
	Clusters  []cluster.Group `json:"clusters"`
}

type vehicleView struct {
	fleet.Vehicle
	Stale bool `json:"stale"`
}

type fleetView struct {
	FeedEpoch int64         `json:"feed_epoch"`
	Vehicles  []vehicleView `json:"vehicles"`
}

func (a *App) handleFleetMarkers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	zoom, err := parseZoom(q.Get("zoom"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "fleetMarkers", err.Error())
		return
	}
	statusFilter, err := parseStatusFilter(q.Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "fleetMarkers", err.Error())
		return
	}
	staleOnly, err := parseBoolParam(q.Get("staleOnly"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "fleetMarkers", err.Error())
		return
	}

	snap := a.Snapshot()
	now := a.now()
	// Stale flags depend on the clock, not just the snapshot: a stalled feed
	// must still age its vehicles. The time bucket bounds how long a cached
	// payload can misreport staleness.
	key := memoKey(q.Get("zoom"), q.Get("status"), q.Get("staleOnly"), staleBucket(now, a.Stale.Threshold()))
	if payload, ok := a.cache.Get(snap.FeedEpoch(), key); ok {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
		return
	}

	vehicles := make([]fleet.Vehicle, 0)
	staleByID := map[string]bool{}
	for _, v := range snap.Vehicles() {
		stale := a.Stale.IsStale(v, now)
		if statusFilter != nil && v.Status != *statusFilter {
			continue
		}
		if staleOnly && !stale {
			continue
		}
		vehicles = append(vehicles, v)
		staleByID[v.ID] = stale
	}

	layer, err := cluster.Build(vehicles, zoom, a.ClusterOpts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "fleetMarkers", err.Error())
		return
	}

	view := layerView{FeedEpoch: snap.FeedEpoch(), Markers: make([]markerView, 0, len(layer.Markers)), Clusters: layer.Clusters}
	for _, m := range layer.Markers {
		v, _ := snap.Vehicle(m.VehicleID)
		view.Markers = append(view.Markers, markerView{
			VehicleID: m.VehicleID,
			Position:  m.Position,
			Status:    v.Status,
			Stale:     staleByID[m.VehicleID],
		})
	}

	payload, _ := json.Marshal(view)
	a.cache.Put(snap.FeedEpoch(), key, payload)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

func (a *App) handleFleetVehicles(w http.ResponseWriter, r *http.Request) {
	snap := a.Snapshot()
	now := a.now()
	view := fleetView{FeedEpoch: snap.FeedEpoch(), Vehicles: []vehicleView{}}
	for _, v := range snap.Vehicles() {
		view.Vehicles = append(view.Vehicles, vehicleView{Vehicle: v, Stale: a.Stale.IsStale(v, now)})
	}
	writeJSON(w, http.StatusOK, view)
}
