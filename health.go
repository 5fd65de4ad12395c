package fleetdispatch

import (
	"net/http"
)

type healthResponse struct {
	Status          string `json:"status"`
	LatestFeedEpoch int64  `json:"latest_feed_epoch"`
	VehicleCount    int    `json:"vehicle_count"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := a.Snapshot()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		LatestFeedEpoch: snap.FeedEpoch(),
		VehicleCount:    len(snap.Vehicles()),
	})
}
