package fleetdispatch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeline-ems/fleet-dispatch/assignment"
	"github.com/lifeline-ems/fleet-dispatch/config"
	"github.com/lifeline-ems/fleet-dispatch/fleet"
	"github.com/lifeline-ems/fleet-dispatch/geo"
)

var testNow = time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

func testApp(t *testing.T) *App {
	t.Helper()
	cfg := config.AppConfig{
		Server:   config.ServerConfig{Port: 17181},
		Dispatch: config.DispatchConfig{StaleAfterSeconds: 120, AverageSpeedKmh: 40},
		Cluster:  config.ClusterConfig{CellSizeDegrees: 0.01, MinVehicles: 10, ZoomThreshold: 14},
	}
	app, err := NewApp(cfg)
	require.NoError(t, err)
	app.now = func() time.Time { return testNow }
	return app
}

func testVehicle(id string, lat, lon float64, status fleet.Status, age time.Duration) fleet.Vehicle {
	seen := testNow.Add(-age)
	return fleet.Vehicle{
		ID:       id,
		Position: &geo.Position{Lat: lat, Lon: lon},
		LastSeen: &seen,
		Status:   status,
	}
}

func seedFleet(app *App) {
	app.UpdateSnapshot([]fleet.Vehicle{
		testVehicle("amb-1", 0, 0.001, fleet.StatusAvailable, 30*time.Second),
		testVehicle("amb-2", 0, 0.01, fleet.StatusAvailable, 30*time.Second),
		testVehicle("amb-3", 0, 0.0005, fleet.StatusOnDuty, 30*time.Second),
		// Closest of all but stale, so never dispatched.
		testVehicle("amb-4", 0, 0.0001, fleet.StatusAvailable, 10*time.Minute),
	}, 1000)
}

func get(t *testing.T, app *App, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	app.Routes().ServeHTTP(rec, req)
	return rec
}

func post(t *testing.T, app *App, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(body))
	rec := httptest.NewRecorder()
	app.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHealthHandler(t *testing.T) {
	app := testApp(t)
	seedFleet(app)

	rec := get(t, app, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(1000), resp.LatestFeedEpoch)
	assert.Equal(t, 4, resp.VehicleCount)
}

func TestFleetMarkersHandler(t *testing.T) {
	app := testApp(t)
	seedFleet(app)

	t.Run("missing zoom is a 400", func(t *testing.T) {
		rec := get(t, app, "/api/fleet/markers.json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown status filter is a 400", func(t *testing.T) {
		rec := get(t, app, "/api/fleet/markers.json?zoom=15&status=parked")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("one marker per vehicle at high zoom", func(t *testing.T) {
		rec := get(t, app, "/api/fleet/markers.json?zoom=15")
		require.Equal(t, http.StatusOK, rec.Code)

		var view layerView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Len(t, view.Markers, 4)
		assert.Empty(t, view.Clusters)
	})

	t.Run("stale flag is set per vehicle", func(t *testing.T) {
		rec := get(t, app, "/api/fleet/markers.json?zoom=15")
		require.Equal(t, http.StatusOK, rec.Code)

		var view layerView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		staleByID := map[string]bool{}
		for _, m := range view.Markers {
			staleByID[m.VehicleID] = m.Stale
		}
		assert.False(t, staleByID["amb-1"])
		assert.True(t, staleByID["amb-4"])
	})

	t.Run("status filter narrows the layer", func(t *testing.T) {
		rec := get(t, app, "/api/fleet/markers.json?zoom=15&status=on_duty")
		require.Equal(t, http.StatusOK, rec.Code)

		var view layerView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		require.Len(t, view.Markers, 1)
		assert.Equal(t, "amb-3", view.Markers[0].VehicleID)
	})

	t.Run("repeated query hits the cache", func(t *testing.T) {
		first := get(t, app, "/api/fleet/markers.json?zoom=15")
		second := get(t, app, "/api/fleet/markers.json?zoom=15")
		assert.Equal(t, first.Body.String(), second.Body.String())

		key := memoKey("15", "", "", staleBucket(testNow, app.Stale.Threshold()))
		_, ok := app.cache.Get(app.Snapshot().FeedEpoch(), key)
		assert.True(t, ok)
	})
}

func TestFleetMarkersStaleFlagTracksClock(t *testing.T) {
	app := testApp(t)
	app.UpdateSnapshot([]fleet.Vehicle{
		testVehicle("amb-1", 0, 0.001, fleet.StatusAvailable, 0),
	}, 1000)

	rec := get(t, app, "/api/fleet/markers.json?zoom=15")
	require.Equal(t, http.StatusOK, rec.Code)
	var view layerView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Markers, 1)
	assert.False(t, view.Markers[0].Stale)

	// The feed stalls: no new snapshot, but ten minutes pass. The vehicle
	// ages past the two minute threshold and must now be reported stale even
	// though the previous payload was cached.
	app.now = func() time.Time { return testNow.Add(10 * time.Minute) }

	rec = get(t, app, "/api/fleet/markers.json?zoom=15")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Markers, 1)
	assert.True(t, view.Markers[0].Stale)
}

func TestFleetMarkersClusterAtLowZoom(t *testing.T) {
	app := testApp(t)
	// Twelve vehicles packed into one grid cell, above the minimum of ten.
	vehicles := make([]fleet.Vehicle, 0, 12)
	for i := 0; i < 12; i++ {
		vehicles = append(vehicles, testVehicle(fmt.Sprintf("amb-%02d", i), 50.0050, 8.0050, fleet.StatusAvailable, time.Second))
	}
	app.UpdateSnapshot(vehicles, 1000)

	rec := get(t, app, "/api/fleet/markers.json?zoom=10")
	require.Equal(t, http.StatusOK, rec.Code)

	var view layerView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Empty(t, view.Markers)
	require.Len(t, view.Clusters, 1)
	assert.Len(t, view.Clusters[0].VehicleIDs, 12)
	assert.InDelta(t, 50.0050, view.Clusters[0].Center.Lat, 1e-9)
}

func TestDispatchNearestHandler(t *testing.T) {
	app := testApp(t)
	seedFleet(app)

	t.Run("bad coordinates are a 400", func(t *testing.T) {
		rec := get(t, app, "/api/dispatch/nearest.json?lat=abc&lon=0")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = get(t, app, "/api/dispatch/nearest.json?lat=91&lon=0")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("nearest fresh available vehicle wins", func(t *testing.T) {
		rec := get(t, app, "/api/dispatch/nearest.json?lat=0&lon=0")
		require.Equal(t, http.StatusOK, rec.Code)

		var view nearestView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		require.True(t, view.Found)
		require.NotNil(t, view.Vehicle)
		// amb-4 is closer but stale, amb-3 is closer but on duty.
		assert.Equal(t, "amb-1", view.Vehicle.ID)
		assert.InDelta(t, 0.111, view.DistanceKM, 0.002)
		assert.Equal(t, 0, view.ETAMinutes)
	})

	t.Run("empty fleet reports no candidate", func(t *testing.T) {
		empty := testApp(t)
		rec := get(t, empty, "/api/dispatch/nearest.json?lat=0&lon=0")
		require.Equal(t, http.StatusOK, rec.Code)

		var view nearestView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.False(t, view.Found)
		assert.Nil(t, view.Vehicle)
		// A miss carries no phantom zero-valued vehicle.
		assert.NotContains(t, rec.Body.String(), "vehicle")
	})
}

func TestAssignmentLifecycleOverHTTP(t *testing.T) {
	app := testApp(t)
	seedFleet(app)

	rec := post(t, app, "/api/assignments.json", `{"lat":0,"lon":0,"priority":"critical"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created createAssignmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.True(t, created.Found)
	require.NotNil(t, created.Assignment)
	assert.Equal(t, "amb-1", created.Assignment.VehicleID)
	assert.Equal(t, assignment.StatusActive, created.Assignment.Status)

	t.Run("listing includes the new assignment", func(t *testing.T) {
		rec := get(t, app, "/api/assignments.json?active=true")
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Assignments []assignment.Assignment `json:"assignments"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Assignments, 1)
		assert.Equal(t, created.Assignment.ID, resp.Assignments[0].ID)
	})

	t.Run("valid transition succeeds", func(t *testing.T) {
		body := fmt.Sprintf(`{"id":%q,"to":"completed","actor_id":"u-9","actor_name":"Charge Nurse","notes":"handover done"}`, created.Assignment.ID)
		rec := post(t, app, "/api/assignments/transition", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var updated assignment.Assignment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, assignment.StatusCompleted, updated.Status)
		require.NotNil(t, updated.UpdatedBy)
		assert.Equal(t, "u-9", updated.UpdatedBy.ID)
		require.NotNil(t, updated.Notes)
		assert.Equal(t, "handover done", *updated.Notes)
	})

	t.Run("transition out of a terminal state is a 409", func(t *testing.T) {
		body := fmt.Sprintf(`{"id":%q,"to":"cleared","actor_id":"u-9"}`, created.Assignment.ID)
		rec := post(t, app, "/api/assignments/transition", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown assignment is a 404", func(t *testing.T) {
		rec := post(t, app, "/api/assignments/transition", `{"id":"missing","to":"cleared","actor_id":"u-9"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown priority is a 400", func(t *testing.T) {
		rec := post(t, app, "/api/assignments.json", `{"lat":0,"lon":0,"priority":"urgent"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no dispatchable vehicle reports found false", func(t *testing.T) {
		empty := testApp(t)
		rec := post(t, empty, "/api/assignments.json", `{"lat":0,"lon":0,"priority":"low"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp createAssignmentResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Found)
		assert.Nil(t, resp.Assignment)
	})
}
