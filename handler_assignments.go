package fleetdispatch

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lifeline-ems/fleet-dispatch/assignment"
	"github.com/lifeline-ems/fleet-dispatch/dispatch"
	"github.com/lifeline-ems/fleet-dispatch/geo"
)

type createAssignmentRequest struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Priority string  `json:"priority"`
}

type createAssignmentResponse struct {
	Found      bool                   `json:"found"`
	Assignment *assignment.Assignment `json:"assignment,omitempty"`
	DistanceKM float64                `json:"distance_km,omitempty"`
	ETAMinutes int                    `json:"eta_minutes,omitempty"`
}

type transitionRequest struct {
	ID        string  `json:"id"`
	To        string  `json:"to"`
	ActorID   string  `json:"actor_id"`
	ActorName string  `json:"actor_name"`
	Notes     *string `json:"notes,omitempty"`
}

func (a *App) handleAssignments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listAssignments(w, r)
	case http.MethodPost:
		a.createAssignment(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "assignments", "method not allowed")
	}
}

func (a *App) listAssignments(w http.ResponseWriter, r *http.Request) {
	activeOnly, err := parseBoolParam(r.URL.Query().Get("active"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "assignments", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assignments": a.Store.List(activeOnly)})
}

// createAssignment dispatches the nearest non-stale available vehicle to the
// requested target and records the new active assignment.
func (a *App) createAssignment(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "assignments", "invalid JSON body")
		return
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lon < -180 || req.Lon > 180 {
		writeError(w, http.StatusBadRequest, "assignments", "target coordinate out of range")
		return
	}
	priority, err := assignment.ParsePriority(req.Priority)
	if err != nil {
		writeError(w, http.StatusBadRequest, "assignments", err.Error())
		return
	}
	target := geo.Position{Lat: req.Lat, Lon: req.Lon}

	match, found, err := dispatch.Nearest(target, a.dispatchCandidates(a.Snapshot()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "assignments", err.Error())
		return
	}
	if !found {
		writeJSON(w, http.StatusOK, createAssignmentResponse{Found: false})
		return
	}

	est, err := geo.EstimateTravel(*match.Vehicle.Position, target, a.Cfg.Dispatch.AverageSpeedKmh)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "assignments", err.Error())
		return
	}
	record := assignment.New(match.Vehicle.ID, *match.Vehicle.Position, target, priority, a.now())
	a.Store.Put(record)
	writeJSON(w, http.StatusCreated, createAssignmentResponse{
		Found:      true,
		Assignment: &record,
		DistanceKM: match.DistanceKM,
		ETAMinutes: est.ETAMinutes,
	})
}

func (a *App) handleAssignmentTransition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "assignmentTransition", "method not allowed")
		return
	}
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "assignmentTransition", "invalid JSON body")
		return
	}
	to, err := assignment.ParseStatus(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, "assignmentTransition", err.Error())
		return
	}
	if req.ActorID == "" {
		writeError(w, http.StatusBadRequest, "assignmentTransition", "actor_id is required")
		return
	}

	actor := assignment.Actor{ID: req.ActorID, Name: req.ActorName}
	updated, err := a.Store.Transition(req.ID, to, actor, req.Notes, a.now())
	if err != nil {
		var invalid *assignment.InvalidTransitionError
		switch {
		case errors.Is(err, ErrAssignmentNotFound):
			writeError(w, http.StatusNotFound, "assignmentTransition", err.Error())
		case errors.As(err, &invalid):
			writeError(w, http.StatusConflict, "assignmentTransition", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "assignmentTransition", err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
