package fleetdispatch

import (
	"strconv"
	"strings"

	"github.com/lifeline-ems/fleet-dispatch/fleet"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

func parseZoom(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0, &QueryError{Msg: "zoom must be a non-negative number."}
	}
	return v, nil
}

func parseLat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < -90 || v > 90 {
		return 0, &QueryError{Msg: "lat must be a number between -90 and 90."}
	}
	return v, nil
}

func parseLon(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < -180 || v > 180 {
		return 0, &QueryError{Msg: "lon must be a number between -180 and 180."}
	}
	return v, nil
}

func parseBoolParam(s string) (bool, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "", "false", "0":
		return false, nil
	case "true", "1":
		return true, nil
	}
	return false, &QueryError{Msg: "boolean parameter must be true or false."}
}

// parseStatusFilter returns nil when no filter was requested.
func parseStatusFilter(s string) (*fleet.Status, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, nil
	}
	status, err := fleet.ParseStatus(s)
	if err != nil {
		return nil, &QueryError{Msg: "No such status: " + s}
	}
	return &status, nil
}
