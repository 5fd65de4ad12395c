package fleetdispatch

import (
	"encoding/json"
	"net/http"
)

type errorPayload struct {
	Endpoint string `json:"endpoint"`
	Error    string `json:"error"`
}

func buildErrorPayload(endpoint, msg string) []byte {
	b, _ := json.Marshal(errorPayload{Endpoint: endpoint, Error: msg})
	return b
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, endpoint, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buildErrorPayload(endpoint, msg))
}
