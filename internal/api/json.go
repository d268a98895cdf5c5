package api

import (
	"encoding/json"
	"net/http"

	"github.com/akarstad/netpulse/internal/apitypes"
)

// writeJSON marshals a value to JSON, sets the Content-Type header, writes
// the status code, and streams the response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	_ = writeJSON(w, status, apitypes.ErrorResponse{Error: message})
}
