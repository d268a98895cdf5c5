package api

import (
	"net/http"

	"github.com/akarstad/netpulse/internal/apitypes"
	"github.com/akarstad/netpulse/internal/constants"
)

func (s *APIServer) handleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, apitypes.VersionResponse{Version: constants.Version})
	}
}
