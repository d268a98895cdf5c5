package api

import (
	"net/http"
	"strconv"

	"github.com/akarstad/netpulse/internal/apitypes"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

func (s *APIServer) handleHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.history == nil {
			writeError(w, http.StatusNotFound, "history is disabled")
			return
		}

		limit := defaultHistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = min(parsed, maxHistoryLimit)
		}

		samples, err := s.history.RecentSamples(limit)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to query sample history")
			writeError(w, http.StatusInternalServerError, "failed to query history")
			return
		}

		writeJSON(w, http.StatusOK, apitypes.HistoryResponse{Samples: samples})
	}
}
