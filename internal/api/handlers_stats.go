package api

import (
	"net/http"
)

func (s *APIServer) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// handleStats serves the cached snapshot; a stale cache triggers a
// synchronous collection cycle first.
func (s *APIServer) handleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := s.collector.Snapshot(r.Context())
		w.Header().Set("Cache-Control", "no-store")
		if err := writeJSON(w, http.StatusOK, snapshot); err != nil {
			s.logger.Error().Err(err).Msg("Failed to write stats response")
		}
	}
}

// handleStatsStream emits one SSE event per completed collection cycle.
func (s *APIServer) handleStatsStream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshots, id := s.collector.Subscribe()
		defer s.collector.Unsubscribe(id)

		streamSSE(w, r, snapshots)
	}
}
