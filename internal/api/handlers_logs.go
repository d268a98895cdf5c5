package api

import (
	"net/http"

	"github.com/akarstad/netpulse/internal/apitypes"
	"github.com/akarstad/netpulse/internal/logging"
)

// handleLogs returns the tail of the event log. A missing log file yields an
// empty list.
func (s *APIServer) handleLogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lines, err := s.eventLog.Tail(s.tailLines)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to read event log")
			writeError(w, http.StatusInternalServerError, "failed to read event log")
			return
		}

		writeJSON(w, http.StatusOK, apitypes.LogsResponse{Logs: lines})
	}
}

// handleLogsStream streams event-log records as they are appended.
func (s *APIServer) handleLogsStream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, id := s.logBroker.Subscribe(logging.StreamEvents)
		defer s.logBroker.Unsubscribe(id)

		streamSSE(w, r, entries)
	}
}
