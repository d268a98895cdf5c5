package api

import (
	"net/http"

	"github.com/akarstad/netpulse/internal/embed"
)

// handleDashboard serves the embedded status page. The "GET /" pattern is a
// catch-all, so anything but the root path is a 404.
func (s *APIServer) handleDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		page, err := embed.TemplatesFS.ReadFile("templates/index.html")
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to read dashboard template")
			http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}
