package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const sseKeepaliveInterval = 30 * time.Second

func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Accel-Buffering", "no")
}

// streamSSE pushes JSON-encoded events from recv until the client goes away
// or the channel closes, with periodic keepalive comments in between.
func streamSSE[T any](w http.ResponseWriter, r *http.Request, recv <-chan T) {
	setSSEHeaders(w)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// Initial keepalive establishes the connection client-side.
	if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
		return
	}
	flusher.Flush()

	ctx := r.Context()
	keepaliveTicker := time.NewTicker(sseKeepaliveInterval)
	defer keepaliveTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-keepaliveTicker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case event, ok := <-recv:
			if !ok {
				return
			}
			if err := writeSSEMessage(w, event); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSSEMessage(w http.ResponseWriter, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal SSE event: %w", err)
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("failed to write SSE data: %w", err)
	}
	return nil
}
