package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akarstad/netpulse/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDaemon(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ok"}`)
	})
	if handler != nil {
		mux.HandleFunc("GET /api/", handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestStats(t *testing.T) {
	server := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/stats", r.URL.Path)
		fmt.Fprint(w, `{
			"timestamp": "2026-03-14 12:00:00",
			"availability": {"available": true, "status_code": 200, "ping": 23.5, "test_url": "https://www.google.com"},
			"speed": {"download": null, "upload": null},
			"network_info": {"hostname": "box", "local_ip": "192.168.1.10", "mac_address": "aa:bb", "interface_name": "eth0", "external_ip": "203.0.113.9", "provider": "Example ISP"},
			"traffic": {"sent_total_mb": 1, "recv_total_mb": 2, "sent_rate_kbps": 0, "recv_rate_kbps": 0},
			"processes": [],
			"last_down": "Never"
		}`)
	})

	client := New(server.URL)
	snapshot, err := client.Stats(context.Background())
	require.NoError(t, err)

	assert.True(t, snapshot.Availability.Available)
	require.NotNil(t, snapshot.Availability.PingMs)
	assert.Equal(t, 23.5, *snapshot.Availability.PingMs)
	assert.Nil(t, snapshot.Speed.DownloadMbps)
	assert.Equal(t, "Never", snapshot.LastDown)
}

func TestGet_UnauthorizedMentionsToken(t *testing.T) {
	server := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
	})

	client := New(server.URL)
	_, err := client.Stats(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NETPULSE_API_TOKEN")
}

func TestGet_DaemonUnreachable(t *testing.T) {
	client := New("http://127.0.0.1:1")

	_, err := client.Stats(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "daemon not available")
}

func TestHistory_LimitInPath(t *testing.T) {
	var gotQuery string
	server := newTestDaemon(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"samples": []}`)
	})

	client := New(server.URL)
	_, err := client.History(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, "limit=25", gotQuery)

	_, err = client.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestStreamStats(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/stats/stream", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		// Keepalive comments and blank lines are skipped by the reader.
		fmt.Fprint(w, ": keepalive\n\n")
		fmt.Fprint(w, "data: {\"timestamp\":\"2026-03-14 12:00:00\",\"last_down\":\"Never\"}\n\n")
		fmt.Fprint(w, "data: {\"timestamp\":\"2026-03-14 12:00:10\",\"last_down\":\"Never\"}\n\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := New(server.URL)

	var timestamps []string
	err := client.StreamStats(context.Background(), func(snapshot monitor.Snapshot) {
		timestamps = append(timestamps, snapshot.Timestamp)
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-14 12:00:00", "2026-03-14 12:00:10"}, timestamps)
}
