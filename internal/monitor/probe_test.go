package monitor

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/akarstad/netpulse/internal/config"
	"github.com/akarstad/netpulse/internal/eventlog"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	probeOne = "https://probe-one.test"
	probeTwo = "https://probe-two.test"
)

func newTestMonitor(t *testing.T) *Monitor {
	t.Helper()

	disabled := false
	zero := time.Duration(0)
	m := New(
		config.MonitorConfig{
			TestURLs:        []string{probeOne, probeTwo},
			ProbeTimeout:    time.Second,
			RefreshInterval: 10 * time.Second,
			CacheTTL:        5 * time.Second,
			MaxProcesses:    20,
		},
		config.SpeedtestConfig{
			Enabled:  &disabled,
			Budget:   time.Second,
			Interval: &zero,
		},
		eventlog.New(t.TempDir(), nil),
	)

	m.counters = func(ctx context.Context) (uint64, uint64, error) {
		return 1048576, 2097152, nil
	}
	m.connections = fakeConnections{}
	return m
}

func eventLines(t *testing.T, m *Monitor) []string {
	t.Helper()
	lines, err := m.events.Tail(0)
	require.NoError(t, err)
	return lines
}

func countEventLines(lines []string, substr string) int {
	count := 0
	for _, line := range lines {
		if strings.Contains(line, substr) {
			count++
		}
	}
	return count
}

func connectionRefused() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
}

func TestCheckAvailability_FirstURLResponds(t *testing.T) {
	m := newTestMonitor(t)
	httpmock.ActivateNonDefault(m.probeClient.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", probeOne, httpmock.NewStringResponder(200, "ok"))

	availability := m.CheckAvailability(context.Background())

	assert.True(t, availability.Available)
	assert.Equal(t, 200, availability.StatusCode)
	require.NotNil(t, availability.TestURL)
	assert.Equal(t, probeOne, *availability.TestURL)
	require.NotNil(t, availability.PingMs)
	assert.GreaterOrEqual(t, *availability.PingMs, 0.0)
	assert.Nil(t, m.LastDown())
}

func TestCheckAvailability_HTTPErrorDecides(t *testing.T) {
	m := newTestMonitor(t)
	httpmock.ActivateNonDefault(m.probeClient.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", probeOne, httpmock.NewStringResponder(503, "unavailable"))

	availability := m.CheckAvailability(context.Background())

	// A URL that answered, even with an error status, decides the walk; the
	// second URL is never tried and this is not an outage.
	assert.False(t, availability.Available)
	assert.Equal(t, 503, availability.StatusCode)
	assert.Nil(t, m.LastDown())

	lines := eventLines(t, m)
	assert.Equal(t, 1, countEventLines(lines, "WARNING - HTTP Error 503 for "+probeOne))
}

func TestCheckAvailability_RedirectCountsAsUp(t *testing.T) {
	m := newTestMonitor(t)
	httpmock.ActivateNonDefault(m.probeClient.GetClient())
	defer httpmock.DeactivateAndReset()

	response := httpmock.NewStringResponse(301, "")
	response.Header.Set("Location", probeTwo)
	httpmock.RegisterResponder("GET", probeOne, httpmock.ResponderFromResponse(response))
	httpmock.RegisterResponder("GET", probeTwo, httpmock.NewStringResponder(200, "ok"))

	availability := m.CheckAvailability(context.Background())
	assert.True(t, availability.Available)
}

func TestCheckAvailability_FallsThroughOnConnectionError(t *testing.T) {
	m := newTestMonitor(t)
	httpmock.ActivateNonDefault(m.probeClient.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", probeOne, httpmock.NewErrorResponder(connectionRefused()))
	httpmock.RegisterResponder("GET", probeTwo, httpmock.NewStringResponder(200, "ok"))

	availability := m.CheckAvailability(context.Background())

	assert.True(t, availability.Available)
	require.NotNil(t, availability.TestURL)
	assert.Equal(t, probeTwo, *availability.TestURL)

	// Expected unreachability is not an event.
	assert.Empty(t, eventLines(t, m))
}

func TestCheckAvailability_AllURLsDown(t *testing.T) {
	m := newTestMonitor(t)
	httpmock.ActivateNonDefault(m.probeClient.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", probeOne, httpmock.NewErrorResponder(connectionRefused()))
	httpmock.RegisterResponder("GET", probeTwo, httpmock.NewErrorResponder(connectionRefused()))

	first := m.CheckAvailability(context.Background())
	second := m.CheckAvailability(context.Background())

	assert.False(t, first.Available)
	assert.Equal(t, 0, first.StatusCode)
	assert.Nil(t, first.PingMs)
	assert.False(t, second.Available)
	require.NotNil(t, m.LastDown())

	// The outage start is logged exactly once.
	lines := eventLines(t, m)
	assert.Equal(t, 1, countEventLines(lines, "CRITICAL - INTERNET DOWN - Initial detection"))
}

func TestCheckAvailability_UnexpectedErrorIsLogged(t *testing.T) {
	m := newTestMonitor(t)
	httpmock.ActivateNonDefault(m.probeClient.GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", probeOne, httpmock.NewErrorResponder(errors.New("tls handshake botched")))
	httpmock.RegisterResponder("GET", probeTwo, httpmock.NewStringResponder(200, "ok"))

	availability := m.CheckAvailability(context.Background())

	assert.True(t, availability.Available)
	lines := eventLines(t, m)
	assert.Equal(t, 1, countEventLines(lines, "ERROR - Request exception:"))
}
