package monitor

import (
	"context"
	"errors"
	"net"

	"github.com/akarstad/netpulse/internal/helpers"
)

// CheckAvailability walks the test URLs in order. The first URL that yields
// any HTTP response decides the result; connection errors and timeouts move
// on to the next URL. When every URL fails the connection is considered down
// and the first detection of an outage is logged exactly once.
func (m *Monitor) CheckAvailability(ctx context.Context) Availability {
	for _, url := range m.cfg.TestURLs {
		resp, err := m.probeClient.R().SetContext(ctx).Get(url)
		if err != nil {
			if !isConnectivityError(err) {
				m.events.Error("Request exception: %v", err)
			}
			continue
		}

		statusCode := resp.StatusCode()
		if statusCode >= 400 {
			m.events.Warning("HTTP Error %d for %s", statusCode, url)
		}

		pingMs := helpers.Round2(float64(resp.Time().Microseconds()) / 1000)
		testURL := url
		return Availability{
			Available:  statusCode >= 200 && statusCode < 400,
			StatusCode: statusCode,
			PingMs:     &pingMs,
			TestURL:    &testURL,
		}
	}

	m.markDown()
	return Availability{Available: false, StatusCode: 0}
}

// markDown records the start of an outage on its first detection.
func (m *Monitor) markDown() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.lastDown != nil {
		return
	}
	now := m.now()
	m.lastDown = &now
	m.events.Critical("INTERNET DOWN - Initial detection")
}

// isConnectivityError reports whether a probe error is an expected
// unreachable/timeout condition rather than something worth logging.
func isConnectivityError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
