package monitor

import (
	"context"
	"errors"

	"github.com/akarstad/netpulse/internal/helpers"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// trafficUsage reports interface totals since boot and rates computed from
// the delta against the previous cycle. The first cycle and any counter
// reset (delta going negative) report zero rates and re-baseline.
func (m *Monitor) trafficUsage(ctx context.Context) Traffic {
	sent, recv, err := m.counters(ctx)
	if err != nil {
		m.events.Error("Traffic stats error: %v", err)
		return Traffic{}
	}

	now := m.now()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	traffic := Traffic{
		SentTotalMB: helpers.BytesToMB(sent),
		RecvTotalMB: helpers.BytesToMB(recv),
	}

	if m.baseline.valid && sent >= m.baseline.sent && recv >= m.baseline.recv {
		elapsed := now.Sub(m.baseline.at).Seconds()
		traffic.SentRateKbps = helpers.BytesToKbps(sent-m.baseline.sent, elapsed)
		traffic.RecvRateKbps = helpers.BytesToKbps(recv-m.baseline.recv, elapsed)
	}

	m.baseline = trafficBaseline{sent: sent, recv: recv, at: now, valid: true}

	return traffic
}

// InitTrafficBaseline primes the counters at daemon startup so the first
// cycle does not report a since-boot spike.
func (m *Monitor) InitTrafficBaseline(ctx context.Context) {
	sent, recv, err := m.counters(ctx)
	if err != nil {
		return
	}
	m.mutex.Lock()
	m.baseline = trafficBaseline{sent: sent, recv: recv, at: m.now(), valid: true}
	m.mutex.Unlock()
}

// ioCounters returns the aggregated bytes sent/received over all interfaces.
func ioCounters(ctx context.Context) (uint64, uint64, error) {
	stats, err := psnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return 0, 0, err
	}
	if len(stats) == 0 {
		return 0, 0, errors.New("no interface counters available")
	}
	return stats[0].BytesSent, stats[0].BytesRecv, nil
}
