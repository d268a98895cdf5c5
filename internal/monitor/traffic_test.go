package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrafficUsage_RatesFromBaseline(t *testing.T) {
	m := newTestMonitor(t)

	current := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	counters := [2]uint64{0, 0}
	m.counters = func(ctx context.Context) (uint64, uint64, error) {
		return counters[0], counters[1], nil
	}

	m.InitTrafficBaseline(context.Background())

	current = current.Add(10 * time.Second)
	counters = [2]uint64{1048576, 2097152} // 1 MiB sent, 2 MiB received

	traffic := m.trafficUsage(context.Background())

	assert.Equal(t, 1.0, traffic.SentTotalMB)
	assert.Equal(t, 2.0, traffic.RecvTotalMB)
	assert.Equal(t, 819.2, traffic.SentRateKbps)
	assert.Equal(t, 1638.4, traffic.RecvRateKbps)
}

func TestTrafficUsage_FirstCycleHasNoRates(t *testing.T) {
	m := newTestMonitor(t)
	m.counters = func(ctx context.Context) (uint64, uint64, error) {
		return 1048576, 1048576, nil
	}

	// No InitTrafficBaseline: nothing to diff against.
	traffic := m.trafficUsage(context.Background())

	assert.Equal(t, 1.0, traffic.SentTotalMB)
	assert.Zero(t, traffic.SentRateKbps)
	assert.Zero(t, traffic.RecvRateKbps)
}

func TestTrafficUsage_CounterResetRebaselines(t *testing.T) {
	m := newTestMonitor(t)

	current := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	counters := [2]uint64{5242880, 5242880}
	m.counters = func(ctx context.Context) (uint64, uint64, error) {
		return counters[0], counters[1], nil
	}
	m.InitTrafficBaseline(context.Background())

	// Counters went backwards (interface reset): rates are zeroed for this
	// cycle and the new values become the baseline.
	current = current.Add(10 * time.Second)
	counters = [2]uint64{1024, 1024}

	traffic := m.trafficUsage(context.Background())
	assert.Zero(t, traffic.SentRateKbps)
	assert.Zero(t, traffic.RecvRateKbps)

	// The next cycle diffs against the reset values.
	current = current.Add(10 * time.Second)
	counters = [2]uint64{1024 + 1048576, 1024}

	traffic = m.trafficUsage(context.Background())
	assert.Equal(t, 819.2, traffic.SentRateKbps)
	assert.Zero(t, traffic.RecvRateKbps)
}

func TestTrafficUsage_CounterError(t *testing.T) {
	m := newTestMonitor(t)
	m.counters = func(ctx context.Context) (uint64, uint64, error) {
		return 0, 0, errors.New("proc not mounted")
	}

	traffic := m.trafficUsage(context.Background())

	assert.Equal(t, Traffic{}, traffic)
	lines := eventLines(t, m)
	assert.Equal(t, 1, countEventLines(lines, "ERROR - Traffic stats error: proc not mounted"))
}
