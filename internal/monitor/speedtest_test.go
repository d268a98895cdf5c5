package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enableSpeedtest(m *Monitor, interval time.Duration) {
	enabled := true
	m.speedCfg.Enabled = &enabled
	m.speedCfg.Interval = &interval
}

func TestMeasureSpeed_RunsWhenDue(t *testing.T) {
	m := newTestMonitor(t)
	enableSpeedtest(m, 0)

	m.speedRunner = func(ctx context.Context) (float64, float64, error) {
		return 95.4321, 11.789, nil
	}

	speed := m.measureSpeedIfDue(context.Background(), true)

	require.NotNil(t, speed.DownloadMbps)
	require.NotNil(t, speed.UploadMbps)
	assert.Equal(t, 95.43, *speed.DownloadMbps)
	assert.Equal(t, 11.79, *speed.UploadMbps)
}

func TestMeasureSpeed_CarriesForwardBetweenRuns(t *testing.T) {
	m := newTestMonitor(t)
	enableSpeedtest(m, 10*time.Minute)

	current := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	runs := 0
	m.speedRunner = func(ctx context.Context) (float64, float64, error) {
		runs++
		return 100, 10, nil
	}

	first := m.measureSpeedIfDue(context.Background(), true)
	require.NotNil(t, first.DownloadMbps)

	// One minute later the interval has not elapsed: the last result is
	// carried forward without a new run.
	current = current.Add(time.Minute)
	second := m.measureSpeedIfDue(context.Background(), true)

	assert.Equal(t, 1, runs)
	require.NotNil(t, second.DownloadMbps)
	assert.Equal(t, 100.0, *second.DownloadMbps)

	current = current.Add(10 * time.Minute)
	m.measureSpeedIfDue(context.Background(), true)
	assert.Equal(t, 2, runs)
}

func TestMeasureSpeed_SkippedWhenDownOrDisabled(t *testing.T) {
	m := newTestMonitor(t)
	enableSpeedtest(m, 0)

	runs := 0
	m.speedRunner = func(ctx context.Context) (float64, float64, error) {
		runs++
		return 100, 10, nil
	}

	speed := m.measureSpeedIfDue(context.Background(), false)
	assert.Zero(t, runs)
	assert.Nil(t, speed.DownloadMbps)

	disabled := false
	m.speedCfg.Enabled = &disabled
	speed = m.measureSpeedIfDue(context.Background(), true)
	assert.Zero(t, runs)
	assert.Nil(t, speed.DownloadMbps)
}

func TestMeasureSpeed_BudgetExhaustionIsSilent(t *testing.T) {
	m := newTestMonitor(t)
	enableSpeedtest(m, 0)

	m.speedRunner = func(ctx context.Context) (float64, float64, error) {
		return 0, 0, context.DeadlineExceeded
	}

	speed := m.measureSpeedIfDue(context.Background(), true)

	assert.Nil(t, speed.DownloadMbps)
	assert.Empty(t, eventLines(t, m))
}

func TestMeasureSpeed_FailureIsLogged(t *testing.T) {
	m := newTestMonitor(t)
	enableSpeedtest(m, 0)

	m.speedRunner = func(ctx context.Context) (float64, float64, error) {
		return 0, 0, errors.New("no servers reachable")
	}

	speed := m.measureSpeedIfDue(context.Background(), true)

	assert.Nil(t, speed.DownloadMbps)
	lines := eventLines(t, m)
	assert.Equal(t, 1, countEventLines(lines, "ERROR - Speedtest failed: no servers reachable"))
}
