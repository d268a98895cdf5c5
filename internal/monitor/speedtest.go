package monitor

import (
	"context"
	"errors"

	"github.com/akarstad/netpulse/internal/helpers"
	"github.com/showwin/speedtest-go/speedtest"
)

// measureSpeedIfDue runs a speed test when the connection is up and the
// configured interval has elapsed since the last run. Between runs the last
// measured speeds are carried forward. A run is hard-capped by the budget;
// exhausting it yields nil speeds for this cycle without an error event.
func (m *Monitor) measureSpeedIfDue(ctx context.Context, available bool) Speed {
	if !available || m.speedCfg.Enabled == nil || !*m.speedCfg.Enabled {
		return m.carriedSpeed()
	}

	m.mutex.Lock()
	interval := *m.speedCfg.Interval
	due := m.lastSpeedAt.IsZero() || m.now().Sub(m.lastSpeedAt) >= interval
	m.mutex.Unlock()

	if !due {
		return m.carriedSpeed()
	}

	runCtx, cancel := context.WithTimeout(ctx, m.speedCfg.Budget)
	defer cancel()

	download, upload, err := m.speedRunner(runCtx)
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) {
			m.events.Error("Speedtest failed: %v", err)
		}
		return Speed{}
	}

	download = helpers.Round2(download)
	upload = helpers.Round2(upload)
	speed := Speed{DownloadMbps: &download, UploadMbps: &upload}

	m.mutex.Lock()
	m.lastSpeed = speed
	m.lastSpeedAt = m.now()
	m.mutex.Unlock()

	return speed
}

func (m *Monitor) carriedSpeed() Speed {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.lastSpeed
}

// runSpeedtest is the default speed runner: nearest speedtest.net server,
// download then upload, reported in Mbps.
func runSpeedtest(ctx context.Context) (float64, float64, error) {
	client := speedtest.New()

	serverList, err := client.FetchServerListContext(ctx)
	if err != nil {
		return 0, 0, err
	}

	targets, err := serverList.FindServer([]int{})
	if err != nil {
		return 0, 0, err
	}
	if len(targets) == 0 {
		return 0, 0, errors.New("no speedtest servers available")
	}

	server := targets[0]
	if err := server.DownloadTestContext(ctx); err != nil {
		return 0, 0, err
	}
	if err := server.UploadTestContext(ctx); err != nil {
		return 0, 0, err
	}

	return server.DLSpeed.Mbps(), server.ULSpeed.Mbps(), nil
}
