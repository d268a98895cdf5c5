// Package monitor collects the connection state one snapshot at a time:
// availability probes, speed tests, network identity, traffic counters and
// the established-connection table. Every submodule degrades to neutral
// values on failure; a snapshot is always produced.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/akarstad/netpulse/internal/config"
	"github.com/akarstad/netpulse/internal/constants"
	"github.com/akarstad/netpulse/internal/eventlog"
	"github.com/go-resty/resty/v2"
)

// externalInfoMaxAge is how long the external IP / provider lookup is
// trusted before a slow-cadence refresh.
const externalInfoMaxAge = time.Hour

type Monitor struct {
	cfg      config.MonitorConfig
	speedCfg config.SpeedtestConfig
	events   *eventlog.Logger

	probeClient *resty.Client
	infoClient  *resty.Client
	ipifyURL    string
	ipAPIURL    string // format string taking the external IP

	mutex       sync.Mutex
	lastDown    *time.Time
	externalIP  string
	provider    string
	externalAt  time.Time
	baseline    trafficBaseline
	lastSpeed   Speed
	lastSpeedAt time.Time

	// Injection points for tests.
	now         func() time.Time
	counters    func(ctx context.Context) (sent, recv uint64, err error)
	connections connectionLister
	speedRunner func(ctx context.Context) (downloadMbps, uploadMbps float64, err error)
}

type trafficBaseline struct {
	sent  uint64
	recv  uint64
	at    time.Time
	valid bool
}

func New(cfg config.MonitorConfig, speedCfg config.SpeedtestConfig, events *eventlog.Logger) *Monitor {
	probeClient := resty.New().
		SetTimeout(cfg.ProbeTimeout).
		SetHeader("User-Agent", "netpulse/"+constants.Version)

	infoClient := resty.New().
		SetTimeout(5 * time.Second).
		SetHeader("User-Agent", "netpulse/"+constants.Version)

	return &Monitor{
		cfg:         cfg,
		speedCfg:    speedCfg,
		events:      events,
		probeClient: probeClient,
		infoClient:  infoClient,
		ipifyURL:    "https://api.ipify.org?format=json",
		ipAPIURL:    "http://ip-api.com/json/%s?fields=isp,org",
		externalIP:  notAvailable,
		provider:    notAvailable,
		now:         time.Now,
		counters:    ioCounters,
		connections: systemConnections{},
		speedRunner: runSpeedtest,
	}
}

// Collect runs one full cycle and assembles the snapshot. Cycles are
// serialized by the collector, so Collect itself only locks around shared
// state transitions.
func (m *Monitor) Collect(ctx context.Context) Snapshot {
	availability := m.CheckAvailability(ctx)

	speed := m.measureSpeedIfDue(ctx, availability.Available)

	if m.externalInfoDue() {
		m.updateExternalInfo(ctx)
	}

	snapshot := Snapshot{
		Timestamp:    m.now().Format(constants.TimestampFormat),
		Availability: availability,
		Speed:        speed,
		NetworkInfo:  m.networkInfo(),
		Traffic:      m.trafficUsage(ctx),
		Processes:    m.networkProcesses(ctx),
		LastDown:     m.lastDownString(),
	}

	// Clear the outage marker after the snapshot is built so the restoring
	// sample still carries the down time.
	m.markRestoredIfUp(availability.Available)

	return snapshot
}

func (m *Monitor) lastDownString() string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.lastDown == nil {
		return constants.LastDownNever
	}
	return m.lastDown.Format(constants.TimestampFormat)
}

func (m *Monitor) markRestoredIfUp(available bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if !available || m.lastDown == nil {
		return
	}
	downtime := m.now().Sub(*m.lastDown)
	m.events.Info("INTERNET RESTORED after %s", downtime)
	m.lastDown = nil
	// An outage often means a new external IP; force a refresh next cycle.
	m.externalAt = time.Time{}
}

// LastDown reports the current outage start, if any.
func (m *Monitor) LastDown() *time.Time {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.lastDown == nil {
		return nil
	}
	t := *m.lastDown
	return &t
}
