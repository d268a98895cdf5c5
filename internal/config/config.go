package config

import (
	"fmt"
	"time"

	"github.com/akarstad/netpulse/internal/constants"
	"github.com/jinzhu/copier"
)

// DaemonConfig is the full configuration for netpulsed. Every field has a
// usable default so the daemon runs with no config file at all.
type DaemonConfig struct {
	Server    ServerConfig    `yaml:"server,omitempty" toml:"server,omitempty" json:"server,omitempty"`
	Monitor   MonitorConfig   `yaml:"monitor,omitempty" toml:"monitor,omitempty" json:"monitor,omitempty"`
	Speedtest SpeedtestConfig `yaml:"speedtest,omitempty" toml:"speedtest,omitempty" json:"speedtest,omitempty"`
	Logs      LogsConfig      `yaml:"logs,omitempty" toml:"logs,omitempty" json:"logs,omitempty"`
	History   HistoryConfig   `yaml:"history,omitempty" toml:"history,omitempty" json:"history,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty" toml:"logging,omitempty" json:"logging,omitempty"`
}

type ServerConfig struct {
	Host     string `yaml:"host,omitempty" toml:"host,omitempty" json:"host,omitempty"`
	Port     int    `yaml:"port,omitempty" toml:"port,omitempty" json:"port,omitempty"`
	APIToken string `yaml:"apiToken,omitempty" toml:"apiToken,omitempty" json:"apiToken,omitempty"`
}

type MonitorConfig struct {
	TestURLs        []string      `yaml:"testURLs,omitempty" toml:"testURLs,omitempty" json:"testURLs,omitempty"`
	ProbeTimeout    time.Duration `yaml:"probeTimeout,omitempty" toml:"probeTimeout,omitempty" json:"probeTimeout,omitempty"`
	RefreshInterval time.Duration `yaml:"refreshInterval,omitempty" toml:"refreshInterval,omitempty" json:"refreshInterval,omitempty"`
	CacheTTL        time.Duration `yaml:"cacheTTL,omitempty" toml:"cacheTTL,omitempty" json:"cacheTTL,omitempty"`
	MaxProcesses    int           `yaml:"maxProcesses,omitempty" toml:"maxProcesses,omitempty" json:"maxProcesses,omitempty"`
}

type SpeedtestConfig struct {
	Enabled *bool `yaml:"enabled,omitempty" toml:"enabled,omitempty" json:"enabled,omitempty"`
	// Budget caps one full download+upload run; the cycle proceeds without
	// speeds when it is exhausted.
	Budget time.Duration `yaml:"budget,omitempty" toml:"budget,omitempty" json:"budget,omitempty"`
	// Interval spaces speed test runs. A pointer so an explicit "0s"
	// (run every refresh cycle) survives Normalize.
	Interval *time.Duration `yaml:"interval,omitempty" toml:"interval,omitempty" json:"interval,omitempty"`
}

type LogsConfig struct {
	Dir       string `yaml:"dir,omitempty" toml:"dir,omitempty" json:"dir,omitempty"`
	TailLines int    `yaml:"tailLines,omitempty" toml:"tailLines,omitempty" json:"tailLines,omitempty"`
}

type HistoryConfig struct {
	Enabled  *bool  `yaml:"enabled,omitempty" toml:"enabled,omitempty" json:"enabled,omitempty"`
	Dir      string `yaml:"dir,omitempty" toml:"dir,omitempty" json:"dir,omitempty"`
	KeepDays int    `yaml:"keepDays,omitempty" toml:"keepDays,omitempty" json:"keepDays,omitempty"`
}

type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" toml:"level,omitempty" json:"level,omitempty"`
	Pretty bool   `yaml:"pretty,omitempty" toml:"pretty,omitempty" json:"pretty,omitempty"`
}

// DefaultTestURLs are probed in order until one yields an HTTP response.
var DefaultTestURLs = []string{
	"https://www.google.com",
	"https://www.cloudflare.com",
	"https://1.1.1.1",
}

const (
	DefaultProbeTimeout      = 5 * time.Second
	DefaultRefreshInterval   = 10 * time.Second
	DefaultCacheTTL          = 5 * time.Second
	DefaultMaxProcesses      = 20
	DefaultSpeedtestBudget   = 8 * time.Second
	DefaultSpeedtestInterval = 10 * time.Minute
	DefaultTailLines         = 50
	DefaultKeepDays          = 7
)

// Normalize returns a deep copy of the config with every unset field filled
// with its default. The receiver is left untouched.
func (c *DaemonConfig) Normalize() (DaemonConfig, error) {
	var normalized DaemonConfig
	if err := copier.CopyWithOption(&normalized, c, copier.Option{DeepCopy: true}); err != nil {
		return DaemonConfig{}, fmt.Errorf("failed to copy config: %w", err)
	}

	if normalized.Server.Host == "" {
		normalized.Server.Host = constants.DefaultServerHost
	}
	if normalized.Server.Port == 0 {
		normalized.Server.Port = constants.DefaultServerPort
	}

	if len(normalized.Monitor.TestURLs) == 0 {
		normalized.Monitor.TestURLs = append([]string{}, DefaultTestURLs...)
	}
	if normalized.Monitor.ProbeTimeout == 0 {
		normalized.Monitor.ProbeTimeout = DefaultProbeTimeout
	}
	if normalized.Monitor.RefreshInterval == 0 {
		normalized.Monitor.RefreshInterval = DefaultRefreshInterval
	}
	if normalized.Monitor.CacheTTL == 0 {
		normalized.Monitor.CacheTTL = DefaultCacheTTL
	}
	if normalized.Monitor.MaxProcesses == 0 {
		normalized.Monitor.MaxProcesses = DefaultMaxProcesses
	}

	if normalized.Speedtest.Enabled == nil {
		enabled := true
		normalized.Speedtest.Enabled = &enabled
	}
	if normalized.Speedtest.Budget == 0 {
		normalized.Speedtest.Budget = DefaultSpeedtestBudget
	}
	if normalized.Speedtest.Interval == nil {
		interval := DefaultSpeedtestInterval
		normalized.Speedtest.Interval = &interval
	}

	if normalized.Logs.Dir == "" {
		normalized.Logs.Dir = "."
	}
	if normalized.Logs.TailLines == 0 {
		normalized.Logs.TailLines = DefaultTailLines
	}

	if normalized.History.Enabled == nil {
		enabled := true
		normalized.History.Enabled = &enabled
	}
	if normalized.History.Dir == "" {
		normalized.History.Dir = "."
	}
	if normalized.History.KeepDays == 0 {
		normalized.History.KeepDays = DefaultKeepDays
	}

	if normalized.Logging.Level == "" {
		normalized.Logging.Level = "info"
	}

	return normalized, nil
}

// ListenAddr is the host:port the API server binds.
func (c *DaemonConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
