package config

import (
	"strings"
	"testing"
	"time"
)

func validTestConfig(t *testing.T) DaemonConfig {
	t.Helper()
	cfg := DaemonConfig{}
	normalized, err := cfg.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	return normalized
}

func TestValidate(t *testing.T) {
	negative := -time.Second

	tests := []struct {
		name    string
		mutate  func(cfg *DaemonConfig)
		wantErr string
	}{
		{
			name:   "normalized defaults are valid",
			mutate: func(cfg *DaemonConfig) {},
		},
		{
			name:    "port zero",
			mutate:  func(cfg *DaemonConfig) { cfg.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "port too large",
			mutate:  func(cfg *DaemonConfig) { cfg.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "no test URLs",
			mutate:  func(cfg *DaemonConfig) { cfg.Monitor.TestURLs = nil },
			wantErr: "monitor.testURLs cannot be empty",
		},
		{
			name:    "non-http test URL",
			mutate:  func(cfg *DaemonConfig) { cfg.Monitor.TestURLs = []string{"ftp://example.com"} },
			wantErr: "monitor.testURLs[0]",
		},
		{
			name:    "zero probe timeout",
			mutate:  func(cfg *DaemonConfig) { cfg.Monitor.ProbeTimeout = 0 },
			wantErr: "monitor.probeTimeout",
		},
		{
			name: "cache TTL exceeds refresh interval",
			mutate: func(cfg *DaemonConfig) {
				cfg.Monitor.RefreshInterval = 5 * time.Second
				cfg.Monitor.CacheTTL = 10 * time.Second
			},
			wantErr: "cannot exceed monitor.refreshInterval",
		},
		{
			name:    "zero max processes",
			mutate:  func(cfg *DaemonConfig) { cfg.Monitor.MaxProcesses = 0 },
			wantErr: "monitor.maxProcesses",
		},
		{
			name:    "zero speedtest budget",
			mutate:  func(cfg *DaemonConfig) { cfg.Speedtest.Budget = 0 },
			wantErr: "speedtest.budget",
		},
		{
			name:    "negative speedtest interval",
			mutate:  func(cfg *DaemonConfig) { cfg.Speedtest.Interval = &negative },
			wantErr: "speedtest.interval",
		},
		{
			name:    "zero tail lines",
			mutate:  func(cfg *DaemonConfig) { cfg.Logs.TailLines = 0 },
			wantErr: "logs.tailLines",
		},
		{
			name:    "zero keep days",
			mutate:  func(cfg *DaemonConfig) { cfg.History.KeepDays = 0 },
			wantErr: "history.keepDays",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got none", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, expected to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestNormalize_LeavesReceiverUntouched(t *testing.T) {
	cfg := DaemonConfig{}
	normalized, err := cfg.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if cfg.Server.Port != 0 {
		t.Errorf("receiver Server.Port = %d, expected untouched zero", cfg.Server.Port)
	}
	if normalized.Server.Port != 5000 {
		t.Errorf("normalized Server.Port = %d, expected 5000", normalized.Server.Port)
	}
}

func TestNormalize_KeepsExplicitValues(t *testing.T) {
	interval := 2 * time.Minute
	disabled := false
	cfg := DaemonConfig{
		Server: ServerConfig{Host: "10.0.0.1", Port: 8080},
		Speedtest: SpeedtestConfig{
			Enabled:  &disabled,
			Interval: &interval,
		},
	}

	normalized, err := cfg.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if normalized.Server.Host != "10.0.0.1" || normalized.Server.Port != 8080 {
		t.Errorf("Server = %+v, expected explicit host/port kept", normalized.Server)
	}
	if normalized.Speedtest.Enabled == nil || *normalized.Speedtest.Enabled {
		t.Error("Speedtest.Enabled expected explicit false kept")
	}
	if normalized.Speedtest.Interval == nil || *normalized.Speedtest.Interval != interval {
		t.Errorf("Speedtest.Interval = %v, expected %s kept", normalized.Speedtest.Interval, interval)
	}
}
