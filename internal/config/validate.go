package config

import (
	"errors"
	"fmt"

	"github.com/akarstad/netpulse/internal/helpers"
)

// Validate checks a normalized config. It assumes Normalize has filled the
// defaults, so zero values that Normalize would have replaced are errors here.
func (c *DaemonConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range (1-65535)", c.Server.Port)
	}

	if len(c.Monitor.TestURLs) == 0 {
		return errors.New("monitor.testURLs cannot be empty")
	}
	for i, rawURL := range c.Monitor.TestURLs {
		if err := helpers.IsValidHTTPURL(rawURL); err != nil {
			return fmt.Errorf("monitor.testURLs[%d]: %w", i, err)
		}
	}

	if c.Monitor.ProbeTimeout <= 0 {
		return errors.New("monitor.probeTimeout must be positive")
	}
	if c.Monitor.RefreshInterval <= 0 {
		return errors.New("monitor.refreshInterval must be positive")
	}
	if c.Monitor.CacheTTL <= 0 {
		return errors.New("monitor.cacheTTL must be positive")
	}
	if c.Monitor.CacheTTL > c.Monitor.RefreshInterval {
		return fmt.Errorf("monitor.cacheTTL (%s) cannot exceed monitor.refreshInterval (%s)",
			c.Monitor.CacheTTL, c.Monitor.RefreshInterval)
	}
	if c.Monitor.MaxProcesses < 1 {
		return errors.New("monitor.maxProcesses must be at least 1")
	}

	if c.Speedtest.Budget <= 0 {
		return errors.New("speedtest.budget must be positive")
	}
	if c.Speedtest.Interval != nil && *c.Speedtest.Interval < 0 {
		return errors.New("speedtest.interval cannot be negative")
	}

	if c.Logs.TailLines < 1 {
		return errors.New("logs.tailLines must be at least 1")
	}

	if c.History.KeepDays < 1 {
		return errors.New("history.keepDays must be at least 1")
	}

	return nil
}
