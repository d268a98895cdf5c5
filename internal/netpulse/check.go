package netpulse

import (
	"context"
	"os"

	"github.com/akarstad/netpulse/internal/config"
	"github.com/akarstad/netpulse/internal/eventlog"
	"github.com/akarstad/netpulse/internal/monitor"
	"github.com/akarstad/netpulse/internal/ui"
	"github.com/spf13/cobra"
)

// CheckCmd probes the test URLs directly, no daemon required. Exit code 0
// means the connection is up.
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a one-shot availability probe without a daemon",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg, err := (&config.DaemonConfig{}).Normalize()
			if err != nil {
				ui.Error("Failed to build config: %v", err)
				os.Exit(1)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), defaultContextTimeout)
			defer cancel()

			mon := monitor.New(cfg.Monitor, cfg.Speedtest, eventlog.Discard())
			availability := mon.CheckAvailability(ctx)

			if availability.Available {
				ui.Success("Internet is up: %s answered HTTP %d in %.2f ms",
					*availability.TestURL, availability.StatusCode, *availability.PingMs)
				return
			}

			if availability.StatusCode > 0 {
				ui.Error("Internet looks down: HTTP %d from %s",
					availability.StatusCode, *availability.TestURL)
			} else {
				ui.Error("Internet is down: no test URL answered")
			}
			os.Exit(1)
		},
	}

	return cmd
}
