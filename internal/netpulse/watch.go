package netpulse

import (
	"context"
	"errors"
	"fmt"

	"github.com/akarstad/netpulse/internal/apiclient"
	"github.com/akarstad/netpulse/internal/config"
	"github.com/akarstad/netpulse/internal/monitor"
	"github.com/akarstad/netpulse/internal/ui"
	"github.com/spf13/cobra"
)

func WatchCmd(serverFlag *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream snapshots from the daemon until interrupted",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			client := apiclient.New(config.ServerURL(*serverFlag))

			ui.Info("Watching %s (Ctrl-C to stop)", config.ServerURL(*serverFlag))
			err := client.StreamStats(cmd.Context(), printWatchLine)
			if err != nil && !errors.Is(err, context.Canceled) {
				ui.Error("Stream ended: %v", err)
			}
		},
	}

	return cmd
}

func printWatchLine(snapshot monitor.Snapshot) {
	state := "DOWN"
	if snapshot.Availability.Available {
		state = "UP"
	}

	latency := "-"
	if snapshot.Availability.PingMs != nil {
		latency = fmt.Sprintf("%.2f ms", *snapshot.Availability.PingMs)
	}

	line := fmt.Sprintf("%s  %-4s  latency=%-10s  up=%.2f kbit/s  down=%.2f kbit/s",
		snapshot.Timestamp, state, latency,
		snapshot.Traffic.SentRateKbps, snapshot.Traffic.RecvRateKbps)

	if snapshot.Availability.Available {
		fmt.Println(line)
	} else {
		ui.Error("%s", line)
	}
}
