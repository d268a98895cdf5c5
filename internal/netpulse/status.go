package netpulse

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/akarstad/netpulse/internal/apiclient"
	"github.com/akarstad/netpulse/internal/config"
	"github.com/akarstad/netpulse/internal/constants"
	"github.com/akarstad/netpulse/internal/monitor"
	"github.com/akarstad/netpulse/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func StatusCmd(serverFlag *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current connection snapshot",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx, cancel := context.WithTimeout(cmd.Context(), defaultContextTimeout)
			defer cancel()

			client := apiclient.New(config.ServerURL(*serverFlag))
			snapshot, err := client.Stats(ctx)
			if err != nil {
				ui.Error("Failed to get stats: %v", err)
				return
			}

			printSnapshot(snapshot)
		},
	}

	return cmd
}

func printSnapshot(snapshot *monitor.Snapshot) {
	avail := snapshot.Availability

	availLine := lipgloss.NewStyle().Foreground(ui.Red).Render("Offline")
	if avail.Available {
		availLine = lipgloss.NewStyle().Foreground(ui.Green).Render("Online")
	}

	lines := []string{
		fmt.Sprintf("Connection: %s", availLine),
		fmt.Sprintf("Last down: %s", formatLastDown(snapshot.LastDown)),
	}
	if avail.PingMs != nil {
		lines = append(lines, fmt.Sprintf("Latency: %.2f ms (%s, HTTP %d)", *avail.PingMs, derefOr(avail.TestURL, "-"), avail.StatusCode))
	}
	if snapshot.Speed.DownloadMbps != nil && snapshot.Speed.UploadMbps != nil {
		lines = append(lines, fmt.Sprintf("Speed: %.2f Mbps down / %.2f Mbps up",
			*snapshot.Speed.DownloadMbps, *snapshot.Speed.UploadMbps))
	}
	ui.Section(fmt.Sprintf("Status at %s", snapshot.Timestamp), lines)

	info := snapshot.NetworkInfo
	ui.Section("Network", []string{
		fmt.Sprintf("Host: %s (%s on %s)", info.Hostname, info.LocalIP, info.InterfaceName),
		fmt.Sprintf("MAC: %s", info.MACAddress),
		fmt.Sprintf("External IP: %s (%s)", info.ExternalIP, info.Provider),
	})

	traffic := snapshot.Traffic
	ui.Section("Traffic", []string{
		fmt.Sprintf("Totals: %s sent, %s received",
			humanize.SI(traffic.SentTotalMB*1e6, "B"), humanize.SI(traffic.RecvTotalMB*1e6, "B")),
		fmt.Sprintf("Rates: %.2f kbit/s up, %.2f kbit/s down", traffic.SentRateKbps, traffic.RecvRateKbps),
	})

	if len(snapshot.Processes) > 0 {
		procLines := make([]string, 0, len(snapshot.Processes))
		for _, proc := range snapshot.Processes {
			procLines = append(procLines, fmt.Sprintf("%d %s %s -> %s",
				proc.PID, proc.Name, proc.LocalAddress, proc.RemoteAddress))
		}
		ui.Section(fmt.Sprintf("Network processes (%d)", len(snapshot.Processes)), procLines)
	}
}

// formatLastDown renders the outage marker as a relative time when it parses.
func formatLastDown(lastDown string) string {
	if lastDown == constants.LastDownNever {
		return lastDown
	}
	t, err := time.ParseInLocation(constants.TimestampFormat, lastDown, time.Local)
	if err != nil {
		return lastDown
	}
	return fmt.Sprintf("%s (%s)", lastDown, humanize.Time(t))
}

func derefOr(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return *s
}
