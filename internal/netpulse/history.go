package netpulse

import (
	"context"
	"fmt"
	"strings"

	"github.com/akarstad/netpulse/internal/apiclient"
	"github.com/akarstad/netpulse/internal/config"
	"github.com/akarstad/netpulse/internal/storage"
	"github.com/akarstad/netpulse/internal/ui"
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"
)

func HistoryCmd(serverFlag *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show persisted connection samples",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx, cancel := context.WithTimeout(cmd.Context(), defaultContextTimeout)
			defer cancel()

			client := apiclient.New(config.ServerURL(*serverFlag))
			response, err := client.History(ctx, limit)
			if err != nil {
				ui.Error("Failed to get history: %v", err)
				return
			}

			if len(response.Samples) == 0 {
				ui.Info("No samples recorded yet")
				return
			}

			fmt.Println(formatSampleTable(response.Samples))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum samples to fetch (default 100)")
	return cmd
}

func formatSampleTable(samples []storage.Sample) string {
	rows := []string{"CREATED | STATE | LATENCY | DOWNLOAD | UPLOAD | UP RATE | DOWN RATE"}
	for _, sample := range samples {
		state := "down"
		if sample.Available {
			state = "up"
		}
		rows = append(rows, strings.Join([]string{
			sample.CreatedAt,
			state,
			formatOptionalFloat(sample.LatencyMs, "ms"),
			formatOptionalFloat(sample.DownloadMbps, "Mbps"),
			formatOptionalFloat(sample.UploadMbps, "Mbps"),
			fmt.Sprintf("%.2f kbit/s", sample.SentRateKbps),
			fmt.Sprintf("%.2f kbit/s", sample.RecvRateKbps),
		}, " | "))
	}
	return columnize.SimpleFormat(rows)
}

func formatOptionalFloat(value *float64, unit string) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f %s", *value, unit)
}
