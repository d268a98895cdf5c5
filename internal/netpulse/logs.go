package netpulse

import (
	"context"
	"errors"
	"fmt"

	"github.com/akarstad/netpulse/internal/apiclient"
	"github.com/akarstad/netpulse/internal/config"
	"github.com/akarstad/netpulse/internal/constants"
	"github.com/akarstad/netpulse/internal/logging"
	"github.com/akarstad/netpulse/internal/ui"
	"github.com/spf13/cobra"
)

func LogsCmd(serverFlag *string) *cobra.Command {
	var follow bool
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the connection event log",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			client := apiclient.New(config.ServerURL(*serverFlag))

			ctx, cancel := context.WithTimeout(cmd.Context(), defaultContextTimeout)
			response, err := client.Logs(ctx)
			cancel()
			if err != nil {
				ui.Error("Failed to get logs: %v", err)
				return
			}

			tail := response.Logs
			if lines > 0 && len(tail) > lines {
				tail = tail[len(tail)-lines:]
			}
			for _, line := range tail {
				fmt.Println(line)
			}

			if !follow {
				return
			}

			err = client.StreamLogs(cmd.Context(), printLogEntry)
			if err != nil && !errors.Is(err, context.Canceled) {
				ui.Error("Stream ended: %v", err)
			}
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Limit output to the last N lines")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Stream new events after printing the tail")
	return cmd
}

func printLogEntry(entry logging.LogEntry) {
	line := fmt.Sprintf("%s - %s - %s",
		entry.Time.Format(constants.TimestampFormat), entry.Level, entry.Message)

	switch entry.Level {
	case "error", "critical":
		ui.Error("%s", line)
	case "warning", "warn":
		ui.Warn("%s", line)
	default:
		fmt.Println(line)
	}
}
