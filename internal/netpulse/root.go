package netpulse

import (
	"time"

	"github.com/akarstad/netpulse/internal/config"
	"github.com/spf13/cobra"
)

const defaultContextTimeout = 30 * time.Second

func NewRootCmd() *cobra.Command {
	var serverFlag string

	cmd := &cobra.Command{
		Use:   "netpulse",
		Short: "netpulse watches your internet connection and talks to a running netpulsed",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnvFiles()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "Daemon URL (default: NETPULSE_SERVER or http://localhost:5000)")

	cmd.AddCommand(
		StatusCmd(&serverFlag),
		WatchCmd(&serverFlag),
		LogsCmd(&serverFlag),
		HistoryCmd(&serverFlag),
		CheckCmd(),
		InitCmd(),
		ValidateConfigCmd(),
		ReleaseCmd(),
		VersionCmd(&serverFlag),
		CompletionCmd(),
	)

	return cmd
}
