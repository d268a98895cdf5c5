package netpulse

import (
	"context"
	"fmt"

	"github.com/akarstad/netpulse/internal/apiclient"
	"github.com/akarstad/netpulse/internal/config"
	"github.com/akarstad/netpulse/internal/constants"
	"github.com/spf13/cobra"
)

func VersionCmd(serverFlag *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current version of netpulse",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("netpulse %s\n", constants.Version)

			ctx, cancel := context.WithTimeout(cmd.Context(), defaultContextTimeout)
			defer cancel()

			client := apiclient.New(config.ServerURL(*serverFlag))
			if resp, err := client.Version(ctx); err == nil {
				fmt.Printf("netpulsed %s\n", resp.Version)
			}
		},
	}

	return cmd
}
