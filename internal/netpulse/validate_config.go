package netpulse

import (
	"fmt"

	"github.com/akarstad/netpulse/internal/config"
	"github.com/akarstad/netpulse/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func ValidateConfigCmd() *cobra.Command {
	var configPath string
	var printEffective bool

	cmd := &cobra.Command{
		Use:   "validate-config",
		Short: "Validate the daemon config and show the effective values",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg, err := config.LoadDaemonConfig(configPath)
			if err != nil {
				ui.Error("Config is invalid: %v", err)
				return
			}

			ui.Success("Config is valid")

			if printEffective {
				data, err := yaml.Marshal(cfg)
				if err != nil {
					ui.Error("Failed to render effective config: %v", err)
					return
				}
				fmt.Print(string(data))
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file or directory (default: .)")
	cmd.Flags().BoolVarP(&printEffective, "print", "p", false, "Print the effective config after normalization")
	return cmd
}
