package netpulse

import (
	"fmt"
	"os"

	"github.com/akarstad/netpulse/internal/constants"
	"github.com/akarstad/netpulse/internal/embed"
	"github.com/akarstad/netpulse/internal/ui"
	"github.com/spf13/cobra"
)

// InitCmd writes a starter daemon config with every default spelled out.
func InitCmd() *cobra.Command {
	var format string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter netpulse config file",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fileName, err := configTemplateName(format)
			if err != nil {
				ui.Error("%v", err)
				return
			}

			data, err := embed.InitFS.ReadFile("init/" + fileName)
			if err != nil {
				ui.Error("Failed to read config template: %v", err)
				return
			}

			if _, err := os.Stat(fileName); err == nil && !force {
				ui.Error("%s already exists; use --force to overwrite", fileName)
				return
			}

			if err := os.WriteFile(fileName, data, constants.ModeFileDefault); err != nil {
				ui.Error("Failed to write %s: %v", fileName, err)
				return
			}

			ui.Success("Wrote %s", fileName)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Config format: yaml, toml or json")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func configTemplateName(format string) (string, error) {
	switch format {
	case "yaml", "yml":
		return "netpulse.yml", nil
	case "toml":
		return "netpulse.toml", nil
	case "json":
		return "netpulse.json", nil
	default:
		return "", fmt.Errorf("unsupported format %q; expected yaml, toml or json", format)
	}
}
