package netpulse

import (
	"context"
	"time"

	"github.com/akarstad/netpulse/internal/constants"
	"github.com/akarstad/netpulse/internal/docker"
	"github.com/akarstad/netpulse/internal/ui"
	"github.com/spf13/cobra"
)

const releaseTimeout = 15 * time.Minute

// ReleaseCmd builds the container image and verifies the image contract:
// non-root runtime user, port 5000 exposed, default command running the
// daemon with no arguments.
func ReleaseCmd() *cobra.Command {
	var tag string
	var contextDir string
	var verifyOnly string
	var smoke bool

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Build and verify the netpulse container image",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			ctx, cancel := context.WithTimeout(cmd.Context(), releaseTimeout)
			defer cancel()

			cli, err := docker.NewClient(ctx)
			if err != nil {
				ui.Error("%v", err)
				return
			}
			defer cli.Close()

			imageName := tag
			if verifyOnly != "" {
				imageName = verifyOnly
			} else {
				if err := docker.BuildImage(ctx, cli, imageName, contextDir); err != nil {
					ui.Error("Build failed: %v", err)
					return
				}
				ui.Success("Built %s", imageName)
			}

			if err := docker.VerifyImage(ctx, cli, imageName); err != nil {
				ui.Error("Image verification failed: %v", err)
				return
			}
			ui.Success("Image %s passes verification", imageName)

			if smoke {
				ui.Info("Running smoke container...")
				if err := docker.RunReleaseContainer(ctx, cli, imageName); err != nil {
					ui.Error("Smoke run failed: %v", err)
					return
				}
				ui.Success("Smoke run passed: /health answered")
			}
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", constants.DefaultImageName, "Image tag to build")
	cmd.Flags().StringVar(&contextDir, "context", ".", "Build context directory")
	cmd.Flags().StringVar(&verifyOnly, "verify-only", "", "Skip the build and verify an existing image")
	cmd.Flags().BoolVar(&smoke, "smoke", false, "Start the built image and poll /health")
	return cmd
}
