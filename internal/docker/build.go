package docker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/archive"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/moby/term"
)

// BuildImage builds the release image from contextDir, mimicking the
// 'docker build' CLI: the context is tarred with .dockerignore applied and
// build progress is streamed to stdout.
func BuildImage(ctx context.Context, dockerClient *client.Client, imageName, contextDir string) error {
	fmt.Printf("Building image '%s'...\n", imageName)

	buildOpts := types.ImageBuildOptions{
		Tags:       []string{imageName},
		Dockerfile: "Dockerfile",
		Remove:     true,
	}

	buildContextTar, err := archive.TarWithOptions(contextDir, &archive.TarOptions{
		ExcludePatterns: getDockerIgnorePatterns(contextDir),
	})
	if err != nil {
		return fmt.Errorf("failed to create build context: %w", err)
	}
	defer buildContextTar.Close()

	resp, err := dockerClient.ImageBuild(ctx, buildContextTar, buildOpts)
	if err != nil {
		return fmt.Errorf("failed to build image: %w", err)
	}
	defer resp.Body.Close()

	termFd, isTerm := term.GetFdInfo(os.Stdout)
	return jsonmessage.DisplayJSONMessagesStream(resp.Body, os.Stdout, termFd, isTerm, nil)
}

// getDockerIgnorePatterns reads the .dockerignore file in the given context directory.
func getDockerIgnorePatterns(contextDir string) []string {
	patterns := []string{}
	data, err := os.ReadFile(filepath.Join(contextDir, ".dockerignore"))
	if err != nil {
		return patterns
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns
}
