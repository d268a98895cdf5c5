package docker

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
)

const (
	exposedPort = nat.Port("5000/tcp")
	daemonBin   = "netpulsed"
)

// VerifyImage asserts the release image contract against the built image's
// metadata: a dedicated non-root user, port 5000 declared as exposed, and a
// default command that runs the daemon binary with no arguments. A failed
// check names the violated property.
func VerifyImage(ctx context.Context, dockerClient *client.Client, imageName string) error {
	inspect, err := dockerClient.ImageInspect(ctx, imageName)
	if err != nil {
		return fmt.Errorf("failed to inspect image %s: %w", imageName, err)
	}

	if err := verifyUser(inspect); err != nil {
		return err
	}
	if err := verifyExposedPort(inspect); err != nil {
		return err
	}
	return verifyCommand(inspect)
}

func verifyUser(inspect image.InspectResponse) error {
	user := strings.TrimSpace(inspect.Config.User)
	if user == "" {
		return fmt.Errorf("image runs as the default root account; a dedicated non-root user is required")
	}
	// Numeric UIDs may carry a group ("1000:1000").
	uid := strings.SplitN(user, ":", 2)[0]
	if uid == "root" || uid == "0" {
		return fmt.Errorf("image user %q resolves to root; a dedicated non-root user is required", user)
	}
	return nil
}

func verifyExposedPort(inspect image.InspectResponse) error {
	if _, ok := inspect.Config.ExposedPorts[exposedPort]; !ok {
		return fmt.Errorf("image does not declare port %s as exposed", exposedPort)
	}
	return nil
}

func verifyCommand(inspect image.InspectResponse) error {
	command := inspect.Config.Entrypoint
	if len(command) == 0 {
		command = inspect.Config.Cmd
	}
	if len(command) == 0 {
		return fmt.Errorf("image declares no default command")
	}
	if !strings.HasSuffix(command[0], daemonBin) {
		return fmt.Errorf("image default command %v does not run %s", command, daemonBin)
	}
	if len(command) > 1 {
		return fmt.Errorf("image default command %v passes arguments; %s must run with none", command, daemonBin)
	}
	return nil
}

// RunReleaseContainer smoke-tests a built image: start a container with port
// 5000 published, poll /health until it answers, then stop and remove the
// container. The health poll uses a short backoff because the daemon needs a
// moment to bind.
func RunReleaseContainer(ctx context.Context, dockerClient *client.Client, imageName string) error {
	containerConfig := &container.Config{
		Image: imageName,
		ExposedPorts: nat.PortSet{
			exposedPort: struct{}{},
		},
	}
	hostConfig := &container.HostConfig{
		PortBindings: nat.PortMap{
			exposedPort: []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: ""}},
		},
	}

	resp, err := dockerClient.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, "")
	if err != nil {
		return fmt.Errorf("failed to create smoke container: %w", err)
	}

	defer func() {
		timeoutSecs := 5
		_ = dockerClient.ContainerStop(ctx, resp.ID, container.StopOptions{Timeout: &timeoutSecs})
		_ = dockerClient.ContainerRemove(ctx, resp.ID, container.RemoveOptions{Force: true})
	}()

	if err := dockerClient.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return fmt.Errorf("failed to start smoke container: %w", err)
	}

	hostPort, err := publishedHostPort(ctx, dockerClient, resp.ID)
	if err != nil {
		return err
	}

	return pollHealth(ctx, fmt.Sprintf("http://127.0.0.1:%s/health", hostPort))
}

func publishedHostPort(ctx context.Context, dockerClient *client.Client, containerID string) (string, error) {
	inspect, err := dockerClient.ContainerInspect(ctx, containerID)
	if err != nil {
		return "", fmt.Errorf("failed to inspect smoke container: %w", err)
	}
	bindings := inspect.NetworkSettings.Ports[exposedPort]
	if len(bindings) == 0 {
		return "", fmt.Errorf("smoke container has no published binding for %s", exposedPort)
	}
	return bindings[0].HostPort, nil
}

func pollHealth(ctx context.Context, url string) error {
	httpClient := &http.Client{Timeout: 2 * time.Second}

	const maxAttempts = 15
	delay := 500 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		resp, err := httpClient.Get(url)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return nil
		}
		lastErr = fmt.Errorf("health endpoint returned status %d", resp.StatusCode)

		if delay < 2*time.Second {
			delay *= 2
		}
	}

	return fmt.Errorf("smoke container never became healthy: %w", lastErr)
}
