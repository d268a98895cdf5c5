package apiclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akarstad/netpulse/internal/apitypes"
	"github.com/akarstad/netpulse/internal/logging"
	"github.com/akarstad/netpulse/internal/monitor"
)

func (c *APIClient) Stats(ctx context.Context) (*monitor.Snapshot, error) {
	var snapshot monitor.Snapshot
	if err := c.get(ctx, "stats", &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *APIClient) Logs(ctx context.Context) (*apitypes.LogsResponse, error) {
	var response apitypes.LogsResponse
	if err := c.get(ctx, "logs", &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *APIClient) History(ctx context.Context, limit int) (*apitypes.HistoryResponse, error) {
	var response apitypes.HistoryResponse
	path := "history"
	if limit > 0 {
		path = fmt.Sprintf("history?limit=%d", limit)
	}
	if err := c.get(ctx, path, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (c *APIClient) Version(ctx context.Context) (*apitypes.VersionResponse, error) {
	var response apitypes.VersionResponse
	if err := c.get(ctx, "version", &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// StreamStats delivers one snapshot per completed collection cycle until the
// context is cancelled.
func (c *APIClient) StreamStats(ctx context.Context, handler func(snapshot monitor.Snapshot)) error {
	return c.stream(ctx, "stats/stream", func(data string) (bool, error) {
		var snapshot monitor.Snapshot
		if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
			return false, fmt.Errorf("failed to parse snapshot: %w", err)
		}
		handler(snapshot)
		return false, nil
	})
}

// StreamLogs delivers event-log records as the daemon appends them.
func (c *APIClient) StreamLogs(ctx context.Context, handler func(entry logging.LogEntry)) error {
	return c.stream(ctx, "logs/stream", func(data string) (bool, error) {
		var entry logging.LogEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return false, fmt.Errorf("failed to parse log entry: %w", err)
		}
		handler(entry)
		return false, nil
	})
}
