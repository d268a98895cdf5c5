package storage

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/akarstad/netpulse/internal/constants"
	"github.com/akarstad/netpulse/internal/monitor"
	"github.com/oklog/ulid"
)

// Sample is one persisted collection cycle.
type Sample struct {
	ID           string   `json:"id"`
	CreatedAt    string   `json:"created_at"` // RFC3339
	Available    bool     `json:"available"`
	StatusCode   int      `json:"status_code"`
	LatencyMs    *float64 `json:"latency_ms,omitempty"`
	TestURL      string   `json:"test_url,omitempty"`
	DownloadMbps *float64 `json:"download_mbps,omitempty"`
	UploadMbps   *float64 `json:"upload_mbps,omitempty"`
	SentRateKbps float64  `json:"sent_rate_kbps"`
	RecvRateKbps float64  `json:"recv_rate_kbps"`
	Outage       bool     `json:"outage"`
}

// NewSample flattens a snapshot into its persisted form.
func NewSample(snapshot monitor.Snapshot) Sample {
	sample := Sample{
		ID:           ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0)).String(),
		CreatedAt:    time.Now().Format(time.RFC3339),
		Available:    snapshot.Availability.Available,
		StatusCode:   snapshot.Availability.StatusCode,
		LatencyMs:    snapshot.Availability.PingMs,
		DownloadMbps: snapshot.Speed.DownloadMbps,
		UploadMbps:   snapshot.Speed.UploadMbps,
		SentRateKbps: snapshot.Traffic.SentRateKbps,
		RecvRateKbps: snapshot.Traffic.RecvRateKbps,
		Outage:       snapshot.LastDown != constants.LastDownNever,
	}
	if snapshot.Availability.TestURL != nil {
		sample.TestURL = *snapshot.Availability.TestURL
	}
	return sample
}

func createSamplesTable(s *Store) error {
	schema := `
CREATE TABLE IF NOT EXISTS samples (
    id TEXT PRIMARY KEY,                    -- ULID, sorts by creation time
    created_at TEXT NOT NULL,               -- RFC3339
    available INTEGER NOT NULL,
    status_code INTEGER NOT NULL,
    latency_ms REAL,
    test_url TEXT,
    download_mbps REAL,
    upload_mbps REAL,
    sent_rate_kbps REAL NOT NULL,
    recv_rate_kbps REAL NOT NULL,
    outage INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_samples_created_at ON samples(created_at);
`

	if _, err := s.Exec(schema); err != nil {
		return fmt.Errorf("failed to create samples table: %w", err)
	}
	return nil
}

func (s *Store) SaveSample(sample Sample) error {
	query := `INSERT INTO samples
        (id, created_at, available, status_code, latency_ms, test_url,
         download_mbps, upload_mbps, sent_rate_kbps, recv_rate_kbps, outage)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.Exec(query, sample.ID, sample.CreatedAt, sample.Available,
		sample.StatusCode, sample.LatencyMs, sample.TestURL, sample.DownloadMbps,
		sample.UploadMbps, sample.SentRateKbps, sample.RecvRateKbps, sample.Outage)
	if err != nil {
		return fmt.Errorf("failed to save sample: %w", err)
	}
	return nil
}

// RecentSamples returns the newest samples first.
func (s *Store) RecentSamples(limit int) ([]Sample, error) {
	query := `SELECT id, created_at, available, status_code, latency_ms, test_url,
        download_mbps, upload_mbps, sent_rate_kbps, recv_rate_kbps, outage
        FROM samples ORDER BY id DESC LIMIT ?`

	rows, err := s.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	samples := []Sample{}
	for rows.Next() {
		var sample Sample
		if err := rows.Scan(&sample.ID, &sample.CreatedAt, &sample.Available,
			&sample.StatusCode, &sample.LatencyMs, &sample.TestURL,
			&sample.DownloadMbps, &sample.UploadMbps, &sample.SentRateKbps,
			&sample.RecvRateKbps, &sample.Outage); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}

// PruneSamples deletes samples older than keepDays. Returns the number of
// rows removed.
func (s *Store) PruneSamples(keepDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -keepDays).Format(time.RFC3339)
	result, err := s.Exec(`DELETE FROM samples WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune samples: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}
