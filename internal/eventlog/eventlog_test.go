package eventlog

import (
	"os"
	"testing"
	"time"

	"github.com/akarstad/netpulse/internal/logging"
)

func fixedTime() time.Time {
	return time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)
}

func TestAppend_LineFormat(t *testing.T) {
	logger := New(t.TempDir(), nil)
	logger.now = fixedTime

	logger.Critical("INTERNET DOWN - Initial detection")

	data, err := os.ReadFile(logger.Path())
	if err != nil {
		t.Fatalf("failed to read event log: %v", err)
	}

	expected := "2026-03-14 15:09:26 - CRITICAL - INTERNET DOWN - Initial detection\n"
	if string(data) != expected {
		t.Errorf("log line = %q, expected %q", string(data), expected)
	}
}

func TestTail(t *testing.T) {
	logger := New(t.TempDir(), nil)
	logger.now = fixedTime

	logger.Info("first")
	logger.Warning("second")
	logger.Error("third")

	lines, err := logger.Tail(2)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("Tail(2) returned %d lines, expected 2", len(lines))
	}
	if lines[0] != "2026-03-14 15:09:26 - WARNING - second" {
		t.Errorf("lines[0] = %q, expected the WARNING line", lines[0])
	}
	if lines[1] != "2026-03-14 15:09:26 - ERROR - third" {
		t.Errorf("lines[1] = %q, expected the ERROR line", lines[1])
	}
}

func TestTail_MissingFile(t *testing.T) {
	logger := New(t.TempDir(), nil)

	lines, err := logger.Tail(10)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Tail() on missing file returned %d lines, expected 0", len(lines))
	}
}

func TestAppend_PublishesToBroker(t *testing.T) {
	broker := logging.NewBroker()
	ch, id := broker.Subscribe(logging.StreamEvents)
	defer broker.Unsubscribe(id)

	logger := New(t.TempDir(), broker)
	logger.Warning("HTTP Error %d for %s", 503, "https://example.com")

	select {
	case entry := <-ch:
		if entry.Stream != logging.StreamEvents {
			t.Errorf("entry.Stream = %s, expected %s", entry.Stream, logging.StreamEvents)
		}
		if entry.Level != "warning" {
			t.Errorf("entry.Level = %s, expected warning", entry.Level)
		}
		if entry.Message != "HTTP Error 503 for https://example.com" {
			t.Errorf("entry.Message = %q", entry.Message)
		}
	case <-time.After(time.Second):
		t.Fatal("no entry delivered to broker subscriber")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	// Must not create files or panic.
	logger.Info("one-shot check, nothing persisted")

	lines, err := logger.Tail(10)
	if err != nil {
		t.Fatalf("Tail() error = %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Discard() logger yielded %d lines, expected 0", len(lines))
	}
}
