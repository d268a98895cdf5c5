// Package eventlog maintains the internet_events.log file: an append-only,
// human-readable record of availability transitions and collection errors.
// The dashboard and the /api/logs endpoint read it back, so the line format
// is a stable surface.
package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/akarstad/netpulse/internal/constants"
	"github.com/akarstad/netpulse/internal/logging"
)

type Level string

const (
	DEBUG    Level = "DEBUG"
	INFO     Level = "INFO"
	WARNING  Level = "WARNING"
	ERROR    Level = "ERROR"
	CRITICAL Level = "CRITICAL"
)

// Logger appends timestamped events to the log file and mirrors each one to
// the broker's event stream for live SSE consumers.
type Logger struct {
	path   string
	broker *logging.Broker
	mutex  sync.Mutex
	now    func() time.Time
}

func New(dir string, broker *logging.Broker) *Logger {
	return &Logger{
		path:   filepath.Join(dir, constants.EventLogFileName),
		broker: broker,
		now:    time.Now,
	}
}

// Discard returns a logger that throws events away. Used by one-shot CLI
// checks that must not leave a log file behind.
func Discard() *Logger {
	return &Logger{
		path: os.DevNull,
		now:  time.Now,
	}
}

// Path returns the log file location.
func (l *Logger) Path() string {
	return l.path
}

func (l *Logger) Debug(format string, args ...any)    { l.append(DEBUG, format, args...) }
func (l *Logger) Info(format string, args ...any)     { l.append(INFO, format, args...) }
func (l *Logger) Warning(format string, args ...any)  { l.append(WARNING, format, args...) }
func (l *Logger) Error(format string, args ...any)    { l.append(ERROR, format, args...) }
func (l *Logger) Critical(format string, args ...any) { l.append(CRITICAL, format, args...) }

func (l *Logger) append(level Level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	now := l.now()
	line := fmt.Sprintf("%s - %s - %s\n", now.Format(constants.TimestampFormat), level, message)

	l.mutex.Lock()
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.ModeFileDefault)
	if err == nil {
		_, _ = file.WriteString(line)
		_ = file.Close()
	}
	l.mutex.Unlock()

	if l.broker != nil {
		l.broker.Publish(logging.LogEntry{
			Time:    now,
			Level:   strings.ToLower(string(level)),
			Stream:  logging.StreamEvents,
			Message: message,
		})
	}
}

// Tail returns the last n lines of the event log. A missing file yields an
// empty slice, not an error.
func (l *Logger) Tail(n int) ([]string, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read event log: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return []string{}, nil
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
