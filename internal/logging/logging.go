package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the daemon logger. With pretty enabled it writes human-readable
// console output, otherwise JSON lines. An unknown level falls back to info.
func New(level string, pretty bool) zerolog.Logger {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil || parsedLevel == zerolog.NoLevel {
		parsedLevel = zerolog.InfoLevel
	}

	var writer io.Writer = os.Stdout
	if pretty {
		writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(writer).Level(parsedLevel).With().Timestamp().Logger()
}

// NewWithBroker is New plus a tee of every record into the broker's daemon
// stream, so SSE clients can follow daemon logs live.
func NewWithBroker(level string, pretty bool, broker *Broker) zerolog.Logger {
	logger := New(level, pretty)
	return logger.Hook(brokerHook{broker: broker})
}

type brokerHook struct {
	broker *Broker
}

func (h brokerHook) Run(e *zerolog.Event, level zerolog.Level, message string) {
	if h.broker == nil || message == "" {
		return
	}
	h.broker.Publish(LogEntry{
		Time:    time.Now(),
		Level:   level.String(),
		Stream:  StreamDaemon,
		Message: message,
	})
}
