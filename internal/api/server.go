package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/akarstad/netpulse/internal/collector"
	"github.com/akarstad/netpulse/internal/eventlog"
	"github.com/akarstad/netpulse/internal/logging"
	"github.com/akarstad/netpulse/internal/monitor"
	"github.com/akarstad/netpulse/internal/storage"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

// SnapshotProvider serves the stats endpoints. *collector.Collector is the
// production implementation.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) monitor.Snapshot
	Subscribe() (<-chan monitor.Snapshot, string)
	Unsubscribe(id string)
}

var _ SnapshotProvider = (*collector.Collector)(nil)

// HistoryStore serves /api/history. Nil when history is disabled.
type HistoryStore interface {
	RecentSamples(limit int) ([]storage.Sample, error)
}

type ServerConfig struct {
	ListenAddr string
	APIToken   string // empty disables bearer auth on /api/*
	TailLines  int
	Collector  SnapshotProvider
	EventLog   *eventlog.Logger
	History    HistoryStore
	LogBroker  *logging.Broker
	Logger     zerolog.Logger
}

type APIServer struct {
	router    *http.ServeMux
	collector SnapshotProvider
	eventLog  *eventlog.Logger
	history   HistoryStore
	logBroker *logging.Broker
	logger    zerolog.Logger
	apiToken  string
	tailLines int
	addr      string
}

func NewAPIServer(cfg ServerConfig) *APIServer {
	s := &APIServer{
		router:    http.NewServeMux(),
		collector: cfg.Collector,
		eventLog:  cfg.EventLog,
		history:   cfg.History,
		logBroker: cfg.LogBroker,
		logger:    cfg.Logger,
		apiToken:  cfg.APIToken,
		tailLines: cfg.TailLines,
		addr:      cfg.ListenAddr,
	}
	s.setupRoutes()
	return s
}

// Start serves until the context is cancelled, then drains connections for
// up to the shutdown timeout.
func (s *APIServer) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.addr,
		Handler: s.router,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("API server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("API server failed: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info().Msg("Shutting down API server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown: %w", err)
	}
	return nil
}
