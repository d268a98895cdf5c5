// Package netpulsed assembles and runs the monitoring daemon: config,
// logging, the event log, sample storage, the collector loop and the HTTP
// API, wired together with signal-driven shutdown.
package netpulsed

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akarstad/netpulse/internal/api"
	"github.com/akarstad/netpulse/internal/collector"
	"github.com/akarstad/netpulse/internal/config"
	"github.com/akarstad/netpulse/internal/constants"
	"github.com/akarstad/netpulse/internal/eventlog"
	"github.com/akarstad/netpulse/internal/logging"
	"github.com/akarstad/netpulse/internal/monitor"
	"github.com/akarstad/netpulse/internal/storage"
	"github.com/rs/zerolog"
)

const pruneInterval = 24 * time.Hour

// Run starts the daemon and blocks until SIGINT/SIGTERM or a fatal startup
// error. Only config, storage-init and bind failures are fatal; collection
// failures degrade into event-log records.
func Run(configPath string, debug bool) error {
	config.LoadEnvFiles()

	cfg, err := config.LoadDaemonConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Logging.Level
	if debug {
		level = "debug"
	}

	broker := logging.NewBroker()
	logger := logging.NewWithBroker(level, cfg.Logging.Pretty, broker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logging.WithLogger(ctx, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Shutting down")
		cancel()
	}()

	events := eventlog.New(cfg.Logs.Dir, broker)

	var store *storage.Store
	if *cfg.History.Enabled {
		store, err = storage.Open(cfg.History.Dir)
		if err != nil {
			return fmt.Errorf("failed to open sample storage: %w", err)
		}
		defer store.Close()

		if err := store.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate sample storage: %w", err)
		}

		go runPruner(ctx, store, cfg.History.KeepDays, logger)
	}

	mon := monitor.New(cfg.Monitor, cfg.Speedtest, events)
	mon.InitTrafficBaseline(ctx)

	var sampleStore collector.SampleStore
	if store != nil {
		sampleStore = store
	}

	coll := collector.New(mon, sampleStore, cfg.Monitor.RefreshInterval, cfg.Monitor.CacheTTL, logger)
	go coll.Run(ctx)

	server := api.NewAPIServer(api.ServerConfig{
		ListenAddr: cfg.ListenAddr(),
		APIToken:   cfg.Server.APIToken,
		TailLines:  cfg.Logs.TailLines,
		Collector:  coll,
		EventLog:   events,
		History:    historyStore(store),
		LogBroker:  broker,
		Logger:     logger,
	})

	logger.Info().Str("version", constants.Version).Msg("netpulsed starting")
	return server.Start(ctx)
}

// historyStore avoids handing the API a non-nil interface wrapping a nil
// pointer when history is disabled.
func historyStore(store *storage.Store) api.HistoryStore {
	if store == nil {
		return nil
	}
	return store
}

// runPruner drops expired samples at startup and then once per day.
func runPruner(ctx context.Context, store *storage.Store, keepDays int, logger zerolog.Logger) {
	prune := func() {
		removed, err := store.PruneSamples(keepDays)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to prune samples")
			return
		}
		if removed > 0 {
			logger.Info().Int64("removed", removed).Msg("Pruned expired samples")
		}
	}

	prune()

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prune()
		}
	}
}
