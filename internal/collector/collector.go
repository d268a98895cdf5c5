// Package collector drives the background collection loop and owns the
// snapshot cache the API serves from.
package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akarstad/netpulse/internal/monitor"
	"github.com/akarstad/netpulse/internal/storage"
	"github.com/rs/zerolog"
)

// Source produces one snapshot per cycle. *monitor.Monitor is the production
// implementation.
type Source interface {
	Collect(ctx context.Context) monitor.Snapshot
}

// SampleStore persists completed cycles. Nil disables history.
type SampleStore interface {
	SaveSample(sample storage.Sample) error
}

type Collector struct {
	source Source
	store  SampleStore
	logger zerolog.Logger

	refreshInterval time.Duration
	cacheTTL        time.Duration

	// cycleMutex serializes collection cycles: the ticker loop and the
	// synchronous stale-cache path never probe concurrently.
	cycleMutex sync.Mutex

	cacheMutex sync.Mutex
	cached     monitor.Snapshot
	cachedAt   time.Time
	hasCache   bool

	subMutex    sync.Mutex
	subscribers map[string]chan monitor.Snapshot
	nextID      int

	now func() time.Time
}

func New(source Source, store SampleStore, refreshInterval, cacheTTL time.Duration, logger zerolog.Logger) *Collector {
	return &Collector{
		source:          source,
		store:           store,
		logger:          logger,
		refreshInterval: refreshInterval,
		cacheTTL:        cacheTTL,
		subscribers:     make(map[string]chan monitor.Snapshot),
		now:             time.Now,
	}
}

// Run executes the first cycle immediately and then one per refresh interval
// until the context is cancelled.
func (c *Collector) Run(ctx context.Context) {
	c.runCycle(ctx)

	ticker := time.NewTicker(c.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.runCycle(ctx)
		}
	}
}

// Snapshot returns the cached snapshot when it is still fresh, otherwise it
// runs a synchronous cycle first.
func (c *Collector) Snapshot(ctx context.Context) monitor.Snapshot {
	c.cacheMutex.Lock()
	if c.hasCache && c.now().Sub(c.cachedAt) <= c.cacheTTL {
		snapshot := c.cached
		c.cacheMutex.Unlock()
		return snapshot
	}
	c.cacheMutex.Unlock()

	return c.runCycle(ctx)
}

func (c *Collector) runCycle(ctx context.Context) monitor.Snapshot {
	c.cycleMutex.Lock()
	defer c.cycleMutex.Unlock()

	// Another caller may have completed a cycle while this one waited for
	// the lock.
	c.cacheMutex.Lock()
	if c.hasCache && c.now().Sub(c.cachedAt) <= c.cacheTTL {
		snapshot := c.cached
		c.cacheMutex.Unlock()
		return snapshot
	}
	c.cacheMutex.Unlock()

	snapshot := c.source.Collect(ctx)

	c.cacheMutex.Lock()
	c.cached = snapshot
	c.cachedAt = c.now()
	c.hasCache = true
	c.cacheMutex.Unlock()

	c.publish(snapshot)

	if c.store != nil {
		if err := c.store.SaveSample(storage.NewSample(snapshot)); err != nil {
			c.logger.Error().Err(err).Msg("Failed to persist sample")
		}
	}

	return snapshot
}

// Subscribe registers for completed cycles. Delivery is best-effort; slow
// subscribers miss snapshots instead of blocking the loop.
func (c *Collector) Subscribe() (<-chan monitor.Snapshot, string) {
	c.subMutex.Lock()
	defer c.subMutex.Unlock()

	c.nextID++
	id := fmt.Sprintf("sub-%d", c.nextID)
	ch := make(chan monitor.Snapshot, 4)
	c.subscribers[id] = ch
	return ch, id
}

func (c *Collector) Unsubscribe(id string) {
	c.subMutex.Lock()
	defer c.subMutex.Unlock()

	if ch, ok := c.subscribers[id]; ok {
		delete(c.subscribers, id)
		close(ch)
	}
}

func (c *Collector) publish(snapshot monitor.Snapshot) {
	c.subMutex.Lock()
	defer c.subMutex.Unlock()

	for _, ch := range c.subscribers {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
