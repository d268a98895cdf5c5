package logging

import (
	"fmt"
	"sync"
	"time"
)

// Streams carried by the broker. The event stream holds the connection
// monitor's event-log records; the daemon stream mirrors daemon logs.
const (
	StreamEvents = "events"
	StreamDaemon = "daemon"
)

// LogEntry is one record delivered to SSE subscribers.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Stream  string    `json:"stream"`
	Message string    `json:"message"`
}

// Broker fans log entries out to subscribers. Delivery is best-effort: a
// subscriber whose channel is full misses the entry rather than blocking the
// publisher.
type Broker struct {
	mutex       sync.RWMutex
	subscribers map[string]subscriber
	nextID      int
	bufferSize  int
}

type subscriber struct {
	stream string
	ch     chan LogEntry
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[string]subscriber),
		bufferSize:  100,
	}
}

// Subscribe registers for entries on one stream; an empty stream receives
// everything. The returned ID must be passed to Unsubscribe.
func (b *Broker) Subscribe(stream string) (<-chan LogEntry, string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.nextID++
	id := fmt.Sprintf("sub-%d", b.nextID)
	ch := make(chan LogEntry, b.bufferSize)
	b.subscribers[id] = subscriber{stream: stream, ch: ch}
	return ch, id
}

func (b *Broker) Unsubscribe(id string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if sub, ok := b.subscribers[id]; ok {
		delete(b.subscribers, id)
		close(sub.ch)
	}
}

// Publish delivers an entry to every matching subscriber without blocking.
func (b *Broker) Publish(entry LogEntry) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	for _, sub := range b.subscribers {
		if sub.stream != "" && sub.stream != entry.Stream {
			continue
		}
		select {
		case sub.ch <- entry:
		default:
			// Slow subscriber, drop the entry.
		}
	}
}

// SubscriberCount is used by tests and the daemon's shutdown logging.
func (b *Broker) SubscriberCount() int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return len(b.subscribers)
}
