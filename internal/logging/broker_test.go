package logging

import (
	"testing"
	"time"
)

func TestBroker_StreamFiltering(t *testing.T) {
	broker := NewBroker()

	eventsCh, eventsID := broker.Subscribe(StreamEvents)
	defer broker.Unsubscribe(eventsID)
	allCh, allID := broker.Subscribe("")
	defer broker.Unsubscribe(allID)

	broker.Publish(LogEntry{Stream: StreamDaemon, Message: "daemon only"})
	broker.Publish(LogEntry{Stream: StreamEvents, Message: "event"})

	select {
	case entry := <-eventsCh:
		if entry.Message != "event" {
			t.Errorf("events subscriber got %q, expected the event entry", entry.Message)
		}
	case <-time.After(time.Second):
		t.Fatal("events subscriber received nothing")
	}

	if got := len(allCh); got != 2 {
		t.Errorf("catch-all subscriber has %d buffered entries, expected 2", got)
	}
}

func TestBroker_SlowSubscriberDropsEntries(t *testing.T) {
	broker := NewBroker()
	broker.bufferSize = 1

	ch, id := broker.Subscribe(StreamEvents)
	defer broker.Unsubscribe(id)

	broker.Publish(LogEntry{Stream: StreamEvents, Message: "kept"})
	broker.Publish(LogEntry{Stream: StreamEvents, Message: "dropped"})

	if got := len(ch); got != 1 {
		t.Fatalf("subscriber has %d buffered entries, expected 1", got)
	}
	if entry := <-ch; entry.Message != "kept" {
		t.Errorf("buffered entry = %q, expected the first publish", entry.Message)
	}
}

func TestBroker_Unsubscribe(t *testing.T) {
	broker := NewBroker()

	ch, id := broker.Subscribe(StreamEvents)
	if broker.SubscriberCount() != 1 {
		t.Fatalf("SubscriberCount() = %d, expected 1", broker.SubscriberCount())
	}

	broker.Unsubscribe(id)
	if broker.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount() = %d after unsubscribe, expected 0", broker.SubscriberCount())
	}

	if _, open := <-ch; open {
		t.Error("channel still open after unsubscribe")
	}

	// Unsubscribing twice is a no-op.
	broker.Unsubscribe(id)
}
