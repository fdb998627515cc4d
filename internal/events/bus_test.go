package events

import (
	"testing"
	"time"
)

// TestPublishSubscribe verifies basic publish/subscribe functionality.
func TestPublishSubscribe(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	ch := bus.Subscribe(TopicRun, 10)

	bus.Publish(TopicRun, RunStartedEvent{
		Name:      "example",
		Workers:   2,
		TaskCount: 6,
		Timestamp: time.Now(),
	})

	select {
	case received := <-ch:
		if received.Scenario() != "example" {
			t.Errorf("expected scenario 'example', got %q", received.Scenario())
		}
		if received.EventType() != EventTypeRunStarted {
			t.Errorf("expected event type %q, got %q", EventTypeRunStarted, received.EventType())
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for event")
	}
}

// TestTopicIsolation verifies subscribers only see their own topic.
func TestTopicIsolation(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	runCh := bus.Subscribe(TopicRun, 10)
	simCh := bus.Subscribe(TopicSim, 10)

	bus.Publish(TopicSim, TaskAssignedEvent{Name: "example", TaskID: "A", Worker: 0, Tick: 0})

	select {
	case ev := <-simCh:
		if ev.EventType() != EventTypeTaskAssigned {
			t.Errorf("expected task assigned event, got %q", ev.EventType())
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for sim event")
	}

	select {
	case ev := <-runCh:
		t.Errorf("run subscriber received sim event %q", ev.EventType())
	default:
	}
}

// TestSubscribeAll verifies all-topic subscribers see every topic.
func TestSubscribeAll(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	all := bus.SubscribeAll(10)

	bus.Publish(TopicRun, RunStartedEvent{Name: "a"})
	bus.Publish(TopicSim, TaskCompletedEvent{Name: "a", TaskID: "C", Tick: 3})

	for i := 0; i < 2; i++ {
		select {
		case <-all:
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("timeout waiting for event %d", i+1)
		}
	}
}

// TestPublishAfterClose verifies a closed bus drops events and closing
// twice is safe.
func TestPublishAfterClose(t *testing.T) {
	bus := NewEventBus()
	ch := bus.Subscribe(TopicRun, 1)

	bus.Close()
	bus.Close() // idempotent

	// Publishing after close must not panic; the channel is closed.
	bus.Publish(TopicRun, RunFinishedEvent{Name: "a"})

	if _, ok := <-ch; ok {
		t.Error("expected closed channel after bus Close")
	}
}

// TestFullSubscriberDrops verifies a full subscriber channel never
// blocks the publisher.
func TestFullSubscriberDrops(t *testing.T) {
	bus := NewEventBus()
	defer bus.Close()

	_ = bus.Subscribe(TopicSim, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			bus.Publish(TopicSim, TaskAssignedEvent{Name: "a", TaskID: "A", Tick: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on full subscriber")
	}
}
