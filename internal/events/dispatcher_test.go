package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/failtrack/internal/domain"
)

func TestQueueDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewQueueDispatcher(4, nil)

	received := make(chan Event, 2)
	d.Subscribe(EventTicketsChanged, func(_ context.Context, e Event) error {
		received <- e
		return nil
	})
	d.Subscribe(EventTicketsChanged, func(_ context.Context, e Event) error {
		return errors.New("sink down")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	if err := d.Publish(ctx, Event{ID: "1", Type: EventTicketsChanged, Category: domain.CategoryTooling}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case e := <-received:
		if e.Category != domain.CategoryTooling {
			t.Errorf("Category = %s", e.Category)
		}
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestQueueDispatcher_PublishDoesNotBlockWhenFull(t *testing.T) {
	d := NewQueueDispatcher(1, nil)
	dropped := 0
	d.OnDrop(func(Event) { dropped++ })

	ctx := context.Background()
	if err := d.Publish(ctx, Event{Type: EventTicketsChanged}); err != nil {
		t.Fatalf("first Publish() error = %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- d.Publish(ctx, Event{Type: EventTicketsChanged}) }()

	select {
	case err := <-done:
		if !errors.Is(err, ErrQueueFull) {
			t.Errorf("second Publish() error = %v, want ErrQueueFull", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if d.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", d.Pending())
	}
}

func TestQueueDispatcher_RunStopsOnCancel(t *testing.T) {
	d := NewQueueDispatcher(1, nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(stopped)
	}()
	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
