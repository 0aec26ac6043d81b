package events

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrQueueFull is returned by Publish when the event was dropped.
var ErrQueueFull = errors.New("event queue full")

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// QueueDispatcher enqueues events on a bounded channel and delivers them from Run.
// Publish never blocks the caller.
type QueueDispatcher struct {
	logger *zap.Logger
	queue  chan Event

	mu        sync.RWMutex
	listeners map[EventType][]EventHandler

	onDrop func(Event)
}

// NewQueueDispatcher creates a dispatcher holding at most size pending events.
func NewQueueDispatcher(size int, logger *zap.Logger) *QueueDispatcher {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueueDispatcher{
		logger:    logger,
		queue:     make(chan Event, size),
		listeners: make(map[EventType][]EventHandler),
	}
}

// OnDrop registers a callback invoked for every event dropped on a full queue.
func (d *QueueDispatcher) OnDrop(fn func(Event)) {
	d.onDrop = fn
}

// Publish enqueues the event without waiting for delivery.
func (d *QueueDispatcher) Publish(_ context.Context, event Event) error {
	select {
	case d.queue <- event:
		return nil
	default:
		if d.onDrop != nil {
			d.onDrop(event)
		}
		return ErrQueueFull
	}
}

// Subscribe registers a handler for the given event type.
func (d *QueueDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

// Run delivers queued events until ctx is cancelled.
func (d *QueueDispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.queue:
			d.deliver(ctx, event)
		}
	}
}

// Pending returns the number of queued, undelivered events.
func (d *QueueDispatcher) Pending() int {
	return len(d.queue)
}

func (d *QueueDispatcher) deliver(ctx context.Context, event Event) {
	d.mu.RLock()
	handlers := append([]EventHandler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			d.logger.Warn("event handler failed",
				zap.String("event_type", string(event.Type)),
				zap.String("event_id", event.ID),
				zap.Error(err))
		}
	}
}
