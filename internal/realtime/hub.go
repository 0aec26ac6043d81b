package realtime

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ErrHubBusy is returned when the broadcast buffer is full.
var ErrHubBusy = errors.New("hub broadcast buffer full")

// Hub fans messages out to every connected stream subscriber.
// Slow subscribers miss messages instead of stalling the hub.
type Hub struct {
	logger *zap.Logger

	register   chan chan []byte
	unregister chan chan []byte
	broadcast  chan []byte
	done       chan struct{}

	clientBuffer int

	mu      sync.Mutex
	clients map[chan []byte]struct{}
}

// NewHub creates a hub whose subscribers buffer up to clientBuffer messages.
func NewHub(logger *zap.Logger, clientBuffer int) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clientBuffer <= 0 {
		clientBuffer = 25
	}
	return &Hub{
		logger:       logger,
		register:     make(chan chan []byte),
		unregister:   make(chan chan []byte),
		broadcast:    make(chan []byte, 100),
		done:         make(chan struct{}),
		clientBuffer: clientBuffer,
		clients:      make(map[chan []byte]struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for ch := range h.clients {
			delete(h.clients, ch)
			close(ch)
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ch := <-h.register:
			h.mu.Lock()
			h.clients[ch] = struct{}{}
			h.mu.Unlock()
		case ch := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[ch]; ok {
				delete(h.clients, ch)
				close(ch)
			}
			h.mu.Unlock()
		case msg := <-h.broadcast:
			h.mu.Lock()
			for ch := range h.clients {
				select {
				case ch <- msg:
				default:
					h.logger.Debug("subscriber buffer full; message skipped")
				}
			}
			h.mu.Unlock()
		}
	}
}

// Subscribe registers a new subscriber. The returned channel is closed when the
// subscriber is removed or the hub stops; cancel removes it.
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, h.clientBuffer)
	select {
	case h.register <- ch:
	case <-h.done:
		close(ch)
		return ch, func() {}
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			select {
			case h.unregister <- ch:
			case <-h.done:
			}
		})
	}
	return ch, cancel
}

// Broadcast queues msg for every subscriber without blocking.
func (h *Hub) Broadcast(msg []byte) error {
	select {
	case h.broadcast <- append([]byte(nil), msg...):
		return nil
	default:
		return ErrHubBusy
	}
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
