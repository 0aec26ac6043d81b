package notify

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/realtime"
)

// RedisRelay forwards notifications published by other instances to the local hub.
// Messages carrying this instance's id are skipped; HubSink already delivered them.
type RedisRelay struct {
	client     redis.UniversalClient
	channel    string
	instanceID string
	hub        *realtime.Hub
	logger     *zap.Logger
}

// NewRedisRelay builds a relay reading channel.
func NewRedisRelay(client redis.UniversalClient, channel, instanceID string, hub *realtime.Hub, logger *zap.Logger) *RedisRelay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRelay{client: client, channel: channel, instanceID: instanceID, hub: hub, logger: logger}
}

// Start subscribes to the channel and relays messages on a background goroutine
// until ctx is cancelled. It returns once the subscription is confirmed.
func (r *RedisRelay) Start(ctx context.Context) (<-chan struct{}, error) {
	pubsub := r.client.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				r.relay(msg.Payload)
			}
		}
	}()
	return done, nil
}

func (r *RedisRelay) relay(payload string) {
	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		r.logger.Warn("malformed relay message", zap.String("channel", r.channel), zap.Error(err))
		return
	}
	if msg.Origin == r.instanceID {
		return
	}
	if _, ok := domain.ParseCategory(string(msg.Category)); !ok {
		r.logger.Warn("relay message for unknown category", zap.String("category", string(msg.Category)))
		return
	}

	out, err := json.Marshal(Message{Event: UpdateEventName, Category: msg.Category})
	if err != nil {
		return
	}
	if err := r.hub.Broadcast(out); err != nil {
		r.logger.Warn("relay broadcast dropped", zap.String("origin", msg.Origin), zap.Error(err))
	}
}
