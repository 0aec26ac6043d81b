package notify

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/failtrack/internal/events"
)

// RedisSink publishes notifications on a Redis channel. A RedisRelay on every
// other instance forwards them to its own stream subscribers.
type RedisSink struct {
	client     redis.UniversalClient
	channel    string
	instanceID string
}

// NewRedisSink builds a sink publishing on channel, tagging messages with instanceID.
func NewRedisSink(client redis.UniversalClient, channel, instanceID string) *RedisSink {
	return &RedisSink{client: client, channel: channel, instanceID: instanceID}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) Send(ctx context.Context, event events.Event) error {
	payload, err := encodeFrom(event, s.instanceID)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, s.channel, payload).Err()
}
