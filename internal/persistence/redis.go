package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/failtrack/internal/config"
)

var errRedisNotConfigured = errors.New("redis client not configured")

// Redis holds the client shared by the notification publisher and relay.
type Redis struct {
	Client  redis.UniversalClient
	Channel string
}

// NewRedis builds a client for cfg. REDIS_ADDR may list several comma separated
// addresses, in which case a cluster client is used. An unreachable server is
// logged but not fatal; notifications degrade to local delivery.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	addrs := splitAddrs(cfg.Addr)
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    addrs,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("unable to reach redis",
			zap.Strings("addrs", addrs),
			zap.String("notify_channel", cfg.NotifyChannel),
			zap.Error(err))
	} else {
		logger.Info("connected to redis",
			zap.Strings("addrs", addrs),
			zap.String("notify_channel", cfg.NotifyChannel))
	}

	return &Redis{Client: client, Channel: cfg.NotifyChannel}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errRedisNotConfigured
	}
	return r.Client.Ping(ctx).Err()
}

func splitAddrs(raw string) []string {
	var addrs []string
	for _, addr := range strings.Split(raw, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}
