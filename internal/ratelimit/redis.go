// Package ratelimit implements fixed-window request limits shared across
// instances through Redis.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const script = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

const callTimeout = 250 * time.Millisecond

// Limiter decides whether one more hit on key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

// RedisLimiter counts hits per key in Redis. It fails open: when Redis is
// unreachable every request is allowed.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
	logger *zap.Logger
}

// NewRedisLimiter returns nil for a nil client; a nil limiter allows everything.
func NewRedisLimiter(client *redis.Client, logger *zap.Logger) *RedisLimiter {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(script),
		logger: logger,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{"ratelimit:" + key}, ttl, limit).Int64()
	if err != nil {
		l.logger.Warn("rate limiter unavailable", zap.String("key", key), zap.Error(err))
		return true
	}
	return allowed == 1
}
