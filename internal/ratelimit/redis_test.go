package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLimiter_Allow(t *testing.T) {
	mr, client := setupRedis(t)
	limiter := NewRedisLimiter(client, nil)
	ctx := context.Background()

	assert.True(t, limiter.Allow(ctx, "upload:a1", 2, time.Minute))
	assert.True(t, limiter.Allow(ctx, "upload:a1", 2, time.Minute))
	assert.False(t, limiter.Allow(ctx, "upload:a1", 2, time.Minute))
	assert.True(t, limiter.Allow(ctx, "upload:a2", 2, time.Minute))

	mr.FastForward(time.Minute + time.Second)
	assert.True(t, limiter.Allow(ctx, "upload:a1", 2, time.Minute))
}

func TestRedisLimiter_FailsOpen(t *testing.T) {
	mr, client := setupRedis(t)
	limiter := NewRedisLimiter(client, nil)
	mr.Close()

	assert.True(t, limiter.Allow(context.Background(), "login:x", 1, time.Minute))
	assert.True(t, limiter.Allow(context.Background(), "login:x", 1, time.Minute))
}

func TestRedisLimiter_NilAllows(t *testing.T) {
	var limiter *RedisLimiter
	assert.Nil(t, NewRedisLimiter(nil, nil))
	assert.True(t, limiter.Allow(context.Background(), "k", 1, time.Second))
}
