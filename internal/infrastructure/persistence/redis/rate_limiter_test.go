package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewClientFromRedis(rdb), mr
}

func TestRateLimiterAllowUnderLimit(t *testing.T) {
	client, _ := newTestClient(t)
	limiter := NewRateLimiter(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "ratelimit:user-1:ai", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
		// 成员以毫秒时间戳命名, 隔开避免同毫秒内合并
		time.Sleep(2 * time.Millisecond)
	}

	allowed, err := limiter.Allow(ctx, "ratelimit:user-1:ai", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "request over the limit should be denied")
}

func TestRateLimiterPrunesExpiredWindow(t *testing.T) {
	client, mr := newTestClient(t)
	limiter := NewRateLimiter(client)
	ctx := context.Background()

	// 预置三条已滑出窗口的请求记录
	now := time.Now().UnixMilli()
	stale := now - 2*time.Minute.Milliseconds()
	for i := int64(0); i < 3; i++ {
		_, err := mr.ZAdd("ratelimit:user-1:ai", float64(stale+i), fmt.Sprintf("%d", stale+i))
		require.NoError(t, err)
	}

	allowed, err := limiter.Allow(ctx, "ratelimit:user-1:ai", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed, "stale entries must not count against the limit")
}

func TestRateLimiterDeniesWhenWindowFull(t *testing.T) {
	client, mr := newTestClient(t)
	limiter := NewRateLimiter(client)
	ctx := context.Background()

	now := time.Now().UnixMilli()
	for i := int64(1); i <= 3; i++ {
		_, err := mr.ZAdd("ratelimit:user-1:ai", float64(now-i), fmt.Sprintf("%d", now-i))
		require.NoError(t, err)
	}

	allowed, err := limiter.Allow(ctx, "ratelimit:user-1:ai", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRateLimiterSetsKeyExpiry(t *testing.T) {
	client, mr := newTestClient(t)
	limiter := NewRateLimiter(client)

	_, err := limiter.Allow(context.Background(), "ratelimit:user-1:ai", 3, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, mr.TTL("ratelimit:user-1:ai"))
}

func TestRateLimiterReset(t *testing.T) {
	client, mr := newTestClient(t)
	limiter := NewRateLimiter(client)
	ctx := context.Background()

	now := time.Now().UnixMilli()
	for i := int64(1); i <= 3; i++ {
		_, err := mr.ZAdd("ratelimit:user-1:ai", float64(now-i), fmt.Sprintf("%d", now-i))
		require.NoError(t, err)
	}

	allowed, err := limiter.Allow(ctx, "ratelimit:user-1:ai", 3, time.Minute)
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "ratelimit:user-1:ai"))

	allowed, err = limiter.Allow(ctx, "ratelimit:user-1:ai", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestBuildUserRateLimitKey(t *testing.T) {
	assert.Equal(t, "ratelimit:user-1:generate_insight", BuildUserRateLimitKey("user-1", "generate_insight"))
}
