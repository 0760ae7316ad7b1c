package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	limiter := NewMemoryLimiter(3, time.Minute)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "198.51.100.10")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, err := limiter.Allow(ctx, "198.51.100.10")
	require.NoError(t, err)
	assert.False(t, ok)

	// 其他 key 独立计数
	ok, _ = limiter.Allow(ctx, "203.0.113.1")
	assert.True(t, ok)

	// 窗口结束后重置
	now = now.Add(time.Minute + time.Second)
	ok, _ = limiter.Allow(ctx, "198.51.100.10")
	assert.True(t, ok)
}

func TestMemoryLimiterEvictsExpiredBuckets(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	limiter := NewMemoryLimiter(1, time.Second)
	limiter.now = func() time.Time { return now }

	_, _ = limiter.Allow(ctx, "a")
	_, _ = limiter.Allow(ctx, "b")
	assert.Len(t, limiter.buckets, 2)

	now = now.Add(2 * time.Second)
	_, _ = limiter.Allow(ctx, "c")
	assert.Len(t, limiter.buckets, 1)
}
