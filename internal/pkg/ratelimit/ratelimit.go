// Package ratelimit 固定窗口限流
package ratelimit

import (
	"context"
	"sync"
	"time"

	"svgsmith/internal/pkg/cache"
)

// Limiter 按 key 计数的限流器
type Limiter interface {
	// Allow 记录一次请求，返回是否放行
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter 进程内固定窗口限流，单实例部署或 Redis 不可用时使用
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count int
	until time.Time
}

// NewMemoryLimiter 创建进程内限流器
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || now.After(b.until) {
		l.evictExpired(now)
		b = &bucket{until: now.Add(l.window)}
		l.buckets[key] = b
	}
	if b.count >= l.limit {
		return false, nil
	}
	b.count++
	return true, nil
}

// evictExpired 清理过期窗口，避免 map 无限增长
func (l *MemoryLimiter) evictExpired(now time.Time) {
	for key, b := range l.buckets {
		if now.After(b.until) {
			delete(l.buckets, key)
		}
	}
}

// RedisLimiter 基于 Redis 计数脚本的固定窗口限流，多实例共享计数
type RedisLimiter struct {
	cache  *cache.RedisCache
	limit  int
	window time.Duration
}

// NewRedisLimiter 创建 Redis 限流器
func NewRedisLimiter(c *cache.RedisCache, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		cache:  c,
		limit:  limit,
		window: window,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.cache.IncrWindow(ctx, cache.RateLimitKey(key), l.window)
	if err != nil {
		return false, err
	}
	return count <= int64(l.limit), nil
}
