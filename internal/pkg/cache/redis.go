package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"svgsmith/internal/config"
)

// RedisCache Redis 客户端封装
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache 创建 Redis 客户端并检查连通性
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewRedisCacheFromClient(client), nil
}

// NewRedisCacheFromClient 包装已有的客户端
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// incrWindowSource 原子地计数并设置过期时间
// 没有 TTL 的旧 key 也会补上过期时间，避免计数永不重置
const incrWindowSource = `
local count = redis.call("INCR", KEYS[1])
if count == 1 or redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`

var incrWindowScript = redis.NewScript(incrWindowSource)

// IncrWindow 计数器加一，首次创建时设置过期时间
func (c *RedisCache) IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error) {
	return incrWindowScript.Run(ctx, c.client, []string{key}, window.Milliseconds()).Int64()
}

// Ping 检查连接
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close 关闭连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// 常用 key 模式
const (
	RateLimitKeyPrefix = "svgsmith:ratelimit:"
)

// RateLimitKey 生成限流计数 key
func RateLimitKey(clientKey string) string {
	return RateLimitKeyPrefix + clientKey
}
