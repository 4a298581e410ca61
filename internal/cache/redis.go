package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// 缓存键前缀，避免和其他业务键冲突
const keyPrefix = "shortlink:"

// RedisCache 基于 Redis 的缓存实现
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache 创建 Redis 缓存，ttl 为缓存条目的过期时间
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, alias string) (string, error) {
	val, err := c.client.Get(ctx, keyPrefix+alias).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (c *RedisCache) Set(ctx context.Context, alias string, longURL string) error {
	return c.client.Set(ctx, keyPrefix+alias, longURL, c.ttl).Err()
}
