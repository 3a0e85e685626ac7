package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache Redis 기반 TTL 캐시 (리더보드 등 짧은 수명 데이터용)
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New Redis 캐시 생성
func New(redisURL, prefix string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if prefix == "" {
		prefix = "cache:"
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

// Ping 연결 확인
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close 연결 종료
func (c *Cache) Close() error {
	return c.client.Close()
}

// GetJSON 캐시에서 JSON 값 조회 후 dest에 역직렬화
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached value: %w", err)
	}

	return nil
}

// SetJSON 값을 JSON으로 직렬화하여 TTL과 함께 저장
func (c *Cache) SetJSON(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}

	return nil
}

// Delete 캐시 키 삭제
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}
