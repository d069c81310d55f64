package items

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the list key used when none is configured.
const DefaultRedisKey = "search:items"

// ErrEmptyKey is returned when a RedisProvider is created without a key.
var ErrEmptyKey = errors.New("redis items key cannot be empty")

// RedisProvider serves candidate items stored in a Redis list.
// The list order is the item order.
type RedisProvider struct {
	redis *redis.Client
	key   string
}

// NewRedisProvider creates a provider reading the list at key.
func NewRedisProvider(redisClient *redis.Client, key string) (*RedisProvider, error) {
	if redisClient == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &RedisProvider{
		redis: redisClient,
		key:   key,
	}, nil
}

// Key returns the Redis list key.
func (p *RedisProvider) Key() string {
	return p.key
}

// Items returns the full list. A missing key yields an empty collection.
func (p *RedisProvider) Items(ctx context.Context) ([]string, error) {
	values, err := p.redis.LRange(ctx, p.key, 0, -1).Result()
	if err != nil {
		ProviderErrors.WithLabelValues("redis", "items").Inc()
		return nil, fmt.Errorf("redis lrange %s: %w", p.key, err)
	}

	ProviderReads.WithLabelValues("redis").Inc()
	return values, nil
}

// Load replaces the list with items atomically.
func (p *RedisProvider) Load(ctx context.Context, items []string) error {
	pipe := p.redis.TxPipeline()
	pipe.Del(ctx, p.key)
	if len(items) > 0 {
		values := make([]interface{}, len(items))
		for i, item := range items {
			values[i] = item
		}
		pipe.RPush(ctx, p.key, values...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		ProviderErrors.WithLabelValues("redis", "load").Inc()
		return fmt.Errorf("store items in redis: %w", err)
	}

	return nil
}

// Len returns the number of stored items.
func (p *RedisProvider) Len(ctx context.Context) (int64, error) {
	n, err := p.redis.LLen(ctx, p.key).Result()
	if err != nil {
		ProviderErrors.WithLabelValues("redis", "len").Inc()
		return 0, fmt.Errorf("redis llen %s: %w", p.key, err)
	}
	return n, nil
}
