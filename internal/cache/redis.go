package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/citizenprep/backend/internal/domain/testset"
)

// RedisConfig holds the connection settings of a RedisCache.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// RedisCache stores test sets as JSON values with an expiry.
type RedisCache struct {
	client *redis.Client
}

// NewRedis connects to the configured server and checks it responds.
func NewRedis(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]testset.TestSet, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get cached test sets: %w", err)
	}

	var sets []testset.TestSet
	if err := json.Unmarshal(raw, &sets); err != nil {
		return nil, fmt.Errorf("decode cached test sets: %w", err)
	}
	return sets, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, sets []testset.TestSet, ttl time.Duration) error {
	raw, err := json.Marshal(sets)
	if err != nil {
		return fmt.Errorf("encode test sets: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache test sets: %w", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
