// Package cache keeps generated test sets between rendering and grading.
package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/citizenprep/backend/internal/domain/testset"
)

var ErrMiss = errors.New("cache miss")

// SetCache stores the test sets generated for a key.
type SetCache interface {
	Get(ctx context.Context, key string) ([]testset.TestSet, error)
	Set(ctx context.Context, key string, sets []testset.TestSet, ttl time.Duration) error
}

// Key identifies a user's generation of a test type.
func Key(userID string, t testset.TestType) string {
	return "testsets:" + string(t) + ":" + userID
}

type memoryItem struct {
	sets    []testset.TestSet
	expires time.Time
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.expires.IsZero() && !now.Before(i.expires)
}

// MemoryCache is an in-process SetCache.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemory() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]testset.TestSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return nil, ErrMiss
	}
	if item.expired(c.now()) {
		delete(c.items, key)
		return nil, ErrMiss
	}
	return item.sets, nil
}

// Set stores sets under key and drops every expired entry. A ttl of zero
// never expires.
func (c *MemoryCache) Set(_ context.Context, key string, sets []testset.TestSet, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, item := range c.items {
		if item.expired(now) {
			delete(c.items, k)
		}
	}

	item := memoryItem{sets: sets}
	if ttl > 0 {
		item.expires = now.Add(ttl)
	}
	c.items[key] = item
	return nil
}
