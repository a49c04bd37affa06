package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citizenprep/backend/internal/cache"
	"github.com/citizenprep/backend/internal/domain/question"
	"github.com/citizenprep/backend/internal/domain/testset"
)

func sampleSets() []testset.TestSet {
	return []testset.TestSet{
		{ID: 1, Questions: []question.Question{{
			Text:          "Which colours are on the flag?",
			Options:       []string{"Blue, white and red", "Green and gold"},
			CorrectAnswer: "Blue, white and red",
			Category:      question.CategoryPeople,
		}}},
		{ID: 2},
	}
}

func exerciseCache(t *testing.T, c cache.SetCache, key string) {
	ctx := context.Background()

	_, err := c.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrMiss)

	require.NoError(t, c.Set(ctx, key, sampleSets(), time.Minute))

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, "Blue, white and red", got[0].Questions[0].CorrectAnswer)
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, cache.NewMemory(), cache.Key("user-1", testset.TestTypeRandom))
}

func TestMemoryCache_NoTTL(t *testing.T) {
	c := cache.NewMemory()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", sampleSets(), 0))
	_, err := c.Get(ctx, "k")
	assert.NoError(t, err)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "testsets:random:user-1", cache.Key("user-1", testset.TestTypeRandom))
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	c, err := cache.NewRedis(context.Background(), cache.RedisConfig{Address: addr})
	require.NoError(t, err)
	defer c.Close()

	exerciseCache(t, c, cache.Key("test-"+time.Now().Format("150405.000000000"), testset.TestTypeRandom))
}
