package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citizenprep/backend/internal/domain/testset"
)

func TestMemoryCache_SetDropsExpiredEntries(t *testing.T) {
	clock := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, Key("user-1", testset.TestTypeRandom), nil, time.Minute))
	require.NoError(t, c.Set(ctx, Key("user-2", testset.TestTypeRandom), nil, time.Hour))
	require.NoError(t, c.Set(ctx, "forever", nil, 0))

	clock = clock.Add(2 * time.Minute)
	require.NoError(t, c.Set(ctx, Key("user-3", testset.TestTypeRandom), nil, time.Minute))

	assert.NotContains(t, c.items, Key("user-1", testset.TestTypeRandom))
	assert.Contains(t, c.items, Key("user-2", testset.TestTypeRandom))
	assert.Contains(t, c.items, "forever")
	assert.Len(t, c.items, 3)
}

func TestMemoryCache_GetExpired(t *testing.T) {
	clock := time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return clock }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", nil, time.Minute))
	clock = clock.Add(time.Minute)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Empty(t, c.items)
}
