package heropool

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryClaimsAreUniqueUnderConcurrency(t *testing.T) {
	pool := makePool(t, 32)
	registry := NewRegistry()

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := registry.Claim(context.Background(), pool, Key("AI", "Berlin", fmt.Sprintf("slug-%d", i)), fmt.Sprintf("slug-%d", i))
			assert.NoError(t, err)
			results[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, id := range results {
		assert.False(t, seen[id], "id %s claimed twice", id)
		seen[id] = true
	}
	assert.Len(t, registry.Used(), 32)
}

func TestRegistryClaimIsIdempotentPerOwner(t *testing.T) {
	pool := makePool(t, 4)
	registry := NewRegistry()
	ctx := context.Background()

	first, err := registry.Claim(ctx, pool, "AI|Berlin|slug", "slug")
	require.NoError(t, err)
	second, err := registry.Claim(ctx, pool, "AI|Berlin|slug", "slug")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, registry.Used(), 1)
}

func TestRegistryExhaustionReusesIDs(t *testing.T) {
	pool := makePool(t, 2)
	registry := NewRegistry(pool...)

	id, err := registry.Claim(context.Background(), pool, "key", "owner")
	require.NoError(t, err)
	assert.Equal(t, Assign(pool, "key", nil), id)
}

func TestRegistryHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRegistry().Claim(ctx, makePool(t, 2), "key", "owner")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStableIgnoresUse(t *testing.T) {
	pool := makePool(t, 3)
	id, err := Stable{}.Claim(context.Background(), pool, "key", "owner")
	require.NoError(t, err)
	assert.Equal(t, Assign(pool, "key", nil), id)
}
