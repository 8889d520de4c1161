package heropool

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePool(t *testing.T, n int) Pool {
	t.Helper()
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("https://img.example/%02d.jpg", i)
	}
	pool, err := NewPool(ids...)
	require.NoError(t, err)
	return pool
}

func TestAssignIsDeterministic(t *testing.T) {
	pool := makePool(t, 20)
	for i := 0; i < 100; i++ {
		key := Key("AI", "Berlin", fmt.Sprintf("slug-%d", i))
		assert.Equal(t, Assign(pool, key, nil), Assign(pool, key, nil))
	}
}

func TestAssignCoversWholePool(t *testing.T) {
	pool := makePool(t, 20)
	hits := make(map[string]int)
	for i := 0; i < 2000; i++ {
		hits[Assign(pool, Key("topic", "city", fmt.Sprintf("event-%d", i)), nil)]++
	}
	assert.Len(t, hits, 20)
	for _, id := range pool {
		assert.Positive(t, hits[id], "slot %s never chosen", id)
	}
}

func TestAssignSkipsUsedIDs(t *testing.T) {
	pool := makePool(t, 20)
	for remaining := range pool {
		used := NewUsedSet()
		for i, id := range pool {
			if i != remaining {
				used.Add(id)
			}
		}
		for _, key := range []string{"", "a", "AI|Berlin|slug", "something else"} {
			assert.Equal(t, pool[remaining], Assign(pool, key, used))
		}
		assert.Len(t, used, 19, "assign must not mutate used")
	}
}

func TestAssignExhaustedPoolAcceptsCollision(t *testing.T) {
	pool := makePool(t, 5)
	used := NewUsedSet(pool...)
	key := "AI|Berlin|slug"

	got := Assign(pool, key, used)
	assert.True(t, pool.Contains(got))
	assert.Equal(t, Assign(pool, key, nil), got)
}

func TestAssignSingleElementPool(t *testing.T) {
	pool, err := NewPool("only")
	require.NoError(t, err)
	assert.Equal(t, "only", Assign(pool, "", nil))
	assert.Equal(t, "only", Assign(pool, "x", NewUsedSet("only")))
}

func TestAssignEmptyPool(t *testing.T) {
	assert.Equal(t, "", Assign(nil, "key", nil))
}

func TestNewPoolDeduplicates(t *testing.T) {
	pool, err := NewPool(" a ", "b", "a", "")
	require.NoError(t, err)
	assert.Equal(t, Pool{"a", "b"}, pool)

	_, err = NewPool("", "  ")
	assert.ErrorIs(t, err, ErrEmptyPool)
}
