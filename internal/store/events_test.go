package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad/internal/event"
)

func stored(slug string, at time.Time) event.Event {
	return event.Event{Slug: slug, Name: slug, CreatedAt: at}
}

func TestEventStorePutGet(t *testing.T) {
	s, err := NewEventStore(10)
	require.NoError(t, err)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Put(stored("ai-berlin-0001", base)))

	ev, err := s.Get("ai-berlin-0001")
	require.NoError(t, err)
	assert.Equal(t, "ai-berlin-0001", ev.Name)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, s.Put(event.Event{}))
}

func TestEventStoreReplacesBySlug(t *testing.T) {
	s, err := NewEventStore(10)
	require.NoError(t, err)

	assert.False(t, s.Contains("a"))
	require.NoError(t, s.Put(event.Event{Slug: "a", Name: "first"}))
	assert.True(t, s.Contains("a"))
	require.NoError(t, s.Put(event.Event{Slug: "a", Name: "second"}))

	ev, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "second", ev.Name)
	assert.Equal(t, 1, s.Len())
}

func TestEventStoreEvictsLeastRecentlyUsed(t *testing.T) {
	s, err := NewEventStore(2)
	require.NoError(t, err)

	base := time.Now()
	require.NoError(t, s.Put(stored("a", base)))
	require.NoError(t, s.Put(stored("b", base.Add(time.Second))))
	_, err = s.Get("a")
	require.NoError(t, err)
	require.NoError(t, s.Put(stored("c", base.Add(2*time.Second))))

	_, err = s.Get("b")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, s.Len())
}

func TestEventStoreListNewestFirst(t *testing.T) {
	s, err := NewEventStore(0)
	require.NoError(t, err)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, slug := range []string{"old", "new", "mid"} {
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		require.NoError(t, s.Put(stored(slug, base.Add(offsets[i]))))
	}

	all := s.List(0)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].Slug, all[1].Slug, all[2].Slug})
	assert.Len(t, s.List(2), 2)
}

func TestEventStoreConcurrentAccess(t *testing.T) {
	s, err := NewEventStore(50)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			slug := fmt.Sprintf("event-%d", i)
			_ = s.Put(stored(slug, time.Now()))
			_, _ = s.Get(slug)
			_ = s.List(5)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 20, s.Len())
}
