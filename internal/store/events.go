// Package store keeps recently generated events in memory.
package store

import (
	"errors"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"launchpad/internal/event"
)

const defaultMaxEvents = 500

// ErrNotFound is returned when no event has the requested slug.
var ErrNotFound = errors.New("event not found")

// EventStore is a size-bounded, concurrency-safe map from slug to event.
// The least recently used event is evicted first.
type EventStore struct {
	cache *lru.Cache[string, event.Event]
}

// NewEventStore returns a store holding at most maxEvents events. Values
// below one use the default.
func NewEventStore(maxEvents int) (*EventStore, error) {
	if maxEvents <= 0 {
		maxEvents = defaultMaxEvents
	}
	cache, err := lru.New[string, event.Event](maxEvents)
	if err != nil {
		return nil, err
	}
	return &EventStore{cache: cache}, nil
}

// Put stores ev under its slug, replacing any earlier event with that slug.
// Derived slugs depend only on topic, city and date, so two unpinned
// requests for the same triple share a slug and the later one wins.
func (s *EventStore) Put(ev event.Event) error {
	if ev.Slug == "" {
		return errors.New("event has no slug")
	}
	s.cache.Add(ev.Slug, ev)
	return nil
}

// Contains reports whether an event is stored under slug without touching
// its recency.
func (s *EventStore) Contains(slug string) bool {
	return s.cache.Contains(slug)
}

// Get returns the event stored under slug.
func (s *EventStore) Get(slug string) (event.Event, error) {
	ev, ok := s.cache.Get(slug)
	if !ok {
		return event.Event{}, ErrNotFound
	}
	return ev, nil
}

// List returns up to limit events, newest first. limit <= 0 returns all.
func (s *EventStore) List(limit int) []event.Event {
	keys := s.cache.Keys()
	events := make([]event.Event, 0, len(keys))
	for _, key := range keys {
		if ev, ok := s.cache.Peek(key); ok {
			events = append(events, ev)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

// Len reports the number of stored events.
func (s *EventStore) Len() int {
	return s.cache.Len()
}
