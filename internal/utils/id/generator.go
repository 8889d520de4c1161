package id

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

// Strategy identifies the identifier generation algorithm to use.
type Strategy int

const (
	// StrategyKSUID generates lexicographically sortable identifiers using KSUID.
	StrategyKSUID Strategy = iota
	// StrategyUUIDv7 generates time-ordered identifiers using UUID version 7.
	StrategyUUIDv7
)

var defaultGenerator = &Generator{strategy: StrategyKSUID}

// Generator produces identifiers for generation runs and stored events.
type Generator struct {
	mu       sync.RWMutex
	strategy Strategy
}

// SetStrategy configures the strategy used for run identifiers.
func SetStrategy(strategy Strategy) {
	defaultGenerator.mu.Lock()
	defaultGenerator.strategy = strategy
	defaultGenerator.mu.Unlock()
}

// NewRunID identifies one generation request across logs, spans and progress streams.
func NewRunID() string {
	defaultGenerator.mu.RLock()
	strategy := defaultGenerator.strategy
	defaultGenerator.mu.RUnlock()

	body := ksuid.New().String()
	if strategy == StrategyUUIDv7 {
		if v7, err := uuid.NewV7(); err == nil {
			body = v7.String()
		}
	}
	return fmt.Sprintf("run-%s", body)
}

// NewEventID returns the storage identifier for a generated event.
func NewEventID() string {
	return uuid.NewString()
}
