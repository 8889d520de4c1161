package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunIDUsesKSUIDByDefault(t *testing.T) {
	runID := NewRunID()
	require.True(t, strings.HasPrefix(runID, "run-"))
	_, err := ksuid.Parse(strings.TrimPrefix(runID, "run-"))
	assert.NoError(t, err)
	assert.NotEqual(t, runID, NewRunID())
}

func TestNewRunIDWithUUIDv7(t *testing.T) {
	SetStrategy(StrategyUUIDv7)
	t.Cleanup(func() { SetStrategy(StrategyKSUID) })

	parsed, err := uuid.Parse(strings.TrimPrefix(NewRunID(), "run-"))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestNewEventIDIsUUID(t *testing.T) {
	_, err := uuid.Parse(NewEventID())
	assert.NoError(t, err)
}
