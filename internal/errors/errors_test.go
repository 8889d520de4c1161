package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHTTPStatusClassification(t *testing.T) {
	tests := []struct {
		status    int
		transient bool
	}{
		{429, true},
		{500, true},
		{503, true},
		{400, false},
		{401, false},
		{404, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			err := FromHTTPStatus(tt.status, "body", 0)
			assert.Equal(t, tt.transient, IsTransient(err))
			assert.Equal(t, !tt.transient, IsPermanent(err))
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestGetErrorType(t *testing.T) {
	assert.Equal(t, ErrorTypeDegraded, GetErrorType(NewDegradedError(errors.New("x"), "", "circuit_open")))
	assert.Equal(t, ErrorTypeTransient, GetErrorType(errors.New("dial tcp: connection refused")))
	assert.Equal(t, ErrorTypePermanent, GetErrorType(errors.New("something odd")))
	assert.Equal(t, ErrorTypeTransient, GetErrorType(fmt.Errorf("wrapped: %w", NewTransientError(errors.New("x"), "busy"))))
}

func TestRetryWithResultRetriesTransientOnly(t *testing.T) {
	config := RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	calls := 0
	value, err := RetryWithResult(context.Background(), config, nil, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", NewTransientError(errors.New("busy"), "busy")
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, 3, calls)

	calls = 0
	_, err = RetryWithResult(context.Background(), config, nil, func(context.Context) (string, error) {
		calls++
		return "", NewPermanentError(errors.New("nope"), "nope")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryWithResultWithoutRetriesReturnsErrorAsIs(t *testing.T) {
	busy := NewTransientError(errors.New("busy"), "busy")

	calls := 0
	_, err := RetryWithResult(context.Background(), RetryConfig{}, nil, func(context.Context) (string, error) {
		calls++
		return "", busy
	})
	assert.Same(t, busy, err)
	assert.Equal(t, 1, calls)
	assert.NotContains(t, err.Error(), "max retries exceeded")

	_, err = RetryWithResult(context.Background(), RetryConfig{MaxAttempts: 1, BaseDelay: time.Millisecond}, nil, func(context.Context) (string, error) {
		return "", busy
	})
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.ErrorIs(t, err, busy)
}

func TestErrorTypeString(t *testing.T) {
	assert.Equal(t, "transient", ErrorTypeTransient.String())
	assert.Equal(t, "permanent", ErrorTypePermanent.String())
	assert.Equal(t, "degraded", ErrorTypeDegraded.String())
}

func TestRetryWithResultStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RetryWithResult(ctx, DefaultRetryConfig(), nil, func(context.Context) (int, error) {
		return 1, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCircuitBreakerOpensAndRecovers(t *testing.T) {
	cb := NewCircuitBreaker("backend", CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          20 * time.Millisecond,
	})
	failure := errors.New("backend down")

	for i := 0; i < 2; i++ {
		require.NoError(t, cb.Allow())
		cb.Mark(failure)
	}
	require.Equal(t, StateOpen, cb.State())

	err := cb.Allow()
	require.Error(t, err)
	assert.True(t, IsDegraded(err))

	time.Sleep(30 * time.Millisecond)
	require.NoError(t, cb.Allow())
	assert.Equal(t, StateHalfOpen, cb.State())
	cb.Mark(nil)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerReset(t *testing.T) {
	cb := NewCircuitBreaker("backend", CircuitBreakerConfig{FailureThreshold: 1})
	cb.Mark(errors.New("boom"))
	require.Equal(t, StateOpen, cb.State())

	cb.Reset()
	assert.Equal(t, StateClosed, cb.State())
	assert.NoError(t, cb.Allow())
}
