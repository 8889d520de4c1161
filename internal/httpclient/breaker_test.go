package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lperrors "launchpad/internal/errors"
)

func TestBreakerTransportOpensOnServerErrors(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	breaker := lperrors.NewCircuitBreaker("backend", lperrors.CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Minute,
	})
	client := NewWithBreaker(time.Second, breaker)

	for i := 0; i < 2; i++ {
		resp, err := client.Get(server.URL)
		require.NoError(t, err)
		_ = resp.Body.Close()
	}
	assert.Equal(t, lperrors.StateOpen, breaker.State())

	_, err := client.Get(server.URL)
	require.Error(t, err)
	assert.True(t, lperrors.IsDegraded(err))
	assert.Equal(t, 2, hits)
}

func TestBreakerTransportKeepsClosedOnSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	breaker := lperrors.NewCircuitBreaker("backend", lperrors.CircuitBreakerConfig{FailureThreshold: 1})
	client := NewWithBreaker(time.Second, breaker)

	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, lperrors.StateClosed, breaker.State())

	assert.Same(t, http.DefaultTransport, WrapTransport(nil, nil))
}
