package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	lperrors "launchpad/internal/errors"
)

type breakerRoundTripper struct {
	base    http.RoundTripper
	breaker *lperrors.CircuitBreaker
}

// NewWithBreaker builds an HTTP client whose requests are guarded by breaker.
// The breaker is shared, so callers can consult its state before deciding to
// send traffic at all.
func NewWithBreaker(timeout time.Duration, breaker *lperrors.CircuitBreaker) *http.Client {
	client := New(timeout)
	client.Transport = WrapTransport(client.Transport, breaker)
	return client
}

// WrapTransport wraps base with breaker protection. A nil breaker returns base.
func WrapTransport(base http.RoundTripper, breaker *lperrors.CircuitBreaker) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if breaker == nil {
		return base
	}
	return &breakerRoundTripper{base: base, breaker: breaker}
}

func (t *breakerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if err := t.breaker.Allow(); err != nil {
		return nil, err
	}
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		// A caller giving up is not a backend failure.
		if errors.Is(err, context.Canceled) {
			t.breaker.Mark(nil)
			return nil, err
		}
		t.breaker.Mark(err)
		return nil, err
	}
	if isBreakerFailureStatus(resp.StatusCode) {
		t.breaker.Mark(fmt.Errorf("http status %d", resp.StatusCode))
	} else {
		t.breaker.Mark(nil)
	}
	return resp, nil
}

func isBreakerFailureStatus(status int) bool {
	return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
}
