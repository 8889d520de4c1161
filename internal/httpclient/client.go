package httpclient

import (
	"net/http"
	"time"
)

// New returns an HTTP client with its own transport so per-client settings
// never leak into http.DefaultTransport.
func New(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 16
	return &http.Client{Timeout: timeout, Transport: transport}
}
