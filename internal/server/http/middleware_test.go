package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	limiter := newRateLimiter(RateLimitConfig{RequestsPerMinute: 1, Burst: 1})

	assert.True(t, limiter.allow("ip:1.1.1.1"))
	assert.False(t, limiter.allow("ip:1.1.1.1"))
	assert.True(t, limiter.allow("ip:2.2.2.2"))
	assert.True(t, limiter.allow(""))
}

func TestRateLimiterForgetsIdleClients(t *testing.T) {
	limiter := newRateLimiter(RateLimitConfig{RequestsPerMinute: 1, Burst: 1, EntryTTL: time.Millisecond, CleanupInterval: time.Millisecond})

	require.True(t, limiter.allow("ip:1.1.1.1"))
	time.Sleep(5 * time.Millisecond)
	assert.True(t, limiter.allow("ip:2.2.2.2"))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.NotContains(t, limiter.entries, "ip:1.1.1.1")
}

func TestRequestTimeoutMiddlewareSetsDeadline(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestTimeoutMiddleware(time.Second))

	var deadline bool
	engine.GET("/plain", func(c *gin.Context) {
		_, deadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})
	var streamDeadline bool
	engine.GET(routeGenerateStream, func(c *gin.Context) {
		_, streamDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/plain", nil))
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, routeGenerateStream, nil))

	assert.True(t, deadline)
	assert.False(t, streamDeadline)
}

func TestRequestTimeoutDisabled(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestTimeoutMiddleware(0))
	var ctx context.Context
	engine.GET("/plain", func(c *gin.Context) {
		ctx = c.Request.Context()
		c.Status(http.StatusOK)
	})
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/plain", nil))

	_, ok := ctx.Deadline()
	assert.False(t, ok)
}
