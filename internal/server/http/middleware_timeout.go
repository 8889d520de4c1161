package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestTimeoutMiddleware bounds the request context. Streaming routes are
// left alone since they report progress for as long as generation runs.
func RequestTimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	if timeout <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if isStreamRequest(c) {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func isStreamRequest(c *gin.Context) bool {
	switch c.FullPath() {
	case routeGenerateStream, routeGenerateWS:
		return true
	}
	return c.GetHeader("Accept") == "text/event-stream"
}
