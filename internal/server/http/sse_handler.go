package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"launchpad/internal/generator"
	"launchpad/internal/logging"
	jsonx "launchpad/internal/shared/json"
	"launchpad/internal/store"
)

// SSEHandler streams generation progress as server-sent events.
type SSEHandler struct {
	generator *generator.Service
	store     *store.EventStore
	logger    logging.Logger
}

func NewSSEHandler(gen *generator.Service, events *store.EventStore) *SSEHandler {
	return &SSEHandler{generator: gen, store: events, logger: logging.NewComponentLogger("SSEHandler")}
}

// HandleGenerateStream reads the event input from the query string and emits
// one SSE event per progress message.
func (h *SSEHandler) HandleGenerateStream(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid query", err)
		return
	}
	in := req.input()
	if err := in.Validate(); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		abortWithError(c, http.StatusInternalServerError, "streaming unsupported", nil)
		return
	}

	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	writeFailed := false
	for msg := range streamGeneration(c.Request.Context(), h.generator, h.store, in, h.logger) {
		if writeFailed {
			continue
		}
		data, err := jsonx.Marshal(msg)
		if err != nil {
			h.logger.Error("Failed to encode %s message: %v", msg.Type, err)
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Type, data); err != nil {
			h.logger.Warn("Client left the progress stream: %v", err)
			writeFailed = true
			continue
		}
		flusher.Flush()
	}
}
