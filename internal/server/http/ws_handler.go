package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"launchpad/internal/generator"
	"launchpad/internal/logging"
	"launchpad/internal/store"
)

const (
	wsReadTimeout  = 30 * time.Second
	wsWriteTimeout = 10 * time.Second
)

// WSHandler runs one generation per WebSocket connection: the client sends
// the input as JSON, the server answers with progress messages and closes.
type WSHandler struct {
	generator *generator.Service
	store     *store.EventStore
	upgrader  websocket.Upgrader
	logger    logging.Logger
}

func NewWSHandler(gen *generator.Service, events *store.EventStore) *WSHandler {
	return &WSHandler{
		generator: gen,
		store:     events,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// CORS middleware already filters origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logging.NewComponentLogger("WSHandler"),
	}
}

func (h *WSHandler) HandleGenerate(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var req generateRequest
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	if err := conn.ReadJSON(&req); err != nil {
		h.write(conn, progressMessage{Type: progressError, Error: "invalid input: " + err.Error()})
		return
	}
	in := req.input()
	if err := in.Validate(); err != nil {
		h.write(conn, progressMessage{Type: progressError, Error: err.Error()})
		return
	}

	writeFailed := false
	for msg := range streamGeneration(c.Request.Context(), h.generator, h.store, in, h.logger) {
		if writeFailed {
			continue
		}
		if err := h.write(conn, msg); err != nil {
			h.logger.Warn("Client left the WebSocket stream: %v", err)
			writeFailed = true
		}
	}

	if !writeFailed {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"),
			time.Now().Add(wsWriteTimeout))
	}
}

func (h *WSHandler) write(conn *websocket.Conn, msg progressMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(msg)
}
