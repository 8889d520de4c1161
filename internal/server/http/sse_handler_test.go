package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad/internal/config"
	"launchpad/internal/event"
)

func TestGenerateStreamEmitsProgressThenResult(t *testing.T) {
	env := newTestEnv(t, scriptedClient(), config.ServerConfig{RequestTimeout: time.Minute})

	w := env.do(http.MethodGet, routeGenerateStream+"?topic=AI&city=Berlin&date=2026-01-01", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Equal(t, 5, strings.Count(body, "event: task_started\n"))
	assert.Equal(t, 5, strings.Count(body, "event: task_finished\n"))
	assert.Contains(t, body, "event: result\n")
	assert.True(t, strings.LastIndex(body, "event: task_finished") < strings.Index(body, "event: result"))
	assert.Contains(t, body, `"name":"Berlin AI Week"`)
	assert.Equal(t, 1, env.store.Len())
}

func TestGenerateStreamValidatesQuery(t *testing.T) {
	env := newTestEnv(t, nil, config.ServerConfig{})

	w := env.do(http.MethodGet, routeGenerateStream+"?topic=AI", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing required fields")
}

func dialGenerate(t *testing.T, env testEnv) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(env.router)
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	u.Scheme = "ws"
	u.Path = routeGenerateWS

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWebSocketGenerate(t *testing.T) {
	env := newTestEnv(t, scriptedClient(), config.ServerConfig{})
	conn := dialGenerate(t, env)

	require.NoError(t, conn.WriteJSON(map[string]any{"topic": "AI", "city": "Berlin", "date": "2026-01-01"}))

	var finished int
	var result *progressMessage
	for result == nil {
		var msg progressMessage
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		require.NoError(t, conn.ReadJSON(&msg))
		switch msg.Type {
		case progressTaskFinished:
			finished++
			assert.Equal(t, "ok", msg.Status)
		case progressResult:
			result = &msg
		case progressError:
			t.Fatalf("unexpected error message: %s", msg.Error)
		}
	}

	assert.Equal(t, 5, finished)
	require.NotNil(t, result.Result)
	assert.Equal(t, event.ModeSwarm, result.Result.Mode)
	assert.Equal(t, 1, env.store.Len())
}

func TestWebSocketRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t, nil, config.ServerConfig{})
	conn := dialGenerate(t, env)

	require.NoError(t, conn.WriteJSON(map[string]any{"topic": "AI"}))

	var msg progressMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, progressError, msg.Type)
	assert.Contains(t, msg.Error, "missing required fields")
}
