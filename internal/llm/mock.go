package llm

import (
	"context"
	"fmt"
	"sync"
)

// ScriptedClient answers requests from per-task handlers. It is used by tests
// and by the CLI's dry-run mode.
type ScriptedClient struct {
	mu       sync.Mutex
	handlers map[string]func(ctx context.Context, req JSONRequest) (string, error)
	fallback func(ctx context.Context, req JSONRequest) (string, error)
	calls    []string
}

// NewScriptedClient returns a client with no handlers; unknown tasks fail.
func NewScriptedClient() *ScriptedClient {
	return &ScriptedClient{handlers: map[string]func(context.Context, JSONRequest) (string, error){}}
}

// On registers the handler for a task name.
func (s *ScriptedClient) On(task string, fn func(ctx context.Context, req JSONRequest) (string, error)) *ScriptedClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[task] = fn
	return s
}

// Reply registers a fixed payload for a task name.
func (s *ScriptedClient) Reply(task, payload string) *ScriptedClient {
	return s.On(task, func(context.Context, JSONRequest) (string, error) { return payload, nil })
}

// Otherwise handles every task without a dedicated handler.
func (s *ScriptedClient) Otherwise(fn func(ctx context.Context, req JSONRequest) (string, error)) *ScriptedClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = fn
	return s
}

// CompleteJSON dispatches to the handler registered for req.Task.
func (s *ScriptedClient) CompleteJSON(ctx context.Context, req JSONRequest) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req.Task)
	handler, ok := s.handlers[req.Task]
	if !ok {
		handler = s.fallback
	}
	s.mu.Unlock()

	if handler == nil {
		return "", fmt.Errorf("no scripted response for task %q", req.Task)
	}
	return handler(ctx, req)
}

// Model implements Client.
func (s *ScriptedClient) Model() string {
	return "scripted"
}

// Calls returns the task names seen so far.
func (s *ScriptedClient) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}
