package llm

import "context"

// JSONRequest is a single chat completion that must answer with a JSON object.
type JSONRequest struct {
	// Task labels the request in logs and spans (e.g. "speakers").
	Task        string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Client is the generation backend as seen by agents and promotion bots.
type Client interface {
	CompleteJSON(ctx context.Context, req JSONRequest) (string, error)
	Model() string
}
