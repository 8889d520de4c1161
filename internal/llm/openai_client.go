package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"launchpad/internal/config"
	lperrors "launchpad/internal/errors"
	"launchpad/internal/httpclient"
	"launchpad/internal/logging"
	"launchpad/internal/observability"
	jsonx "launchpad/internal/shared/json"
)

// OpenAIClient speaks the OpenAI-compatible chat completions API.
type OpenAIClient struct {
	model       string
	apiKey      string
	baseURL     string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	retry       lperrors.RetryConfig
	logger      logging.Logger
	tracer      *observability.TracerProvider
}

// Option customises an OpenAIClient.
type Option func(*OpenAIClient)

// WithHTTPClient replaces the transport, e.g. one guarded by a circuit breaker.
func WithHTTPClient(client *http.Client) Option {
	return func(c *OpenAIClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTracer records one span per backend request.
func WithTracer(tracer *observability.TracerProvider) Option {
	return func(c *OpenAIClient) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithLogger overrides the component logger.
func WithLogger(logger logging.Logger) Option {
	return func(c *OpenAIClient) {
		c.logger = logging.OrNop(logger)
	}
}

// NewOpenAIClient builds a client from backend configuration.
func NewOpenAIClient(backend config.BackendConfig, opts ...Option) *OpenAIClient {
	baseURL := backend.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	model := backend.Model
	if model == "" {
		model = config.DefaultModel
	}
	timeout := backend.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	retry := lperrors.DefaultRetryConfig()
	retry.MaxAttempts = backend.MaxRetries

	c := &OpenAIClient{
		model:       model,
		apiKey:      backend.APIKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxTokens:   backend.MaxTokens,
		temperature: backend.Temperature,
		httpClient:  httpclient.New(timeout),
		retry:       retry,
		logger:      logging.NewComponentLogger("llm"),
		tracer:      observability.NoopTracer(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	MaxTokens      int               `json:"max_tokens,omitempty"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CompleteJSON sends req and returns the raw content of the first choice.
// Transient failures are retried according to backend.max_retries.
func (c *OpenAIClient) CompleteJSON(ctx context.Context, req JSONRequest) (string, error) {
	ctx, span := c.tracer.StartSpan(ctx, observability.SpanBackendRequest,
		attribute.String(observability.AttrModel, c.model),
		attribute.String(observability.AttrTaskName, req.Task),
	)
	defer span.End()

	content, err := lperrors.RetryWithResult(ctx, c.retry, c.logger, func(ctx context.Context) (string, error) {
		return c.complete(ctx, req)
	})
	if err != nil {
		kind := lperrors.GetErrorType(err)
		span.SetAttributes(attribute.String(observability.AttrErrorType, kind.String()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("[%s] backend request failed (%s): %v", req.Task, kind, err)
		return "", err
	}
	span.SetStatus(codes.Ok, "")
	return content, nil
}

func (c *OpenAIClient) complete(ctx context.Context, req JSONRequest) (string, error) {
	temperature := req.Temperature
	if temperature <= 0 {
		temperature = c.temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.User})

	body, err := jsonx.Marshal(chatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    temperature,
		MaxTokens:      maxTokens,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug("[%s] POST %s model=%s", req.Task, endpoint, c.model)
	started := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if lperrors.IsDegraded(err) || ctx.Err() != nil {
			return "", err
		}
		return "", lperrors.NewTransientError(err, "generation backend unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := httpclient.ReadAllWithLimit(resp.Body, httpclient.DefaultResponseLimit)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("[%s] status %d: %s", req.Task, resp.StatusCode, string(respBody))
		return "", lperrors.FromHTTPStatus(resp.StatusCode, string(respBody), retryAfterSeconds(resp.Header))
	}

	var decoded chatResponse
	if err := jsonx.Unmarshal(respBody, &decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", lperrors.NewPermanentError(
			fmt.Errorf("%s: %s", decoded.Error.Type, decoded.Error.Message),
			"generation backend returned an error",
		)
	}
	if len(decoded.Choices) == 0 {
		return "", lperrors.NewTransientError(errors.New("no choices in response"), "generation backend returned an empty response")
	}

	content := decoded.Choices[0].Message.Content
	c.logger.Debug("[%s] done in %v: finish=%s tokens=%d+%d chars=%d",
		req.Task, time.Since(started).Round(time.Millisecond),
		decoded.Choices[0].FinishReason,
		decoded.Usage.PromptTokens, decoded.Usage.CompletionTokens,
		len(content))
	if strings.TrimSpace(content) == "" {
		return "", lperrors.NewTransientError(errors.New("empty content"), "generation backend returned an empty response")
	}
	return content, nil
}

func retryAfterSeconds(header http.Header) int {
	raw := strings.TrimSpace(header.Get("Retry-After"))
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
