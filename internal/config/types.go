package config

import (
	"strings"
	"time"

	"launchpad/internal/observability"
)

const (
	// DefaultPlaceholderKey is the sample key shipped in example env files.
	DefaultPlaceholderKey = "sk-your-key"
	DefaultBaseURL        = "https://api.openai.com/v1"
	DefaultModel          = "gpt-4o-mini"

	HeroStoreMemory   = "memory"
	HeroStorePostgres = "postgres"
)

// Config is the full runtime configuration.
type Config struct {
	Backend BackendConfig               `mapstructure:"backend"`
	Swarm   SwarmConfig                 `mapstructure:"swarm"`
	Hero    HeroConfig                  `mapstructure:"hero"`
	Server  ServerConfig                `mapstructure:"server"`
	Store   StoreConfig                 `mapstructure:"store"`
	Logging LoggingConfig               `mapstructure:"logging"`
	Tracing observability.TracingConfig `mapstructure:"tracing"`
	Breaker BreakerConfig               `mapstructure:"breaker"`
}

// BackendConfig describes the OpenAI-compatible generation backend.
type BackendConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Placeholder string        `mapstructure:"placeholder"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	MaxRetries  int           `mapstructure:"max_retries"` // extra attempts on transient failures
}

// Available reports whether a usable API key is configured. An empty key or
// the shipped placeholder routes every request to the template generator.
func (b BackendConfig) Available() bool {
	key := strings.TrimSpace(b.APIKey)
	if key == "" {
		return false
	}
	placeholder := b.Placeholder
	if placeholder == "" {
		placeholder = DefaultPlaceholderKey
	}
	return key != placeholder
}

type SwarmConfig struct {
	TaskTimeout    time.Duration `mapstructure:"task_timeout"`
	MaxConcurrency int           `mapstructure:"max_concurrency"`
}

type HeroConfig struct {
	Unique      bool   `mapstructure:"unique"`
	Store       string `mapstructure:"store"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	RateLimitRPM   int           `mapstructure:"rate_limit_rpm"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type StoreConfig struct {
	MaxEvents int `mapstructure:"max_events"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type BreakerConfig struct {
	FailureThreshold int           `mapstructure:"failure_threshold"`
	SuccessThreshold int           `mapstructure:"success_threshold"`
	OpenTimeout      time.Duration `mapstructure:"open_timeout"`
}
