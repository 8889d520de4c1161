package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "LAUNCHPAD"

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.api_key", "")
	v.SetDefault("backend.placeholder", DefaultPlaceholderKey)
	v.SetDefault("backend.base_url", DefaultBaseURL)
	v.SetDefault("backend.model", DefaultModel)
	v.SetDefault("backend.timeout", 10*time.Second)
	v.SetDefault("backend.max_tokens", 1200)
	v.SetDefault("backend.temperature", 0.8)
	v.SetDefault("backend.max_retries", 0)

	v.SetDefault("swarm.task_timeout", 12*time.Second)
	v.SetDefault("swarm.max_concurrency", 0)

	v.SetDefault("hero.unique", true)
	v.SetDefault("hero.store", HeroStoreMemory)
	v.SetDefault("hero.postgres_dsn", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.rate_limit_rpm", 60)
	v.SetDefault("server.rate_limit_burst", 10)
	v.SetDefault("server.request_timeout", 45*time.Second)

	v.SetDefault("store.max_events", 500)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", "otlp")
	v.SetDefault("tracing.otlp_endpoint", "localhost:4318")
	v.SetDefault("tracing.zipkin_endpoint", "http://localhost:9411/api/v2/spans")
	v.SetDefault("tracing.sample_rate", 1.0)
	v.SetDefault("tracing.service_name", "launchpad")

	v.SetDefault("breaker.failure_threshold", 5)
	v.SetDefault("breaker.success_threshold", 2)
	v.SetDefault("breaker.open_timeout", 30*time.Second)
}

// Load resolves configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A missing explicit file is
// an error; no file at all is fine.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, aliases := range DefaultEnvAliases() {
		names := append([]string{EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, aliases...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot be served.
func (c Config) Validate() error {
	if c.Swarm.TaskTimeout <= 0 {
		return fmt.Errorf("swarm.task_timeout must be positive")
	}
	if c.Swarm.MaxConcurrency < 0 {
		return fmt.Errorf("swarm.max_concurrency must not be negative")
	}
	switch c.Hero.Store {
	case HeroStoreMemory:
	case HeroStorePostgres:
		if strings.TrimSpace(c.Hero.PostgresDSN) == "" {
			return fmt.Errorf("hero.postgres_dsn is required when hero.store=postgres")
		}
	default:
		return fmt.Errorf("unknown hero.store %q", c.Hero.Store)
	}
	if c.Backend.MaxRetries < 0 || c.Backend.MaxRetries > 1 {
		return fmt.Errorf("backend.max_retries must be 0 or 1")
	}
	if c.Store.MaxEvents <= 0 {
		return fmt.Errorf("store.max_events must be positive")
	}
	return nil
}
