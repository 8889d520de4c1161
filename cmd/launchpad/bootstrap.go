package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"launchpad/internal/catalog"
	"launchpad/internal/config"
	lperrors "launchpad/internal/errors"
	"launchpad/internal/generator"
	"launchpad/internal/heropool"
	"launchpad/internal/heropool/postgres"
	"launchpad/internal/httpclient"
	"launchpad/internal/llm"
	"launchpad/internal/logging"
	"launchpad/internal/observability"
)

// app is everything a command needs, built once from configuration.
type app struct {
	cfg       config.Config
	generator *generator.Service
	breaker   *lperrors.CircuitBreaker
	tracer    *observability.TracerProvider
	metrics   *observability.SwarmMetrics
	logger    logging.Logger
	cleanup   []func()
}

func (a *app) Close(ctx context.Context) {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
	if err := a.tracer.Shutdown(ctx); err != nil {
		a.logger.Warn("Tracer shutdown: %v", err)
	}
}

func bootstrap(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if opts.verbose {
		level = "debug"
	}
	logging.Configure(observability.LogConfig{Level: level, Format: cfg.Logging.Format})
	logger := logging.NewComponentLogger("launchpad")

	tracer, err := observability.NewTracerProvider(cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	a := &app{
		cfg:     cfg,
		tracer:  tracer,
		metrics: observability.MustNewSwarmMetrics(prometheus.DefaultRegisterer),
		logger:  logger,
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	genOpts := []generator.Option{
		generator.WithSwarmConfig(cfg.Swarm),
		generator.WithMetrics(a.metrics),
		generator.WithTracer(tracer),
	}

	if cfg.Backend.Available() {
		a.breaker = lperrors.NewCircuitBreaker("backend", lperrors.CircuitBreakerConfig{
			FailureThreshold: cfg.Breaker.FailureThreshold,
			SuccessThreshold: cfg.Breaker.SuccessThreshold,
			Timeout:          cfg.Breaker.OpenTimeout,
			OnStateChange: func(from, to lperrors.CircuitState, name string) {
				logger.Warn("Circuit %s: %s -> %s", name, from, to)
			},
		})
		client := llm.NewOpenAIClient(cfg.Backend,
			llm.WithHTTPClient(httpclient.NewWithBreaker(cfg.Backend.Timeout, a.breaker)),
			llm.WithTracer(tracer),
		)
		genOpts = append(genOpts, generator.WithClient(client), generator.WithBreaker(a.breaker))
		logger.Info("Backend %s ready (model %s, key %s)", cfg.Backend.BaseURL, client.Model(), observability.SanitizeAPIKey(cfg.Backend.APIKey))
	} else {
		logger.Info("No backend key configured, serving template output")
	}

	if cfg.Hero.Unique {
		claimer, err := a.heroClaimer(ctx)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		genOpts = append(genOpts, generator.WithClaimer(claimer))
	}

	a.generator = generator.New(cfg.Backend, cat, genOpts...)
	return a, nil
}

func (a *app) heroClaimer(ctx context.Context) (heropool.Claimer, error) {
	switch a.cfg.Hero.Store {
	case config.HeroStorePostgres:
		store, closeFn, err := postgres.Open(ctx, a.cfg.Hero.PostgresDSN)
		if err != nil {
			return nil, err
		}
		a.cleanup = append(a.cleanup, closeFn)
		a.logger.Info("Hero claims stored in Postgres")
		return store, nil
	default:
		return heropool.NewRegistry(), nil
	}
}
