// Package generator serves event and promotion requests. It picks the swarm
// path when the backend is usable and the template path otherwise, and turns
// every orchestrator failure into template output.
package generator

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"launchpad/internal/async"
	"launchpad/internal/catalog"
	"launchpad/internal/config"
	lperrors "launchpad/internal/errors"
	"launchpad/internal/event"
	"launchpad/internal/heropool"
	"launchpad/internal/llm"
	"launchpad/internal/logging"
	"launchpad/internal/observability"
	"launchpad/internal/promo"
	"launchpad/internal/swarm"
	id "launchpad/internal/utils/id"
)

// Result is a generated event plus how it was produced.
type Result struct {
	Event       event.Event       `json:"event"`
	Mode        string            `json:"mode"`
	Diagnostics swarm.Diagnostics `json:"diagnostics"`
}

// PromoResult is a generated promotion kit plus how it was produced.
type PromoResult struct {
	Kit         promo.Kit         `json:"kit"`
	Mode        string            `json:"mode"`
	Diagnostics swarm.Diagnostics `json:"diagnostics"`
}

// Service owns both generation paths.
type Service struct {
	backend  config.BackendConfig
	swarmCfg config.SwarmConfig

	client   llm.Client
	template *event.TemplateGenerator
	agents   *event.Agents
	bots     *promo.Bots

	eventSwarm *swarm.Dispatcher
	promoSwarm *swarm.Dispatcher

	// task builders are fields so tests can break the orchestrator path
	eventTasks func(event.Fallbacks) []swarm.Task
	promoTasks func(promo.Input, promo.Kit) []swarm.Task

	breaker *lperrors.CircuitBreaker
	claimer heropool.Claimer
	metrics *observability.SwarmMetrics
	tracer  *observability.TracerProvider
	logger  logging.Logger
	now     func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClient sets the generation backend used by the swarm path.
func WithClient(client llm.Client) Option {
	return func(s *Service) { s.client = client }
}

// WithBreaker shares the breaker guarding the backend transport. An open
// breaker routes requests to the template path.
func WithBreaker(breaker *lperrors.CircuitBreaker) Option {
	return func(s *Service) { s.breaker = breaker }
}

// WithClaimer enables collision-free hero images across events.
func WithClaimer(claimer heropool.Claimer) Option {
	return func(s *Service) { s.claimer = claimer }
}

func WithSwarmConfig(cfg config.SwarmConfig) Option {
	return func(s *Service) { s.swarmCfg = cfg }
}

func WithMetrics(metrics *observability.SwarmMetrics) Option {
	return func(s *Service) { s.metrics = metrics }
}

func WithTracer(tracer *observability.TracerProvider) Option {
	return func(s *Service) { s.tracer = tracer }
}

func WithLogger(logger logging.Logger) Option {
	return func(s *Service) { s.logger = logging.OrNop(logger) }
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New builds a Service over cat.
func New(backend config.BackendConfig, cat *catalog.Catalog, opts ...Option) *Service {
	s := &Service{
		backend:  backend,
		template: event.NewTemplateGenerator(cat),
		tracer:   observability.NoopTracer(),
		logger:   logging.NewComponentLogger("generator"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.client != nil {
		s.agents = event.NewAgents(s.client, cat)
		s.bots = promo.NewBots(s.client)
		s.eventTasks = s.agents.Tasks
		s.promoTasks = s.bots.Tasks
	}
	s.eventSwarm = s.dispatcher("event")
	s.promoSwarm = s.dispatcher("promo")
	return s
}

func (s *Service) dispatcher(name string) *swarm.Dispatcher {
	return swarm.NewDispatcher(
		swarm.Config{Name: name, TaskTimeout: s.swarmCfg.TaskTimeout, MaxConcurrency: s.swarmCfg.MaxConcurrency},
		swarm.WithLogger(logging.NewComponentLogger("swarm")),
		swarm.WithMetrics(s.metrics),
		swarm.WithTracer(s.tracer),
	)
}

// Template exposes the network-free generator.
func (s *Service) Template() *event.TemplateGenerator {
	return s.template
}

// Available reports whether requests can take the swarm path at all.
func (s *Service) Available() bool {
	return s.client != nil && s.backend.Available()
}

// GenerateEvent validates in and produces a complete event.
func (s *Service) GenerateEvent(ctx context.Context, in event.Input) (Result, error) {
	return s.GenerateEventObserved(ctx, in, nil)
}

// GenerateEventObserved is GenerateEvent with per-task progress callbacks.
// The observer only hears from the swarm path.
func (s *Service) GenerateEventObserved(ctx context.Context, in event.Input, observer swarm.Observer) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	in = in.Normalize()

	runID := id.NewRunID()
	ctx = observability.ContextWithRunID(ctx, runID)
	ctx = observability.ContextWithSlug(ctx, in.Slug)
	ctx, span := s.tracer.StartSpan(ctx, observability.SpanGenerateEvent)
	defer span.End()

	ev, diag, mode := s.eventContent(ctx, in, observer)

	ev.ID = id.NewEventID()
	ev.CreatedAt = s.now().UTC()
	ev.HeroImageURL = s.claimHero(ctx, in, ev.HeroImageURL)
	ev.Generation = event.Metadata{Mode: mode, RunID: runID, Timings: diag.Timings, Errors: diag.Errors}

	span.SetAttributes(attribute.String(observability.AttrMode, mode))
	s.metrics.IncGeneration("event", mode)
	s.logger.Info("Generated event %s via %s (run %s, %d fallbacks)", ev.Slug, mode, runID, diag.Failed())

	return Result{Event: ev, Mode: mode, Diagnostics: diag}, nil
}

func (s *Service) eventContent(ctx context.Context, in event.Input, observer swarm.Observer) (event.Event, swarm.Diagnostics, string) {
	if !s.useSwarm() {
		return s.template.Generate(in), swarm.NewDiagnostics(), event.ModeTemplate
	}

	var (
		ev   event.Event
		diag swarm.Diagnostics
	)
	err := async.Capture(s.logger, "generator.event", func() error {
		fb := s.template.SwarmFallbacks(in)
		outcomes, d, err := s.eventSwarm.RunObserved(ctx, s.eventTasks(fb), observer)
		if err != nil {
			return err
		}
		ev, diag = event.Merge(fb, outcomes), d
		return nil
	})
	if err != nil {
		s.logger.Error("Event swarm failed for %s, serving template: %v", in.Slug, err)
		return s.template.Generate(in), swarm.NewDiagnostics(), event.ModeTemplate
	}
	return ev, diag, event.ModeSwarm
}

// useSwarm consults availability and the breaker. An open breaker is a
// degraded state, not an error.
func (s *Service) useSwarm() bool {
	if !s.Available() || s.eventTasks == nil {
		return false
	}
	if s.breaker == nil {
		return true
	}
	if err := s.breaker.Allow(); err != nil {
		s.logger.Warn("Backend degraded, serving template: %v", err)
		return false
	}
	return true
}

func (s *Service) claimHero(ctx context.Context, in event.Input, stable string) string {
	if s.claimer == nil {
		return stable
	}
	pool := s.template.HeroPool(in.Topic)
	hero, err := s.claimer.Claim(ctx, pool, event.HeroKey(in.Topic, in.City, in.Slug), in.Slug)
	if err != nil || hero == "" {
		s.logger.Warn("Hero claim for %s failed, keeping stable image: %v", in.Slug, err)
		return stable
	}
	return hero
}

// GeneratePromo validates in and produces a complete promotion kit.
func (s *Service) GeneratePromo(ctx context.Context, in promo.Input) (PromoResult, error) {
	return s.GeneratePromoObserved(ctx, in, nil)
}

// GeneratePromoObserved is GeneratePromo with per-task progress callbacks.
func (s *Service) GeneratePromoObserved(ctx context.Context, in promo.Input, observer swarm.Observer) (PromoResult, error) {
	if err := in.Validate(); err != nil {
		return PromoResult{}, err
	}

	runID := id.NewRunID()
	ctx = observability.ContextWithRunID(ctx, runID)
	ctx = observability.ContextWithSlug(ctx, in.Slug)
	ctx, span := s.tracer.StartSpan(ctx, observability.SpanGeneratePromo)
	defer span.End()

	fallback := promo.Template(in)
	kit, diag, mode := fallback, swarm.NewDiagnostics(), event.ModeTemplate

	if s.useSwarm() && s.promoTasks != nil {
		err := async.Capture(s.logger, "generator.promo", func() error {
			outcomes, d, err := s.promoSwarm.RunObserved(ctx, s.promoTasks(in, fallback), observer)
			if err != nil {
				return err
			}
			kit, diag, mode = promo.Merge(fallback, outcomes), d, event.ModeSwarm
			return nil
		})
		if err != nil {
			s.logger.Error("Promotion swarm failed for %s, serving template: %v", in.Name, err)
			kit, diag, mode = fallback, swarm.NewDiagnostics(), event.ModeTemplate
		}
	}

	kit.Generation = event.Metadata{Mode: mode, RunID: runID, Timings: diag.Timings, Errors: diag.Errors}
	span.SetAttributes(attribute.String(observability.AttrMode, mode))
	s.metrics.IncGeneration("promo", mode)

	return PromoResult{Kit: kit, Mode: mode, Diagnostics: diag}, nil
}
