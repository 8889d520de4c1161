package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"launchpad/internal/config"
	lperrors "launchpad/internal/errors"
	"launchpad/internal/generator"
	"launchpad/internal/logging"
	"launchpad/internal/observability"
	"launchpad/internal/store"
)

const (
	routeGenerate       = "/api/events/generate"
	routeGenerateStream = "/api/events/generate/stream"
	routeGenerateWS     = "/api/ws/generate"
	routePromote        = "/api/events/promote"
	routeEvents         = "/api/events"
	routeEvent          = "/api/events/:slug"
	routeHealth         = "/api/health"
	routeMetrics        = "/metrics"
)

// RouterDeps are the collaborators the router wires into handlers.
type RouterDeps struct {
	Generator *generator.Service
	Store     *store.EventStore
	Breaker   *lperrors.CircuitBreaker
	Tracer    *observability.TracerProvider
	// Metrics serves /metrics; nil uses the default Prometheus registry.
	Metrics http.Handler
	Version string
}

// NewRouter creates the HTTP router with all endpoints.
func NewRouter(deps RouterDeps, cfg config.ServerConfig) *gin.Engine {
	if deps.Tracer == nil {
		deps.Tracer = observability.NoopTracer()
	}
	if deps.Metrics == nil {
		deps.Metrics = promhttp.Handler()
	}

	apiHandler := NewAPIHandler(deps.Generator, deps.Store, deps.Breaker, deps.Version)
	sseHandler := NewSSEHandler(deps.Generator, deps.Store)
	wsHandler := NewWSHandler(deps.Generator, deps.Store)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(ObservabilityMiddleware(deps.Tracer, logging.NewComponentLogger("HTTP")))
	engine.Use(CORSMiddleware(cfg.CORSOrigins))

	engine.GET(routeHealth, apiHandler.HandleHealth)
	engine.GET(routeMetrics, gin.WrapH(deps.Metrics))

	api := engine.Group("")
	api.Use(RateLimitMiddleware(RateLimitConfig{
		RequestsPerMinute: cfg.RateLimitRPM,
		Burst:             cfg.RateLimitBurst,
	}))
	api.Use(RequestTimeoutMiddleware(cfg.RequestTimeout))
	{
		api.POST(routeGenerate, apiHandler.HandleGenerate)
		api.GET(routeGenerateStream, sseHandler.HandleGenerateStream)
		api.GET(routeGenerateWS, wsHandler.HandleGenerate)
		api.POST(routePromote, apiHandler.HandlePromote)
		api.GET(routeEvents, apiHandler.HandleListEvents)
		api.GET(routeEvent, apiHandler.HandleGetEvent)
	}

	return engine
}
