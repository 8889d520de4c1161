package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SwarmMetrics exposes Prometheus collectors that report fan-out activity.
type SwarmMetrics struct {
	taskDuration *prometheus.HistogramVec
	taskFailures *prometheus.CounterVec
	runsActive   *prometheus.GaugeVec
	generations  *prometheus.CounterVec
}

var (
	defaultSwarmMetricsOnce sync.Once
	sharedSwarmMetrics      *SwarmMetrics
)

// DefaultSwarmMetrics returns the instance registered with the global
// Prometheus registry. Collectors are created once so repeated dispatcher
// construction does not panic on duplicate registration.
func DefaultSwarmMetrics() *SwarmMetrics {
	defaultSwarmMetricsOnce.Do(func() {
		sharedSwarmMetrics = MustNewSwarmMetrics(prometheus.DefaultRegisterer)
	})
	return sharedSwarmMetrics
}

// MustNewSwarmMetrics constructs SwarmMetrics on reg. Collectors that are
// already registered are reused; any other registration error panics.
func MustNewSwarmMetrics(reg prometheus.Registerer) *SwarmMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	taskDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "launchpad",
			Subsystem: "swarm",
			Name:      "task_duration_seconds",
			Help:      "Duration of each generation task.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"swarm", "task", "status"},
	)
	taskFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "launchpad",
			Subsystem: "swarm",
			Name:      "task_failures_total",
			Help:      "Generation tasks that resolved to their fallback.",
		},
		[]string{"swarm", "task", "reason"},
	)
	runsActive := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "launchpad",
			Subsystem: "swarm",
			Name:      "runs_active",
			Help:      "Fan-out runs currently in flight.",
		},
		[]string{"swarm"},
	)
	generations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "launchpad",
			Subsystem: "generator",
			Name:      "requests_total",
			Help:      "Generation requests by kind and the path that served them.",
		},
		[]string{"kind", "mode"},
	)

	collectors := []prometheus.Collector{taskDuration, taskFailures, runsActive, generations}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			already, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				panic(err)
			}
			switch collector {
			case taskDuration:
				taskDuration = already.ExistingCollector.(*prometheus.HistogramVec)
			case taskFailures:
				taskFailures = already.ExistingCollector.(*prometheus.CounterVec)
			case runsActive:
				runsActive = already.ExistingCollector.(*prometheus.GaugeVec)
			case generations:
				generations = already.ExistingCollector.(*prometheus.CounterVec)
			}
		}
	}

	return &SwarmMetrics{
		taskDuration: taskDuration,
		taskFailures: taskFailures,
		runsActive:   runsActive,
		generations:  generations,
	}
}

// ObserveTask records the time spent in a task with the provided status label.
func (m *SwarmMetrics) ObserveTask(swarm, task, status string, duration time.Duration) {
	if m == nil || m.taskDuration == nil {
		return
	}
	m.taskDuration.WithLabelValues(swarm, task, status).Observe(duration.Seconds())
}

// IncTaskFailure increments the failure counter for a task and reason.
func (m *SwarmMetrics) IncTaskFailure(swarm, task, reason string) {
	if m == nil || m.taskFailures == nil {
		return
	}
	m.taskFailures.WithLabelValues(swarm, task, reason).Inc()
}

// RunStarted marks a run as active.
func (m *SwarmMetrics) RunStarted(swarm string) {
	if m == nil || m.runsActive == nil {
		return
	}
	m.runsActive.WithLabelValues(swarm).Inc()
}

// RunFinished marks a run as completed.
func (m *SwarmMetrics) RunFinished(swarm string) {
	if m == nil || m.runsActive == nil {
		return
	}
	m.runsActive.WithLabelValues(swarm).Dec()
}

// IncGeneration counts a served generation request.
func (m *SwarmMetrics) IncGeneration(kind, mode string) {
	if m == nil || m.generations == nil {
		return
	}
	m.generations.WithLabelValues(kind, mode).Inc()
}
