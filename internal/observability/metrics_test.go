package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwarmMetricsRecordsTaskActivity(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := MustNewSwarmMetrics(reg)

	metrics.RunStarted("event")
	metrics.ObserveTask("event", "venue", "success", 40*time.Millisecond)
	metrics.IncTaskFailure("event", "pricing", "timeout")
	metrics.IncTaskFailure("event", "pricing", "timeout")
	metrics.IncGeneration("event", "swarm")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.runsActive.WithLabelValues("event")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.taskFailures.WithLabelValues("event", "pricing", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.generations.WithLabelValues("event", "swarm")))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.taskDuration))

	metrics.RunFinished("event")
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.runsActive.WithLabelValues("event")))
}

func TestMustNewSwarmMetricsReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := MustNewSwarmMetrics(reg)
	second := MustNewSwarmMetrics(reg)

	require.NotNil(t, second)
	first.IncTaskFailure("promo", "seo", "error")
	assert.Equal(t, 1.0, testutil.ToFloat64(second.taskFailures.WithLabelValues("promo", "seo", "error")))
}

func TestNilSwarmMetricsIsSafe(t *testing.T) {
	var metrics *SwarmMetrics
	assert.NotPanics(t, func() {
		metrics.RunStarted("event")
		metrics.ObserveTask("event", "venue", "success", time.Millisecond)
		metrics.IncTaskFailure("event", "venue", "error")
		metrics.RunFinished("event")
		metrics.IncGeneration("event", "template")
	})
}
