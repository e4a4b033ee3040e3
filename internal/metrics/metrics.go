// Package metrics exposes Prometheus metrics for command invocations and
// vision-service calls.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"

	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics is safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	Invocations        *prometheus.CounterVec
	InvocationDuration *prometheus.HistogramVec
	VisionCalls        *prometheus.CounterVec
	VisionDuration     *prometheus.HistogramVec
	registry           *prometheus.Registry
}

func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register bot metrics: %w", err)
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.Invocations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rekognition_bot_invocations_total",
		Help: "Total number of /photos invocations by mode and outcome.",
	}, []string{"mode", "outcome"})

	m.InvocationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rekognition_bot_invocation_duration_seconds",
		Help:    "End-to-end duration of /photos invocations in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
	}, []string{"mode"})

	m.VisionCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rekognition_bot_vision_calls_total",
		Help: "Total number of Rekognition calls by operation and status.",
	}, []string{"operation", "status"})

	m.VisionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rekognition_bot_vision_call_duration_seconds",
		Help:    "Duration of Rekognition calls in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	}, []string{"operation"})
}

func (m *Metrics) ObserveInvocation(mode, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if mode == "" {
		mode = "unknown"
	}
	m.Invocations.WithLabelValues(mode, outcome).Inc()
	m.InvocationDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveVisionCall(operation string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.VisionCalls.WithLabelValues(operation, status).Inc()
	m.VisionDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Collect implements the prometheus.Collector interface.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.Invocations.Collect(ch)
	m.InvocationDuration.Collect(ch)
	m.VisionCalls.Collect(ch)
	m.VisionDuration.Collect(ch)
}

// Describe implements the prometheus.Collector interface.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.Invocations.Describe(ch)
	m.InvocationDuration.Describe(ch)
	m.VisionCalls.Describe(ch)
	m.VisionDuration.Describe(ch)
}
