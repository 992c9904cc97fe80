package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the frame service's Prometheus registry and meters.
type Metrics struct {
	Registry       *prometheus.Registry
	Responses      *prometheus.CounterVec
	UpstreamErrors *prometheus.CounterVec
	HandleDuration *prometheus.HistogramVec
}

// New creates a private registry with the frame meters registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	responses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "frame_responses_total",
		Help: "Frame responses by kind.",
	}, []string{"kind"})

	upstreamErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "frame_upstream_errors_total",
		Help: "Upstream failures that degraded a request to the initial frame.",
	}, []string{"stage"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "frame_handle_duration_seconds",
		Help:    "Time to compute a frame response.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	reg.MustRegister(responses, upstreamErrors, duration)

	return &Metrics{
		Registry:       reg,
		Responses:      responses,
		UpstreamErrors: upstreamErrors,
		HandleDuration: duration,
	}
}

// ObserveResponse records one produced frame. Safe on a nil receiver.
func (m *Metrics) ObserveResponse(kind string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Responses.WithLabelValues(kind).Inc()
	m.HandleDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveUpstreamError records a hard failure at stage. Safe on a nil receiver.
func (m *Metrics) ObserveUpstreamError(stage string) {
	if m == nil {
		return
	}
	m.UpstreamErrors.WithLabelValues(stage).Inc()
}
