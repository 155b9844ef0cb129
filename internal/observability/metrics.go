package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects pipeline metrics.
type Metrics interface {
	RecordAttempt(ctx context.Context, labels AttemptLabels, duration time.Duration)
	RecordRun(ctx context.Context, status string, attempts int, duration time.Duration)
}

// AttemptLabels contains attempt metric dimensions.
type AttemptLabels struct {
	Provider string
	Model    string
	Status   string
}

// Attempt and run statuses.
const (
	StatusSuccess  = "success"
	StatusFailure  = "failure"
	StatusCanceled = "canceled"
)

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics { return nopMetrics{} }

type nopMetrics struct{}

func (nopMetrics) RecordAttempt(context.Context, AttemptLabels, time.Duration) {}
func (nopMetrics) RecordRun(context.Context, string, int, time.Duration)       {}

// PrometheusMetrics records attempt and run metrics in a Prometheus registry.
type PrometheusMetrics struct {
	attemptsTotal   *prometheus.CounterVec
	attemptDuration *prometheus.HistogramVec
	runsTotal       *prometheus.CounterVec
	runDuration     prometheus.Histogram
	runAttempts     prometheus.Histogram
}

// NewPrometheusMetrics registers the pipeline metrics with reg.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) *PrometheusMetrics {
	if namespace == "" {
		namespace = "career_advisor"
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		attemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "attempts_total",
				Help:      "Pipeline attempts by provider, model and status",
			},
			[]string{"provider", "model", "status"},
		),
		attemptDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "attempt_duration_seconds",
				Help:      "Duration of a single pipeline attempt",
				Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
			[]string{"provider", "status"},
		),
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Pipeline runs by final status",
			},
			[]string{"status"},
		),
		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Duration of a full pipeline run including fallbacks",
				Buckets:   []float64{5, 15, 30, 60, 120, 300, 600, 1200},
			},
		),
		runAttempts: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_attempts",
				Help:      "Number of attempts made per run",
				Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 16},
			},
		),
	}
}

// RecordAttempt implements Metrics.
func (m *PrometheusMetrics) RecordAttempt(_ context.Context, labels AttemptLabels, duration time.Duration) {
	m.attemptsTotal.WithLabelValues(labels.Provider, labels.Model, labels.Status).Inc()
	m.attemptDuration.WithLabelValues(labels.Provider, labels.Status).Observe(duration.Seconds())
}

// RecordRun implements Metrics.
func (m *PrometheusMetrics) RecordRun(_ context.Context, status string, attempts int, duration time.Duration) {
	m.runsTotal.WithLabelValues(status).Inc()
	m.runDuration.Observe(duration.Seconds())
	m.runAttempts.Observe(float64(attempts))
}
