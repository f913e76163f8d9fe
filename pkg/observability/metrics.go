package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/flowguard/pkg/domain"
)

// Metrics collects validation counters and latencies.
type Metrics struct {
	registry *prometheus.Registry
	runs     *prometheus.CounterVec
	issues   *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates the collectors on a dedicated registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowguard_validations_total",
				Help: "Total number of validation runs by outcome",
			},
			[]string{"valid"},
		),
		issues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flowguard_issues_total",
				Help: "Total number of reported issues by kind and severity",
			},
			[]string{"type", "severity"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flowguard_validation_duration_seconds",
				Help:    "Duration of validation runs",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
		),
	}
	m.registry.MustRegister(m.runs, m.issues, m.duration)
	return m
}

// ObserveValidation records one validation run.
func (m *Metrics) ObserveValidation(_ string, res domain.Result, elapsed time.Duration) {
	valid := "false"
	if res.IsValid {
		valid = "true"
	}
	m.runs.WithLabelValues(valid).Inc()
	m.duration.Observe(elapsed.Seconds())

	for _, bucket := range [][]domain.Issue{res.Errors, res.Warnings, res.Infos} {
		for _, issue := range bucket {
			m.issues.WithLabelValues(string(issue.Kind), string(issue.Severity)).Inc()
		}
	}
}

// Registry exposes the underlying registry (useful for custom collectors and tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
