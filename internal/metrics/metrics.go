// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "interview_radar"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

type Metrics struct {
	registry *prometheus.Registry

	evaluations        *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
	parsedAxes         prometheus.Histogram
	chartFailures      prometheus.Counter

	RequestDuration *prometheus.SummaryVec
	Requests        *prometheus.CounterVec
}

// New registers every collector on a fresh registry, so several instances
// can live in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "evaluations_total",
				Help:      "Evaluations sent to a provider, by outcome",
			},
			[]string{"provider", "outcome"},
		),
		evaluationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "evaluation_duration_seconds",
				Help:      "Time spent waiting for the provider",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120, 180},
			},
			[]string{"provider"},
		),
		parsedAxes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "parsed_axes",
				Help:      "Number of score lines recognised in a reply",
				Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8},
			},
		),
		chartFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chart_failures_total",
				Help:      "Replies whose scores could not be charted",
			},
		),
		RequestDuration: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
	}
}

func (m *Metrics) ObserveEvaluation(provider string, err error, elapsed time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.evaluations.WithLabelValues(provider, outcome).Inc()
	m.evaluationDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveParsedAxes(n int) {
	m.parsedAxes.Observe(float64(n))
}

func (m *Metrics) IncChartFailures() {
	m.chartFailures.Inc()
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
