// Package metrics exposes the Prometheus collectors used by the HTTP layer and the plan services.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AI request outcomes.
const (
	OutcomeOK                  = "ok"
	OutcomeProviderUnavailable = "provider_unavailable"
	OutcomeMalformed           = "malformed"
	OutcomeError               = "error"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	aiRequestsTotal     *prometheus.CounterVec
	aiRequestDuration   *prometheus.HistogramVec
	historyWritesTotal  *prometheus.CounterVec
	usersRegistered     prometheus.Counter
}

// New registers every collector on reg. Pass prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		aiRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_plan_requests_total",
				Help: "AI plan generations by plan kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		aiRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ai_plan_request_duration_seconds",
				Help:    "Time spent waiting on the text-generation provider",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"kind"},
		),
		historyWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plan_history_writes_total",
				Help: "Plan history writes by kind and result",
			},
			[]string{"kind", "result"},
		),
		usersRegistered: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "users_registered_total",
				Help: "Total number of users registered",
			},
		),
	}
}

func (m *Metrics) ObserveHTTP(method, path, status string, elapsed time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveAIRequest(kind, outcome string, elapsed time.Duration) {
	m.aiRequestsTotal.WithLabelValues(kind, outcome).Inc()
	m.aiRequestDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *Metrics) HistoryWrite(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.historyWritesTotal.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) UserRegistered() {
	m.usersRegistered.Inc()
}

// Handler serves the Prometheus text exposition for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
