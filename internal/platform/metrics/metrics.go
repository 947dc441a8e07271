package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for lineup and seat traffic.
type Metrics struct {
	// Mutations by entity (lineup, seat), operation and outcome
	Mutations *prometheus.CounterVec

	MutationLatency *prometheus.HistogramVec

	// HTTP requests by method, route pattern and status code
	Requests *prometheus.CounterVec

	RequestLatency *prometheus.HistogramVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dragon_lineup_mutations_total",
			Help: "Lineup and seat mutations by entity, operation and outcome",
		}, []string{"entity", "operation", "outcome"}),

		MutationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dragon_lineup_mutation_duration_seconds",
			Help:    "Duration of lineup and seat mutations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"entity", "operation"}),

		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dragon_lineup_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		RequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dragon_lineup_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveMutation records one lineup or seat mutation.
func (m *Metrics) ObserveMutation(entity, operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(entity, operation, outcome).Inc()
	m.MutationLatency.WithLabelValues(entity, operation).Observe(elapsed.Seconds())
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
