package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	requestsTotal         *prometheus.CounterVec
	latencySeconds        *prometheus.HistogramVec
	errorsTotal           *prometheus.CounterVec
	gradingActionsTotal   *prometheus.CounterVec
	recomputeRunsTotal    prometheus.Counter
	recomputeEntriesGauge prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skor_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		latencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skor_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skor_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		gradingActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skor_grading_actions_total",
			Help: "Total number of grading actions, labelled by outcome.",
		}, []string{"outcome"})

		recomputeRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skor_leaderboard_recomputes_total",
			Help: "Total number of leaderboard recompute runs.",
		})

		recomputeEntriesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "skor_leaderboard_entries_last",
			Help: "Entry count of the most recent leaderboard recompute.",
		})

		prometheus.MustRegister(requestsTotal, latencySeconds, errorsTotal, gradingActionsTotal, recomputeRunsTotal, recomputeEntriesGauge)
	})
}

// Requests exposes the counter for API requests.
func Requests() *prometheus.CounterVec {
	RegisterMetrics()
	return requestsTotal
}

// Latency exposes the latency histogram for API requests.
func Latency() *prometheus.HistogramVec {
	RegisterMetrics()
	return latencySeconds
}

// Errors exposes the counter for API error responses.
func Errors() *prometheus.CounterVec {
	RegisterMetrics()
	return errorsTotal
}

// GradingActions exposes the counter for grading outcomes.
func GradingActions() *prometheus.CounterVec {
	RegisterMetrics()
	return gradingActionsTotal
}

// RecomputeRuns exposes the leaderboard recompute counter.
func RecomputeRuns() prometheus.Counter {
	RegisterMetrics()
	return recomputeRunsTotal
}

// RecomputeEntries exposes the gauge for the last recompute size.
func RecomputeEntries() prometheus.Gauge {
	RegisterMetrics()
	return recomputeEntriesGauge
}
