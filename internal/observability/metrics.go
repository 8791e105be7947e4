package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	turnsTotal            *prometheus.CounterVec
	gradingFallbacksTotal prometheus.Counter
	mythFallbacksTotal    prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		turnsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "game_turns_total",
			Help: "Total number of completed game turns, labelled by earned badge.",
		}, []string{"badge"})

		gradingFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "game_grading_fallbacks_total",
			Help: "Turns graded with the zero-score fallback evaluation.",
		})

		mythFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "game_myth_fallbacks_total",
			Help: "Myths served from the offline pool instead of the generator.",
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			turnsTotal,
			gradingFallbacksTotal,
			mythFallbacksTotal,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// Turns exposes the counter for completed game turns.
func Turns() *prometheus.CounterVec {
	RegisterMetrics()
	return turnsTotal
}

// GradingFallbacks exposes the counter for fallback evaluations.
func GradingFallbacks() prometheus.Counter {
	RegisterMetrics()
	return gradingFallbacksTotal
}

// MythFallbacks exposes the counter for offline myths served.
func MythFallbacks() prometheus.Counter {
	RegisterMetrics()
	return mythFallbacksTotal
}
