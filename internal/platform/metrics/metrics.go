// Package metrics declares the process-wide Prometheus collectors
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Attempt outcomes
const (
	OutcomeOK        = "ok"
	OutcomeRetry     = "retry"
	OutcomeFailed    = "failed"
	OutcomeRateLimit = "rate_limited"
)

var (
	// ModelAttempts counts every model call attempt by outcome
	ModelAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditrisk_model_attempts_total",
			Help: "Model call attempts by outcome",
		},
		[]string{"outcome"},
	)

	// ModelCallSeconds observes the wall time of a single attempt
	ModelCallSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "creditrisk_model_call_seconds",
			Help:    "Duration of one model call attempt",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16},
		},
	)

	// LimiterInFlight is the number of held limiter slots
	LimiterInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "creditrisk_limiter_in_flight",
			Help: "Model calls currently holding a limiter slot",
		},
	)

	// Assessments counts completed assessments by AI source
	Assessments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditrisk_assessments_total",
			Help: "Completed assessments by AI adjustment source",
		},
		[]string{"source"},
	)

	// AssessmentSeconds observes end to end assessment latency
	AssessmentSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "creditrisk_assessment_seconds",
			Help:    "End to end assessment latency",
			Buckets: []float64{0.05, 0.25, 1, 2.5, 5, 9.5, 12},
		},
	)

	// DBQueries counts statements by leading verb and result
	DBQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditrisk_db_queries_total",
			Help: "Executed SQL statements by verb and result",
		},
		[]string{"verb", "result"},
	)

	// HTTPRequests counts served requests by route pattern and status
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creditrisk_http_requests_total",
			Help: "Served HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveAttempt records one model attempt
func ObserveAttempt(outcome string, took time.Duration) {
	ModelAttempts.WithLabelValues(outcome).Inc()
	ModelCallSeconds.Observe(took.Seconds())
}

// ObserveAssessment records one finished assessment
func ObserveAssessment(source string, took time.Duration) {
	Assessments.WithLabelValues(source).Inc()
	AssessmentSeconds.Observe(took.Seconds())
}

// ObserveQuery records one executed statement
func ObserveQuery(verb string, failed bool) {
	result := "ok"
	if failed {
		result = "error"
	}
	DBQueries.WithLabelValues(verb, result).Inc()
}

// ObserveRequest records one served request; route should be the pattern, not the raw path
func ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// SetInFlight mirrors the limiter's in-flight count
func SetInFlight(n int) { LimiterInFlight.Set(float64(n)) }

// Handler serves the default registry
func Handler() http.Handler { return promhttp.Handler() }
