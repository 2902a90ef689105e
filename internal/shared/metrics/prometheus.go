package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Business metrics
	assessmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_assessments_total",
			Help: "Total number of completed triage assessments",
		},
		[]string{"condition_type", "confidence_tier", "priority"},
	)

	predictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "triage_prediction_duration_seconds",
			Help:    "Classifier prediction duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"backend"},
	)

	knowledgeFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_knowledge_fallbacks_total",
			Help: "Total number of predicted labels resolved to default records",
		},
		[]string{"mapping"},
	)

	remoteCallFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_remote_call_failures_total",
			Help: "Total number of failed calls to the model-serving endpoint",
		},
		[]string{"reason"},
	)

	predictionCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_prediction_cache_hits_total",
			Help: "Total number of predictions served from the narrative cache",
		},
	)

	historyEntriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "triage_history_entries_total",
			Help: "Total number of assessment history rows written",
		},
	)

	// Database metrics
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)
)

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware creates HTTP metrics middleware
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// normalizePath normalizes URL paths for metrics to avoid cardinality explosion
func normalizePath(path string) string {
	if len(path) > 100 {
		return "/api/..."
	}
	return path
}

// --- Business metric helpers ---

// RecordAssessment records a completed triage assessment
func RecordAssessment(conditionType, tier, priority string) {
	assessmentsTotal.WithLabelValues(conditionType, tier, priority).Inc()
}

// RecordPrediction records a classifier prediction duration
func RecordPrediction(backend string, duration time.Duration) {
	predictionDuration.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordKnowledgeFallback records a label resolved to a default record
func RecordKnowledgeFallback(mapping string) {
	knowledgeFallbacksTotal.WithLabelValues(mapping).Inc()
}

// RecordRemoteCallFailure records a failed serving-endpoint call
func RecordRemoteCallFailure(reason string) {
	remoteCallFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordPredictionCacheHit records a prediction served from cache
func RecordPredictionCacheHit() {
	predictionCacheHits.Inc()
}

// RecordHistoryEntry records an assessment history row write
func RecordHistoryEntry() {
	historyEntriesTotal.Inc()
}

// RecordDBQuery records a database query duration
func RecordDBQuery(operation string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
