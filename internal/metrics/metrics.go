// Package metrics provides the centralized Prometheus metrics registry for the predictor.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "esports_predictor",
		Name:      "api_requests_total",
		Help:      "Total number of Liquipedia API requests by endpoint and status",
	}, []string{"endpoint", "status"})
	MatchesFetchedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "esports_predictor",
		Name:      "matches_fetched_total",
		Help:      "Total number of raw match records fetched",
	})
	TournamentsFetchedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "esports_predictor",
		Name:      "tournaments_fetched_total",
		Help:      "Total number of tournament records fetched",
	})
	ValidationFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "esports_predictor",
		Name:      "validation_failures_total",
		Help:      "Total number of records rejected by structural validation",
	}, []string{"record_type"})
	FeatureRowsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "esports_predictor",
		Name:      "feature_rows_total",
		Help:      "Total number of training rows produced by the feature engine",
	})
	GateSkipsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "esports_predictor",
		Name:      "gate_skips_total",
		Help:      "Total number of matches used for warm-up only by the minimum-exposure gate",
	})
	PredictionRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "esports_predictor",
		Name:      "prediction_requests_total",
		Help:      "Total number of prediction requests served",
	})
	PredictionCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "esports_predictor",
		Name:      "prediction_cache_hits_total",
		Help:      "Total number of prediction cache hits",
	})
)

// Gauge metrics
var (
	TeamsTracked = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "esports_predictor",
		Name:      "teams_tracked",
		Help:      "Number of teams with recorded history in the feature engine",
	})
	LastIngestionTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "esports_predictor",
		Name:      "last_ingestion_timestamp_seconds",
		Help:      "Unix timestamp of the last completed ingestion run",
	})
)

// Histogram metrics
var (
	FeatureBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "esports_predictor",
		Name:      "feature_build_duration_seconds",
		Help:      "Duration of full chronological feature builds in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600},
	})
	TournamentFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "esports_predictor",
		Name:      "tournament_fetch_duration_seconds",
		Help:      "Duration of per-tournament match fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(APIRequestsTotal)
		registry.MustRegister(MatchesFetchedTotal)
		registry.MustRegister(TournamentsFetchedTotal)
		registry.MustRegister(ValidationFailuresTotal)
		registry.MustRegister(FeatureRowsTotal)
		registry.MustRegister(GateSkipsTotal)
		registry.MustRegister(PredictionRequestsTotal)
		registry.MustRegister(PredictionCacheHitsTotal)

		registry.MustRegister(TeamsTracked)
		registry.MustRegister(LastIngestionTimestamp)

		registry.MustRegister(FeatureBuildDuration)
		registry.MustRegister(TournamentFetchDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAPIRequest records an upstream API call outcome.
func RecordAPIRequest(endpoint, status string) {
	APIRequestsTotal.WithLabelValues(endpoint, status).Inc()
}

// RecordValidationFailure records a record rejected by structural validation.
func RecordValidationFailure(recordType string) {
	ValidationFailuresTotal.WithLabelValues(recordType).Inc()
}

// RecordFeatureRow records a produced training row.
func RecordFeatureRow() {
	FeatureRowsTotal.Inc()
}

// RecordGateSkip records a match held back by the minimum-exposure gate.
func RecordGateSkip() {
	GateSkipsTotal.Inc()
}
