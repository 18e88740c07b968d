package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Database Metrics
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Duration of database operations",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "collection"},
	)

	// Sync Metrics
	SnapshotsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_snapshots_delivered_total",
			Help: "Total number of collection snapshots delivered to local caches",
		},
		[]string{"collection"},
	)

	// Authentication Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status", "type"}, // success/failure, login/refresh
	)

	// Session Metrics
	ActiveSpaces = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_user_spaces_total",
			Help: "Number of user spaces with live subscriptions",
		},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type", "reason"},
	)
)

// TrackDBOperation tracks database operation duration
func TrackDBOperation(operation, collection string) *prometheus.Timer {
	return prometheus.NewTimer(DBOperationDuration.WithLabelValues(operation, collection))
}

// TrackSnapshot counts one snapshot delivery for a collection
func TrackSnapshot(collection string) {
	SnapshotsDelivered.WithLabelValues(collection).Inc()
}

// TrackAuthAttempt records authentication attempts
func TrackAuthAttempt(status, authType string) {
	AuthAttempts.WithLabelValues(status, authType).Inc()
}

// TrackError increments the error counter by type and reason
func TrackError(errorType, reason string) {
	ErrorsTotal.WithLabelValues(errorType, reason).Inc()
}
