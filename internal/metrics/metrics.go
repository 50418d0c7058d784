// Package metrics provides Prometheus metrics collection for the site backend.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Global metrics - used by the application
	// Using atomic.Pointer for lock-free initialization checks on hot path metrics.
	requestsTotal       atomic.Pointer[prometheus.CounterVec]
	requestDuration     atomic.Pointer[prometheus.HistogramVec]
	authFailuresTotal   atomic.Pointer[prometheus.CounterVec]
	contactSubmissions  atomic.Pointer[prometheus.Counter]
	slugCollisionsTotal atomic.Pointer[prometheus.Counter]
)

// Init initializes all Prometheus metrics and registers them with the provided registry.
// This should be called once at application startup.
func Init(reg prometheus.Registerer) error {
	// HTTP request counter: tracks all requests by method, path (normalized), and status code
	requestsTotalVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled",
		},
		[]string{"method", "path", "status"},
	)
	if err := reg.Register(requestsTotalVec); err != nil {
		return fmt.Errorf("failed to register requestsTotal: %w", err)
	}

	// Request duration histogram: tracks latency distribution
	requestDurationVec := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "site",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	if err := reg.Register(requestDurationVec); err != nil {
		return fmt.Errorf("failed to register requestDuration: %w", err)
	}

	// Auth failures counter: tracks failed authentication attempts
	authFailuresTotalVec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "api",
			Name:      "auth_failures_total",
			Help:      "Total number of authentication failures",
		},
		[]string{"reason"},
	)
	if err := reg.Register(authFailuresTotalVec); err != nil {
		return fmt.Errorf("failed to register authFailuresTotal: %w", err)
	}

	// Contact form submissions counter
	contactCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "api",
			Name:      "contact_submissions_total",
			Help:      "Total number of accepted contact form submissions",
		},
	)
	if err := reg.Register(contactCounter); err != nil {
		return fmt.Errorf("failed to register contactSubmissions: %w", err)
	}

	// Slug write collisions counter: a non-zero rate here means concurrent
	// creates are racing for the same titles
	slugCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "site",
			Subsystem: "api",
			Name:      "slug_collisions_total",
			Help:      "Total number of slug uniqueness collisions resolved by re-allocation",
		},
	)
	if err := reg.Register(slugCounter); err != nil {
		return fmt.Errorf("failed to register slugCollisions: %w", err)
	}

	// Store metrics in atomics for lock-free access in record functions
	requestsTotal.Store(requestsTotalVec)
	requestDuration.Store(requestDurationVec)
	authFailuresTotal.Store(authFailuresTotalVec)
	contactSubmissions.Store(&contactCounter)
	slugCollisionsTotal.Store(&slugCounter)

	return nil
}

// RecordRequest increments the requests counter for the given method, path, and status code.
// The path should be normalized (e.g., "/api/blog/posts/:id" instead of a concrete ID).
func RecordRequest(method, path, statusCode string) {
	if counter := requestsTotal.Load(); counter != nil {
		counter.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordRequestDuration records the latency for a request.
// Duration should be in seconds.
func RecordRequestDuration(method, path, statusCode string, durationSeconds float64) {
	if histogram := requestDuration.Load(); histogram != nil {
		histogram.WithLabelValues(method, path, statusCode).Observe(durationSeconds)
	}
}

// RecordAuthFailure increments the auth failures counter for the given reason.
// Common reasons: "invalid_credentials", "unauthorized", "missing_credential"
func RecordAuthFailure(reason string) {
	if counter := authFailuresTotal.Load(); counter != nil {
		counter.WithLabelValues(reason).Inc()
	}
}

// RecordContactSubmission increments the contact submissions counter.
func RecordContactSubmission() {
	if counter := contactSubmissions.Load(); counter != nil {
		(*counter).Inc()
	}
}

// RecordSlugCollision increments the slug collision counter.
func RecordSlugCollision() {
	if counter := slugCollisionsTotal.Load(); counter != nil {
		(*counter).Inc()
	}
}

// Handler returns an HTTP handler for Prometheus metrics in text format.
// This handler should be registered at /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// GetMetricsText returns the Prometheus text-format output from a registry.
// This is useful for testing and debugging.
func GetMetricsText(reg prometheus.Gatherer) (string, error) {
	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	body, err := io.ReadAll(w.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read metrics output: %w", err)
	}

	return string(body), nil
}
