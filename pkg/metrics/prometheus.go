// Package metrics provides Prometheus metrics for the steampicker service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "steampicker"

// registry is private so tests and the /healthz endpoint see exactly the
// service's own metrics.
var registry = prometheus.NewRegistry()

var (
	// HTTP performance
	httpRequests = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method, and status code.",
	}, []string{"endpoint", "method", "status"})
	httpRequestDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"endpoint", "method", "status"})

	// Upstream fetch accounting (per pipeline component)
	upstreamFetches = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_fetches_total",
		Help:      "Individual upstream fetches by component.",
	}, []string{"component"})
	upstreamMisses = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_misses_total",
		Help:      "Upstream fetches that degraded to a miss, by component.",
	}, []string{"component"})

	// Pipeline stages
	pipelineStageDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pipeline_stage_duration_ms",
		Help:      "Pipeline stage latency in milliseconds.",
		Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 15000, 60000},
	}, []string{"stage"})
	candidatesSampled = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_candidates_sampled",
		Help:      "Candidate pool size of the most recent sampling run.",
	})
	recommendFallbacks = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommend_fallbacks_total",
		Help:      "Recommendation requests served by the fallback ranker.",
	})

	// Error tracking
	errorsByComponent = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "errors_total",
		Help:      "Errors by component and type.",
	}, []string{"component", "type"})

	// System health
	systemMemoryBytes = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "system_memory_bytes",
		Help:      "Allocated heap bytes.",
	})
	systemGoroutines = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "system_goroutines",
		Help:      "Current goroutine count.",
	})
)

// GetRegistry exposes the service registry for the metrics endpoint.
func GetRegistry() *prometheus.Registry { return registry }

func RecordHTTPRequest(endpoint, method, status string) {
	httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

func RecordUpstreamFetch(component string) {
	upstreamFetches.WithLabelValues(component).Inc()
}

func RecordUpstreamMiss(component string) {
	upstreamMisses.WithLabelValues(component).Inc()
}

func RecordPipelineStageDuration(stage string, ms float64) {
	pipelineStageDuration.WithLabelValues(stage).Observe(ms)
}

func UpdateCandidatesSampled(n int) {
	candidatesSampled.Set(float64(n))
}

func RecordRecommendFallback() {
	recommendFallbacks.Inc()
}

func RecordErrorByComponent(component, errType string) {
	errorsByComponent.WithLabelValues(component, errType).Inc()
}

func UpdateSystemMemoryUsage(bytes uint64) {
	systemMemoryBytes.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(n int) {
	systemGoroutines.Set(float64(n))
}
