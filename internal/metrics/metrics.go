// Package metrics defines Prometheus metrics for tcg-analytics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tcga"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "health_up",
		Help:      "Whether the last health check succeeded (1) or failed (0).",
	})
)

// Upstream API metrics.
var (
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total upstream API requests by service, operation and status.",
	}, []string{"service", "operation", "status"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service", "operation"})
)

// Enrichment outcomes.
const (
	EnrichmentEnriched      = "enriched"
	EnrichmentNoName        = "no_name"
	EnrichmentNotConfigured = "not_configured"
	EnrichmentError         = "error"
	EnrichmentEmpty         = "empty"
)

// EnrichmentTotal counts marketplace enrichment attempts by outcome.
var EnrichmentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Name:      "enrichment_total",
	Help:      "Card lookups by marketplace enrichment outcome.",
}, []string{"outcome"})
