// Package metrics exposes Prometheus instrumentation for caches and upstreams
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts fresh cache reads served without an upstream call
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeboard_cache_hits_total",
			Help: "Cache reads served from a fresh entry",
		},
		[]string{"module"},
	)

	// CacheMisses counts reads that triggered an upstream refresh
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeboard_cache_misses_total",
			Help: "Cache reads that required an upstream fetch",
		},
		[]string{"module"},
	)

	// UpstreamRequests counts outbound calls by integration and status class
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeboard_upstream_requests_total",
			Help: "Outbound upstream requests",
		},
		[]string{"integration", "status"},
	)

	// UpstreamRetries counts retry sleeps taken after 409 or 429 responses
	UpstreamRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "homeboard_upstream_retries_total",
			Help: "Retries taken after retryable upstream statuses",
		},
		[]string{"integration", "status"},
	)

	// UpstreamDuration tracks wall time of upstream calls including retries
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "homeboard_upstream_duration_seconds",
			Help:    "Upstream call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"integration"},
	)
)

// ObserveUpstream records one finished upstream exchange
func ObserveUpstream(integration string, status int, started time.Time) {
	UpstreamRequests.WithLabelValues(integration, strconv.Itoa(status)).Inc()
	UpstreamDuration.WithLabelValues(integration).Observe(time.Since(started).Seconds())
}
