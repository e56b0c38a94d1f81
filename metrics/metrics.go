// Package metrics defines Prometheus metrics for the storefront.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "modeva"

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

	RateLimitRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_rejections_total",
		Help:      "Requests rejected by the rate limiter.",
	})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 when the last health check passed.",
	})
)

// Storefront metrics.
var (
	// SearchesTotal counts product searches by outcome: ok, empty,
	// unsatisfiable or error.
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Product searches by outcome.",
	}, []string{"outcome"})

	HistoryEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "history_events_total",
		Help:      "Browsing history mutations and reads by kind.",
	}, []string{"kind"})

	ProductViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_views_total",
		Help:      "Product detail page views.",
	})

	ProductCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_cache_total",
		Help:      "Product detail cache lookups by result.",
	}, []string{"result"})
)

// Order metrics.
var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Orders placed.",
	})

	OrderStatusTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_status_transitions_total",
		Help:      "Order status changes by target status.",
	}, []string{"status"})
)

// Job metrics.
var (
	JobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_runs_total",
		Help:      "Scheduled job runs by job and result.",
	}, []string{"job", "result"})

	JobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "job_duration_seconds",
		Help:      "Duration of scheduled job runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"job"})
)
