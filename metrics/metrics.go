// Package metrics declares the storefront's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CartOperations counts cart commands by action and result
	// (ok, noop, unknown_product, persist_error).
	CartOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "cart",
		Name:      "operations_total",
		Help:      "Cart commands by action and result.",
	}, []string{"action", "result"})

	// CheckoutSubmissions counts checkout attempts by outcome.
	CheckoutSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "checkout",
		Name:      "submissions_total",
		Help:      "Checkout submissions by outcome.",
	}, []string{"outcome"})

	// BackendRequests times calls to the restaurant backend.
	BackendRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Backend call latency by endpoint and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "code"})

	// HTTPRequests times requests served by the local storefront server.
	HTTPRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Local server latency by route and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
)
