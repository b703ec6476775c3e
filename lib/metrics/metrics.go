// Package metrics exposes Prometheus collectors for the recommendation flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmrobo_recommend_requests_total",
			Help: "Total number of recommendation requests received",
		},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "filmrobo_recommend_duration_seconds",
			Help:    "End-to-end duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ClassifierFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmrobo_classifier_fallbacks_total",
			Help: "Total number of prompts classified by the keyword fallback instead of the language model",
		},
	)

	CatalogErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmrobo_catalog_errors_total",
			Help: "Total number of failed movie catalog queries",
		},
	)

	EnrichmentFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filmrobo_enrichment_failures_total",
			Help: "Total number of streaming-provider lookups that failed and were absorbed",
		},
	)
)
