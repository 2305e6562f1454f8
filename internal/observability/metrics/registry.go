// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track application-specific operations
var (
	// MediumSyncRunsTotal counts Medium feed synchronization runs by outcome
	MediumSyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medium_sync_runs_total",
			Help: "Total number of Medium feed synchronization runs",
		},
		[]string{"status"}, // status: success, failure
	)

	// MediumSyncDuration measures time for one synchronization run
	MediumSyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "medium_sync_duration_seconds",
			Help:    "Time taken for one Medium feed synchronization run",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	// MediumArticlesUpsertedTotal counts articles written during sync
	MediumArticlesUpsertedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "medium_articles_upserted_total",
			Help: "Total number of Medium articles written during sync",
		},
		[]string{"operation"}, // operation: created, updated
	)

	// AssetUploadsTotal counts stored asset uploads by class
	AssetUploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_uploads_total",
			Help: "Total number of stored asset uploads",
		},
		[]string{"class"}, // class: resumes, templates
	)

	// AssetStreamsTotal counts served asset streams by class and disposition
	AssetStreamsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_streams_total",
			Help: "Total number of asset streams served",
		},
		[]string{"class", "disposition"}, // disposition: inline, attachment
	)

	// ResumeUnlocksTotal counts resume gate unlock attempts by outcome
	ResumeUnlocksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_unlocks_total",
			Help: "Total number of resume gate unlock attempts",
		},
		[]string{"outcome"}, // outcome: success, failure, unconfigured, rate_limited
	)
)
