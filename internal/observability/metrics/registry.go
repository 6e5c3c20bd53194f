// Package metrics provides centralized Prometheus metrics for the pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collection metrics track the scrape-dedupe-label pipeline.
var (
	// ArticlesKeptTotal counts articles persisted to the raw store per label
	ArticlesKeptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_kept_total",
			Help: "Total number of articles persisted to the raw store",
		},
		[]string{"label", "source"},
	)

	// ArticlesDuplicatedTotal counts articles dropped by the deduplicator
	ArticlesDuplicatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_duplicated_total",
			Help: "Total number of articles dropped because their URL was already seen",
		},
	)

	// ArticlesDiscardedTotal counts malformed or too-short articles by reason
	ArticlesDiscardedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_discarded_total",
			Help: "Total number of articles discarded before labeling",
		},
		[]string{"reason"},
	)

	// FeedCrawlDuration measures time to poll one feed source
	FeedCrawlDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_crawl_duration_seconds",
			Help:    "Time taken to poll a feed source",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"source"},
	)

	// FeedCrawlErrors counts errors during feed polling
	FeedCrawlErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_crawl_errors_total",
			Help: "Total number of feed crawl errors",
		},
		[]string{"source", "error_type"},
	)

	// ContentFetchAttemptsTotal counts article page fetches by outcome
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of article content fetch attempts",
		},
		[]string{"status"},
	)

	// ContentFetchDuration measures article page fetch latency
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time taken to fetch and extract one article page",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	// ContentFetchSize measures extracted article text size in characters
	ContentFetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_size_chars",
			Help:    "Extracted article text size in characters",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10),
		},
	)

	// DatasetRowsTotal tracks the current size of the processed dataset
	DatasetRowsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_rows_total",
			Help: "Number of rows in the processed dataset",
		},
	)
)
