package metrics

import "time"

// RecordArticleKept records an article persisted to the raw store.
func RecordArticleKept(label, source string) {
	ArticlesKeptTotal.WithLabelValues(label, source).Inc()
}

// RecordArticleDuplicated records an article dropped by the deduplicator.
func RecordArticleDuplicated() {
	ArticlesDuplicatedTotal.Inc()
}

// RecordArticleDiscarded records an article discarded before labeling.
// Reason should be "malformed" or "too_short".
func RecordArticleDiscarded(reason string) {
	ArticlesDiscardedTotal.WithLabelValues(reason).Inc()
}

// RecordFeedCrawl records the duration of one feed poll.
func RecordFeedCrawl(source string, duration time.Duration) {
	FeedCrawlDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordFeedCrawlError records an error during feed polling.
func RecordFeedCrawlError(source, errorType string) {
	FeedCrawlErrors.WithLabelValues(source, errorType).Inc()
}

// RecordContentFetchSuccess records a successful article page fetch.
func RecordContentFetchSuccess(duration time.Duration, size int) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
	ContentFetchSize.Observe(float64(size))
}

// RecordContentFetchFailed records a failed article page fetch.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordContentFetchSkipped records a fetch skipped because feed content
// was already sufficient.
func RecordContentFetchSkipped() {
	ContentFetchAttemptsTotal.WithLabelValues("skipped").Inc()
}

// UpdateDatasetRows updates the processed dataset size gauge.
func UpdateDatasetRows(count int) {
	DatasetRowsTotal.Set(float64(count))
}
