// Package collect implements the scrape-dedupe-label use case. It orchestrates
// feed polling, canonical URL resolution, duplicate filtering, text extraction,
// and persistence into the raw store.
package collect

import "errors"

// Sentinel errors for collection operations.
var (
	// ErrFeedFetchFailed indicates that polling a feed from the source URL failed.
	ErrFeedFetchFailed = errors.New("failed to fetch feed from source")

	// ErrStoreAppend indicates that persisting a kept article failed.
	// Store I/O errors abort the run; everything else is logged and skipped.
	ErrStoreAppend = errors.New("failed to append article to raw store")

	// ErrRunInProgress indicates that Run was called while a previous run
	// is still executing. Concurrent runs dedup against stale seen sets
	// and would persist the same URL twice.
	ErrRunInProgress = errors.New("collection run already in progress")
)
