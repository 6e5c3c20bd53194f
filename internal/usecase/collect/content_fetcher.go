package collect

import (
	"context"
	"errors"
)

// ContentFetcher is an interface for fetching full article content from URLs.
// Implementations extract clean article text from web pages (e.g. with the
// Readability algorithm) and must enforce their own timeouts and size limits.
// The caller falls back to feed-provided content when a fetch fails.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// URLResolver resolves an aggregator entry link (e.g. a news.google.com
// article link) to the canonical article URL. Resolution never fails: on any
// error the implementation returns the input link unchanged.
type URLResolver interface {
	Resolve(ctx context.Context, link string) string
}

// Sentinel errors for content fetching operations. These let callers
// distinguish failure modes when choosing a fallback.
var (
	// ErrInvalidURL indicates the URL format is invalid or uses an unsupported scheme.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a private IP address.
	ErrPrivateIP = errors.New("private IP access denied")

	// ErrTooManyRedirects indicates the redirect chain exceeded the configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrReadabilityFailed indicates content extraction found no readable text.
	ErrReadabilityFailed = errors.New("content extraction failed")
)
