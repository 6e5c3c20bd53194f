package collect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"newslab/internal/common/dedup"
	"newslab/internal/domain/entity"
	"newslab/internal/observability/logging"
	"newslab/internal/observability/metrics"
	textutil "newslab/internal/utils/text"
)

// FeedFetcher is an interface for fetching RSS/Atom feeds from a URL.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]FeedItem, error)
}

// FeedItem represents a single item from an RSS/Atom feed.
type FeedItem struct {
	Title     string
	URL       string
	Summary   string
	Published string
}

// RawStore persists kept articles. Append errors are I/O failures and abort
// the run; the operator re-runs collection, and dedup makes the re-run safe.
type RawStore interface {
	Append(ctx context.Context, article *entity.Article) error
}

// Config holds the tunables of a collection run.
type Config struct {
	// TargetPerLabel caps how many new articles one run may keep per label.
	// Zero means no cap.
	TargetPerLabel int

	// MinTextLen is the minimum article body length in runes. Shorter
	// articles fall back to "title. summary"; if that is still shorter,
	// the article is discarded.
	MinTextLen int

	// RequestInterval paces article fetches so feed hosts are not hammered.
	RequestInterval time.Duration
}

// DefaultConfig returns the collection defaults.
func DefaultConfig() Config {
	return Config{
		TargetPerLabel:  450,
		MinTextLen:      220,
		RequestInterval: 350 * time.Millisecond,
	}
}

// Stats contains counters for one collection run.
type Stats struct {
	Sources    int
	FeedItems  int
	Kept       int
	Duplicated int
	Discarded  int
	FeedErrors int
	PerLabel   map[entity.Label]int
	Duration   time.Duration
}

// Service runs the sequential collection pipeline:
// poll feed, resolve canonical URL, dedup, extract, label, persist.
type Service struct {
	feeds    FeedFetcher
	resolver URLResolver
	content  ContentFetcher
	store    RawStore
	limiter  *rate.Limiter
	cfg      Config

	// running serializes Run calls. Overlapping runs would each dedup
	// against a stale seen set and append the same URL twice.
	running sync.Mutex
}

// NewService creates a collection Service. resolver and content may be nil to
// disable canonical resolution and full-text extraction respectively; the
// pipeline then works from feed-provided data alone.
func NewService(feeds FeedFetcher, resolver URLResolver, content ContentFetcher, store RawStore, cfg Config) *Service {
	if cfg.MinTextLen <= 0 {
		cfg.MinTextLen = DefaultConfig().MinTextLen
	}
	var limiter *rate.Limiter
	if cfg.RequestInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.RequestInterval), 1)
	}
	return &Service{
		feeds:    feeds,
		resolver: resolver,
		content:  content,
		store:    store,
		limiter:  limiter,
		cfg:      cfg,
	}
}

// Run executes one collection pass over the given sources. The seen set is
// passed in explicitly and mutated as articles are kept; running twice against
// an unchanged feed set therefore keeps zero articles the second time.
//
// Feed-level failures are logged and skipped. Store I/O failures abort the run.
//
// Run is not reentrant: a call made while another is still in progress
// returns ErrRunInProgress without touching the store.
func (s *Service) Run(ctx context.Context, sources []*entity.Source, seen *dedup.Set) (*Stats, error) {
	if !s.running.TryLock() {
		return nil, ErrRunInProgress
	}
	defer s.running.Unlock()

	logger := logging.FromContext(ctx)
	start := time.Now()
	stats := &Stats{PerLabel: make(map[entity.Label]int)}

	for _, src := range sources {
		if !src.Active {
			continue
		}
		if err := src.Validate(); err != nil {
			logger.Warn("skipping invalid source",
				slog.String("source", src.Name),
				slog.Any("error", err))
			continue
		}
		stats.Sources++

		if err := s.pollSource(ctx, src, seen, stats); err != nil {
			return stats, err
		}
	}

	stats.Duration = time.Since(start)
	logger.Info("collection run completed",
		slog.Int("sources", stats.Sources),
		slog.Int("feed_items", stats.FeedItems),
		slog.Int("kept", stats.Kept),
		slog.Int("duplicated", stats.Duplicated),
		slog.Int("discarded", stats.Discarded),
		slog.Int("feed_errors", stats.FeedErrors),
		slog.Duration("duration", stats.Duration),
	)
	return stats, nil
}

// pollSource fetches one feed and processes its items in order. Returns an
// error only for store I/O failures or context cancellation.
func (s *Service) pollSource(ctx context.Context, src *entity.Source, seen *dedup.Set, stats *Stats) error {
	logger := logging.FromContext(ctx)
	sourceStart := time.Now()

	items, err := s.feeds.Fetch(ctx, src.FeedURL)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		logger.Warn("failed to fetch feed",
			slog.String("source", src.Name),
			slog.String("feed_url", src.FeedURL),
			slog.Any("error", err))
		metrics.RecordFeedCrawlError(src.Name, "fetch_failed")
		stats.FeedErrors++
		return nil
	}

	if len(items) == 0 {
		logger.Info("feed is empty",
			slog.String("source", src.Name),
			slog.String("feed_url", src.FeedURL))
		return nil
	}

	kept := 0
	for _, item := range items {
		if s.cfg.TargetPerLabel > 0 && stats.PerLabel[src.Label] >= s.cfg.TargetPerLabel {
			break
		}
		stats.FeedItems++

		ok, err := s.processItem(ctx, src, item, seen, stats)
		if err != nil {
			return err
		}
		if ok {
			kept++
		}
	}

	sourceDuration := time.Since(sourceStart)
	metrics.RecordFeedCrawl(src.Name, sourceDuration)
	logger.Info("source crawl completed",
		slog.String("source", src.Name),
		slog.String("label", string(src.Label)),
		slog.Int("feed_items", len(items)),
		slog.Int("kept", kept),
		slog.Duration("duration", sourceDuration),
	)
	return nil
}

// processItem runs one feed item through resolve, dedup, extract, label, and
// persist. It reports whether the article was kept.
func (s *Service) processItem(ctx context.Context, src *entity.Source, item FeedItem, seen *dedup.Set, stats *Stats) (bool, error) {
	logger := logging.FromContext(ctx)

	if item.URL == "" {
		stats.Discarded++
		metrics.RecordArticleDiscarded("malformed")
		return false, nil
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return false, err
		}
	}

	link := item.URL
	if s.resolver != nil {
		link = s.resolver.Resolve(ctx, link)
	}

	id := entity.StableID(link)
	if seen.Contains(id) {
		stats.Duplicated++
		metrics.RecordArticleDuplicated()
		return false, nil
	}

	title := textutil.Normalize(item.Title)
	summary := textutil.Normalize(item.Summary)

	body := s.extractText(ctx, link)
	if textutil.CountRunes(body) < s.cfg.MinTextLen {
		body = textutil.Normalize(fmt.Sprintf("%s. %s", title, summary))
	}
	if textutil.CountRunes(body) < s.cfg.MinTextLen {
		stats.Discarded++
		metrics.RecordArticleDiscarded("too_short")
		logger.Debug("article below minimum length, discarding",
			slog.String("url", link),
			slog.Int("length", textutil.CountRunes(body)))
		return false, nil
	}

	article := &entity.Article{
		ID:          id,
		Label:       src.Label,
		Source:      hostOf(link),
		URL:         link,
		PublishedAt: textutil.Normalize(item.Published),
		Title:       title,
		Summary:     summary,
		Text:        body,
		ScrapedAt:   time.Now().UTC(),
	}
	if err := article.Validate(); err != nil {
		stats.Discarded++
		metrics.RecordArticleDiscarded("malformed")
		logger.Debug("article failed validation, discarding",
			slog.String("url", link),
			slog.Any("error", err))
		return false, nil
	}

	if err := s.store.Append(ctx, article); err != nil {
		return false, fmt.Errorf("%w: %v", ErrStoreAppend, err)
	}

	seen.Add(id)
	stats.Kept++
	stats.PerLabel[src.Label]++
	metrics.RecordArticleKept(string(src.Label), src.Name)
	return true, nil
}

// extractText fetches the full article body. It never returns an error: on
// any failure the caller falls back to feed-provided content.
func (s *Service) extractText(ctx context.Context, link string) string {
	if s.content == nil {
		metrics.RecordContentFetchSkipped()
		return ""
	}

	fetchStart := time.Now()
	body, err := s.content.FetchContent(ctx, link)
	fetchDuration := time.Since(fetchStart)

	if err != nil {
		metrics.RecordContentFetchFailed(fetchDuration)
		logging.FromContext(ctx).Debug("content fetch failed, using feed fallback",
			slog.String("url", link),
			slog.Any("error", err),
			slog.Duration("fetch_duration", fetchDuration))
		return ""
	}

	body = textutil.Normalize(body)
	metrics.RecordContentFetchSuccess(fetchDuration, textutil.CountRunes(body))
	return body
}

// hostOf extracts the host part of a URL for the article's source column.
func hostOf(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return link
	}
	return u.Host
}
