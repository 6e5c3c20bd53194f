// Command collector runs the news collection pipeline: poll the configured
// RSS feeds, resolve and dedup article URLs, extract full text, and append
// labeled articles to the dataset. It runs once with -once, or as a
// cron-scheduled worker by default.
package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	appconfig "newslab/internal/config"
	"newslab/internal/domain/entity"
	"newslab/internal/infra/dataset"
	"newslab/internal/infra/fetcher"
	"newslab/internal/infra/scraper"
	workerPkg "newslab/internal/infra/worker"
	"newslab/internal/observability/logging"
	obsmetrics "newslab/internal/observability/metrics"
	"newslab/internal/usecase/collect"
)

func main() {
	var (
		feedsPath = flag.String("feeds", "", "path to feeds.yaml (empty uses the built-in Google News catalog)")
		dataDir   = flag.String("data", "data", "directory for raw.jsonl and processed.csv")
		once      = flag.Bool("once", false, "run one collection pass and exit instead of scheduling")
	)
	flag.Parse()

	// Optional .env for local runs; absence is fine.
	_ = godotenv.Load()

	logger := logging.WithRunID(logging.NewLogger())
	slog.SetDefault(logger)

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}

	sources, err := loadSources(logger, *feedsPath)
	if err != nil {
		logger.Error("failed to load feed sources", slog.Any("error", err))
		os.Exit(1)
	}

	svc, store := setupCollectService(logger, *dataDir, workerConfig)

	if *once {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := runCollectJob(ctx, logger, svc, store, sources, *dataDir, workerConfig, workerMetrics); err != nil {
			os.Exit(1)
		}
		return
	}

	runScheduled(logger, svc, store, sources, *dataDir, workerConfig, workerMetrics)
}

// loadSources reads feeds.yaml when given, otherwise the built-in catalog.
func loadSources(logger *slog.Logger, feedsPath string) ([]*entity.Source, error) {
	if feedsPath == "" {
		sources := appconfig.DefaultSources()
		logger.Info("using built-in feed catalog", slog.Int("sources", len(sources)))
		return sources, nil
	}

	sources, err := appconfig.LoadFeeds(feedsPath)
	if err != nil {
		return nil, err
	}
	logger.Info("feed catalog loaded",
		slog.String("path", feedsPath),
		slog.Int("sources", len(sources)))
	return sources, nil
}

// setupCollectService wires the collection service: RSS fetcher, canonical
// resolver, readability content fetcher, and the raw JSONL store.
func setupCollectService(logger *slog.Logger, dataDir string, workerConfig *workerPkg.WorkerConfig) (*collect.Service, *dataset.JSONLStore) {
	store := dataset.NewJSONLStore(filepath.Join(dataDir, "raw.jsonl"))

	feedFetcher := scraper.NewRSSFetcher(createHTTPClient())

	contentFetchConfig, warnings := fetcher.LoadConfigFromEnv()
	for _, warning := range warnings {
		logger.Warn("content fetch configuration fallback applied",
			slog.String("warning", warning))
	}

	var contentFetcher collect.ContentFetcher
	if contentFetchConfig.Enabled {
		contentFetcher = fetcher.NewReadabilityFetcher(contentFetchConfig)
		logger.Info("content fetching enabled",
			slog.Duration("timeout", contentFetchConfig.Timeout),
			slog.Int64("max_body_size", contentFetchConfig.MaxBodySize))
	} else {
		logger.Info("content fetching disabled, using feed summaries")
	}

	resolver := fetcher.NewCanonicalResolver(contentFetchConfig)

	collectConfig := collect.DefaultConfig()
	collectConfig.TargetPerLabel = workerConfig.TargetPerLabel

	svc := collect.NewService(feedFetcher, resolver, contentFetcher, store, collectConfig)
	return svc, store
}

// runCollectJob executes one collection pass and rebuilds processed.csv.
func runCollectJob(ctx context.Context, logger *slog.Logger, svc *collect.Service, store *dataset.JSONLStore, sources []*entity.Source, dataDir string, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) error {
	startTime := time.Now()

	runCtx, cancel := context.WithTimeout(logging.WithLogger(ctx, logger), cfg.CollectTimeout)
	defer cancel()

	seen, err := store.LoadSeen(runCtx)
	if err != nil {
		logger.Error("failed to load seen article ids", slog.Any("error", err))
		metrics.RecordRun("failure")
		return err
	}
	logger.Info("collection starting",
		slog.Int("sources", len(sources)),
		slog.Int("known_articles", seen.Len()))

	stats, err := svc.Run(runCtx, sources, seen)
	if err != nil {
		logger.Error("collection failed", slog.Any("error", err))
		metrics.RecordRun("failure")
		metrics.RecordRunDuration(time.Since(startTime).Seconds())
		return err
	}

	csvPath := filepath.Join(dataDir, "processed.csv")
	rows, err := dataset.RebuildCSV(runCtx, store, csvPath)
	if err != nil {
		logger.Error("failed to rebuild processed csv", slog.Any("error", err))
		metrics.RecordRun("failure")
		metrics.RecordRunDuration(time.Since(startTime).Seconds())
		return err
	}

	metrics.RecordRun("success")
	metrics.RecordRunDuration(time.Since(startTime).Seconds())
	metrics.RecordArticlesKept(stats.Kept)
	metrics.RecordLastSuccess()
	obsmetrics.UpdateDatasetRows(rows)

	attrs := []any{
		slog.Int("sources", stats.Sources),
		slog.Int("feed_items", stats.FeedItems),
		slog.Int("kept", stats.Kept),
		slog.Int("duplicated", stats.Duplicated),
		slog.Int("discarded", stats.Discarded),
		slog.Int("feed_errors", stats.FeedErrors),
		slog.Int("dataset_rows", rows),
		slog.Duration("duration", stats.Duration),
	}
	for _, label := range entity.AllLabels() {
		attrs = append(attrs, slog.Int(fmt.Sprintf("kept_%s", label), stats.PerLabel[label]))
	}
	logger.Info("collection completed", attrs...)
	return nil
}

// runScheduled starts the metrics and health servers and runs collection on
// the configured cron schedule until the process is signalled.
func runScheduled(logger *slog.Logger, svc *collect.Service, store *dataset.JSONLStore, sources []*entity.Source, dataDir string, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	startMetricsServer(ctx, logger, cfg.MetricsPort)

	healthAddr := fmt.Sprintf(":%d", cfg.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC",
			slog.String("timezone", cfg.Timezone),
			slog.Any("error", err))
		loc = time.UTC
	}

	// A tick that fires while the previous run is still collecting is
	// skipped: overlapping runs would dedup against stale seen sets and
	// write duplicate ids into raw.jsonl.
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})),
	)
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		_ = runCollectJob(ctx, logger, svc, store, sources, dataDir, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("collector worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("collector worker shutting down")
	stopCtx := c.Stop()
	<-stopCtx.Done()
}

// cronLogger adapts slog to the cron.Logger interface so skipped ticks show
// up in the worker's structured log.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{slog.Any("error", err)}, keysAndValues...)...)
}

// createHTTPClient builds the shared feed-polling client. TLS 1.2+ only.
func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}
