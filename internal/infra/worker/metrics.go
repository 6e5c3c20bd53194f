package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"newslab/internal/pkg/config"
)

// WorkerMetrics exposes Prometheus metrics for the scheduled collector:
// the embedded config metrics plus per-run counters and timings.
type WorkerMetrics struct {
	*config.ConfigMetrics

	// CollectRunsTotal counts collection runs by status (success/failure).
	CollectRunsTotal *prometheus.CounterVec

	// CollectRunDurationSeconds measures full collection run duration.
	CollectRunDurationSeconds prometheus.Histogram

	// CollectArticlesKeptTotal counts articles kept across all runs.
	CollectArticlesKeptTotal prometheus.Counter

	// CollectLastSuccessTimestamp is the Unix time of the last good run.
	CollectLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates and registers the worker metric set. promauto
// registers into the default registry, so call this once per process.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		CollectRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_collect_runs_total",
			Help: "Total number of collection runs by status (success/failure)",
		}, []string{"status"}),

		CollectRunDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_collect_run_duration_seconds",
			Help:    "Duration of full collection runs in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),

		CollectArticlesKeptTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_collect_articles_kept_total",
			Help: "Total number of articles kept across all collection runs",
		}),

		CollectLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_collect_last_success_timestamp",
			Help: "Unix timestamp of the last successful collection run",
		}),
	}
}

// RecordRun counts one collection run with the given status.
func (m *WorkerMetrics) RecordRun(status string) {
	m.CollectRunsTotal.WithLabelValues(status).Inc()
}

// RecordRunDuration observes a full run duration in seconds.
func (m *WorkerMetrics) RecordRunDuration(seconds float64) {
	m.CollectRunDurationSeconds.Observe(seconds)
}

// RecordArticlesKept adds the number of articles kept by one run.
func (m *WorkerMetrics) RecordArticlesKept(count int) {
	m.CollectArticlesKeptTotal.Add(float64(count))
}

// RecordLastSuccess marks now as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.CollectLastSuccessTimestamp.SetToCurrentTime()
}
