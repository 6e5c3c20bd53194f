// Package worker holds the scheduled-collector runtime pieces: its
// configuration, Prometheus metrics, and the health endpoint.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"newslab/internal/pkg/config"
)

// WorkerConfig configures the scheduled collector process. Loading is
// fail-open: an invalid environment value logs a warning and falls back to
// the default instead of stopping the worker.
type WorkerConfig struct {
	// CronSchedule is the five-field cron expression for collection runs.
	CronSchedule string

	// Timezone is the IANA timezone the schedule is interpreted in.
	Timezone string

	// CollectTimeout bounds one full collection run.
	CollectTimeout time.Duration

	// TargetPerLabel caps how many new articles one run keeps per label.
	TargetPerLabel int

	// HealthPort serves the liveness/readiness endpoints.
	HealthPort int

	// MetricsPort serves the Prometheus /metrics endpoint.
	MetricsPort int
}

// DefaultConfig returns the worker defaults: a daily 5:30 UTC run with a
// 45-minute budget.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:   "30 5 * * *",
		Timezone:       "UTC",
		CollectTimeout: 45 * time.Minute,
		TargetPerLabel: 450,
		HealthPort:     9091,
		MetricsPort:    9090,
	}
}

// Validate checks all fields, collecting every failure.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.CollectTimeout); err != nil {
		errs = append(errs, fmt.Errorf("collect timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.TargetPerLabel, 1, 100000); err != nil {
		errs = append(errs, fmt.Errorf("target per label: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := config.ValidateIntRange(c.MetricsPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration from environment
// variables. Every field validates independently and falls back to its
// default on failure, so this never returns an error.
//
// Environment variables:
//   - CRON_SCHEDULE: cron expression (default: "30 5 * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - COLLECT_TIMEOUT: duration, e.g. "45m" (default: 45 minutes)
//   - TARGET_PER_LABEL: integer 1-100000 (default: 450)
//   - WORKER_HEALTH_PORT: integer 1024-65535 (default: 9091)
//   - WORKER_METRICS_PORT: integer 1024-65535 (default: 9090)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	applyFallback := func(field string, result config.ConfigLoadResult) {
		if !result.FallbackApplied {
			return
		}
		fallbackApplied = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field, "default")
		for _, warning := range result.Warnings {
			logger.Warn("configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	result := config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	applyFallback("cron_schedule", result)

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	applyFallback("timezone", result)

	result = config.LoadEnvDuration("COLLECT_TIMEOUT", cfg.CollectTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, time.Minute, 4*time.Hour)
	})
	cfg.CollectTimeout = result.Value.(time.Duration)
	applyFallback("collect_timeout", result)

	result = config.LoadEnvInt("TARGET_PER_LABEL", cfg.TargetPerLabel, func(v int) error {
		return config.ValidateIntRange(v, 1, 100000)
	})
	cfg.TargetPerLabel = result.Value.(int)
	applyFallback("target_per_label", result)

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	applyFallback("health_port", result)

	result = config.LoadEnvInt("WORKER_METRICS_PORT", cfg.MetricsPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.MetricsPort = result.Value.(int)
	applyFallback("metrics_port", result)

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
