package fetcher

import (
	"fmt"
	"time"

	"newslab/internal/pkg/config"
)

// ContentFetchConfig holds the configuration for article content fetching.
//
// Security settings:
//   - DenyPrivateIPs: blocks URLs resolving to private addresses (SSRF)
//   - MaxBodySize: rejects oversized responses
//   - MaxRedirects: bounds redirect chains
//   - Timeout: bounds each HTTP request
type ContentFetchConfig struct {
	// Enabled controls whether full-text fetching runs at all. When false
	// the pipeline works from feed titles and summaries alone.
	Enabled bool

	// Timeout is the maximum duration for a single HTTP request.
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// Enforced while reading, not from the Content-Length header.
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is re-validated.
	MaxRedirects int

	// DenyPrivateIPs rejects URLs that resolve to private, loopback, or
	// link-local addresses. Should stay true outside of tests.
	DenyPrivateIPs bool
}

// DefaultConfig returns the production defaults for content fetching.
func DefaultConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Enabled:        true,
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024, // 10MB
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// Validate checks that the configuration values are sane.
func (c *ContentFetchConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}

// LoadConfigFromEnv loads configuration from environment variables. Each
// field validates independently and falls back to its default when the
// value is unset or rejected; warnings describing rejected values are
// returned for the caller to log.
//
// Environment variables:
//   - CONTENT_FETCH_ENABLED: "true" or "false" (default: true)
//   - CONTENT_FETCH_TIMEOUT: duration string, e.g. "10s" (default: 10s)
//   - CONTENT_FETCH_MAX_BODY_SIZE: integer in bytes (default: 10485760)
//   - CONTENT_FETCH_MAX_REDIRECTS: integer (default: 5)
//   - CONTENT_FETCH_DENY_PRIVATE_IPS: "true" or "false" (default: true)
func LoadConfigFromEnv() (ContentFetchConfig, []string) {
	cfg := DefaultConfig()
	var warnings []string

	result := config.LoadEnvBool("CONTENT_FETCH_ENABLED", cfg.Enabled)
	cfg.Enabled = result.Value.(bool)
	warnings = append(warnings, result.Warnings...)

	result = config.LoadEnvDuration("CONTENT_FETCH_TIMEOUT", cfg.Timeout, config.ValidatePositiveDuration)
	cfg.Timeout = result.Value.(time.Duration)
	warnings = append(warnings, result.Warnings...)

	result = config.LoadEnvInt("CONTENT_FETCH_MAX_BODY_SIZE", int(cfg.MaxBodySize), func(v int) error {
		return config.ValidateIntRange(v, 1024, 100*1024*1024)
	})
	cfg.MaxBodySize = int64(result.Value.(int))
	warnings = append(warnings, result.Warnings...)

	result = config.LoadEnvInt("CONTENT_FETCH_MAX_REDIRECTS", cfg.MaxRedirects, func(v int) error {
		return config.ValidateIntRange(v, 0, 10)
	})
	cfg.MaxRedirects = result.Value.(int)
	warnings = append(warnings, result.Warnings...)

	result = config.LoadEnvBool("CONTENT_FETCH_DENY_PRIVATE_IPS", cfg.DenyPrivateIPs)
	cfg.DenyPrivateIPs = result.Value.(bool)
	warnings = append(warnings, result.Warnings...)

	return cfg, warnings
}
