package fetcher

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Enabled {
		t.Error("Enabled = false, want true")
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.MaxBodySize != 10*1024*1024 {
		t.Errorf("MaxBodySize = %d, want 10MB", cfg.MaxBodySize)
	}
	if cfg.MaxRedirects != 5 {
		t.Errorf("MaxRedirects = %d, want 5", cfg.MaxRedirects)
	}
	if !cfg.DenyPrivateIPs {
		t.Error("DenyPrivateIPs = false, want true")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ContentFetchConfig)
		wantErr bool
	}{
		{"valid defaults", func(c *ContentFetchConfig) {}, false},
		{"zero timeout", func(c *ContentFetchConfig) { c.Timeout = 0 }, true},
		{"negative timeout", func(c *ContentFetchConfig) { c.Timeout = -time.Second }, true},
		{"body size too small", func(c *ContentFetchConfig) { c.MaxBodySize = 100 }, true},
		{"body size too large", func(c *ContentFetchConfig) { c.MaxBodySize = 200 * 1024 * 1024 }, true},
		{"negative redirects", func(c *ContentFetchConfig) { c.MaxRedirects = -1 }, true},
		{"too many redirects", func(c *ContentFetchConfig) { c.MaxRedirects = 11 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CONTENT_FETCH_ENABLED", "false")
	t.Setenv("CONTENT_FETCH_TIMEOUT", "5s")
	t.Setenv("CONTENT_FETCH_MAX_REDIRECTS", "3")

	cfg, warnings := LoadConfigFromEnv()
	if len(warnings) != 0 {
		t.Fatalf("LoadConfigFromEnv() warnings = %v, want none", warnings)
	}

	if cfg.Enabled {
		t.Error("Enabled = true, want false")
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.MaxRedirects != 3 {
		t.Errorf("MaxRedirects = %d, want 3", cfg.MaxRedirects)
	}
	// Unset variables keep defaults.
	if cfg.MaxBodySize != 10*1024*1024 {
		t.Errorf("MaxBodySize = %d, want default 10MB", cfg.MaxBodySize)
	}
}

func TestLoadConfigFromEnv_InvalidValueFallsBack(t *testing.T) {
	t.Setenv("CONTENT_FETCH_TIMEOUT", "not-a-duration")
	t.Setenv("CONTENT_FETCH_MAX_REDIRECTS", "99")

	cfg, warnings := LoadConfigFromEnv()

	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want default 10s after invalid value", cfg.Timeout)
	}
	if cfg.MaxRedirects != 5 {
		t.Errorf("MaxRedirects = %d, want default 5 after out-of-range value", cfg.MaxRedirects)
	}
	if len(warnings) != 2 {
		t.Errorf("warnings = %v, want one per rejected variable", warnings)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after fallback = %v, want nil", err)
	}
}
