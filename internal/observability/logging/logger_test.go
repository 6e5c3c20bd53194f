package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}
}

func TestNewLogger_DebugLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger := NewLogger()
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level must be enabled when LOG_LEVEL=debug")
	}
}

func TestNewLogger_WarnLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	logger := NewTextLogger()
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info level must be disabled when LOG_LEVEL=warn")
	}
	if !logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("warn level must be enabled when LOG_LEVEL=warn")
	}
}

func TestWithRunID(t *testing.T) {
	logger := WithRunID(NewLogger())
	if logger == nil {
		t.Fatal("WithRunID() returned nil")
	}
}

func TestFromContext(t *testing.T) {
	base := NewLogger()
	ctx := WithLogger(context.Background(), base)
	if got := FromContext(ctx); got != base {
		t.Error("FromContext must return the stored logger")
	}
	if got := FromContext(context.Background()); got == nil {
		t.Error("FromContext must fall back to the default logger")
	}
}
