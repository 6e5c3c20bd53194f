// Package config provides environment configuration loading with
// validate-or-fallback semantics: an invalid value never stops the process,
// it produces a warning and the default is used instead.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ConfigLoadResult is the outcome of loading one configuration value.
// Value holds the loaded value (or the default if validation failed),
// Warnings carries one message per fallback applied.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString reads a string environment variable, returning the default
// when unset. No validation is applied.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback reads a string environment variable and validates it.
// An unset variable returns the default silently; a value that fails
// validation returns the default with a warning.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return ConfigLoadResult{
				Value: defaultValue,
				Warnings: []string{
					fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%s'", envKey, value, err, defaultValue),
				},
				FallbackApplied: true,
			}
		}
	}

	return ConfigLoadResult{Value: value}
}

// LoadEnvDuration reads a duration environment variable (Go duration syntax,
// e.g. "45m") with the same validate-or-fallback behavior.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return ConfigLoadResult{
			Value: defaultValue,
			Warnings: []string{
				fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%s'", envKey, value, err, defaultValue),
			},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return ConfigLoadResult{
				Value: defaultValue,
				Warnings: []string{
					fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%s'", envKey, value, err, defaultValue),
				},
				FallbackApplied: true,
			}
		}
	}

	return ConfigLoadResult{Value: parsed}
}

// LoadEnvInt reads an integer environment variable with the same
// validate-or-fallback behavior.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return ConfigLoadResult{
			Value: defaultValue,
			Warnings: []string{
				fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%d'", envKey, value, err, defaultValue),
			},
			FallbackApplied: true,
		}
	}

	if validator != nil {
		if err := validator(parsed); err != nil {
			return ConfigLoadResult{
				Value: defaultValue,
				Warnings: []string{
					fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%d'", envKey, value, err, defaultValue),
				},
				FallbackApplied: true,
			}
		}
	}

	return ConfigLoadResult{Value: parsed}
}

// LoadEnvBool reads a boolean environment variable. Accepts the forms
// strconv.ParseBool accepts; anything else falls back with a warning.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return ConfigLoadResult{
			Value: defaultValue,
			Warnings: []string{
				fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%t'", envKey, value, err, defaultValue),
			},
			FallbackApplied: true,
		}
	}

	return ConfigLoadResult{Value: parsed}
}
