// Package config reads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"scicalc/internal/evaluator"
	"scicalc/internal/history"
)

const (
	defaultAddr        = ":8080"
	defaultServiceName = "scicalc"
)

type Config struct {
	// HTTPAddr is the listen address of the API server.
	HTTPAddr string
	// ServiceName labels traces, metrics and exported logs.
	ServiceName string
	// ExportTelemetry enables the OTLP trace, metric and log exporters.
	ExportTelemetry bool
	LogLevel        zapcore.Level
	HistoryLimit    int
	// AngleMode applies to requests that do not name one.
	AngleMode evaluator.AngleMode
}

// LoadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func LoadDotEnv(filenames ...string) error {
	err := godotenv.Load(filenames...)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// Load builds a Config from the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable source.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		HTTPAddr:    get("HTTP_ADDR", defaultAddr),
		ServiceName: get("OTEL_SERVICE_NAME", defaultServiceName),
	}

	var err error
	if cfg.ExportTelemetry, err = strconv.ParseBool(get("OTEL_EXPORT", "true")); err != nil {
		return Config{}, fmt.Errorf("OTEL_EXPORT: %w", err)
	}
	if cfg.LogLevel, err = zapcore.ParseLevel(get("LOG_LEVEL", "info")); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.HistoryLimit, err = strconv.Atoi(get("HISTORY_LIMIT", strconv.Itoa(history.DefaultLimit))); err != nil {
		return Config{}, fmt.Errorf("HISTORY_LIMIT: %w", err)
	}
	if cfg.HistoryLimit <= 0 {
		return Config{}, fmt.Errorf("HISTORY_LIMIT: must be positive, got %d", cfg.HistoryLimit)
	}
	if cfg.AngleMode, err = evaluator.ParseAngleMode(get("ANGLE_MODE", "rad")); err != nil {
		return Config{}, fmt.Errorf("ANGLE_MODE: %w", err)
	}

	return cfg, nil
}
