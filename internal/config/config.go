// Churnscope - Customer Churn Prediction and Retention Analytics
// Copyright 2026 Churnscope Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/churnscope/churnscope

package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Model   ModelConfig   `koanf:"model"`
	History HistoryConfig `koanf:"history"`
	Batch   BatchConfig   `koanf:"batch"`
	API     APIConfig     `koanf:"api"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host"`

	// Port is the listen port.
	Port int `koanf:"port"`

	// ReadTimeout bounds request reads.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout bounds response writes.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// ModelConfig locates the trained model artifacts.
type ModelConfig struct {
	// ArtifactPath is the JSON artifact bundle produced by training.
	ArtifactPath string `koanf:"artifact_path"`

	// Required fails startup when the bundle is missing. When false the
	// service starts unloaded and scoring endpoints return 503.
	Required bool `koanf:"required"`
}

// HistoryConfig configures the prediction history store.
type HistoryConfig struct {
	// Enabled toggles persistence of scored predictions.
	Enabled bool `koanf:"enabled"`

	// Path is the BadgerDB directory.
	Path string `koanf:"path"`

	// ListLimit caps history listings per request.
	ListLimit int `koanf:"list_limit"`
}

// BatchConfig tunes batch scoring.
type BatchConfig struct {
	// Workers is the scoring pool size.
	Workers int `koanf:"workers"`

	// MaxRecords caps records per batch request.
	MaxRecords int `koanf:"max_records"`

	// RatePerSecond caps batch scoring throughput, 0 for unlimited.
	RatePerSecond float64 `koanf:"rate_per_second"`

	// RateBurst is the limiter burst size.
	RateBurst int `koanf:"rate_burst"`
}

// APIConfig holds HTTP API policy settings.
type APIConfig struct {
	// RateLimitReqs is the per-client request allowance per window,
	// 0 disables limiting.
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limit window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is "json" or "console".
	Format string `koanf:"format"`

	// Caller adds file:line to log events.
	Caller bool `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8450,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Model: ModelConfig{
			ArtifactPath: "/data/model/artifacts.json",
			Required:     false,
		},
		History: HistoryConfig{
			Enabled:   true,
			Path:      "/data/history",
			ListLimit: 100,
		},
		Batch: BatchConfig{
			Workers:       4,
			MaxRecords:    10000,
			RatePerSecond: 0,
			RateBurst:     1,
		},
		API: APIConfig{
			RateLimitReqs:   100,
			RateLimitWindow: 1 * time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
