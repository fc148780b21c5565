// Pick - Streaming Title Recommendation Service
// Copyright 2026 Ashlight (ashlight2510)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ashlight2510/pick

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/ashlight2510/pick/internal/ingest"
	"github.com/ashlight2510/pick/internal/recommend"
	"github.com/ashlight2510/pick/internal/tmdb"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/pick/config.yaml",
	"/etc/pick/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Logging   LoggingConfig    `koanf:"logging"`
	Dataset   DatasetConfig    `koanf:"dataset"`
	API       APIConfig        `koanf:"api"`
	TMDB      tmdb.Config      `koanf:"tmdb"`
	Ingest    ingest.Config    `koanf:"ingest"`
	Recommend recommend.Config `koanf:"recommend"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds the log settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line in logs.
	Caller bool `koanf:"caller"`
}

// DatasetConfig holds the canonical dataset source settings.
type DatasetConfig struct {
	// Path is the primary dataset file.
	Path string `koanf:"path"`

	// FallbackPath is tried when Path does not exist.
	FallbackPath string `koanf:"fallback_path"`

	// ReloadInterval is how often the server re-reads the dataset file.
	// Zero disables periodic reloads.
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// APIConfig holds request handling limits.
type APIConfig struct {
	// RateLimit and RateLimitWindow bound requests per client IP.
	RateLimit       int           `koanf:"rate_limit"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// CORSOrigins lists the allowed cross-origin origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// PageSize and MaxPageSize bound catalog listing pagination.
	PageSize    int `koanf:"page_size"`
	MaxPageSize int `koanf:"max_page_size"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8084,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Dataset: DatasetConfig{
			Path:           "data/titles.json",
			FallbackPath:   "public/data/titles.json",
			ReloadInterval: 30 * time.Minute,
		},
		API: APIConfig{
			RateLimit:       120,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
			PageSize:        20,
			MaxPageSize:     100,
		},
		TMDB:      *tmdb.DefaultConfig(),
		Ingest:    *ingest.DefaultConfig(),
		Recommend: *recommend.DefaultConfig(),
	}
}

// Load builds the configuration from layered sources:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path is required")
	}
	if c.API.RateLimit <= 0 || c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api rate limit must be positive")
	}
	if c.API.PageSize <= 0 || c.API.MaxPageSize < c.API.PageSize {
		return fmt.Errorf("api page sizes invalid: page_size=%d max_page_size=%d",
			c.API.PageSize, c.API.MaxPageSize)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("logging.level %q unknown", c.Logging.Level)
	}
	if err := c.Recommend.Validate(); err != nil {
		return err
	}
	if err := c.Ingest.Validate(); err != nil {
		return err
	}
	// The TMDB key is only needed by the ingestion job; the server runs
	// without one. Full TMDB validation happens in tmdb.NewClient.
	return nil
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unknown variables are dropped so arbitrary environment noise cannot leak
// into the configuration.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - TMDB_API_KEY -> tmdb.api_key
//   - DATASET_PATH -> dataset.path
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_host":             "server.host",
		"http_port":             "server.port",
		"http_read_timeout":     "server.read_timeout",
		"http_write_timeout":    "server.write_timeout",
		"http_shutdown_timeout": "server.shutdown_timeout",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Dataset mappings
		"dataset_path":            "dataset.path",
		"dataset_fallback_path":   "dataset.fallback_path",
		"dataset_reload_interval": "dataset.reload_interval",

		// API mappings
		"api_rate_limit":        "api.rate_limit",
		"api_rate_limit_window": "api.rate_limit_window",
		"api_page_size":         "api.page_size",
		"api_max_page_size":     "api.max_page_size",

		// TMDB mappings
		"tmdb_base_url":         "tmdb.base_url",
		"tmdb_api_key":          "tmdb.api_key",
		"tmdb_language":         "tmdb.language",
		"tmdb_region":           "tmdb.region",
		"tmdb_providers":        "tmdb.providers",
		"tmdb_min_vote_average": "tmdb.min_vote_average",
		"tmdb_min_votes_movie":  "tmdb.min_votes_movie",
		"tmdb_min_votes_series": "tmdb.min_votes_series",
		"tmdb_rate":             "tmdb.requests_per_second",
		"tmdb_burst":            "tmdb.burst",
		"tmdb_timeout":          "tmdb.timeout",

		// Ingest mappings
		"ingest_pages_per_type": "ingest.pages_per_type",
		"ingest_cast_limit":     "ingest.cast_limit",

		// Recommend mappings
		"recommend_sample_size":     "recommend.sample_size",
		"recommend_max_sample_size": "recommend.max_sample_size",
		"recommend_similar_limit":   "recommend.similar_limit",
	}

	if path, ok := envMappings[key]; ok {
		return path
	}
	return "" // drop unknown variables
}
