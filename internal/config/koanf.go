// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/toolrank/config.yaml",
	"/etc/toolrank/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvFiles are loaded into the process environment before the env layer.
// Variables already set in the environment win over .env values.
var DotEnvFiles = []string{".env"}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Driver:       "duckdb",
			Path:         "/data/toolrank.duckdb",
			MaxMemory:    "1GB",
			Threads:      0,
			MaxOpenConns: 8,
			QueryTimeout: 2 * time.Second,
		},
		Breaker: BreakerConfig{
			Enabled:      true,
			MaxRequests:  3,
			Interval:     time.Minute,
			Timeout:      30 * time.Second,
			MinRequests:  10,
			FailureRatio: 0.6,
		},
		Recommend: RecommendConfig{
			DefaultLimit:         10,
			MaxLimit:             100,
			RequestTimeout:       5 * time.Second,
			StoreTimeout:         2 * time.Second,
			ContentHistory:       50,
			TopCategories:        3,
			CandidateMultiplier:  2,
			CategoryWeight:       2.0,
			TagWeight:            1.0,
			PopularityBlend:      0.1,
			CollaborativeHistory: 100,
			NeighborEvents:       1000,
			PopularityHistory:    100,
			SnapshotMaxAge:       15 * time.Minute,
			CollaborativeShare:   0.4,
			ContentShare:         0.4,
			PopularShare:         0.2,
			RepeatWeight:         0.5,
		},
		Cache: CacheConfig{
			Enabled:    false,
			Backend:    "memory",
			TTL:        time.Minute,
			MaxEntries: 10000,
			RedisAddr:  "localhost:6379",
		},
		Warmup: WarmupConfig{
			Enabled:  true,
			Interval: 5 * time.Minute,
			Limit:    100,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting (.env values included)
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment. A missing .env file is not an error.
	loadDotEnv()
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	applyEnvironmentDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadDotEnv() {
	for _, path := range DotEnvFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		_ = godotenv.Load(path)
	}
}

// applyEnvironmentDefaults turns on async logging in production unless
// LOG_ASYNC was given explicitly.
func applyEnvironmentDefaults(cfg *Config) {
	if _, set := os.LookupEnv("LOG_ASYNC"); set {
		return
	}
	if cfg.IsProduction() {
		cfg.Logging.Async = true
	}
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
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

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":    "server.host",
	"http_port":    "server.port",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Database
	"db_driver":         "database.driver",
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"mysql_dsn":         "database.dsn",
	"db_max_open_conns": "database.max_open_conns",
	"db_query_timeout":  "database.query_timeout",
	"seed_file":         "database.seed_file",
	"seed_mock_data":    "database.seed_mock_data",

	// Circuit breaker
	"breaker_enabled":       "breaker.enabled",
	"breaker_max_requests":  "breaker.max_requests",
	"breaker_interval":      "breaker.interval",
	"breaker_timeout":       "breaker.timeout",
	"breaker_min_requests":  "breaker.min_requests",
	"breaker_failure_ratio": "breaker.failure_ratio",

	// Recommendation engine
	"recommend_default_limit":         "recommend.default_limit",
	"recommend_max_limit":             "recommend.max_limit",
	"recommend_request_timeout":       "recommend.request_timeout",
	"recommend_store_timeout":         "recommend.store_timeout",
	"recommend_content_history":       "recommend.content_history",
	"recommend_top_categories":        "recommend.top_categories",
	"recommend_candidate_multiplier":  "recommend.candidate_multiplier",
	"recommend_category_weight":       "recommend.category_weight",
	"recommend_tag_weight":            "recommend.tag_weight",
	"recommend_popularity_blend":      "recommend.popularity_blend",
	"recommend_collaborative_history": "recommend.collaborative_history",
	"recommend_neighbor_events":       "recommend.neighbor_events",
	"recommend_popularity_history":    "recommend.popularity_history",
	"recommend_snapshot_max_age":      "recommend.snapshot_max_age",
	"recommend_collaborative_share":   "recommend.collaborative_share",
	"recommend_content_share":         "recommend.content_share",
	"recommend_popular_share":         "recommend.popular_share",
	"recommend_repeat_weight":         "recommend.repeat_weight",

	// Result cache
	"cache_enabled":     "cache.enabled",
	"cache_backend":     "cache.backend",
	"cache_ttl":         "cache.ttl",
	"cache_max_entries": "cache.max_entries",
	"redis_addr":        "cache.redis_addr",
	"redis_password":    "cache.redis_password",
	"redis_db":          "cache.redis_db",
	"badger_path":       "cache.badger_path",

	// Popularity warmup
	"warmup_enabled":  "warmup.enabled",
	"warmup_interval": "warmup.interval",
	"warmup_limit":    "warmup.limit",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
	"log_async":  "logging.async",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DUCKDB_PATH -> database.path
//   - MYSQL_DSN -> database.dsn
//   - RECOMMEND_REPEAT_WEIGHT -> recommend.repeat_weight
//   - DISABLE_RATE_LIMIT -> security.rate_limit_disabled
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables
	// never pollute the config.
	return ""
}
