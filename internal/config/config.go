// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package config

import (
	"time"

	"github.com/tomtom215/toolrank/internal/recommend"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. .env file: Optional, loaded into the process environment
//  4. Environment Variables: Override any setting
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(&cfg.Database)
//	engine := recommend.NewEngine(cfg.Recommend.EngineConfig(), logger)
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Warmup    WarmupConfig    `koanf:"warmup"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the bind address.
	// Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port.
	// Default: 8080
	Port int `koanf:"port"`

	// Timeout bounds request reads and writes.
	// Default: 30s
	Timeout time.Duration `koanf:"timeout"`

	// Environment is development or production. Production turns on
	// asynchronous logging unless LOG_ASYNC says otherwise.
	// Default: development
	Environment string `koanf:"environment"`
}

// DatabaseConfig holds behavior store settings.
type DatabaseConfig struct {
	// Driver selects the SQL backend: duckdb or mysql.
	// Default: duckdb
	Driver string `koanf:"driver"`

	// Path is the DuckDB database file. ":memory:" opens an in-memory database.
	// Default: /data/toolrank.duckdb
	Path string `koanf:"path"`

	// MaxMemory is the DuckDB memory limit (e.g. 1GB).
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB worker thread count. Zero keeps the DuckDB default.
	Threads int `koanf:"threads"`

	// DSN is the MySQL data source name, used when Driver is mysql.
	DSN string `koanf:"dsn"`

	// MaxOpenConns bounds the connection pool.
	// Default: 8
	MaxOpenConns int `koanf:"max_open_conns"`

	// QueryTimeout bounds each query issued by the store.
	// Default: 2s
	QueryTimeout time.Duration `koanf:"query_timeout"`

	// SeedFile is an optional YAML fixture with items and events loaded at startup.
	SeedFile string `koanf:"seed_file"`

	// SeedMockData loads the built-in demo catalog when the store is empty.
	SeedMockData bool `koanf:"seed_mock_data"`
}

// BreakerConfig holds circuit breaker settings for store reads.
type BreakerConfig struct {
	// Enabled installs the result cache. Off by default.
	Enabled bool `koanf:"enabled"`

	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval is the cyclic period of the closed state for clearing counts.
	Interval time.Duration `koanf:"interval"`

	// Timeout is how long the breaker stays open before going half-open.
	Timeout time.Duration `koanf:"timeout"`

	// MinRequests is the request count required before the failure ratio trips the breaker.
	MinRequests uint32 `koanf:"min_requests"`

	// FailureRatio trips the breaker once reached.
	FailureRatio float64 `koanf:"failure_ratio"`
}

// RecommendConfig holds recommendation engine tuning.
type RecommendConfig struct {
	DefaultLimit   int           `koanf:"default_limit"`
	MaxLimit       int           `koanf:"max_limit"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	StoreTimeout   time.Duration `koanf:"store_timeout"`

	// Content-based channel.
	ContentHistory      int     `koanf:"content_history"`
	TopCategories       int     `koanf:"top_categories"`
	CandidateMultiplier int     `koanf:"candidate_multiplier"`
	CategoryWeight      float64 `koanf:"category_weight"`
	TagWeight           float64 `koanf:"tag_weight"`
	PopularityBlend     float64 `koanf:"popularity_blend"`

	// Collaborative channel.
	CollaborativeHistory int `koanf:"collaborative_history"`
	NeighborEvents       int `koanf:"neighbor_events"`

	// Popularity channel.
	PopularityHistory int           `koanf:"popularity_history"`
	SnapshotMaxAge    time.Duration `koanf:"snapshot_max_age"`

	// Hybrid merge.
	CollaborativeShare float64 `koanf:"collaborative_share"`
	ContentShare       float64 `koanf:"content_share"`
	PopularShare       float64 `koanf:"popular_share"`
	RepeatWeight       float64 `koanf:"repeat_weight"`
}

// CacheConfig holds recommendation result cache settings.
type CacheConfig struct {
	// Enabled installs the result cache. Off by default.
	Enabled bool `koanf:"enabled"`

	// Backend is memory, redis or badger.
	// Default: memory
	Backend string `koanf:"backend"`

	TTL time.Duration `koanf:"ttl"`

	// MaxEntries bounds the memory backend.
	MaxEntries int `koanf:"max_entries"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// BadgerPath is the badger directory. Empty runs badger in memory.
	BadgerPath string `koanf:"badger_path"`
}

// WarmupConfig controls the popularity snapshot refresher.
type WarmupConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
	Limit    int           `koanf:"limit"`
}

// SecurityConfig holds HTTP edge protection settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings for zerolog.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`

	// Async writes logs through a non-blocking ring buffer that drops
	// messages under pressure instead of blocking requests.
	Async bool `koanf:"async"`
}

// EngineConfig maps the flat recommend section onto the engine's configuration.
func (c *Config) EngineConfig() *recommend.Config {
	r := c.Recommend
	return &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultLimit:   r.DefaultLimit,
			MaxLimit:       r.MaxLimit,
			RequestTimeout: r.RequestTimeout,
			StoreTimeout:   r.StoreTimeout,
		},
		Content: recommend.ContentConfig{
			History:             r.ContentHistory,
			TopCategories:       r.TopCategories,
			CandidateMultiplier: r.CandidateMultiplier,
			CategoryWeight:      r.CategoryWeight,
			TagWeight:           r.TagWeight,
			PopularityBlend:     r.PopularityBlend,
		},
		Collaborative: recommend.CollaborativeConfig{
			History:        r.CollaborativeHistory,
			NeighborEvents: r.NeighborEvents,
		},
		Popularity: recommend.PopularityConfig{
			History:        r.PopularityHistory,
			SnapshotMaxAge: r.SnapshotMaxAge,
		},
		Hybrid: recommend.HybridConfig{
			CollaborativeShare: r.CollaborativeShare,
			ContentShare:       r.ContentShare,
			PopularShare:       r.PopularShare,
			RepeatWeight:       r.RepeatWeight,
		},
		Cache: recommend.CacheConfig{
			Enabled: c.Cache.Enabled,
			TTL:     c.Cache.TTL,
		},
	}
}

// Load reads configuration with the following precedence (highest to lowest):
//  1. Environment variables (including a .env file in the working directory)
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Built-in defaults
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
