// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
)

// isolateEnv moves the test into an empty directory and unsets every
// variable the loader reads. Original values are restored on cleanup.
func isolateEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	keys := []string{ConfigPathEnvVar}
	for k := range envMappings {
		keys = append(keys, strings.ToUpper(k))
	}
	for _, k := range keys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s: %v", k, err)
		}
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// TestDefaultConfig verifies that defaultConfig() returns the documented defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Database.Driver != "duckdb" {
		t.Errorf("Database.Driver = %q, want duckdb", cfg.Database.Driver)
	}
	if cfg.Database.Path != "/data/toolrank.duckdb" {
		t.Errorf("Database.Path = %q, want /data/toolrank.duckdb", cfg.Database.Path)
	}
	if cfg.Database.QueryTimeout != 2*time.Second {
		t.Errorf("Database.QueryTimeout = %v, want 2s", cfg.Database.QueryTimeout)
	}
	if !cfg.Breaker.Enabled || cfg.Breaker.FailureRatio != 0.6 {
		t.Errorf("Breaker = %+v, want enabled with failure ratio 0.6", cfg.Breaker)
	}

	r := cfg.Recommend
	if r.DefaultLimit != 10 || r.MaxLimit != 100 {
		t.Errorf("limits = %d/%d, want 10/100", r.DefaultLimit, r.MaxLimit)
	}
	if r.CollaborativeShare != 0.4 || r.ContentShare != 0.4 || r.PopularShare != 0.2 {
		t.Errorf("shares = %v/%v/%v, want 0.4/0.4/0.2", r.CollaborativeShare, r.ContentShare, r.PopularShare)
	}
	if r.RepeatWeight != 0.5 {
		t.Errorf("RepeatWeight = %v, want 0.5", r.RepeatWeight)
	}
	if r.NeighborEvents != 1000 {
		t.Errorf("NeighborEvents = %d, want 1000", r.NeighborEvents)
	}

	if cfg.Cache.Enabled || cfg.Cache.Backend != "memory" || cfg.Cache.TTL != time.Minute {
		t.Errorf("Cache = %+v, want disabled memory backend with 1m TTL", cfg.Cache)
	}
	if !cfg.Warmup.Enabled || cfg.Warmup.Interval != 5*time.Minute {
		t.Errorf("Warmup = %+v, want enabled every 5m", cfg.Warmup)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" || cfg.Logging.Async {
		t.Errorf("Logging = %+v, want info/json/sync", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"HTTP_PORT", "server.port"},
		{"ENVIRONMENT", "server.environment"},
		{"DB_DRIVER", "database.driver"},
		{"DUCKDB_PATH", "database.path"},
		{"MYSQL_DSN", "database.dsn"},
		{"SEED_FILE", "database.seed_file"},
		{"BREAKER_FAILURE_RATIO", "breaker.failure_ratio"},
		{"RECOMMEND_REPEAT_WEIGHT", "recommend.repeat_weight"},
		{"RECOMMEND_NEIGHBOR_EVENTS", "recommend.neighbor_events"},
		{"CACHE_BACKEND", "cache.backend"},
		{"REDIS_ADDR", "cache.redis_addr"},
		{"BADGER_PATH", "cache.badger_path"},
		{"WARMUP_INTERVAL", "warmup.interval"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_ASYNC", "logging.async"},
		{"log_level", "logging.level"},

		// Unknown (should return empty)
		{"RANDOM_VAR", ""},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	dir := isolateEnv(t)

	if got := findConfigFile(); got != "" {
		t.Errorf("findConfigFile() = %q, want empty string", got)
	}

	writeFile(t, filepath.Join(dir, "config.yaml"), "server:\n  port: 9000\n")
	if got := findConfigFile(); got != "config.yaml" {
		t.Errorf("findConfigFile() = %q, want config.yaml", got)
	}

	custom := filepath.Join(dir, "custom.yaml")
	writeFile(t, custom, "server:\n  port: 9001\n")
	t.Setenv(ConfigPathEnvVar, custom)
	if got := findConfigFile(); got != custom {
		t.Errorf("findConfigFile() = %q, want %q", got, custom)
	}

	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	if got := findConfigFile(); got != "config.yaml" {
		t.Errorf("findConfigFile() with missing CONFIG_PATH = %q, want fallback config.yaml", got)
	}
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolateEnv(t)

	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOMMEND_REPEAT_WEIGHT", "0.25")
	t.Setenv("RECOMMEND_STORE_TIMEOUT", "750ms")
	t.Setenv("CACHE_BACKEND", "badger")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.RepeatWeight != 0.25 {
		t.Errorf("RepeatWeight = %v, want 0.25", cfg.Recommend.RepeatWeight)
	}
	if cfg.Recommend.StoreTimeout != 750*time.Millisecond {
		t.Errorf("StoreTimeout = %v, want 750ms", cfg.Recommend.StoreTimeout)
	}
	if cfg.Cache.Backend != "badger" {
		t.Errorf("Cache.Backend = %q, want badger", cfg.Cache.Backend)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}

	// Defaults still apply for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Recommend.ContentShare != 0.4 {
		t.Errorf("ContentShare = %v, want 0.4 (default)", cfg.Recommend.ContentShare)
	}
}

// TestLoadWithKoanfConfigFile tests loading configuration from a YAML file
func TestLoadWithKoanfConfigFile(t *testing.T) {
	dir := isolateEnv(t)

	path := filepath.Join(dir, "toolrank.yaml")
	writeFile(t, path, `
server:
  port: 7000
database:
  driver: mysql
  dsn: "toolrank:secret@tcp(db:3306)/toolrank"
recommend:
  popular_share: 0.3
  snapshot_max_age: 30m
cache:
  backend: redis
  redis_addr: "redis:6379"
security:
  cors_origins:
    - https://ui.example
`)
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "mysql" || cfg.Database.DSN == "" {
		t.Errorf("Database = %+v, want mysql with DSN", cfg.Database)
	}
	if cfg.Recommend.PopularShare != 0.3 {
		t.Errorf("PopularShare = %v, want 0.3", cfg.Recommend.PopularShare)
	}
	if cfg.Recommend.SnapshotMaxAge != 30*time.Minute {
		t.Errorf("SnapshotMaxAge = %v, want 30m", cfg.Recommend.SnapshotMaxAge)
	}
	if cfg.Cache.RedisAddr != "redis:6379" {
		t.Errorf("RedisAddr = %q, want redis:6379", cfg.Cache.RedisAddr)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://ui.example"}) {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

// TestLoadWithKoanfEnvOverridesFile verifies ENV > File precedence
func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	dir := isolateEnv(t)

	writeFile(t, filepath.Join(dir, "config.yaml"), "server:\n  port: 7000\nlogging:\n  level: warn\n")
	t.Setenv("HTTP_PORT", "7100")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7100 {
		t.Errorf("Server.Port = %d, want env value 7100", cfg.Server.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want file value warn", cfg.Logging.Level)
	}
}

// TestLoadWithKoanfDotEnv verifies .env values apply but never override the real environment
func TestLoadWithKoanfDotEnv(t *testing.T) {
	dir := isolateEnv(t)

	writeFile(t, filepath.Join(dir, ".env"), "WARMUP_LIMIT=42\nHTTP_PORT=7200\n")
	t.Setenv("HTTP_PORT", "7300")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Warmup.Limit != 42 {
		t.Errorf("Warmup.Limit = %d, want 42 from .env", cfg.Warmup.Limit)
	}
	if cfg.Server.Port != 7300 {
		t.Errorf("Server.Port = %d, want 7300 from environment", cfg.Server.Port)
	}
}

// TestLoadWithKoanfProductionAsyncLogging verifies production turns on async logging by default
func TestLoadWithKoanfProductionAsyncLogging(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantAsync bool
	}{
		{"development default", map[string]string{}, false},
		{"production default", map[string]string{"ENVIRONMENT": "production"}, true},
		{"production explicit off", map[string]string{"ENVIRONMENT": "production", "LOG_ASYNC": "false"}, false},
		{"development explicit on", map[string]string{"LOG_ASYNC": "true"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadWithKoanf()
			if err != nil {
				t.Fatalf("LoadWithKoanf() error = %v", err)
			}
			if cfg.Logging.Async != tt.wantAsync {
				t.Errorf("Logging.Async = %v, want %v", cfg.Logging.Async, tt.wantAsync)
			}
		})
	}
}

// TestLoadWithKoanfValidation verifies invalid values are rejected with the env var name
func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad port", map[string]string{"HTTP_PORT": "70000"}, "HTTP_PORT"},
		{"unknown driver", map[string]string{"DB_DRIVER": "sqlite"}, "DB_DRIVER"},
		{"mysql without dsn", map[string]string{"DB_DRIVER": "mysql"}, "MYSQL_DSN"},
		{"unknown cache backend", map[string]string{"CACHE_BACKEND": "memcached"}, "CACHE_BACKEND"},
		{"share out of range", map[string]string{"RECOMMEND_CONTENT_SHARE": "1.5"}, "content_share"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"wildcard cors in production", map[string]string{"ENVIRONMENT": "production", "CORS_ORIGINS": "*"}, "CORS_ORIGINS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatalf("LoadWithKoanf() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestProcessSliceFields(t *testing.T) {
	t.Parallel()

	k := koanf.New(".")
	if err := k.Set("security.cors_origins", " a , ,b "); err != nil {
		t.Fatal(err)
	}
	if err := processSliceFields(k); err != nil {
		t.Fatalf("processSliceFields() error = %v", err)
	}
	if got := k.Strings("security.cors_origins"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("cors_origins = %v, want [a b]", got)
	}
}
