// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

/*
Package config provides centralized configuration management for Toolrank.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. A .env file in the working directory
is loaded into the environment first; variables already set take precedence.

# Configuration File

The file is looked up via CONFIG_PATH, then config.yaml, config.yml,
/etc/toolrank/config.yaml and /etc/toolrank/config.yml. Keys follow the
koanf struct tags:

	server:
	  port: 8080
	database:
	  driver: duckdb
	  path: /data/toolrank.duckdb
	recommend:
	  repeat_weight: 0.5
	cache:
	  backend: redis
	  redis_addr: redis:6379

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT, ENVIRONMENT

Database:
  - DB_DRIVER: duckdb (default) or mysql
  - DUCKDB_PATH, DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - MYSQL_DSN: required when DB_DRIVER=mysql
  - DB_MAX_OPEN_CONNS, DB_QUERY_TIMEOUT
  - SEED_FILE, SEED_MOCK_DATA

Circuit breaker:
  - BREAKER_ENABLED, BREAKER_MAX_REQUESTS, BREAKER_INTERVAL,
    BREAKER_TIMEOUT, BREAKER_MIN_REQUESTS, BREAKER_FAILURE_RATIO

Recommendation engine:
  - RECOMMEND_DEFAULT_LIMIT, RECOMMEND_MAX_LIMIT
  - RECOMMEND_REQUEST_TIMEOUT, RECOMMEND_STORE_TIMEOUT
  - RECOMMEND_CONTENT_HISTORY, RECOMMEND_TOP_CATEGORIES,
    RECOMMEND_CANDIDATE_MULTIPLIER, RECOMMEND_CATEGORY_WEIGHT,
    RECOMMEND_TAG_WEIGHT, RECOMMEND_POPULARITY_BLEND
  - RECOMMEND_COLLABORATIVE_HISTORY, RECOMMEND_NEIGHBOR_EVENTS
  - RECOMMEND_POPULARITY_HISTORY, RECOMMEND_SNAPSHOT_MAX_AGE
  - RECOMMEND_COLLABORATIVE_SHARE, RECOMMEND_CONTENT_SHARE,
    RECOMMEND_POPULAR_SHARE, RECOMMEND_REPEAT_WEIGHT

Result cache:
  - CACHE_ENABLED (default false), CACHE_BACKEND (memory, redis, badger), CACHE_TTL,
    CACHE_MAX_ENTRIES
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB
  - BADGER_PATH: empty runs badger in memory

Popularity warmup:
  - WARMUP_ENABLED, WARMUP_INTERVAL, WARMUP_LIMIT

Security:
  - CORS_ORIGINS: comma-separated list
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
  - LOG_ASYNC: defaults to true when ENVIRONMENT=production

# Validation

Load returns an error naming the offending environment variable when a
value is out of range, for example an unknown DB_DRIVER or a MySQL driver
without MYSQL_DSN. Recommendation settings are checked by the engine's
own Config.Validate so both entry points agree.
*/
package config
