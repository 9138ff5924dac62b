// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

/*
Package main is the entry point for the Toolrank server application.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("toolrank")
	├── DataSupervisor ("data-layer")
	│   └── Warmup service (popularity snapshot, optional)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output, asynchronous in production
 3. Database: DuckDB or MySQL behavior store, optionally seeded
 4. Store chain: SQL store, circuit breaker, per-call timeout
 5. Engine: popularity, content, collaborative and hybrid recommenders
 6. Result cache: memory, Redis or Badger backend
 7. HTTP Server: Chi router with middleware stack
 8. Supervisor Tree: Suture v4 process supervision

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > .env file > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=8080
	ENVIRONMENT=development       # production enables async logging
	LOG_LEVEL=info                # trace, debug, info, warn, error
	LOG_FORMAT=json               # json or console

	# Behavior store
	DB_DRIVER=duckdb              # duckdb or mysql
	DUCKDB_PATH=/data/toolrank.duckdb
	MYSQL_DSN=user:pass@tcp(host:3306)/toolrank
	SEED_FILE=                    # YAML fixture loaded at startup
	SEED_MOCK_DATA=false          # demo catalog when the store is empty

	# Result cache
	CACHE_ENABLED=false           # opt in; cached lists lag new behavior by CACHE_TTL
	CACHE_BACKEND=memory          # memory, redis or badger
	REDIS_ADDR=localhost:6379

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:
  - Stops accepting new connections
  - Waits for in-flight requests to complete (10s timeout)
  - Closes the result cache and database connections
  - Flushes the async log writer

# Example Usage

Demo catalog in memory:

	export DUCKDB_PATH=:memory:
	export SEED_MOCK_DATA=true
	export LOG_FORMAT=console
	./toolrank

	curl 'localhost:8080/api/v1/recommendations/user-1?type=hybrid&limit=5'
*/
package main
