// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

// Package testinfra starts the external backends Toolrank can run against
// (MySQL for behavior storage, Redis for the result cache) in throwaway
// containers via testcontainers-go.
//
//	func TestMySQLStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    mysql, err := testinfra.NewMySQLContainer(context.Background())
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    testinfra.CleanupContainer(t, mysql)
//
//	    db, err := database.New(&config.DatabaseConfig{Driver: "mysql", DSN: mysql.DSN})
//	    ...
//	}
//
// Tests are skipped when no container runtime answers, or when
// TOOLRANK_SKIP_CONTAINERS is set. Every file other than this one needs
// the integration build tag:
//
//	go test -tags integration ./internal/...
package testinfra
