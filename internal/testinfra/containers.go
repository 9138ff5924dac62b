// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

//go:build integration

package testinfra

import (
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
)

// stopTimeout is how long a container gets to exit before it is killed.
const stopTimeout = 10 * time.Second

// SkipIfNoDocker skips t when TOOLRANK_SKIP_CONTAINERS is set or the
// container provider does not answer a health check.
func SkipIfNoDocker(t *testing.T) {
	t.Helper()

	if os.Getenv("TOOLRANK_SKIP_CONTAINERS") != "" {
		t.Skip("TOOLRANK_SKIP_CONTAINERS is set")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
}

// CleanupContainer terminates container when t finishes. A nil container
// is ignored, so it may be called before checking the start error.
func CleanupContainer(t *testing.T, container testcontainers.Container) {
	t.Helper()
	testcontainers.CleanupContainer(t, container, testcontainers.StopTimeout(stopTimeout))
}
