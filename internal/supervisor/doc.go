// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

/*
Package supervisor provides process supervision for Toolrank using suture v4.

# Overview

Long-running services are organized into two layers:

	RootSupervisor ("toolrank")
	├── DataSupervisor ("data-layer")
	│   └── WarmupService (if warmup.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure decay and backoff.
Each layer counts failures independently, so a warmup that keeps failing
against an unavailable store does not restart the HTTP server.

# Logging

Supervisor events (service panics, restarts, backoff) are logged through
sutureslog. Pass logging.NewSlogLogger() so they reach the zerolog output
with the rest of the application.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewWarmupService(popularity, warmupCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)
*/
package supervisor
