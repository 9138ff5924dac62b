// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

// Package logging provides the service's zerolog-based structured logging.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Async: true})
//	defer logging.Close()
//
//	logging.Info().Str("addr", addr).Msg("server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("channel failed")
//
// # Non-blocking Output
//
// With Async set, output goes through zerolog's diode ring buffer. A slow
// or stuck log sink then costs dropped lines, reported through
// Config.OnDropped, instead of stalled requests.
//
// # Configuration
//
// Environment variables (read by the config package):
//
//	LOG_LEVEL   trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  json, console (default: json)
//	LOG_CALLER  include caller file:line (default: false)
//	LOG_ASYNC   non-blocking diode writer (default: false)
//
// # Context
//
// The HTTP layer stores the request and user ids in the request context;
// Ctx and CtxWith add them to every line logged for that request.
//
// # slog Bridge
//
// NewSlogLogger returns an *slog.Logger that writes through zerolog. The
// supervisor tree uses it for its event hook.
package logging
