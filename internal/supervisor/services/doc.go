// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

// Package services provides suture.Service wrappers for Toolrank's
// long-running components: the HTTP server and the popularity warmup loop.
package services
