// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package api

import "errors"

// errStoreNotConfigured is reported by health probes when no store was wired.
var errStoreNotConfigured = errors.New("behavior store is not configured")
