// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package database

import (
	"errors"
	"io"

	"github.com/tomtom215/toolrank/internal/logging"
)

// ErrNilDatabase is returned by NewStore when given no database.
var ErrNilDatabase = errors.New("database: nil DB")

// closeWithLog closes c and logs a failure at warn level. what names the
// resource in the log line ("rows", "prepared statement").
func closeWithLog(c io.Closer, what string) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.Warn().Err(err).Str("resource", what).Msg("Close failed")
	}
}

// closeQuietly is for error paths that already return a more useful error.
func closeQuietly(c io.Closer) {
	if c == nil {
		return
	}
	_ = c.Close()
}

func rollbackQuietly(tx interface{ Rollback() error }) {
	_ = tx.Rollback()
}
