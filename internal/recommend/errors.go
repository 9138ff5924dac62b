// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package recommend

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable matches any failed or timed out store read.
	ErrDataUnavailable = errors.New("behavior data unavailable")

	// ErrTotalFailure is returned when no recommender could produce a list.
	ErrTotalFailure = errors.New("recommendations unavailable")
)

// DataUnavailableError records which store operation failed.
type DataUnavailableError struct {
	Op  string
	Err error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrDataUnavailable, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *DataUnavailableError) Unwrap() []error {
	return []error{ErrDataUnavailable, e.Err}
}

// Unavailable wraps err as a DataUnavailableError for op.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DataUnavailableError{Op: op, Err: err}
}

// IsDataUnavailable reports whether err is a recoverable store failure.
func IsDataUnavailable(err error) bool {
	return errors.Is(err, ErrDataUnavailable)
}

// IsCanceled reports whether err came from a cancelled or expired request context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
