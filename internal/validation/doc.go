// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator is shared by the HTTP handlers (query
// parameters) and the seed fixture loader (items and behavior events).
// Field names in messages use the query, yaml or json tag so they match
// what the client or fixture author wrote.
//
// # Custom Tags
//
//   - behavior_action: one of view, like, bookmark, comment, share
//   - notblank_id: non-empty with no surrounding whitespace
//
// # Example
//
//	type recommendationsQuery struct {
//	    UserID string `query:"userID" validate:"required,max=128,printascii"`
//	    Limit  int    `query:"limit" validate:"min=1"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// All failures use the VALIDATION_FAILED error code.
package validation
