// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/toolrank/internal/recommend"
	"github.com/tomtom215/toolrank/internal/validation"
)

// RecommendationRequest holds the validated parameters of
// GET /api/v1/recommendations/{userID}.
type RecommendationRequest struct {
	UserID string `query:"user_id" validate:"required,max=128,printascii"`

	// Type is parsed leniently: absent or unknown values select hybrid.
	Type string `query:"type"`

	// Limit is nil when the parameter is absent.
	Limit *int `query:"limit" validate:"omitempty,gte=1"`
}

// ToRequest converts validated parameters into an engine request.
func (p *RecommendationRequest) ToRequest(requestID string) recommend.Request {
	limit := 0
	if p.Limit != nil {
		limit = *p.Limit
	}
	return recommend.Request{
		UserID:    p.UserID,
		Kind:      recommend.ParseKind(p.Type),
		Limit:     limit,
		RequestID: requestID,
	}
}

// paramError is returned for parameters that fail before struct validation.
type paramError struct {
	field   string
	message string
}

func (e *paramError) Error() string {
	return e.message
}

// details matches the single-field shape of validation.APIError details.
func (e *paramError) details() map[string]interface{} {
	return map[string]interface{}{"field": e.field, "tag": "numeric"}
}

// parseRecommendationRequest reads and validates the path and query
// parameters. The error is either *paramError or *validation.RequestValidationError.
func parseRecommendationRequest(r *http.Request) (*RecommendationRequest, error) {
	req := &RecommendationRequest{
		UserID: chi.URLParam(r, "userID"),
		Type:   r.URL.Query().Get("type"),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &paramError{field: "limit", message: "limit must be a number"}
		}
		req.Limit = &limit
	}

	if verr := validation.ValidateStruct(req); verr != nil {
		return nil, verr
	}
	return req, nil
}
