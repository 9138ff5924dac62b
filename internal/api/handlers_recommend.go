// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/toolrank/internal/logging"
	"github.com/tomtom215/toolrank/internal/recommend"
	"github.com/tomtom215/toolrank/internal/validation"
)

// RecommendationData is the data payload of a recommendation response.
type RecommendationData struct {
	UserID   string                     `json:"user_id"`
	Type     recommend.Kind             `json:"type"`
	Items    []recommend.Score          `json:"items"`
	Outcomes []recommend.ChannelOutcome `json:"outcomes"`
}

// RecommendHandler serves recommendation requests from the engine.
type RecommendHandler struct {
	engine  *recommend.Engine
	timeout time.Duration
}

// NewRecommendHandler creates a handler that bounds each request by the
// engine's configured request timeout.
func NewRecommendHandler(engine *recommend.Engine) *RecommendHandler {
	timeout := engine.Config().Limits.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RecommendHandler{engine: engine, timeout: timeout}
}

// GetRecommendations handles GET /api/v1/recommendations/{userID}
//
// @Summary Get recommendations for a user
// @Description Returns a ranked list of AI tools for the user. The hybrid type merges collaborative, content-based and popularity channels; each channel degrades to popularity when its data is unavailable.
// @Tags Recommendations
// @Produce json
// @Param userID path string true "User ID"
// @Param type query string false "Recommender type" Enums(hybrid, collaborative, content, popular)
// @Param limit query int false "Maximum number of items (default 10, clamped to 100)" minimum(1)
// @Success 200 {object} APIResponse{data=RecommendationData} "Recommendations generated"
// @Failure 400 {object} APIResponse "Invalid user ID or limit"
// @Failure 503 {object} APIResponse "Recommendations unavailable"
// @Router /recommendations/{userID} [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	params, err := parseRecommendationRequest(r)
	if err != nil {
		writeParamError(rw, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp, err := h.engine.Recommend(ctx, params.ToRequest(logging.RequestIDFromContext(r.Context())))
	if err != nil {
		h.writeEngineError(r.Context(), rw, err)
		return
	}

	rw.SuccessWithMeta(RecommendationData{
		UserID:   resp.UserID,
		Type:     resp.Kind,
		Items:    resp.Items,
		Outcomes: resp.Outcomes,
	}, &APIMeta{CacheHit: resp.Metadata.CacheHit})
}

// writeEngineError maps engine errors onto API errors. Total failure is a
// 503 so clients render an empty state instead of an error page.
func (h *RecommendHandler) writeEngineError(ctx context.Context, rw *ResponseWriter, err error) {
	logger := logging.Ctx(ctx)

	switch {
	case errors.Is(err, recommend.ErrTotalFailure):
		logger.Warn().Err(err).Msg("Recommendations unavailable")
		rw.Error(http.StatusServiceUnavailable, ErrCodeRecommendationsUnavailable, "recommendations unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn().Err(err).Dur("timeout", h.timeout).Msg("Recommendation request timed out")
		rw.Error(http.StatusServiceUnavailable, ErrCodeRecommendationsUnavailable, "recommendations unavailable")
	case errors.Is(err, context.Canceled):
		// The client went away; the status is only seen by access logs.
		logger.Debug().Msg("Recommendation request canceled")
		rw.Error(499, ErrCodeRequestCanceled, "request canceled")
	default:
		logger.Error().Err(err).Msg("Unexpected recommendation error")
		rw.InternalError("failed to generate recommendations")
	}
}

// writeParamError writes a 400 VALIDATION_FAILED for parameter errors.
func writeParamError(rw *ResponseWriter, err error) {
	var verr *validation.RequestValidationError
	if errors.As(err, &verr) {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	var perr *paramError
	if errors.As(err, &perr) {
		rw.ValidationError(perr.message, perr.details())
		return
	}

	rw.ValidationError(err.Error(), nil)
}
