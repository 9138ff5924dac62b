// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/toolrank/internal/logging"
)

// APIResponse is the envelope every endpoint answers with. Exactly one of
// Data and Error is set.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError is the error body. Code is one of the ErrCode constants.
type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIMeta is attached to every envelope.
type APIMeta struct {
	RequestID  string    `json:"request_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMs int64     `json:"duration_ms,omitempty"`
	CacheHit   bool      `json:"cache_hit,omitempty"`
}

// Machine-readable error codes.
const (
	ErrCodeNotFound                   = "NOT_FOUND"
	ErrCodeMethodNotAllowed           = "METHOD_NOT_ALLOWED"
	ErrCodeTooManyRequests            = "TOO_MANY_REQUESTS"
	ErrCodeInternalError              = "INTERNAL_ERROR"
	ErrCodeValidationFailed           = "VALIDATION_FAILED"
	ErrCodeRecommendationsUnavailable = "RECOMMENDATIONS_UNAVAILABLE"
	ErrCodeRequestCanceled            = "REQUEST_CANCELED"
)

// ResponseWriter writes APIResponse envelopes for one request. The request
// id and elapsed time come from the request it was created for.
type ResponseWriter struct {
	w       http.ResponseWriter
	r       *http.Request
	started time.Time
}

// NewResponseWriter starts the request clock used for meta.duration_ms.
func NewResponseWriter(w http.ResponseWriter, r *http.Request) *ResponseWriter {
	return &ResponseWriter{w: w, r: r, started: time.Now()}
}

// Success writes 200 with data.
func (rw *ResponseWriter) Success(data interface{}) {
	rw.WriteWithStatus(http.StatusOK, data, nil)
}

// SuccessWithMeta writes 200 with data. Only the caller-owned fields of
// meta (CacheHit) are kept; the rest are filled in here.
func (rw *ResponseWriter) SuccessWithMeta(data interface{}, meta *APIMeta) {
	rw.WriteWithStatus(http.StatusOK, data, meta)
}

// WriteWithStatus writes data under an arbitrary status. Success is false
// for 4xx and 5xx, which lets readiness report 503 with a body.
func (rw *ResponseWriter) WriteWithStatus(status int, data interface{}, meta *APIMeta) {
	rw.send(status, APIResponse{
		Success: status < http.StatusBadRequest,
		Data:    data,
		Meta:    rw.stamp(meta),
	})
}

// Error writes a failure envelope without details.
func (rw *ResponseWriter) Error(status int, code, message string) {
	rw.fail(status, code, message, nil)
}

// NotFound writes 404 NOT_FOUND.
func (rw *ResponseWriter) NotFound(message string) {
	rw.fail(http.StatusNotFound, ErrCodeNotFound, message, nil)
}

// TooManyRequests writes 429 TOO_MANY_REQUESTS.
func (rw *ResponseWriter) TooManyRequests(message string) {
	rw.fail(http.StatusTooManyRequests, ErrCodeTooManyRequests, message, nil)
}

// InternalError writes 500 INTERNAL_ERROR.
func (rw *ResponseWriter) InternalError(message string) {
	rw.fail(http.StatusInternalServerError, ErrCodeInternalError, message, nil)
}

// ValidationError writes 400 VALIDATION_FAILED with per-field details.
func (rw *ResponseWriter) ValidationError(message string, details interface{}) {
	rw.fail(http.StatusBadRequest, ErrCodeValidationFailed, message, details)
}

func (rw *ResponseWriter) fail(status int, code, message string, details interface{}) {
	meta := rw.stamp(nil)
	rw.send(status, APIResponse{
		Error: &APIError{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: meta.RequestID,
		},
		Meta: meta,
	})
}

func (rw *ResponseWriter) stamp(meta *APIMeta) *APIMeta {
	if meta == nil {
		meta = &APIMeta{}
	}
	meta.RequestID = logging.RequestIDFromContext(rw.r.Context())
	meta.Timestamp = time.Now().UTC()
	meta.DurationMs = time.Since(rw.started).Milliseconds()
	return meta
}

func (rw *ResponseWriter) send(status int, body APIResponse) {
	rw.w.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.w.WriteHeader(status)

	if err := json.NewEncoder(rw.w).Encode(body); err != nil {
		logging.Ctx(rw.r.Context()).Warn().Err(err).Int("status", status).Msg("Response encoding failed")
	}
}

// WriteSuccess writes a 200 envelope with data.
func WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}) {
	NewResponseWriter(w, r).Success(data)
}

// WriteError writes a failure envelope.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	NewResponseWriter(w, r).Error(status, code, message)
}
