// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	userIDKey
	loggerKey
)

// ctxFields are copied from the context onto every line logged via Ctx.
var ctxFields = []struct {
	key  ctxKey
	name string
}{
	{requestIDKey, "request_id"},
	{userIDKey, "user_id"},
}

// GenerateRequestID returns a random UUID for requests that arrive
// without an X-Request-ID header.
func GenerateRequestID() string {
	return uuid.NewString()
}

func stringValue(ctx context.Context, key ctxKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// ContextWithRequestID tags ctx with the request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns "" when ctx carries no request id.
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// ContextWithUserID tags ctx with the user recommendations are for.
func ContextWithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func UserIDFromContext(ctx context.Context) string {
	return stringValue(ctx, userIDKey)
}

// ContextWithLogger makes logger the base for Ctx and CtxWith on ctx.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext returns the logger stored by ContextWithLogger, or
// the global logger.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return l
	}
	return Logger()
}

// Ctx is shorthand for CtxWith(ctx).Logger().
//
//	logging.Ctx(ctx).Info().Msg("serving recommendations")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := CtxWith(ctx).Logger()
	return &l
}

// CtxWith starts a child of the context logger carrying the request and
// user ids that are present.
//
//	l := logging.CtxWith(ctx).Str("type", kind).Logger()
func CtxWith(ctx context.Context) zerolog.Context {
	zc := LoggerFromContext(ctx).With()
	for _, f := range ctxFields {
		if v := stringValue(ctx, f.key); v != "" {
			zc = zc.Str(f.name, v)
		}
	}
	return zc
}

// WithComponent returns a child of the global logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
