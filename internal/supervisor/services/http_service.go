// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPServer is the part of *http.Server the service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

const defaultShutdownTimeout = 10 * time.Second

// HTTPServerService supervises the API listener. Cancelling the Serve
// context drains in-flight requests for up to the shutdown timeout.
//
//	srv := &http.Server{Addr: ":8080", Handler: router.SetupChi()}
//	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second, logger))
type HTTPServerService struct {
	server HTTPServer
	drain  time.Duration
	logger zerolog.Logger
}

// NewHTTPServerService wraps server. A non-positive shutdownTimeout
// means 10s.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration, logger zerolog.Logger) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	svc := &HTTPServerService{server: server, drain: shutdownTimeout}
	svc.logger = logger.With().Str("service", svc.String()).Logger()
	return svc
}

// Serve returns nil if the server closes by itself, ctx.Err() after a
// clean drain, and a wrapped error if listening or draining fails.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		err := h.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
	}()

	ev := h.logger.Info()
	if srv, ok := h.server.(*http.Server); ok {
		ev = ev.Str("addr", srv.Addr)
	}
	ev.Msg("HTTP server listening")

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// ctx is already done, so the drain gets its own deadline.
	drainCtx, cancel := context.WithTimeout(context.Background(), h.drain)
	defer cancel()

	h.logger.Info().Dur("timeout", h.drain).Msg("HTTP server draining")
	if err := h.server.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	<-done
	return ctx.Err()
}

// String names the service in supervisor events.
func (h *HTTPServerService) String() string {
	return "http-server"
}
