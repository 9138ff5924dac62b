// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestSlog(buf *bytes.Buffer, level zerolog.Level) *slog.Logger {
	return slog.New(NewSlogHandler(zerolog.New(buf).Level(level)))
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.New(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	tests := []struct {
		level slog.Level
		want  bool
	}{
		{slog.LevelDebug, false},
		{slog.LevelInfo, false},
		{slog.LevelWarn, true},
		{slog.LevelError, true},
	}
	for _, tt := range tests {
		if got := h.Enabled(context.Background(), tt.level); got != tt.want {
			t.Errorf("Enabled(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		log    func(l *slog.Logger)
		verify func(t *testing.T, output string)
	}{
		{
			name: "levels map to zerolog levels",
			log:  func(l *slog.Logger) { l.Warn("service restarting") },
			verify: func(t *testing.T, output string) {
				if !strings.Contains(output, `"level":"warn"`) || !strings.Contains(output, "service restarting") {
					t.Errorf("output = %s", output)
				}
			},
		},
		{
			name: "typed attributes",
			log: func(l *slog.Logger) {
				l.Info("tick",
					slog.String("service", "warmup"),
					slog.Int("attempt", 3),
					slog.Bool("ok", true),
					slog.Duration("backoff", time.Second),
					slog.Any("err", errors.New("boom")),
				)
			},
			verify: func(t *testing.T, output string) {
				for _, want := range []string{`"service":"warmup"`, `"attempt":3`, `"ok":true`, `"backoff":`, `"err":"boom"`} {
					if !strings.Contains(output, want) {
						t.Errorf("output missing %s: %s", want, output)
					}
				}
			},
		},
		{
			name: "groups prefix keys",
			log: func(l *slog.Logger) {
				l.WithGroup("supervisor").Info("event", slog.Group("service", slog.String("name", "http")))
			},
			verify: func(t *testing.T, output string) {
				if !strings.Contains(output, `"supervisor.service.name":"http"`) {
					t.Errorf("output = %s", output)
				}
			},
		},
		{
			name: "bound attributes appear on every record",
			log: func(l *slog.Logger) {
				bound := l.With("tree", "toolrank")
				bound.Info("one")
				bound.Info("two")
			},
			verify: func(t *testing.T, output string) {
				if got := strings.Count(output, `"tree":"toolrank"`); got != 2 {
					t.Errorf("bound attribute appeared %d times, want 2: %s", got, output)
				}
			},
		},
		{
			name: "records below the logger level are dropped",
			log:  func(l *slog.Logger) { l.Debug("noise") },
			verify: func(t *testing.T, output string) {
				if output != "" {
					t.Errorf("output = %s, want nothing", output)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.log(newTestSlog(&buf, zerolog.InfoLevel))
			tt.verify(t, buf.String())
		})
	}
}

func TestSlogHandler_WithGroupEmpty(t *testing.T) {
	t.Parallel()

	h := NewSlogHandler(zerolog.Nop())
	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		want  zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelInfo + 2, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.level); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
