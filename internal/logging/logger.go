// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
)

// Config controls the global logger. Zero values fall back to
// DefaultConfig, except Timestamp, Caller and Async.
type Config struct {
	Level     string // trace, debug, info, warn, error, fatal, panic, disabled
	Format    string // json or console
	Caller    bool
	Timestamp bool

	// Async writes through a diode ring buffer of AsyncBufferSize
	// messages. A full buffer drops messages instead of blocking, and
	// OnDropped receives the count missed since its previous call.
	Async           bool
	AsyncBufferSize int
	OnDropped       func(missed int)

	Output io.Writer // os.Stderr when nil
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:           "info",
		Format:          "json",
		Timestamp:       true,
		AsyncBufferSize: 1000,
		Output:          os.Stderr,
	}
}

var (
	mu     sync.RWMutex
	log    zerolog.Logger
	closer io.Closer // non-nil while an async writer is installed
)

//nolint:gochecknoinits // package-level helpers must work before Init
func init() {
	log, closer = build(DefaultConfig())
}

// Init replaces the global logger. Calling it again flushes the previous
// async writer before the new one takes over.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
	}
	log, closer = build(cfg)
}

// Close flushes and stops the async writer. Later messages are written
// synchronously to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	log = log.Output(os.Stderr)
	return err
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Level == "" {
		c.Level = def.Level
	}
	if c.Format == "" {
		c.Format = def.Format
	}
	if c.Output == nil {
		c.Output = def.Output
	}
	if c.AsyncBufferSize <= 0 {
		c.AsyncBufferSize = def.AsyncBufferSize
	}
}

// build sets the process-wide zerolog settings and returns the logger for
// cfg plus the async writer to flush, if any.
func build(cfg Config) (zerolog.Logger, io.Closer) {
	cfg.normalize()

	zerolog.SetGlobalLevel(parseLevel(cfg.Level))
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"

	var out io.Writer = cfg.Output
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	var c io.Closer
	if cfg.Async {
		report := cfg.OnDropped
		dw := diode.NewWriter(out, cfg.AsyncBufferSize, 10*time.Millisecond, func(missed int) {
			if report != nil {
				report(missed)
			}
		})
		out, c = dw, dw
	}

	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger(), c
}

var levels = map[string]zerolog.Level{
	"trace":    zerolog.TraceLevel,
	"debug":    zerolog.DebugLevel,
	"info":     zerolog.InfoLevel,
	"warn":     zerolog.WarnLevel,
	"warning":  zerolog.WarnLevel,
	"error":    zerolog.ErrorLevel,
	"fatal":    zerolog.FatalLevel,
	"panic":    zerolog.PanicLevel,
	"disabled": zerolog.Disabled,
}

// parseLevel is case-insensitive; unknown names mean info.
func parseLevel(name string) zerolog.Level {
	if lvl, ok := levels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger replaces the global logger without touching the async writer.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// With starts a child logger context.
//
//	storeLog := logging.With().Str("component", "store").Logger()
func With() zerolog.Context {
	return Logger().With()
}

// Debug starts a debug-level message on the global logger.
func Debug() *zerolog.Event {
	l := Logger()
	return l.Debug()
}

// Info starts an info-level message on the global logger.
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Warn starts a warn-level message on the global logger.
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

// Error starts an error-level message on the global logger.
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}

// Fatal exits the process with status 1 once the message is written.
func Fatal() *zerolog.Event {
	l := Logger()
	return l.Fatal()
}

// GetLevel returns the process-wide minimum level.
func GetLevel() zerolog.Level {
	return zerolog.GlobalLevel()
}

// SetLevelString changes the process-wide minimum level.
func SetLevelString(level string) {
	zerolog.SetGlobalLevel(parseLevel(level))
}

// NewTestLogger returns a timestamped JSON logger writing to w.
func NewTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}
