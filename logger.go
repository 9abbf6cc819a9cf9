package gbufview

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

// loggerSinks are sub-packages that keep their own logger pointer.
var (
	loggerSinksMu sync.Mutex
	loggerSinks   []func(*slog.Logger)
)

func init() {
	l := newNopLogger()
	loggerPtr.Store(l)
}

// SetLogger configures the logger for gbufview and its GPU backend.
// By default, gbufview produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by gbufview:
//   - [slog.LevelDebug]: pipeline cache hits and rebuilds, pipeline creation
//   - [slog.LevelInfo]: lifecycle events (device attached, geometry released)
//   - [slog.LevelWarn]: recoverable failures (custom shader unreadable or
//     not compiling, file watch limit reached)
//
// Example:
//
//	gbufview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	loggerSinksMu.Lock()
	sinks := loggerSinks
	loggerSinksMu.Unlock()
	for _, set := range sinks {
		set(l)
	}
}

// Logger returns the current logger used by gbufview.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// addLoggerSink registers a sub-package logger setter and hands it the
// current logger.
func addLoggerSink(set func(*slog.Logger)) {
	loggerSinksMu.Lock()
	loggerSinks = append(loggerSinks, set)
	loggerSinksMu.Unlock()
	set(Logger())
}
