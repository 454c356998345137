// Package logging carries the engine's leveled logger. Levels mirror the
// game's three classes: VERBOSE diagnostics, INFO lifecycle events and FATAL
// errors that end the process.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

const (
	LevelVerbose = slog.LevelDebug
	LevelInfo    = slog.LevelInfo
	LevelFatal   = slog.LevelError + 4
)

// nopHandler drops every record.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

// exit is swapped by tests.
var exit = os.Exit

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger installs l as the engine logger. nil restores the silent default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the engine logger.
func Logger() *slog.Logger { return loggerPtr.Load() }

// New builds the default text logger writing to w and mirroring records
// into ring (may be nil).
func New(w io.Writer, level slog.Level, ring *Ring) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if ring != nil {
		h = Tee(h, ring)
	}
	return slog.New(h)
}

func Info(msg string, args ...any) { Logger().Info(msg, args...) }

func Verbose(msg string, args ...any) {
	Logger().Log(context.Background(), LevelVerbose, msg, args...)
}

// Fatal logs msg at FATAL and terminates the process.
func Fatal(msg string, args ...any) {
	Logger().Log(context.Background(), LevelFatal, msg, args...)
	exit(1)
}

// LevelName renders the engine level names.
func LevelName(l slog.Level) string {
	switch {
	case l >= LevelFatal:
		return "FATAL"
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN"
	case l >= LevelInfo:
		return "INFO"
	}
	return "VERBOSE"
}

func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(LevelName(l))
		}
	}
	return a
}

// ParseLevel maps a settings value to a level; unknown names fall back to INFO.
func ParseLevel(s string) slog.Level {
	switch s {
	case "verbose", "VERBOSE", "debug":
		return LevelVerbose
	case "fatal", "FATAL":
		return LevelFatal
	case "info", "INFO", "":
		return LevelInfo
	}
	fmt.Fprintf(os.Stderr, "logging: unknown level %q, using INFO\n", s)
	return LevelInfo
}
