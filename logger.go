package cubecap

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for cubecap and all its sub-packages.
// By default, cubecap produces no log output.
//
// The logger is also handed to the gg rasterizer so that accelerator
// selection and fallback messages end up in the same stream. Pass nil to
// restore silent behavior.
//
// Log levels used by cubecap:
//   - [slog.LevelDebug]: per-frame timings, buffer reuse, adapter details
//   - [slog.LevelInfo]: run start and completion
//   - [slog.LevelWarn]: frames that could not be written
//
// Example:
//
//	cubecap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
		gg.SetLogger(nil)
	} else {
		gg.SetLogger(l.With("component", "gg"))
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by cubecap.
// Sub-packages (render/cube) call this to share the same configuration.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
