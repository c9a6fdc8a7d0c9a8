package grove

import (
	"context"
	"log/slog"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// SetLogger configures the scene's logger. By default a scene produces no log
// output. Pass nil to restore the silent default.
//
// Log levels used by grove:
//   - [slog.LevelDebug]: run lifecycle and, in debug mode, per-tick stats
//   - [slog.LevelWarn]: debug-mode tree depth and child count warnings
//
// Example:
//
//	scene.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func (s *Scene) SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	s.log = l
}

// Logger returns the scene's logger. Adapters use it so their output follows
// the scene's configuration.
func (s *Scene) Logger() *slog.Logger {
	return s.log
}
