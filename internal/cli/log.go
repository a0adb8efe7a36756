// Package cli implements the folio command-line interface.
//
// # Commands
//
//   - serve: run the web host with HTMX carousels and SSE auto-advance
//   - browse: page through the projects in the terminal
//
// All commands accept --verbose (-v) for debug logging and --env-file to
// load variables before configuration is read. The logger travels through
// the command's context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger writes timestamped entries ("15:04:05.00") to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to log.Default() when no logger is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
