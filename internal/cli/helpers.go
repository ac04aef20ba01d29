// Package cli holds the command implementations behind the vitrine
// binary: shared wiring helpers, the catalog renderer and the headless
// simulator.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/vitrinehq/vitrine/internal/logging"
)

// NewLogger configures the command logger. Debug mode writes structured
// logs to stderr; otherwise logging is silent and stdout stays clean for
// command output.
func NewLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// NewSignalContext returns a context cancelled on SIGINT or SIGTERM.
func NewSignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// IsTerminal reports whether stdout is an interactive terminal. Pretty
// output (banner, glamour rendering) is reserved for TTYs; pipes get
// plain text.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
