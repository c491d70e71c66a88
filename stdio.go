package taskargs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Stdoutf writes formatted output straight to stdout, bypassing the Writer
// verbosity machinery. Intended for early-startup reporting before a Writer
// or TaskRunner exists.
func Stdoutf(format string, args ...any) {
	Stdiof(os.Stdout, format, args...)
}

// Stderrf writes formatted output straight to stderr
func Stderrf(format string, args ...any) {
	Stdiof(os.Stderr, format, args...)
}

// Stdiof writes formatted output to w. A failed write is logged instead of
// returned; callers at this level have no error channel left to report on.
func Stdiof(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		slog.Default().Warn("stdio write failed", "error", err)
	}
}
