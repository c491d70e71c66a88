package taskargs

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Writer defines the interface for user-facing output
type Writer interface {
	Printf(string, ...any)
	Errorf(string, ...any)
	Loud() Writer
	V2() Writer
	V3() Writer
	Writer() io.Writer
	ErrWriter() io.Writer
}

var _ Writer = (*cliWriter)(nil)

// cliWriter writes to stdout/stderr for normal CLI usage
type cliWriter struct {
	writer    io.Writer
	errWriter io.Writer
	quiet     bool
	loud      Writer
	v2        Writer
	v3        Writer
	useLevel  int
	verbosity Verbosity
}

func (w *cliWriter) Writer() io.Writer {
	return w.writer
}

func (w *cliWriter) ErrWriter() io.Writer {
	return w.errWriter
}

func (w *cliWriter) sub(quiet bool, level int) Writer {
	return &cliWriter{
		writer:    w.writer,
		errWriter: w.errWriter,
		quiet:     quiet,
		verbosity: w.verbosity,
		useLevel:  level,
	}
}

func (w *cliWriter) V2() Writer {
	if w.v2 == nil {
		w.v2 = w.sub(w.quiet, 2)
	}
	return w.v2
}

func (w *cliWriter) V3() Writer {
	if w.v3 == nil {
		w.v3 = w.sub(w.quiet, 3)
	}
	return w.v3
}

// Loud returns a Writer that ignores the quiet setting
func (w *cliWriter) Loud() Writer {
	if w.loud == nil {
		w.loud = w.sub(false, w.useLevel)
	}
	return w.loud
}

type WriterArgs struct {
	Quiet     bool
	Verbosity Verbosity
}

// NewWriter creates a console writer
func NewWriter(args *WriterArgs) Writer {
	if args == nil {
		args = &WriterArgs{
			Verbosity: LowVerbosity,
		}
	}
	if args.Verbosity < LowVerbosity || HighVerbosity < args.Verbosity {
		panic(fmt.Sprintf("Invalid verbosity for taskargs.NewWriter(); must be between 1-3; got %d", args.Verbosity))
	}
	return &cliWriter{
		writer:    os.Stdout,
		errWriter: os.Stderr,
		quiet:     args.Quiet,
		verbosity: args.Verbosity,
		useLevel:  1,
	}
}

// Printf writes formatted output to stdout
func (w *cliWriter) Printf(format string, args ...any) {
	if w.quiet {
		return
	}
	if int(w.verbosity) < w.useLevel {
		return
	}
	_, _ = fmt.Fprintf(w.writer, format, args...)
}

// Errorf writes formatted error output to stderr
func (w *cliWriter) Errorf(format string, args ...any) {
	for i, arg := range args {
		err, ok := arg.(error)
		if !ok {
			continue
		}
		// Replace newlines in errors with semicolons
		args[i] = strings.Replace(err.Error(), "\n", "; ", -1)
	}
	_, _ = fmt.Fprintf(w.errWriter, format, args...)
}

// Package-level output variables and synchronization
var (
	writer  Writer       // global output writer used by package-level funcs
	printMu sync.RWMutex // synchronizes Printf access
	errorMu sync.RWMutex // synchronizes Errorf access
)

// SetWriter sets the global writer (primarily for testing)
func SetWriter(w Writer) {
	printMu.Lock()
	defer printMu.Unlock()
	writer = w
	ensureWriter()
}

// GetWriter returns the current global writer
//
//goland:noinspection GoUnusedExportedFunction
func GetWriter() Writer {
	printMu.RLock()
	defer printMu.RUnlock()
	return writer
}

// Printf writes formatted output via the global writer
//
//goland:noinspection GoUnusedExportedFunction
func Printf(format string, args ...any) {
	printMu.RLock()
	defer printMu.RUnlock()
	ensureWriter()
	writer.Printf(format, args...)
}

// Errorf writes formatted error output via the global writer
//
//goland:noinspection GoUnusedExportedFunction
func Errorf(format string, args ...any) {
	errorMu.RLock()
	defer errorMu.RUnlock()
	ensureWriter()
	writer.Errorf(format, args...)
}

// ensureWriter panics if no Writer has been set, preventing uninitialized usage
func ensureWriter() {
	if writer == nil {
		panic("Must set Writer with taskargs.SetWriter() before using package-level output")
	}
}
