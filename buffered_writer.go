package taskargs

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
)

// BufferedWriter implements Writer and captures all output in buffers for testing
type BufferedWriter struct {
	stdout     *bytes.Buffer
	stderr     *bytes.Buffer
	mu         sync.RWMutex
	quiet      bool
	verbosity  int
	useLevel   int
	loudWriter Writer
	v2Writer   Writer
	v3Writer   Writer
}

var _ Writer = (*BufferedWriter)(nil)

// NewBufferedWriter creates a BufferedWriter at max verbosity
func NewBufferedWriter() *BufferedWriter {
	return &BufferedWriter{
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		verbosity: int(HighVerbosity),
		useLevel:  1,
	}
}

// Printf writes formatted output to the stdout buffer
func (w *BufferedWriter) Printf(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.quiet {
		return
	}
	if w.verbosity < w.useLevel {
		return
	}
	w.stdout.WriteString(fmt.Sprintf(format, args...))
}

// Errorf writes formatted error output to the stderr buffer
func (w *BufferedWriter) Errorf(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Flatten newlines in error args, same as cliWriter
	processed := make([]any, len(args))
	for i, arg := range args {
		if err, ok := arg.(error); ok {
			processed[i] = strings.Replace(err.Error(), "\n", "; ", -1)
		} else {
			processed[i] = arg
		}
	}
	w.stderr.WriteString(fmt.Sprintf(format, processed...))
}

func (w *BufferedWriter) sub(quiet bool, level int) *BufferedWriter {
	return &BufferedWriter{
		stdout:    w.stdout, // share buffers
		stderr:    w.stderr,
		quiet:     quiet,
		verbosity: w.verbosity,
		useLevel:  level,
	}
}

// Loud returns a Writer that ignores the quiet setting
func (w *BufferedWriter) Loud() Writer {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.loudWriter == nil {
		w.loudWriter = w.sub(false, w.useLevel)
	}
	return w.loudWriter
}

// V2 returns a Writer for verbosity level 2
func (w *BufferedWriter) V2() Writer {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.v2Writer == nil {
		w.v2Writer = w.sub(w.quiet, 2)
	}
	return w.v2Writer
}

// V3 returns a Writer for verbosity level 3
func (w *BufferedWriter) V3() Writer {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.v3Writer == nil {
		w.v3Writer = w.sub(w.quiet, 3)
	}
	return w.v3Writer
}

func (w *BufferedWriter) Writer() io.Writer {
	return w.stdout
}

func (w *BufferedWriter) ErrWriter() io.Writer {
	return w.stderr
}

// Testing helpers

// GetStdout returns the current stdout buffer contents
func (w *BufferedWriter) GetStdout() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stdout.String()
}

// GetStderr returns the current stderr buffer contents
func (w *BufferedWriter) GetStderr() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stderr.String()
}

// ContainsStdout returns true if the stdout buffer contains s
func (w *BufferedWriter) ContainsStdout(s string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return strings.Contains(w.stdout.String(), s)
}

// ContainsStderr returns true if the stderr buffer contains s
func (w *BufferedWriter) ContainsStderr(s string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return strings.Contains(w.stderr.String(), s)
}

// Reset clears both buffers
func (w *BufferedWriter) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stdout.Reset()
	w.stderr.Reset()
}

// SetQuiet sets quiet mode (suppresses Printf output)
func (w *BufferedWriter) SetQuiet(quiet bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.quiet = quiet
}
