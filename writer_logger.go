package taskargs

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// WriterLogger pairs user-facing output with structured logging so a single
// call can do both.
type WriterLogger struct {
	Writer
	*slog.Logger
}

func NewWriterLogger(writer Writer, logger *slog.Logger) WriterLogger {
	return WriterLogger{Writer: writer, Logger: logger}
}

func (wl WriterLogger) Printf(format string, args ...any) {
	wl.Writer.Printf(format, args...)
}

// InfoPrint logs at info level and prints the same message to the user
func (wl WriterLogger) InfoPrint(msg string, args ...any) {
	wl.Logger.Info(msg, args...)
	wl.Writer.Printf(wl.concatMsgAndArgs(msg, args...) + "\n")
}

// WarnError logs at warn level and writes the message to the error channel
func (wl WriterLogger) WarnError(msg string, args ...any) {
	wl.Logger.Warn(msg, args...)
	wl.Writer.Errorf(wl.concatMsgAndArgs(msg, args...) + "\n")
}

// ErrorError logs at error level, writes to the error channel, and returns
// an error built from the message and any trailing error argument.
func (wl WriterLogger) ErrorError(msg string, args ...any) (err error) {
	var ok bool
	wl.Logger.Error(msg, args...)
	full := wl.concatMsgAndArgs(msg, args...)
	wl.Writer.Errorf(full + "\n")
	if len(args) == 0 {
		return errors.New(full)
	}
	err, ok = args[len(args)-1].(error)
	if !ok {
		return errors.New(full)
	}
	return NewErr(errors.New(full), err)
}

func (wl WriterLogger) concatMsgAndArgs(msg string, args ...any) string {
	var sb strings.Builder
	sb.WriteString(msg)
	if len(args) > 0 {
		sb.WriteByte(';')
	}
	for i := 0; i < len(args); i += 2 {
		if i == len(args)-1 {
			sb.WriteString(fmt.Sprintf(" %v", args[i]))
			break
		}
		sb.WriteString(fmt.Sprintf(" %s=%v", args[i], args[i+1]))
	}
	return sb.String()
}
