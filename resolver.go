package taskargs

import (
	"fmt"
	"strings"

	"github.com/mikeschinkel/go-dt/dtx"
)

const (
	// SeparatorToken is the bare argument separator some task runners
	// prepend to a task's argument vector.
	SeparatorToken = "--"

	// TaskNameKey is the reserved ParsedArgs key holding the task name
	// extracted from the grammar's leading token.
	TaskNameKey = "task_name"
)

// ParsedArgs maps argument names (leading markers stripped) to values. A
// value is a string, a bool for presence-only flags, or nil when the
// argument was declared but not supplied. Built fresh per invocation and
// never mutated afterward.
type ParsedArgs map[string]any

// String returns the named argument as a string and whether it was supplied
func (pa ParsedArgs) String(name string) (string, bool) {
	s, err := dtx.AssertType[string](pa[name])
	return s, err == nil
}

// StringOr returns the named argument as a string, or def when absent
func (pa ParsedArgs) StringOr(name string, def string) string {
	s, ok := pa.String(name)
	if !ok {
		return def
	}
	return s
}

// Ptr returns a pointer to the named string argument, or nil when absent.
// Shaped for WindowArgs fields.
func (pa ParsedArgs) Ptr(name string) *string {
	s, ok := pa.String(name)
	if !ok {
		return nil
	}
	return &s
}

// Bool returns the named flag's presence
func (pa ParsedArgs) Bool(name string) bool {
	b, _ := pa[name].(bool)
	return b
}

// Has returns true when the argument was supplied with a value
func (pa ParsedArgs) Has(name string) bool {
	v, ok := pa[name]
	return ok && v != nil
}

// BuildTaskUsage constructs the two-line usage grammar for a task: the
// task's own argument line plus a conventional help line so that a help
// invocation is always recognized.
func BuildTaskUsage(taskName string, specFragment string) string {
	return fmt.Sprintf("%s %s %s\n%s %s --help",
		taskName, SeparatorToken, specFragment,
		taskName, SeparatorToken,
	)
}

// TrimSeparator removes the separator token at index 1 of a raw input
// vector. Task runners differ across versions on whether the separator is
// included, so trimming must be (and is) idempotent.
func TrimSeparator(rawInput []string) []string {
	if len(rawInput) < 2 || rawInput[1] != SeparatorToken {
		return rawInput
	}
	trimmed := make([]string, 0, len(rawInput)-1)
	trimmed = append(trimmed, rawInput[0])
	trimmed = append(trimmed, rawInput[2:]...)
	return trimmed
}

// ArgResolver resolves a task's raw input vector against its usage grammar
type ArgResolver struct {
	parser UsageParser
}

// NewArgResolver creates an ArgResolver; a nil parser selects docopt
func NewArgResolver(parser UsageParser) *ArgResolver {
	if parser == nil {
		parser = &DocoptParser{}
	}
	return &ArgResolver{parser: parser}
}

// ResolveArgs builds the usage grammar for taskName from specFragment,
// parses rawInput against it, and returns the normalized mapping. A
// *ConformanceError is returned when rawInput does not satisfy the grammar;
// the caller decides whether that terminates the process.
func (r *ArgResolver) ResolveArgs(taskName string, specFragment string, rawInput []string) (args ParsedArgs, err error) {
	var parsed ParsedArgs

	usage := BuildTaskUsage(taskName, specFragment)
	parsed, err = r.parser.Parse(usage, TrimSeparator(rawInput))
	if err != nil {
		goto end
	}

	args = make(ParsedArgs, len(parsed))
	for key, value := range parsed {
		if key == SeparatorToken {
			args[TaskNameKey] = value
			continue
		}
		args[strings.ReplaceAll(key, "--", "")] = value
	}

end:
	return args, err
}
