package taskargs

import (
	"errors"
	"strings"

	"github.com/docopt/docopt-go"
)

// UsageParser is the declarative-parser capability behind ResolveArgs. Any
// parser that can match an argument vector against a usage grammar can be
// swapped in without touching resolver logic.
type UsageParser interface {
	Parse(grammar string, argv []string) (ParsedArgs, error)
}

// ConformanceError reports raw input that does not satisfy a usage grammar,
// including an explicit help request. Usage carries the parser-supplied
// usage text for user-visible reporting at the termination boundary.
type ConformanceError struct {
	Message string
	Usage   string
	Help    bool
}

func (e *ConformanceError) Error() string {
	if e.Help {
		return "help requested"
	}
	if e.Message != "" {
		return e.Message
	}
	return "input does not match task usage"
}

var _ UsageParser = (*DocoptParser)(nil)

// DocoptParser adapts docopt to the task-grammar convention used here.
//
// Two adaptations are needed. Docopt requires a "Usage:" heading, and it
// treats a bare "--" token as an options terminator in both patterns and
// argument vectors, so the standalone separator token in each grammar line
// is dropped before parsing. The task name that led the grammar line is
// reported under the separator key so callers can recover it.
type DocoptParser struct{}

func (dp *DocoptParser) Parse(grammar string, argv []string) (parsed ParsedArgs, err error) {
	var opts docopt.Opts
	var userErr *docopt.UserError
	var handlerUsage string
	var handlerCalled bool

	doc, taskName := docoptDoc(grammar)

	// Docopt argument vectors exclude the program name
	if len(argv) > 0 && argv[0] == taskName {
		argv = argv[1:]
	}

	parser := &docopt.Parser{
		HelpHandler: func(err error, usage string) {
			handlerCalled = true
			handlerUsage = usage
		},
	}
	opts, err = parser.ParseArgs(doc, argv, "")
	if err != nil {
		if errors.As(err, &userErr) {
			usage := handlerUsage
			if usage == "" {
				usage = grammar
			}
			err = &ConformanceError{Message: userErr.Error(), Usage: usage}
			goto end
		}
		err = WithErr(err, ErrGrammarParseFailed, "grammar", grammar)
		goto end
	}
	if handlerCalled {
		// Docopt intercepted --help before pattern matching
		err = &ConformanceError{Usage: handlerUsage, Help: true}
		goto end
	}

	parsed = make(ParsedArgs, len(opts)+1)
	for key, value := range opts {
		parsed[key] = value
	}
	parsed[SeparatorToken] = taskName

end:
	return parsed, err
}

// docoptDoc rewrites a task usage grammar into a docopt document: adds the
// Usage: heading and drops standalone separator tokens from each line. The
// returned task name is the leading token of the first grammar line.
func docoptDoc(grammar string) (doc string, taskName string) {
	var sb strings.Builder

	sb.WriteString("Usage:\n")
	for i, line := range strings.Split(strings.TrimSpace(grammar), "\n") {
		fields := strings.Fields(line)
		if i == 0 && len(fields) > 0 {
			taskName = fields[0]
		}
		kept := fields[:0]
		for _, field := range fields {
			if field == SeparatorToken {
				continue
			}
			kept = append(kept, field)
		}
		sb.WriteString("  ")
		sb.WriteString(strings.Join(kept, " "))
		sb.WriteString("\n")
	}
	return sb.String(), taskName
}
