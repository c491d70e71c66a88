package taskargs

// Exit codes for task-runner CLIs following lifecycle progression.
// Lower numbers indicate earlier failures in an invocation:
//   - 1: Failed parsing global command-line options
//   - 2: Raw input did not conform to the task's usage grammar
//   - 3: A value, integer, or date argument failed validation
//   - 4: The task handler returned an error
//   - 5: The named task is not registered
//
// Scripts can use these to pick a recovery strategy: 1-3 are user input
// errors (fix the invocation and retry), 4 needs the task's own logs, and
// 5 usually means a typo or a missing registration.
//
// Note: exit codes 128 and above are reserved for signal-related exits.

//goland:noinspection GoUnusedConst
const (
	ExitSuccess           = 0 // Successful invocation
	ExitOptionsParseError = 1 // Global option parsing failed
	ExitGrammarError      = 2 // Input did not satisfy the usage grammar
	ExitValidationError   = 3 // Argument value validation failed
	ExitTaskError         = 4 // Task handler returned an error
	ExitUnknownTaskError  = 5 // Task name not registered
)
