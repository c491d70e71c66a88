package taskargs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mikeschinkel/go-dt"
	"github.com/mikeschinkel/go-dt/appinfo"
)

// TaskRunner dispatches raw argument vectors to registered tasks and is the
// single boundary where typed failures become exit codes and user-visible
// messages.
type TaskRunner struct {
	Args     TaskRunnerArgs
	resolver *ArgResolver
}

type TaskRunnerArgs struct {
	AppInfo appinfo.AppInfo
	Logger  *slog.Logger
	Writer  Writer
	Options *Options
	Context context.Context
	Clock   Clock
	Parser  UsageParser  // nil selects docopt
	History HistoryStore // nil disables invocation history
}

func NewTaskRunner(args TaskRunnerArgs) *TaskRunner {
	if args.Logger == nil {
		args.Logger = slog.Default()
	}
	if args.Writer == nil {
		args.Writer = NewWriter(nil)
	}
	if args.Context == nil {
		args.Context = context.Background()
	}
	if args.Clock == nil {
		args.Clock = SystemClock
	}
	return &TaskRunner{
		Args:     args,
		resolver: NewArgResolver(args.Parser),
	}
}

// Invoke resolves rawInput against the named task's usage grammar and runs
// its handler. rawInput is the full vector as the task runner hands it
// over: task name first, optionally followed by the bare separator token.
func (tr *TaskRunner) Invoke(name string, rawInput []string) (err error) {
	var task *Task
	var parsed ParsedArgs
	var status TaskStatus
	var started time.Time
	var confErr *ConformanceError
	var taskCtx context.Context
	var cancel context.CancelFunc

	task = GetTask(name)
	if task == nil {
		err = NewErr(ErrUnknownTask, "task_name", name)
		goto end
	}
	if task.Invoked() {
		err = NewErr(ErrTaskNotReenabled, "task_name", name)
		goto end
	}
	task.invoked = true
	started = tr.Args.Clock.Now()

	parsed, err = tr.resolver.ResolveArgs(task.Name(), task.Usage(), rawInput)
	if err != nil {
		status = TaskStatusFailed
		if errors.As(err, &confErr) && confErr.Help {
			// A help request is not a run; keep the task invokable
			task.invoked = false
			status = TaskStatusSkipped
		}
		goto record
	}

	if tr.Args.Options != nil && tr.Args.Options.DryRun() {
		tr.Args.Logger.Info("dry run; task not executed", "task_name", name)
		tr.Args.Writer.Printf("[dry-run] %s %v\n", name, parsed)
		status = TaskStatusSkipped
		goto record
	}

	taskCtx = tr.Args.Context
	cancel = func() {}
	if tr.Args.Options != nil && tr.Args.Options.Timeout() > 0 {
		taskCtx, cancel = context.WithTimeout(taskCtx, tr.Args.Options.Timeout())
	}
	defer cancel()

	tr.Args.Logger.Info("invoking task", "task_name", name, "argv", rawInput)
	err = task.handler(&TaskContext{
		Context: taskCtx,
		Task:    task,
		Args:    parsed,
		Writer:  tr.Args.Writer,
		Logger:  tr.Args.Logger,
		Clock:   tr.Args.Clock,
		runner:  tr,
	})
	status = TaskStatusSuccess
	if err != nil {
		status = TaskStatusFailed
	}

record:
	tr.recordInvocation(name, rawInput, status, started, err)
end:
	return err
}

// Run dispatches a raw vector whose first element names the task
func (tr *TaskRunner) Run(argv []string) error {
	if len(argv) == 0 {
		return NewErr(ErrUnknownTask, "task_name", "(none)")
	}
	return tr.Invoke(argv[0], argv)
}

// Main is the process boundary: it runs the vector, reports failures on
// the user-visible error channel, and returns the exit code for os.Exit.
// Inside this method is the only place a validation failure stops an
// invocation; everything below it returns errors.
func (tr *TaskRunner) Main(argv []string) (code int) {
	var confErr *ConformanceError

	w := tr.Args.Writer
	if len(argv) == 0 {
		tr.showUsage()
		return ExitSuccess
	}

	err := tr.Run(argv)
	switch {
	case err == nil:
		code = ExitSuccess

	case errors.As(err, &confErr):
		if confErr.Help {
			w.Loud().Printf("%s\n", confErr.Usage)
			code = ExitSuccess
			break
		}
		w.Errorf("Error: %s\n%s\n", confErr.Error(), confErr.Usage)
		code = ExitGrammarError

	case IsValidationErr(err):
		w.Errorf("Error: %v\n", err)
		code = ExitValidationError

	case errors.Is(err, ErrUnknownTask):
		w.Errorf("Error: %v\n", err)
		tr.showUsage()
		code = ExitUnknownTaskError

	default:
		tr.Args.Logger.Error("task failed", "error", err)
		w.Errorf("Error: %v\n", err)
		code = ExitTaskError
	}
	return code
}

// IsValidationErr reports whether err is a value, integer, or date
// validation failure
func IsValidationErr(err error) bool {
	return errors.Is(err, ErrValueNotAllowed) ||
		errors.Is(err, ErrMultipleValuesNotAllowed) ||
		errors.Is(err, ErrNotAnInteger) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, dt.ErrEmpty)
}

func (tr *TaskRunner) showUsage() {
	err := ShowUsage(UsageArgs{
		AppInfo: tr.Args.AppInfo,
		Writer:  tr.Args.Writer,
	})
	if err != nil {
		tr.Args.Logger.Warn("could not render usage", "error", err)
	}
}

func (tr *TaskRunner) recordInvocation(name string, argv []string, status TaskStatus, started time.Time, invokeErr error) {
	if tr.Args.History == nil {
		return
	}
	errText := ""
	if invokeErr != nil {
		errText = invokeErr.Error()
	}
	err := tr.Args.History.SaveInvocation(tr.Args.Context, Invocation{
		TaskName:  name,
		Argv:      argv,
		Status:    status,
		Error:     errText,
		StartedAt: started,
		EndedAt:   tr.Args.Clock.Now(),
	})
	if err != nil {
		tr.Args.Logger.Warn("could not record task invocation", "task_name", name, "error", err)
	}
}
