package taskargs

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
)

var (
	ErrEmptyTaskName          = errors.New("task name cannot be empty")
	ErrNilTaskHandler         = errors.New("task handler cannot be nil")
	ErrDuplicateTask          = errors.New("task already registered")
	ErrTaskRegistrationFailed = errors.New("task registration failed")
)

// TaskStatus is the recorded outcome of one task invocation
type TaskStatus string

const (
	TaskStatusSuccess TaskStatus = "SUCCESS"
	TaskStatusFailed  TaskStatus = "FAILED"
	TaskStatusSkipped TaskStatus = "SKIPPED"
)

// TaskHandler runs one invocation of a task against its resolved arguments
type TaskHandler func(ctx *TaskContext) error

// TaskContext carries everything a handler needs for one invocation.
// Constructed fresh per invocation; handlers must not retain it.
type TaskContext struct {
	Context context.Context
	Task    *Task
	Args    ParsedArgs
	Writer  Writer
	Logger  *slog.Logger
	Clock   Clock
	runner  *TaskRunner
}

// InvokeTask invokes another registered task with a synthesized argument
// vector, the composition mechanism parent tasks use.
func (tc *TaskContext) InvokeTask(name string, argv []string) error {
	return tc.runner.Invoke(name, argv)
}

// Task is a named, independently invokable unit of work. A task runs once
// per enablement: after an invocation it must be explicitly re-enabled
// before it can be invoked again.
type Task struct {
	name        string
	usage       string
	description string
	handler     TaskHandler
	invoked     bool
}

type TaskArgs struct {
	Name        string
	Usage       string // usage grammar fragment, e.g. "--sites=<sites> [--days-ago=<n>]"
	Description string
	Handler     TaskHandler
}

func NewTask(args TaskArgs) *Task {
	return &Task{
		name:        args.Name,
		usage:       args.Usage,
		description: args.Description,
		handler:     args.Handler,
	}
}

func (t *Task) Name() string {
	return t.name
}

func (t *Task) Usage() string {
	return t.usage
}

func (t *Task) Description() string {
	return t.description
}

// Invoked reports whether the task has run since it was last enabled
func (t *Task) Invoked() bool {
	return t.invoked
}

// Reenable returns the task to an invokable state
func (t *Task) Reenable() {
	t.invoked = false
}

// Task registry (built from RegisterTask calls before the runner starts)
var tasks = make([]*Task, 0)
var tasksNameMap = make(map[string]*Task)

// RegisterTask adds a task to the registry
func RegisterTask(t *Task) (err error) {
	var errs []error

	if strings.TrimSpace(t.name) == "" {
		errs = append(errs, ErrEmptyTaskName)
	}
	if t.handler == nil {
		errs = append(errs, ErrNilTaskHandler)
	}
	if _, exists := tasksNameMap[t.name]; exists {
		errs = append(errs, ErrDuplicateTask)
	}

	err = CombineErrs(errs)
	if err != nil {
		err = WithErr(err, ErrTaskRegistrationFailed, "task_name", t.name)
		goto end
	}
	tasks = append(tasks, t)
	tasksNameMap[t.name] = t

end:
	return err
}

// GetTask retrieves a registered task by name, or nil
func GetTask(name string) *Task {
	return tasksNameMap[name]
}

// RegisteredTasks returns all registered tasks sorted by name
func RegisteredTasks() []*Task {
	sorted := slices.Clone(tasks)
	slices.SortFunc(sorted, func(a, b *Task) int {
		return strings.Compare(a.name, b.name)
	})
	return sorted
}

// ResetTasks clears the registry (primarily for testing)
func ResetTasks() {
	tasks = make([]*Task, 0)
	tasksNameMap = make(map[string]*Task)
}
