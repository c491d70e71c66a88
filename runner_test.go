package taskargs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mikeschinkel/go-dt/appinfo"
	taskargs "github.com/mikeschinkel/go-taskargs"
)

func testAppInfo() appinfo.AppInfo {
	return appinfo.New(appinfo.Args{
		Name:        "taskdemo",
		Description: "Demonstrates validated task arguments",
		Version:     "0.1.0",
		ExeName:     "taskdemo",
		InfoURL:     "https://github.com/mikeschinkel/go-taskargs",
	})
}

func newMainRunner(t *testing.T, opts *taskargs.Options) (*taskargs.TaskRunner, *taskargs.BufferedWriter) {
	t.Helper()
	t.Cleanup(taskargs.ResetTasks)
	w := taskargs.NewBufferedWriter()
	return taskargs.NewTaskRunner(taskargs.TaskRunnerArgs{
		AppInfo: testAppInfo(),
		Logger:  discardLogger(),
		Writer:  w,
		Options: opts,
	}), w
}

func TestMainSuccess(t *testing.T) {
	runner, _ := newMainRunner(t, nil)
	mustRegister(t, taskargs.TaskArgs{Name: "export", Handler: noopHandler})

	if code := runner.Main([]string{"export"}); code != taskargs.ExitSuccess {
		t.Errorf("Main() = %d, want ExitSuccess", code)
	}
}

func TestMainNoArgsShowsUsage(t *testing.T) {
	runner, w := newMainRunner(t, nil)
	mustRegister(t, taskargs.TaskArgs{
		Name:        "export",
		Usage:       "--sites=<sites>",
		Description: "Export site data",
		Handler:     noopHandler,
	})

	if code := runner.Main(nil); code != taskargs.ExitSuccess {
		t.Errorf("Main() = %d, want ExitSuccess", code)
	}
	for _, want := range []string{"taskdemo", "TASKS", "export", "Export site data", "EXAMPLES"} {
		if !w.ContainsStdout(want) {
			t.Errorf("usage output missing %q:\n%s", want, w.GetStdout())
		}
	}
}

func TestMainGrammarError(t *testing.T) {
	runner, w := newMainRunner(t, nil)
	mustRegister(t, taskargs.TaskArgs{
		Name:    "export",
		Usage:   "--sites=<sites>",
		Handler: noopHandler,
	})

	code := runner.Main([]string{"export", "--", "--bogus"})
	if code != taskargs.ExitGrammarError {
		t.Errorf("Main() = %d, want ExitGrammarError", code)
	}
	if !w.ContainsStderr("Error:") {
		t.Errorf("stderr missing error report:\n%s", w.GetStderr())
	}
	if !w.ContainsStderr("export") {
		t.Errorf("stderr should include the usage text:\n%s", w.GetStderr())
	}
}

func TestMainHelpRequest(t *testing.T) {
	runner, w := newMainRunner(t, nil)
	mustRegister(t, taskargs.TaskArgs{
		Name:    "export",
		Usage:   "--sites=<sites>",
		Handler: noopHandler,
	})

	code := runner.Main([]string{"export", "--", "--help"})
	if code != taskargs.ExitSuccess {
		t.Errorf("Main() = %d, want ExitSuccess", code)
	}
	if !w.ContainsStdout("export") {
		t.Errorf("stdout should carry the task usage:\n%s", w.GetStdout())
	}
	if w.GetStderr() != "" {
		t.Errorf("help request should not write to stderr:\n%s", w.GetStderr())
	}
}

func TestMainValidationError(t *testing.T) {
	runner, w := newMainRunner(t, nil)
	mustRegister(t, taskargs.TaskArgs{
		Name:  "export",
		Usage: "--sites=<sites>",
		Handler: func(ctx *taskargs.TaskContext) error {
			_, err := taskargs.ValidateValues(
				ctx.Args.StringOr("sites", ""),
				[]string{"a.com", "b.com"},
				true,
			)
			return err
		},
	})

	code := runner.Main([]string{"export", "--", "--sites=evil.com"})
	if code != taskargs.ExitValidationError {
		t.Errorf("Main() = %d, want ExitValidationError", code)
	}
	if !w.ContainsStderr("evil.com") {
		t.Errorf("stderr should name the offending value:\n%s", w.GetStderr())
	}
}

func TestMainUnknownTask(t *testing.T) {
	runner, w := newMainRunner(t, nil)
	mustRegister(t, taskargs.TaskArgs{Name: "export", Handler: noopHandler})

	code := runner.Main([]string{"no_such_task"})
	if code != taskargs.ExitUnknownTaskError {
		t.Errorf("Main() = %d, want ExitUnknownTaskError", code)
	}
	if !w.ContainsStderr("no_such_task") {
		t.Errorf("stderr should name the unknown task:\n%s", w.GetStderr())
	}
	if !w.ContainsStdout("TASKS") {
		t.Errorf("unknown task should show the usage screen:\n%s", w.GetStdout())
	}
}

func TestMainTaskError(t *testing.T) {
	runner, w := newMainRunner(t, nil)
	mustRegister(t, taskargs.TaskArgs{
		Name: "export",
		Handler: func(_ *taskargs.TaskContext) error {
			return errors.New("upstream unavailable")
		},
	})

	code := runner.Main([]string{"export"})
	if code != taskargs.ExitTaskError {
		t.Errorf("Main() = %d, want ExitTaskError", code)
	}
	if !w.ContainsStderr("upstream unavailable") {
		t.Errorf("stderr missing handler error:\n%s", w.GetStderr())
	}
}

func TestInvokeAppliesTimeout(t *testing.T) {
	timeout := 1
	opts, err := taskargs.NewOptions(taskargs.OptionsArgs{Timeout: &timeout})
	if err != nil {
		t.Fatalf("NewOptions() failed: %v", err)
	}
	runner, _ := newMainRunner(t, opts)

	mustRegister(t, taskargs.TaskArgs{
		Name: "export",
		Handler: func(ctx *taskargs.TaskContext) error {
			select {
			case <-ctx.Context.Done():
				return ctx.Context.Err()
			case <-time.After(10 * time.Second):
				return errors.New("handler outlived its deadline")
			}
		},
	})

	start := time.Now()
	err = runner.Invoke("export", []string{"export"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Invoke() error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Invoke() took %v; deadline was not applied", elapsed)
	}
}

func TestInvokeZeroTimeoutLeavesContext(t *testing.T) {
	runner, _ := newMainRunner(t, nil)

	mustRegister(t, taskargs.TaskArgs{
		Name: "export",
		Handler: func(ctx *taskargs.TaskContext) error {
			if _, ok := ctx.Context.Deadline(); ok {
				return errors.New("context should have no deadline when timeout is disabled")
			}
			return nil
		},
	})

	if err := runner.Invoke("export", []string{"export"}); err != nil {
		t.Fatalf("Invoke() failed: %v", err)
	}
}

func TestHelpDoesNotConsumeEnablement(t *testing.T) {
	runner, _ := newMainRunner(t, nil)
	task := mustRegister(t, taskargs.TaskArgs{
		Name:    "export",
		Usage:   "--sites=<sites>",
		Handler: noopHandler,
	})

	if code := runner.Main([]string{"export", "--", "--help"}); code != taskargs.ExitSuccess {
		t.Fatalf("Main(--help) = %d, want ExitSuccess", code)
	}
	if task.Invoked() {
		t.Error("a help request should not consume the task's enablement")
	}

	code := runner.Main([]string{"export", "--", "--sites=a.com"})
	if code != taskargs.ExitSuccess {
		t.Errorf("Main() after help = %d, want ExitSuccess", code)
	}
}

func TestMainDryRunSkipsHandler(t *testing.T) {
	dryRun := true
	opts, err := taskargs.NewOptions(taskargs.OptionsArgs{DryRun: &dryRun})
	if err != nil {
		t.Fatalf("NewOptions() failed: %v", err)
	}
	runner, w := newMainRunner(t, opts)

	ran := false
	mustRegister(t, taskargs.TaskArgs{
		Name: "export",
		Handler: func(_ *taskargs.TaskContext) error {
			ran = true
			return nil
		},
	})

	if code := runner.Main([]string{"export"}); code != taskargs.ExitSuccess {
		t.Errorf("Main() = %d, want ExitSuccess", code)
	}
	if ran {
		t.Error("handler should not run under dry-run")
	}
	if !w.ContainsStdout("[dry-run]") {
		t.Errorf("dry-run should announce the skip:\n%s", w.GetStdout())
	}
}
