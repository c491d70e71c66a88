package taskargs_test

import (
	"errors"
	"testing"
	"time"

	taskargs "github.com/mikeschinkel/go-taskargs"
)

func TestParseOptions(t *testing.T) {
	opts, remaining, err := taskargs.ParseOptions([]string{
		"taskdemo", "-q", "--timeout=30", "site_report", "--", "--sites=a.com",
	})
	if err != nil {
		t.Fatalf("ParseOptions() failed: %v", err)
	}
	if !opts.Quiet() {
		t.Error("Quiet() = false, want true")
	}
	if opts.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v, want 30s", opts.Timeout())
	}
	assertSameArgv(t, remaining, []string{"site_report", "--", "--sites=a.com"})
}

func TestParseOptionsStopsAtTaskName(t *testing.T) {
	// Flags after the task name belong to the task, not to us
	opts, remaining, err := taskargs.ParseOptions([]string{
		"taskdemo", "site_report", "--", "--quiet",
	})
	if err != nil {
		t.Fatalf("ParseOptions() failed: %v", err)
	}
	if opts.Quiet() {
		t.Error("Quiet() = true; the task's --quiet should not be consumed")
	}
	assertSameArgv(t, remaining, []string{"site_report", "--", "--quiet"})
}

func TestParseOptionsDefaults(t *testing.T) {
	opts, remaining, err := taskargs.ParseOptions([]string{"taskdemo"})
	if err != nil {
		t.Fatalf("ParseOptions() failed: %v", err)
	}
	if opts.Quiet() || opts.DryRun() {
		t.Error("quiet and dry-run should default off")
	}
	if opts.Verbosity() != taskargs.LowVerbosity {
		t.Errorf("Verbosity() = %v, want LowVerbosity", opts.Verbosity())
	}
	if len(remaining) != 0 {
		t.Errorf("remaining = %v, want empty", remaining)
	}
}

func TestParseOptionsBadVerbosity(t *testing.T) {
	_, _, err := taskargs.ParseOptions([]string{"taskdemo", "-v", "9"})
	if !errors.Is(err, taskargs.ErrVerbosityTooHigh) {
		t.Fatalf("ParseOptions() error = %v, want ErrVerbosityTooHigh", err)
	}
}

func TestNewOptionsBadVerbosity(t *testing.T) {
	verbosity := -1
	_, err := taskargs.NewOptions(taskargs.OptionsArgs{Verbosity: &verbosity})
	if !errors.Is(err, taskargs.ErrVerbosityTooLow) {
		t.Fatalf("NewOptions() error = %v, want ErrVerbosityTooLow", err)
	}
}
