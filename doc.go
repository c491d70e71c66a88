/*
Package taskargs passes validated, named command-line arguments into a task
runner's named tasks using a declarative usage-string grammar.

Its core pieces are:
  - ArgResolver: builds a per-task usage grammar, hands the raw argument vector
    to a declarative parser (docopt), and returns a normalized ParsedArgs map.
  - ResolveWindow: turns optional explicit start/end dates and relative
    days-ago offsets into a concrete (start, end) date window.
  - TaskRunner: looks up registered tasks, resolves their arguments, runs their
    handlers, and acts as the single boundary that maps typed failures to exit
    codes and user-visible messages.

Basic usage:

	taskargs.RegisterTask(taskargs.NewTask(taskargs.TaskArgs{
		Name:    "export",
		Usage:   "--sites=<sites> [--days-ago=<n>]",
		Handler: exportHandler,
	}))
	runner := taskargs.NewTaskRunner(taskargs.TaskRunnerArgs{Writer: w})
	os.Exit(runner.Main(os.Args[1:]))

Validators and the date-window resolver return errors rather than terminating,
so task logic stays testable; TaskRunner.Main is where failures become exit
codes.
*/
package taskargs
