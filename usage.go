package taskargs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mikeschinkel/go-dt"
	"github.com/mikeschinkel/go-dt/appinfo"
)

// Example is one runnable invocation shown on the usage screen
type Example struct {
	Descr string
	Cmd   string
}

type TaskRow struct {
	Display string // task name padded in template
	Desc    string
}

type Usage struct {
	appinfo.AppInfo
	CLIWriter Writer
	TaskRows  []TaskRow
	Examples  []Example
}

type UsageArgs struct {
	appinfo.AppInfo
	Writer Writer
}

// BuildUsage builds the data for the usage template from the task registry
func BuildUsage(args UsageArgs) Usage {
	var rows []TaskRow
	for _, task := range RegisteredTasks() {
		rows = append(rows, TaskRow{
			Display: task.Name(),
			Desc:    task.Description(),
		})
	}
	slices.SortFunc(rows, func(a, b TaskRow) int {
		return strings.Compare(a.Display, b.Display)
	})

	return Usage{
		AppInfo:   args.AppInfo,
		CLIWriter: args.Writer,
		TaskRows:  rows,
		Examples:  collectExamples(args.ExeName()),
	}
}

// ShowUsage renders the usage screen to the writer
func ShowUsage(args UsageArgs) error {
	return UsageTemplate.Execute(args.Writer.Writer(), BuildUsage(args))
}

func collectExamples(exe dt.Filename) []Example {
	// Universal help pattern first
	all := []Example{
		{Descr: "Show help for a task", Cmd: fmt.Sprintf("%s <task> -- --help", exe)},
	}

	for _, task := range RegisteredTasks() {
		usage := strings.TrimSpace(task.Usage())
		cmdline := fmt.Sprintf("%s %s -- %s", exe, task.Name(), usage)
		all = append(all, Example{
			Descr: fmt.Sprintf("Run %s", task.Name()),
			Cmd:   normalizeSpaces(cmdline),
		})
	}
	return dedupeExamples(all)
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func dedupeExamples(in []Example) []Example {
	seen := map[string]struct{}{}
	var out []Example
	for _, e := range in {
		key := e.Descr + "||" + e.Cmd
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}
