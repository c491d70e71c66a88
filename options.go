package taskargs

import (
	"time"

	"github.com/spf13/pflag"
)

const (
	DefaultQuiet     = false
	DefaultDryRun    = false
	DefaultTimeout   = 0
	DefaultVerbosity = int(LowVerbosity)
)

// Options holds the global CLI options that apply before any task is named.
// Fields are pointers so pflag can bind them and so NewOptions can tell
// "unset" from zero values.
type Options struct {
	quiet     *bool
	verbosity *int
	dryRun    *bool
	timeout   *int
}

func (o *Options) Quiet() bool {
	return *o.quiet
}
func (o *Options) Verbosity() Verbosity {
	return Verbosity(*o.verbosity)
}
func (o *Options) DryRun() bool {
	return *o.dryRun
}
func (o *Options) Timeout() time.Duration {
	return time.Duration(*o.timeout) * time.Second
}

type OptionsArgs struct {
	Quiet     *bool
	Verbosity *int
	DryRun    *bool
	Timeout   *int
}

// NewOptions creates an Options instance from raw values. Useful when loading
// options from somewhere other than the command line. Nil values use the
// corresponding defaults.
func NewOptions(args OptionsArgs) (*Options, error) {
	verbosity := valueOrDefault(args.Verbosity, DefaultVerbosity)
	v, err := ParseVerbosity(verbosity)
	if err != nil {
		return nil, err
	}

	return &Options{
		quiet:     ptr(valueOrDefault(args.Quiet, DefaultQuiet)),
		verbosity: ptr(int(v)),
		dryRun:    ptr(valueOrDefault(args.DryRun, DefaultDryRun)),
		timeout:   ptr(valueOrDefault(args.Timeout, DefaultTimeout)),
	}, nil
}

// ParseOptions parses global options from os.Args, stopping at the first
// non-flag argument so a task's own flags pass through untouched.
//
// Returns the options and the remaining args, starting with the task name.
func ParseOptions(osArgs []string) (_ *Options, _ []string, err error) {
	var errs []error
	var verbosity Verbosity
	var args []string
	var remaining []string

	opts := &Options{
		quiet:     new(bool),
		verbosity: new(int),
		dryRun:    new(bool),
		timeout:   new(int),
	}

	// Strip program name from os.Args
	if len(osArgs) > 0 {
		args = osArgs[1:]
	}

	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.BoolVarP(opts.quiet, "quiet", "q", DefaultQuiet, "Disable most command line output")
	fs.IntVarP(opts.verbosity, "verbosity", "v", DefaultVerbosity, "Verbosity of command line output (0 to 3)")
	fs.BoolVar(opts.dryRun, "dry-run", DefaultDryRun, "Resolve task arguments but do not run the task")
	fs.IntVarP(opts.timeout, "timeout", "t", DefaultTimeout, "Per-task timeout in seconds (0 disables)")

	err = fs.Parse(args)
	if err != nil {
		goto end
	}
	remaining = fs.Args()

	verbosity, err = ParseVerbosity(*opts.verbosity)
	errs = AppendErr(errs, err)
	if err == nil {
		*opts.verbosity = int(verbosity)
	}

	err = CombineErrs(errs)
end:
	return opts, remaining, err
}
