package taskargs

import (
	"strconv"
	"time"
)

// Clock abstracts wall-clock access so relative date windows are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock reads the real local wall clock
var SystemClock Clock = systemClock{}

// DateWindow is a (start, end) pair of YYYY-MM-DD dates. No start <= end
// ordering is enforced; downstream consumers may receive an inverted
// window when given inverted inputs.
type DateWindow struct {
	StartDate string
	EndDate   string
}

// WindowArgs are the inputs to ResolveWindow. StartDate, EndDate, DaysAgo,
// and DaysAgoEnd are nil when the caller did not supply them.
type WindowArgs struct {
	StartDate      *string
	EndDate        *string
	DaysAgo        *string
	DaysAgoEnd     *string
	DefaultDaysAgo int
	Clock          Clock // nil selects SystemClock
}

// ResolveWindow produces a concrete date window under this precedence:
//
// With neither StartDate nor EndDate supplied the window is computed
// relative to local "now": start is DaysAgo days back (DefaultDaysAgo when
// unsupplied), end is DaysAgoEnd days back (0 when unsupplied).
//
// With either explicit date supplied, both values go through date
// validation exactly as given and the relative offsets are ignored even
// when present. Supplying only one date leaves the other nil, which fails
// date validation rather than falling back to the relative branch; that
// asymmetry is long-standing observed behavior and is kept.
func ResolveWindow(args WindowArgs) (w DateWindow, err error) {
	var clock Clock
	var diffBegin, diffEnd int
	var now time.Time

	clock = args.Clock
	if clock == nil {
		clock = SystemClock
	}

	if args.StartDate == nil && args.EndDate == nil {
		diffBegin, err = intArg(args.DaysAgo, args.DefaultDaysAgo)
		if err != nil {
			goto end
		}
		diffEnd, err = intArg(args.DaysAgoEnd, 0)
		if err != nil {
			goto end
		}
		now = clock.Now()
		w.StartDate = now.AddDate(0, 0, -diffBegin).Format(DateLayout)
		w.EndDate = now.AddDate(0, 0, -diffEnd).Format(DateLayout)
		goto end
	}

	w.StartDate, err = dateArg("start-date", args.StartDate)
	if err != nil {
		goto end
	}
	w.EndDate, err = dateArg("end-date", args.EndDate)

end:
	return w, err
}

// intArg validates an optional integer-holding string, falling back to def
func intArg(value *string, def int) (n int, err error) {
	var s string

	if value == nil {
		return def, nil
	}
	s, err = ValidateInteger(*value)
	if err != nil {
		return 0, err
	}
	// ValidateInteger guarantees this parse succeeds
	n, _ = strconv.Atoi(s)
	return n, nil
}

// dateArg validates an explicit date argument; a nil value is an invalid
// date, not a fallback.
func dateArg(name string, value *string) (s string, err error) {
	var d time.Time

	if value == nil {
		err = NewErr(ErrInvalidDate, "argument", name, "value", "(none)")
		goto end
	}
	d, err = ParseDate(*value)
	if err != nil {
		err = WithErr(err, "argument", name)
		goto end
	}
	s = d.Format(DateLayout)

end:
	return s, err
}
