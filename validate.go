package taskargs

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mikeschinkel/go-dt"
)

// DateLayout is the textual date form used throughout: YYYY-MM-DD
const DateLayout = "2006-01-02"

// Anchored so partial forms like 2024-1-5 are rejected up front
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateValues checks that every comma-separated token of input is a
// member of allowed. Allowed may be a []string or a comma-joined string;
// its tokens are trimmed. When allowMultiple is false, input must hold a
// single token. On success input is returned unchanged; callers re-split
// as needed.
func ValidateValues(input string, allowed any, allowMultiple bool) (_ string, err error) {
	var allowedList []string
	var tokens []string
	var invalid []string

	switch v := allowed.(type) {
	case []string:
		// Clone so trimming below cannot write into the caller's slice
		allowedList = slices.Clone(v)
	case string:
		allowedList = strings.Split(v, ",")
	default:
		err = NewErr(ErrValueNotAllowed, "allowed_type", fmt.Sprintf("%T", allowed),
			"rule", "allowed must be a []string or a comma-joined string")
		goto end
	}
	for i, a := range allowedList {
		allowedList[i] = strings.TrimSpace(a)
	}

	if strings.TrimSpace(input) == "" {
		err = NewErr(dt.ErrEmpty, "allowed", strings.Join(allowedList, ", "))
		goto end
	}

	tokens = strings.Split(input, ",")
	if !allowMultiple && len(tokens) > 1 {
		err = NewErr(ErrMultipleValuesNotAllowed, "values", input)
		goto end
	}

	for _, token := range tokens {
		if !slices.Contains(allowedList, token) {
			invalid = append(invalid, token)
		}
	}
	if len(invalid) > 0 {
		err = NewErr(ErrValueNotAllowed,
			"values", strings.Join(invalid, ", "),
			"allowed", strings.Join(allowedList, ", "),
		)
		goto end
	}

end:
	return input, err
}

// ValidateInteger checks that value parses as an optionally signed base-10
// integer and returns it unchanged.
func ValidateInteger(value string) (_ string, err error) {
	_, perr := strconv.ParseInt(value, 10, 64)
	if perr != nil {
		err = NewErr(ErrNotAnInteger, "value", value)
	}
	return value, err
}

// ParseDate parses a strict YYYY-MM-DD calendar date in local time.
// Unlike the validators above this failure is routinely recoverable;
// termination, if any, happens at the runner boundary.
func ParseDate(value string) (d time.Time, err error) {
	var perr error

	if !dateRegex.MatchString(value) {
		err = NewErr(ErrInvalidDate, "value", value)
		goto end
	}
	d, perr = time.ParseInLocation(DateLayout, value, time.Local)
	if perr != nil {
		err = NewErr(ErrInvalidDate, "value", value)
	}

end:
	return d, err
}
