package taskargs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueNotAllowed          = errors.New("value is not in the allowed set")
	ErrMultipleValuesNotAllowed = errors.New("multiple values are not allowed")
	ErrNotAnInteger             = errors.New("value is not a base-10 integer")
	ErrInvalidDate              = errors.New("invalid date; expected YYYY-MM-DD")
	ErrUnknownTask              = errors.New("unknown task")
	ErrTaskNotReenabled         = errors.New("task already invoked; call Reenable() before invoking again")
	ErrGrammarParseFailed       = errors.New("usage grammar could not be parsed")
)

// NewErr builds an error from a mix of sentinel errors and "key", value pairs.
// Errors are joined so errors.Is keeps working; key/value pairs become a
// "key=value" suffix on the message.
func NewErr(args ...any) error {
	var errs []error
	var kv []string

	for i := 0; i < len(args); i++ {
		switch v := args[i].(type) {
		case error:
			errs = append(errs, v)
		case string:
			if i+1 < len(args) {
				kv = append(kv, fmt.Sprintf("%s=%v", v, args[i+1]))
				i++
				continue
			}
			kv = append(kv, v)
		default:
			kv = append(kv, fmt.Sprintf("%v", v))
		}
	}

	err := errors.Join(errs...)
	switch {
	case err == nil && len(kv) == 0:
		return nil
	case err == nil:
		return errors.New(strings.Join(kv, ", "))
	case len(kv) == 0:
		return err
	}
	return fmt.Errorf("%w; %s", err, strings.Join(kv, ", "))
}

// WithErr annotates an existing error with additional sentinels and context
func WithErr(err error, args ...any) error {
	if err == nil {
		return NewErr(args...)
	}
	return NewErr(append([]any{err}, args...)...)
}

// CombineErrs joins a slice of errors, dropping nils
func CombineErrs(errs []error) error {
	return errors.Join(errs...)
}

// AppendErr appends err to errs only when err is non-nil
func AppendErr(errs []error, err error) []error {
	if err != nil {
		errs = append(errs, err)
	}
	return errs
}
