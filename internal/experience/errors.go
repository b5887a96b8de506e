// Package experience converts duration strings into years and assigns a
// seniority level.
package experience

import "fmt"

// DurationError reports a duration string that matches no known form.
type DurationError struct {
	Input string
	Cause error
}

func (e *DurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("unrecognized duration %q: %v", e.Input, e.Cause)
	}
	return fmt.Sprintf("unrecognized duration %q", e.Input)
}

func (e *DurationError) Unwrap() error {
	return e.Cause
}
