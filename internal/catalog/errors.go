package catalog

import "fmt"

// LoadError represents a failure reading or decoding an embedded catalog file
type LoadError struct {
	File  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load catalog file %s: %v", e.File, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
