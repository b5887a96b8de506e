package config

import "fmt"

// ValidationError is returned when a loaded configuration is invalid.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// EnvError is returned when an environment variable cannot be parsed.
type EnvError struct {
	Key   string
	Value string
	Cause error
}

func (e *EnvError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Key, e.Cause)
}

func (e *EnvError) Unwrap() error {
	return e.Cause
}
