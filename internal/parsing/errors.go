package parsing

import "fmt"

// ExtractorPanicError records a panic recovered from a single extractor.
// The profile is still returned with that field left empty.
type ExtractorPanicError struct {
	Extractor string
	Value     any
}

func (e *ExtractorPanicError) Error() string {
	return fmt.Sprintf("extractor %s panicked: %v", e.Extractor, e.Value)
}

// ValidationError represents an error during post-extraction validation
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
