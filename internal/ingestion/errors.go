package ingestion

import "fmt"

// ExtractionEmptyError reports that a document produced no usable text.
type ExtractionEmptyError struct {
	Source string
	Length int
}

func (e *ExtractionEmptyError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("extraction produced no usable text from %s (%d chars, need %d)", e.Source, e.Length, MinUsableLength)
	}
	return fmt.Sprintf("extraction produced no usable text (%d chars, need %d)", e.Length, MinUsableLength)
}

// UnsupportedFormatError reports a file type with no decoder.
type UnsupportedFormatError struct {
	Filename string
	MimeType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s (%s)", e.Filename, e.MimeType)
}

// DecodeError wraps a decoder failure.
type DecodeError struct {
	Format string
	Cause  error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error: %s: %v", e.Format, e.Cause)
	}
	return fmt.Sprintf("decode error: %s", e.Format)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
