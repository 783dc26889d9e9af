package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned for file formats without an extractor.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrHTTPRequestFailed is returned when a job page cannot be fetched.
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no main text can be found in a page.
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// ExtractionError reports a failure to turn a binary document into text.
type ExtractionError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s extraction failed: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s extraction failed: %s", e.Format, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
