package record

import "fmt"

// ParseError reports a malformed record line or score field.
type ParseError struct {
	// Line is the offending input with its terminator removed.
	Line string

	// Field names the part that failed: "line" or "score".
	Field string

	// Reason is a human-readable description.
	Reason string

	// Err is the underlying conversion error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Field, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
