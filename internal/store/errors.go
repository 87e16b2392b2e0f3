package store

import (
	"errors"
	"fmt"
)

// ErrNoData is returned by Statistics when the store holds no records.
var ErrNoData = errors.New("no data")

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeParse indicates a malformed record line.
	ErrCodeParse ErrorCode = "PARSE_ERROR"

	// ErrCodeIO indicates the resource could not be opened, read or written.
	ErrCodeIO ErrorCode = "IO_ERROR"

	// ErrCodeDuplicateID indicates Add was called with an existing ID.
	ErrCodeDuplicateID ErrorCode = "DUPLICATE_ID"

	// ErrCodeNotFound indicates no record has the requested ID.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeInvalidScore indicates a score string is not a number.
	ErrCodeInvalidScore ErrorCode = "INVALID_SCORE"

	// ErrCodeInvalidID indicates an empty record ID.
	ErrCodeInvalidID ErrorCode = "INVALID_ID"

	// ErrCodeInvalidField indicates a field the file format cannot hold.
	ErrCodeInvalidField ErrorCode = "INVALID_FIELD"
)

// Error is the error type returned by store operations.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// ID is the record ID involved, if any.
	ID string

	// Path is the resource path involved, if any.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Path != "" {
		msg += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func hasCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// IsNotFound returns true if err is a NOT_FOUND store error.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsDuplicate returns true if err is a DUPLICATE_ID store error.
func IsDuplicate(err error) bool { return hasCode(err, ErrCodeDuplicateID) }

// IsInvalidScore returns true if err is an INVALID_SCORE store error.
func IsInvalidScore(err error) bool { return hasCode(err, ErrCodeInvalidScore) }

// IsIOError returns true if err is an IO_ERROR store error.
func IsIOError(err error) bool { return hasCode(err, ErrCodeIO) }

// IsParseError returns true if err is a PARSE_ERROR store error.
func IsParseError(err error) bool { return hasCode(err, ErrCodeParse) }

func newNotFoundError(id string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("no record with id %q", id),
		ID:      id,
	}
}

func newDuplicateError(id string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateID,
		Message: fmt.Sprintf("id %q already exists", id),
		ID:      id,
	}
}

func newInvalidScoreError(id string, err error) *Error {
	return &Error{
		Code:    ErrCodeInvalidScore,
		Message: "score must be a number",
		ID:      id,
		Err:     err,
	}
}

func newIOError(op, path string, err error) *Error {
	return &Error{
		Code:    ErrCodeIO,
		Message: op,
		Path:    path,
		Err:     err,
	}
}
