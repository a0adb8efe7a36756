package carousel

import (
	"errors"
	"fmt"
)

// Code is a machine-readable carousel error code.
type Code string

const (
	ErrCodeInvalidIndex    Code = "INVALID_INDEX"
	ErrCodeEmptySequence   Code = "EMPTY_SEQUENCE"
	ErrCodePreviewDisabled Code = "PREVIEW_DISABLED"
)

// Error is a carousel failure. None of them are fatal; they exist so a
// render host can log or report them.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of err, or "" if err is not a carousel error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
