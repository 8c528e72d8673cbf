// Package errors defines the coded errors returned by the compositor.
//
// Callers distinguish caller mistakes from encoder failures by code rather
// than by message text:
//
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // reject the request, nothing was drawn
//	}
//
// There is no retry logic anywhere in the module. Composition is
// deterministic, so an identical call fails identically; transient encoder
// failures are for the caller to retry.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	// ErrCodeInvalidInput covers empty image lists, bad dimensions and
	// malformed text elements. Rejected before any drawing.
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	// ErrCodeInvalidConfig covers splice configs that cannot be laid out.
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	// ErrCodeDecode means a source image could not be opened or decoded.
	ErrCodeDecode Code = "DECODE_FAILED"
	// ErrCodeEncode means the encoder refused the format or quality.
	ErrCodeEncode Code = "ENCODE_FAILED"
	// ErrCodeUnsupported means a requested format has no encoder here. It
	// appears as the cause of an ErrCodeEncode error.
	ErrCodeUnsupported Code = "UNSUPPORTED"
	// ErrCodeInternal marks bugs.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause so errors.Is/As see through *Error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsInput reports whether err was caused by the caller's input or config,
// i.e. nothing was drawn and retrying the same call is pointless.
func IsInput(err error) bool {
	return Is(err, ErrCodeInvalidInput) || Is(err, ErrCodeInvalidConfig)
}
