package errors

import (
	stderrors "errors"
	"fmt"

	"koistat/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context. Errors that are not already
// AppErrors take the code CodeFor assigns them.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    CodeFor(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid    = "CONFIG_INVALID"
	CodeNotFound         = "NOT_FOUND"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeEmptyPartition   = "EMPTY_PARTITION"
	CodeOutOfRange       = "OUT_OF_RANGE"
	CodeDegenerate       = "DEGENERATE_DISTRIBUTION"
	CodeZeroVariance     = "ZERO_VARIANCE"
	CodeLengthMismatch   = "LENGTH_MISMATCH"
	CodeMissingColumn    = "MISSING_COLUMN"
)

// CodeFor returns the code of an AppError, or maps a domain sentinel to its
// code. Anything unrecognised is an internal error.
func CodeFor(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case stderrors.Is(err, core.ErrInsufficientData):
		return CodeInsufficientData
	case stderrors.Is(err, core.ErrEmptyPartition):
		return CodeEmptyPartition
	case stderrors.Is(err, core.ErrOutOfRange):
		return CodeOutOfRange
	case stderrors.Is(err, core.ErrZeroVariance):
		return CodeZeroVariance
	case stderrors.Is(err, core.ErrDegenerateDistribution):
		return CodeDegenerate
	case stderrors.Is(err, core.ErrLengthMismatch):
		return CodeLengthMismatch
	case stderrors.Is(err, core.ErrNonFinite), stderrors.Is(err, core.ErrInvalidArgument):
		return CodeInvalidInput
	case stderrors.Is(err, core.ErrFileNotFound):
		return CodeNotFound
	case stderrors.Is(err, core.ErrMissingColumn):
		return CodeMissingColumn
	}
	return CodeInternalError
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}
