package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Computation errors
	ErrInsufficientData       = errors.New("insufficient data for analysis")
	ErrEmptyPartition         = errors.New("partition has no members")
	ErrOutOfRange             = errors.New("value outside every bin")
	ErrDegenerateDistribution = errors.New("degenerate distribution: standard deviation is zero")
	ErrZeroVariance           = errors.New("sample variance is zero")
	ErrLengthMismatch         = errors.New("paired series differ in length")

	// Input errors
	ErrNonFinite       = errors.New("series contains a non-finite value")
	ErrInvalidArgument = errors.New("invalid argument")

	// Loading errors
	ErrFileNotFound  = errors.New("catalog file not found")
	ErrMissingColumn = errors.New("required column missing")
)

// Error constructors with context
func NewInsufficientDataError(statistic string, need, got int) error {
	return fmt.Errorf("%w: %s needs at least %d observations, got %d", ErrInsufficientData, statistic, need, got)
}

func NewLengthMismatchError(x, y int) error {
	return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, x, y)
}

func NewOutOfRangeError(value float64) error {
	return fmt.Errorf("%w: %g", ErrOutOfRange, value)
}

func NewEmptyPartitionError(category string) error {
	return fmt.Errorf("%w: %q", ErrEmptyPartition, category)
}

func NewInvalidArgumentError(name string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidArgument, name, reason)
}

// Error checking helpers
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

// IsDegenerate reports whether err stems from a zero standard deviation,
// whether raised by a fitted distribution or by a sample.
func IsDegenerate(err error) bool {
	return errors.Is(err, ErrDegenerateDistribution) || errors.Is(err, ErrZeroVariance)
}

func IsInputError(err error) bool {
	return errors.Is(err, ErrNonFinite) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrLengthMismatch)
}

func IsLoadError(err error) bool {
	return errors.Is(err, ErrFileNotFound) || errors.Is(err, ErrMissingColumn)
}
