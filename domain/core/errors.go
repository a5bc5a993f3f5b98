package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrInsufficientData is returned when a sample has fewer finite values
	// than the structural minimum for the requested test.
	ErrInsufficientData = errors.New("insufficient data for test")

	// ErrLengthMismatch is returned when paired inputs of equal length are
	// required but the arrays differ in size.
	ErrLengthMismatch = errors.New("input length mismatch")

	// ErrInvalidParameter is returned for out-of-range or unknown
	// configuration values: alpha outside (0,1), unknown test kind or tail,
	// non-positive null variance, null proportion outside (0,1), or a
	// probability outside (0,1) passed to a quantile function.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNumericDegeneracy is returned when a statistic cannot be formed
	// without dividing by zero (zero sample variance, perfect correlation)
	// or when an iterative routine fails to converge at an input where the
	// result would decide significance.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
)

// Error constructors with context
func NewInsufficientDataError(test string, got, need int) error {
	return fmt.Errorf("%w: %s requires at least %d finite values, got %d", ErrInsufficientData, test, need, got)
}

func NewLengthMismatchError(lenA, lenB int) error {
	return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, lenA, lenB)
}

func NewInvalidParameterError(name string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, name, reason)
}

func NewDegeneracyError(detail string) error {
	return fmt.Errorf("%w: %s", ErrNumericDegeneracy, detail)
}

// Error checking helpers
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}

func IsLengthMismatch(err error) bool {
	return errors.Is(err, ErrLengthMismatch)
}

func IsInvalidParameter(err error) bool {
	return errors.Is(err, ErrInvalidParameter)
}

func IsNumericDegeneracy(err error) bool {
	return errors.Is(err, ErrNumericDegeneracy)
}
