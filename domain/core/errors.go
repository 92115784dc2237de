package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrLengthMismatch    = errors.New("boundary strings differ in length")
	ErrUnitCountMismatch = errors.New("segmentations cover a different number of units")
	ErrInvalidMasses     = errors.New("invalid segment masses")
	ErrEmptyDataset      = errors.New("dataset contains no codings")
	ErrItemMismatch      = errors.New("coders do not cover the same items")
	ErrTooFewCoders      = errors.New("at least two coders are required")

	// Dispatch errors
	ErrUnknownMetric = errors.New("unknown metric")
	ErrUnknownFormat = errors.New("unknown dataset format")
)

// Error constructors with context
func NewLengthMismatchError(lenA, lenB int) error {
	return fmt.Errorf("%w: %d vs %d positions", ErrLengthMismatch, lenA, lenB)
}

func NewUnitCountMismatchError(unitsA, unitsB int) error {
	return fmt.Errorf("%w: %d vs %d units", ErrUnitCountMismatch, unitsA, unitsB)
}

func NewInvalidMassError(index, mass int) error {
	return fmt.Errorf("%w: mass %d at index %d must be positive", ErrInvalidMasses, mass, index)
}

func NewUnknownMetricError(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrLengthMismatch) ||
		errors.Is(err, ErrUnitCountMismatch) ||
		errors.Is(err, ErrInvalidMasses)
}

func IsDatasetError(err error) bool {
	return errors.Is(err, ErrEmptyDataset) ||
		errors.Is(err, ErrItemMismatch) ||
		errors.Is(err, ErrTooFewCoders)
}
