package poly

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is the umbrella sentinel for unusable coefficient lists.
	ErrInvalidInput = errors.New("poly: invalid input")

	// ErrTooShort indicates fewer than two coefficients (degree < 1).
	ErrTooShort = fmt.Errorf("%w: need at least two coefficients", ErrInvalidInput)

	// ErrZeroLeading indicates a zero leading coefficient.
	ErrZeroLeading = fmt.Errorf("%w: leading coefficient is zero", ErrInvalidInput)

	// ErrNaNInf indicates a NaN or ±Inf coefficient.
	ErrNaNInf = fmt.Errorf("%w: coefficient is NaN or Inf", ErrInvalidInput)

	// ErrRootFindingFailed indicates the numeric root finder did not converge.
	ErrRootFindingFailed = errors.New("poly: root finding failed")
)

const (
	opNew       = "New"
	opCompanion = "Companion"
	opRoots     = "Roots"
)

// polyErrorf wraps err with an operation tag, preserving it for errors.Is.
func polyErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
