package ode

import (
	"fmt"

	"github.com/katalvlaran/odechar/poly"
)

// The ode package shares its sentinels with poly so that a caller matching
// ode.ErrInvalidInput also catches poly.ErrTooShort and friends.
var (
	// ErrInvalidInput: fewer than two coefficients, zero leading coefficient,
	// or a NaN/Inf coefficient.
	ErrInvalidInput = poly.ErrInvalidInput

	// ErrRootFindingFailed: the root finder failed to converge or returned an
	// unusable root set (wrong count, non-finite values).
	ErrRootFindingFailed = poly.ErrRootFindingFailed
)

const (
	opSolve   = "Solve"
	opAnalyze = "Analyze"
)

// odeErrorf wraps err with an operation tag, preserving it for errors.Is.
func odeErrorf(tag string, err error) error {
	return fmt.Errorf("ode: %s: %w", tag, err)
}
