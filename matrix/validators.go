// SPDX-License-Identifier: MIT
// Package matrix: central validators.
// Every kernel calls these before touching data so that error priority is
// uniform across the package: nil -> shape -> values.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf tags a validator failure with the validator name.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil returns ErrNilMatrix if m is nil (including typed-nil *Dense).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare returns ErrNonSquare if m is not n×n.
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSquareNonNil combines ValidateNotNil and ValidateSquare.
func ValidateSquareNonNil(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}

	return ValidateSquare(m)
}

// ValidateFinite returns ErrNaNInf if any entry of m is NaN or ±Inf.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if d, ok := m.(*Dense); ok {
		for idx, v := range d.data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite",
					fmt.Errorf("at (%d,%d): %w", idx/d.c, idx%d.c, ErrNaNInf))
			}
		}

		return nil
	}
	var i, j int
	var v float64
	var err error
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateFinite", err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateFinite", fmt.Errorf("at (%d,%d): %w", i, j, ErrNaNInf))
			}
		}
	}

	return nil
}

// ValidateIteration checks a (tolerance, iteration cap) pair used by
// iterative kernels: tol must be finite and > 0, maxIter must be > 0.
func ValidateIteration(tol float64, maxIter int) error {
	if !(tol > 0) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateIteration", fmt.Errorf("tol=%g: %w", tol, ErrBadArgument))
	}
	if maxIter <= 0 {
		return validatorErrorf("ValidateIteration", fmt.Errorf("maxIter=%d: %w", maxIter, ErrBadArgument))
	}

	return nil
}

// isSymmetric reports whether d equals its transpose exactly.
func isSymmetric(d *Dense) bool {
	n := d.r
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if d.data[i*n+j] != d.data[j*n+i] {
				return false
			}
		}
	}

	return true
}
