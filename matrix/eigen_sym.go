// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// EigenSym computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi sweeps.
// Implementation:
//   - Stage 1: Validate non-nil, square, finite and exactly symmetric input.
//   - Stage 2: Repeatedly pick (p,q) with the largest |A[p,q]| in i→j order and apply a Jacobi rotation.
//
// Inputs:
//   - m: symmetric Matrix; n := m.Rows().
//   - tol: absolute convergence threshold on the largest off-diagonal entry.
//   - maxIter: safety cap on rotations.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix), in diagonal order.
//   - *Dense: Q whose columns are eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf.
//   - ErrBadArgument (bad tol/maxIter, or asymmetric input).
//   - ErrMatrixEigenFailed (max off-diagonal ≥ tol after maxIter).
//
// Determinism:
//   - Fixed i→j pivot search and fixed update order produce stable results.
//
// Complexity:
//   - Time O(maxIter * n), plus O(n²) per pivot search; Space O(n²).
func EigenSym(m Matrix, tol float64, maxIter int) ([]float64, *Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	if err := ValidateIteration(tol, maxIter); err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}
	if !isSymmetric(src) {
		return nil, nil, matrixErrorf(opEigenSym, fmt.Errorf("asymmetric input: %w", ErrBadArgument))
	}

	n := src.r
	a := src.clone()
	q, err := NewIdentity(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigenSym, err)
	}

	var (
		iter, i, j, p, r int
		maxOff, off      float64
		app, aqq, apq    float64
		aip, aiq         float64
		theta, t, c, s   float64
	)
	for iter = 0; iter < maxIter; iter++ {
		// J.1: pivot (p,r) maximizing |A[p,r]|
		maxOff = 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				if off = math.Abs(a.data[i*n+j]); off > maxOff {
					maxOff, p, r = off, i, j
				}
			}
		}
		if maxOff < tol {
			break
		}

		// J.2: rotation parameters
		app, aqq, apq = a.data[p*n+p], a.data[r*n+r], a.data[p*n+r]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		// J.3: rotate rows/cols p and r
		for i = 0; i < n; i++ {
			if i == p || i == r {
				continue
			}
			aip, aiq = a.data[i*n+p], a.data[i*n+r]
			a.data[i*n+p] = c*aip - s*aiq
			a.data[p*n+i] = a.data[i*n+p]
			a.data[i*n+r] = s*aip + c*aiq
			a.data[r*n+i] = a.data[i*n+r]
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[r*n+r] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+r], a.data[r*n+p] = 0, 0

		// J.4: accumulate into Q
		for i = 0; i < n; i++ {
			aip, aiq = q.data[i*n+p], q.data[i*n+r]
			q.data[i*n+p] = c*aip - s*aiq
			q.data[i*n+r] = s*aip + c*aiq
		}
	}

	maxOff = 0
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			maxOff = math.Max(maxOff, math.Abs(a.data[i*n+j]))
		}
	}
	if maxOff >= tol {
		return nil, nil, matrixErrorf(opEigenSym, ErrMatrixEigenFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}
