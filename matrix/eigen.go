// SPDX-License-Identifier: MIT
// Package matrix: eigenvalues of general real square matrices.
//
// Purpose:
//   - Provide the root-finding backend for characteristic polynomials: the
//     eigenvalues of a companion matrix are the polynomial's roots.
//   - Companion matrices are not symmetric, so complex conjugate pairs must be
//     produced; the Jacobi kernel in eigen_sym.go is only a fast path.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping.
const (
	opEigen      = "Eigenvalues"
	opEigenSym   = "EigenSym"
	opBalance    = "Balance"
	opHessenberg = "Hessenberg"
)

// DefaultEigenMaxIter is the per-eigenvalue cap on QR iterations used by callers
// that have no better estimate.
const DefaultEigenMaxIter = 60

// exceptionalShiftEvery is the iteration period at which an ad hoc shift is
// applied to break cycles of the Francis iteration.
const exceptionalShiftEvery = 10

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Eigenvalues computes all eigenvalues of a general real square matrix.
// Implementation:
//   - Stage 1: Validate non-nil, square, finite input and (tol, maxIter).
//   - Stage 2: Symmetric input → EigenSym (real spectrum). Otherwise balance,
//     reduce to upper Hessenberg and run the Francis double-shift QR iteration.
//
// Behavior highlights:
//   - Complex eigenvalues are returned as exact conjugate pairs (a±ib).
//   - Output order is the deflation order of the iteration (bottom-up); callers
//     that need a canonical order sort the result themselves.
//   - The input is never mutated.
//
// Inputs:
//   - m: real square matrix.
//   - tol: relative deflation threshold; a subdiagonal entry h[l][l-1] is treated
//     as zero once |h[l][l-1]| ≤ tol·(|h[l-1][l-1]|+|h[l][l]|). Machine epsilon
//     (≈2.2e-16) gives full accuracy.
//   - maxIter: cap on QR iterations spent isolating any single eigenvalue (or pair).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrBadArgument.
//   - ErrMatrixEigenFailed (an eigenvalue did not deflate within maxIter).
//
// Complexity:
//   - Time O(n³) typical (O(n²) per QR sweep on a Hessenberg matrix), Space O(n²).
func Eigenvalues(m Matrix, tol float64, maxIter int) ([]complex128, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	if err := ValidateIteration(tol, maxIter); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opEigen, err)
	}

	n := src.r
	if isSymmetric(src) {
		vals, _, symErr := EigenSym(src, symmetricTolerance(src, tol), maxIter*n*n)
		if symErr != nil {
			return nil, matrixErrorf(opEigen, symErr)
		}
		out := make([]complex128, n)
		for i, v := range vals {
			out[i] = complex(v, 0)
		}

		return out, nil
	}

	a := src.clone()
	if _, err = Balance(a); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	hessenbergInPlace(a)
	out, err := hqr(a, tol, maxIter)
	if err != nil {
		return nil, matrixErrorf(opEigen, err)
	}

	return out, nil
}

// symmetricFloor bounds the relative Jacobi threshold from below; rotations
// can stall just above machine precision.
const symmetricFloor = 1e-13

// symmetricTolerance scales a relative tolerance to an absolute Jacobi threshold.
func symmetricTolerance(d *Dense, tol float64) float64 {
	tol = math.Max(tol, symmetricFloor)
	var norm float64
	for _, v := range d.data {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return tol
	}

	return tol * norm
}

// hqr runs the Francis double-shift QR iteration on an upper Hessenberg
// matrix a (destroyed on return) and returns its eigenvalues.
func hqr(a *Dense, eps float64, maxIter int) ([]complex128, error) {
	n := a.r
	h := func(i, j int) float64 { return a.data[i*n+j] }
	wr := make([]complex128, n)

	var anorm float64
	var i, j int
	for i = 0; i < n; i++ {
		for j = max(i-1, 0); j < n; j++ {
			anorm += math.Abs(h(i, j))
		}
	}

	var (
		nn, l, m, k, its, mmin int
		p, q, r, s, t          float64
		u, v, w, x, y, z       float64
	)
	nn = n - 1
	for nn >= 0 {
		its = 0
		for {
			// look for a single small subdiagonal element
			for l = nn; l > 0; l-- {
				s = math.Abs(h(l-1, l-1)) + math.Abs(h(l, l))
				if s == 0 {
					s = anorm
				}
				if math.Abs(h(l, l-1)) <= eps*s {
					a.data[l*n+l-1] = 0
					break
				}
			}
			x = h(nn, nn)
			if l == nn {
				// one root found
				wr[nn] = complex(x+t, 0)
				nn--
				break
			}
			y = h(nn-1, nn-1)
			w = h(nn, nn-1) * h(nn-1, nn)
			if l == nn-1 {
				// two roots found
				p = 0.5 * (y - x)
				q = p*p + w
				z = math.Sqrt(math.Abs(q))
				x += t
				if q >= 0 {
					z = p + math.Copysign(z, p)
					wr[nn-1] = complex(x+z, 0)
					wr[nn] = wr[nn-1]
					if z != 0 {
						wr[nn] = complex(x-w/z, 0)
					}
				} else {
					wr[nn-1] = complex(x+p, z)
					wr[nn] = complex(x+p, -z)
				}
				nn -= 2
				break
			}

			if its == maxIter {
				return nil, fmt.Errorf("no convergence after %d iterations at index %d: %w",
					its, nn, ErrMatrixEigenFailed)
			}
			if its > 0 && its%exceptionalShiftEvery == 0 {
				t += x
				for i = 0; i <= nn; i++ {
					a.data[i*n+i] -= x
				}
				s = math.Abs(h(nn, nn-1)) + math.Abs(h(nn-1, nn-2))
				x = 0.75 * s
				y = x
				w = -0.4375 * s * s
			}
			its++

			// look for two consecutive small subdiagonal elements
			for m = nn - 2; m >= l; m-- {
				z = h(m, m)
				r = x - z
				s = y - z
				p = (r*s-w)/h(m+1, m) + h(m, m+1)
				q = h(m+1, m+1) - z - r - s
				r = h(m+2, m+1)
				s = math.Abs(p) + math.Abs(q) + math.Abs(r)
				p /= s
				q /= s
				r /= s
				if m == l {
					break
				}
				u = math.Abs(h(m, m-1)) * (math.Abs(q) + math.Abs(r))
				v = math.Abs(p) * (math.Abs(h(m-1, m-1)) + math.Abs(z) + math.Abs(h(m+1, m+1)))
				if u <= eps*v {
					break
				}
			}
			for i = m; i < nn-1; i++ {
				a.data[(i+2)*n+i] = 0
				if i != m {
					a.data[(i+2)*n+i-1] = 0
				}
			}

			// double QR step on rows l..nn and columns m..nn
			for k = m; k < nn; k++ {
				if k != m {
					p = h(k, k-1)
					q = h(k+1, k-1)
					r = 0
					if k+1 != nn {
						r = h(k+2, k-1)
					}
					if x = math.Abs(p) + math.Abs(q) + math.Abs(r); x != 0 {
						p /= x
						q /= x
						r /= x
					}
				}
				s = math.Copysign(math.Sqrt(p*p+q*q+r*r), p)
				if s == 0 {
					continue
				}
				if k == m {
					if l != m {
						a.data[k*n+k-1] = -h(k, k-1)
					}
				} else {
					a.data[k*n+k-1] = -s * x
				}
				p += s
				x = p / s
				y = q / s
				z = r / s
				q /= p
				r /= p
				// row modification
				for j = k; j <= nn; j++ {
					p = h(k, j) + q*h(k+1, j)
					if k+1 != nn {
						p += r * h(k+2, j)
						a.data[(k+2)*n+j] -= p * z
					}
					a.data[(k+1)*n+j] -= p * y
					a.data[k*n+j] -= p * x
				}
				// column modification
				mmin = min(nn, k+3)
				for i = l; i <= mmin; i++ {
					p = x*h(i, k) + y*h(i, k+1)
					if k+1 != nn {
						p += z * h(i, k+2)
						a.data[i*n+k+2] -= p * r
					}
					a.data[i*n+k+1] -= p * q
					a.data[i*n+k] -= p
				}
			}
			if l+1 >= nn {
				break
			}
		}
	}

	return wr, nil
}
