// SPDX-License-Identifier: MIT

package matrix

import "math"

// balanceRadix is the floating-point radix; scaling by powers of it is exact.
const balanceRadix = 2.0

// balanceGain is the minimum relative reduction of a row+column norm that
// justifies another balancing sweep.
const balanceGain = 0.95

// Balance replaces a with a diagonally similar matrix D⁻¹AD whose rows and
// columns have comparable norms. Eigenvalues are unchanged; rounding errors in
// the subsequent QR iteration shrink because the matrix norm does.
//
// Implementation:
//   - Sweep i=0..n−1: compare off-diagonal column norm c and row norm r.
//   - Pick f = radixᵏ bringing c toward r; apply only if (c+r)/f < 0.95·(c+r).
//   - Repeat sweeps until one completes without scaling.
//
// Returns the diagonal scale factors D (length n).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - O(n²) per sweep; the number of sweeps is small in practice.
func Balance(a *Dense) ([]float64, error) {
	if err := ValidateSquareNonNil(a); err != nil {
		return nil, matrixErrorf(opBalance, err)
	}
	n := a.r
	scale := make([]float64, n)
	for i := range scale {
		scale[i] = 1.0
	}

	const sqrdx = balanceRadix * balanceRadix
	var (
		i, j       int
		r, c, f, g float64
		s          float64
		done       bool
	)
	for !done {
		done = true
		for i = 0; i < n; i++ {
			r, c = 0, 0
			for j = 0; j < n; j++ {
				if j != i {
					c += math.Abs(a.data[j*n+i])
					r += math.Abs(a.data[i*n+j])
				}
			}
			if c == 0 || r == 0 {
				continue
			}
			g = r / balanceRadix
			f = 1.0
			s = c + r
			for c < g {
				f *= balanceRadix
				c *= sqrdx
			}
			g = r * balanceRadix
			for c > g {
				f /= balanceRadix
				c /= sqrdx
			}
			if (c+r)/f < balanceGain*s {
				done = false
				g = 1.0 / f
				scale[i] *= f
				for j = 0; j < n; j++ {
					a.data[i*n+j] *= g
				}
				for j = 0; j < n; j++ {
					a.data[j*n+i] *= f
				}
			}
		}
	}

	return scale, nil
}

// Hessenberg reduces a square matrix to upper Hessenberg form by Gaussian
// elimination with partial pivoting (stabilized elementary similarity
// transformations). The input is not mutated; the result has exact zeros
// below the first subdiagonal.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func Hessenberg(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opHessenberg, err)
	}
	src, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opHessenberg, err)
	}
	a := src.clone()
	hessenbergInPlace(a)

	return a, nil
}

// hessenbergInPlace performs the reduction on a and clears the elimination
// multipliers left below the subdiagonal.
func hessenbergInPlace(a *Dense) {
	n := a.r
	var (
		i, j, m, piv int
		x, y         float64
	)
	for m = 1; m < n-1; m++ {
		// pivot: largest |a[j][m-1]| for j ≥ m
		x = 0
		piv = m
		for j = m; j < n; j++ {
			if math.Abs(a.data[j*n+m-1]) > math.Abs(x) {
				x = a.data[j*n+m-1]
				piv = j
			}
		}
		if piv != m {
			for j = m - 1; j < n; j++ {
				a.data[piv*n+j], a.data[m*n+j] = a.data[m*n+j], a.data[piv*n+j]
			}
			for j = 0; j < n; j++ {
				a.data[j*n+piv], a.data[j*n+m] = a.data[j*n+m], a.data[j*n+piv]
			}
		}
		if x == 0 {
			continue
		}
		for i = m + 1; i < n; i++ {
			y = a.data[i*n+m-1]
			if y == 0 {
				continue
			}
			y /= x
			a.data[i*n+m-1] = y
			for j = m; j < n; j++ {
				a.data[i*n+j] -= y * a.data[m*n+j]
			}
			for j = 0; j < n; j++ {
				a.data[j*n+m] += y * a.data[j*n+i]
			}
		}
	}
	for i = 2; i < n; i++ {
		for j = 0; j < i-1; j++ {
			a.data[i*n+j] = 0
		}
	}
}
