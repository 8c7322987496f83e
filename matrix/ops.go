// SPDX-License-Identifier: MIT

package matrix

import "fmt"

const (
	opMul       = "Mul"
	opMatVec    = "MatVec"
	opTranspose = "Transpose"
)

// Mul returns the product a·b as a new *Dense.
//
// Implementation:
//   - *Dense × *Dense runs a row-major i→k→j loop over the flat slices and
//     skips zero a[i,k].
//   - Any other pair falls back to At with an i→j→k loop.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols() != b.Rows()).
//
// Complexity: O(r·n·c) time, O(r·c) space.
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if a.Cols() != b.Rows() {
		return nil, matrixErrorf(opMul, fmt.Errorf("%w: %dx%d · %dx%d",
			ErrDimensionMismatch, a.Rows(), a.Cols(), b.Rows(), b.Cols()))
	}

	rows, inner, cols := a.Rows(), a.Cols(), b.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var i, j, k int
	da, okA := a.(*Dense)
	db, okB := b.(*Dense)
	if okA && okB {
		var av float64
		for i = 0; i < rows; i++ {
			for k = 0; k < inner; k++ {
				if av = da.data[i*inner+k]; av == 0 {
					continue
				}
				for j = 0; j < cols; j++ {
					res.data[i*cols+j] += av * db.data[k*cols+j]
				}
			}
		}

		return res, nil
	}

	var av, bv, sum float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			sum = 0
			for k = 0; k < inner; k++ {
				if av, err = a.At(i, k); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				if bv, err = b.At(k, j); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
				sum += av * bv
			}
			res.data[i*cols+j] = sum
		}
	}

	return res, nil
}

// MatVec computes y = m·x.
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(x) != m.Cols()).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if len(x) != m.Cols() {
		return nil, matrixErrorf(opMatVec, fmt.Errorf("%w: len(x)=%d, cols=%d",
			ErrDimensionMismatch, len(x), m.Cols()))
	}

	y := make([]float64, m.Rows())
	var i, j int
	var v float64
	var err error
	for i = range y {
		for j = range x {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opMatVec, err)
			}
			y[i] += v * x[j]
		}
	}

	return y, nil
}

// Transpose returns mᵀ as a new *Dense; m is not modified.
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(d.c, d.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			res.data[j*d.r+i] = d.data[i*d.c+j]
		}
	}

	return res, nil
}
