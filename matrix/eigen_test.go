// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"math/cmplx"
	"sort"
	"testing"

	"github.com/katalvlaran/odechar/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eigTol = 2.220446049250313e-16

// sortedEig returns eigenvalues ordered by (real, imag) for stable comparison.
func sortedEig(t *testing.T, rows [][]float64) []complex128 {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	vals, err := matrix.Eigenvalues(m, eigTol, matrix.DefaultEigenMaxIter)
	require.NoError(t, err)
	sort.Slice(vals, func(i, j int) bool {
		if real(vals[i]) != real(vals[j]) {
			return real(vals[i]) < real(vals[j])
		}
		return imag(vals[i]) < imag(vals[j])
	})
	return vals
}

func requireEigNear(t *testing.T, want, got []complex128, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDeltaf(t, 0, cmplx.Abs(want[i]-got[i]), tol, "eig[%d]: want %v got %v", i, want[i], got[i])
	}
}

// TestEigenvalues_CompanionRealRoots checks x²−3x+2 → {1, 2}.
func TestEigenvalues_CompanionRealRoots(t *testing.T) {
	got := sortedEig(t, [][]float64{{3, -2}, {1, 0}})
	requireEigNear(t, []complex128{1, 2}, got, 1e-12)
}

// TestEigenvalues_Rotation checks that a plane rotation yields ±i.
func TestEigenvalues_Rotation(t *testing.T) {
	got := sortedEig(t, [][]float64{{0, -1}, {1, 0}})
	requireEigNear(t, []complex128{complex(0, -1), complex(0, 1)}, got, 1e-12)
	assert.Equal(t, cmplx.Conj(got[0]), got[1], "complex eigenvalues come in exact conjugate pairs")
}

// TestEigenvalues_CubicCompanion checks (x−1)(x−2)(x−3) through the QR iteration.
func TestEigenvalues_CubicCompanion(t *testing.T) {
	got := sortedEig(t, [][]float64{
		{6, -11, 6},
		{1, 0, 0},
		{0, 1, 0},
	})
	requireEigNear(t, []complex128{1, 2, 3}, got, 1e-10)
}

// TestEigenvalues_MixedSpectrum checks (x²+2x+5)(x−1)(x+4): roots −4, −1±2i, 1.
func TestEigenvalues_MixedSpectrum(t *testing.T) {
	// x⁴ + 5x³ + 7x² + 7x − 20
	got := sortedEig(t, [][]float64{
		{-5, -7, -7, 20},
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
	})
	requireEigNear(t, []complex128{-4, complex(-1, -2), complex(-1, 2), 1}, got, 1e-9)
}

// TestEigenvalues_SymmetricFastPath checks the Jacobi route on symmetric input.
func TestEigenvalues_SymmetricFastPath(t *testing.T) {
	got := sortedEig(t, [][]float64{{2, 1}, {1, 2}})
	requireEigNear(t, []complex128{1, 3}, got, 1e-10)
}

// TestEigenvalues_Errors covers the validation surface.
func TestEigenvalues_Errors(t *testing.T) {
	_, err := matrix.Eigenvalues(nil, eigTol, 10)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = matrix.Eigenvalues(rect, eigTol, 10)
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	sq, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	_, err = matrix.Eigenvalues(sq, 0, 10)
	require.ErrorIs(t, err, matrix.ErrBadArgument)
	_, err = matrix.Eigenvalues(sq, eigTol, 0)
	require.ErrorIs(t, err, matrix.ErrBadArgument)
}

// TestEigenvalues_NoConvergence forces ErrMatrixEigenFailed with a one-sweep budget.
func TestEigenvalues_NoConvergence(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{
		{-1, 3, -7, 2, 5},
		{1, 0, 0, 0, 0},
		{0, 1, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 1, 0},
	})
	require.NoError(t, err)
	_, err = matrix.Eigenvalues(m, eigTol, 1)
	require.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}

// TestEigenvalues_DoesNotMutate verifies the input is left untouched.
func TestEigenvalues_DoesNotMutate(t *testing.T) {
	rows := [][]float64{{6, -11, 6}, {1, 0, 0}, {0, 1, 0}}
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	before := m.String()
	_, err = matrix.Eigenvalues(m, eigTol, matrix.DefaultEigenMaxIter)
	require.NoError(t, err)
	require.Equal(t, before, m.String())
}

// TestEigenSym_Rejects covers asymmetric input and reconstructs A·q = λ·q.
func TestEigenSym_Rejects(t *testing.T) {
	asym, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {0, 1}})
	require.NoError(t, err)
	_, _, err = matrix.EigenSym(asym, 1e-12, 100)
	require.ErrorIs(t, err, matrix.ErrBadArgument)

	sym, err := matrix.NewDenseFromRows([][]float64{{4, 1, 0}, {1, 3, 1}, {0, 1, 2}})
	require.NoError(t, err)
	vals, q, err := matrix.EigenSym(sym, 1e-12, 500)
	require.NoError(t, err)
	for k, lambda := range vals {
		for i := 0; i < 3; i++ {
			var av float64
			for j := 0; j < 3; j++ {
				aij, _ := sym.At(i, j)
				qjk, _ := q.At(j, k)
				av += aij * qjk
			}
			qik, _ := q.At(i, k)
			assert.InDelta(t, lambda*qik, av, 1e-9)
		}
	}
}

// TestHessenbergShapeAndTrace checks zeros below the subdiagonal and trace invariance.
func TestHessenbergShapeAndTrace(t *testing.T) {
	m, err := matrix.NewDenseFromRows([][]float64{
		{4, 1, -2, 2},
		{1, 2, 0, 1},
		{-2, 0, 3, -2},
		{2, 1, -2, -1},
	})
	require.NoError(t, err)
	h, err := matrix.Hessenberg(m)
	require.NoError(t, err)

	var trM, trH float64
	for i := 0; i < 4; i++ {
		mv, _ := m.At(i, i)
		hv, _ := h.At(i, i)
		trM += mv
		trH += hv
		for j := 0; j < i-1; j++ {
			v, _ := h.At(i, j)
			require.Equalf(t, 0.0, v, "h[%d][%d] must be zero", i, j)
		}
	}
	assert.InDelta(t, trM, trH, 1e-12)
}

// TestBalancePreservesSpectrum checks that balancing is a similarity transform.
func TestBalancePreservesSpectrum(t *testing.T) {
	rows := [][]float64{{1, 1e6}, {1e-6, 1}}
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	scale, err := matrix.Balance(m)
	require.NoError(t, err)
	require.Len(t, scale, 2)

	a01, _ := m.At(0, 1)
	a10, _ := m.At(1, 0)
	assert.Less(t, math.Abs(math.Log2(math.Abs(a01/a10))), 40.0, "balanced off-diagonals must be comparable")

	got := sortedEig(t, [][]float64{{1, a01}, {a10, 1}})
	requireEigNear(t, []complex128{0, 2}, got, 1e-9)
}
