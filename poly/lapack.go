package poly

import (
	"errors"

	"github.com/katalvlaran/odechar/matrix"
	"gonum.org/v1/gonum/mat"
)

// errLAPACKNoConvergence reports a failed mat.Eigen factorization.
var errLAPACKNoConvergence = errors.New("lapack: eigen decomposition did not converge")

// eigenvalues dispatches the companion matrix to the selected backend.
func eigenvalues(comp *matrix.Dense, o Options) ([]complex128, error) {
	if o.backend == BackendLAPACK {
		return lapackEigenvalues(comp)
	}

	return matrix.Eigenvalues(comp, o.eigenTol, o.maxIter)
}

// lapackEigenvalues copies comp into a gonum Dense and runs Dgeev without
// eigenvectors.
func lapackEigenvalues(comp *matrix.Dense) ([]complex128, error) {
	n := comp.Rows()
	data := make([]float64, n*n)
	var i, j int
	var err error
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if data[i*n+j], err = comp.At(i, j); err != nil {
				return nil, err
			}
		}
	}

	var eig mat.Eigen
	if ok := eig.Factorize(mat.NewDense(n, n, data), mat.EigenNone); !ok {
		return nil, errLAPACKNoConvergence
	}

	return eig.Values(nil), nil
}
