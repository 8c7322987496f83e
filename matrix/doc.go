// Package matrix is the small dense linear-algebra kernel behind odechar.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set.
//   - Central validators (nil, square, finite) shared by every kernel.
//   - Balance and Hessenberg, the preconditioning steps for eigenvalue work.
//   - Eigenvalues for general real square matrices (Francis double-shift QR),
//     which returns complex conjugate pairs for non-symmetric input.
//   - EigenSym, a Jacobi solver used as the fast path for symmetric input.
//   - Mul, MatVec and Transpose for checking decompositions.
//
// All kernels return package sentinels (see errors.go) wrapped with an
// operation tag, so callers match failures with errors.Is.
//
// The package is sized for the companion matrices of low-degree
// characteristic polynomials: O(n²) memory and O(n³) time are expected.
package matrix
