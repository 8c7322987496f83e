// Package ode writes the general solution of a homogeneous linear ODE with
// constant coefficients,
//
//	a_n·y⁽ⁿ⁾ + … + a_1·y′ + a_0·y = 0,
//
// from the roots of its characteristic polynomial a_n·rⁿ + … + a_0.
//
// 🚀 Pipeline
//
//  1. Roots: a RootFinder (default: companion-matrix eigenvalues, package poly).
//  2. SortRoots: (real, imag) ascending, so output order never depends on the
//     root finder.
//  3. ClusterRoots: greedy first-match grouping, |z − seed| < tolerance.
//  4. Classify: RealGroup, PositiveImagGroup or DroppedNegativeImagGroup. The
//     dropped kind is the conjugate twin of a positive group for real
//     coefficients; it stays visible in Solution.Groups but emits no terms.
//  5. EmitTerms: structured Terms (power of x, exponential rate, trig factor).
//  6. Rendering: Solution.String / Solution.LaTeX in one formatting pass.
//
// ⚙️ Usage:
//
//	s, err := ode.Solve([]float64{1, -4, 4})
//	// s == "y(x) = C_1e^(2x) + C_2xe^(2x)"
//
// Grouping is intentionally not transitive: with A, B, C sorted and A–B, B–C
// close but A–C not, A seeds a group with B and C starts its own.
package ode
