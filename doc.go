// Package odechar solves homogeneous linear ordinary differential equations
// with constant real coefficients,
//
//	a_n·y⁽ⁿ⁾ + a_(n−1)·y⁽ⁿ⁻¹⁾ + … + a_1·y′ + a_0·y = 0,
//
// by way of their characteristic polynomial, and prints the general solution
// as text such as "y(x) = C_1e^(2x) + C_2xe^(2x)".
//
// 🚀 What is inside?
//
//	• Numerics: companion matrix, balancing, Hessenberg reduction and
//	  Francis double-shift QR for the roots; multiplicity-aware polishing
//	• Analysis: grouping of nearly equal roots, real/complex classification
//	  and the basis of the solution space, kept as structured terms
//	• Rendering: plain text and LaTeX
//	• Batch: YAML problem files solved on a worker pool, Markdown/HTML reports
//	• Service: a small JSON API and the odechar command
//
// Everything is organized under these packages:
//
//	matrix/        dense matrices, eigenvalues (QR, Jacobi), validators
//	poly/          polynomials, companion matrix, polished roots
//	ode/           Solve, Analyze, grouping, term emission, rendering
//	batch/         YAML problem files and concurrent solving
//	report/        Markdown and HTML reports (goldmark)
//	internal/      env configuration and the chi HTTP API
//	cmd/odechar/   solve, batch, serve and demo subcommands
//
// Quick example:
//
//	s, _ := ode.Solve([]float64{1, 0, 4}) // y″ + 4y = 0
//	// s == "y(x) = C_1cos(2x) + C_2sin(2x)"
//
//	go get github.com/katalvlaran/odechar
package odechar
