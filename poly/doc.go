// Package poly holds real polynomials in degree-descending coefficient form
// and finds their complex roots.
//
// Roots are the eigenvalues of the companion matrix (see package matrix),
// optionally polished: approximate roots that huddle together are tested as
// one multiple root and, when the test passes, replaced by the root of the
// matching derivative. Multiple roots come out of the eigenvalue iteration
// scattered by roughly ε^(1/m); polishing gathers them back so that
// downstream tolerance-based grouping sees them as one.
//
//	p, err := poly.New(1, -6, 12, -8) // (x-2)³
//	roots, err := poly.Roots(p)       // [2 2 2]
package poly
