package ode

import "math"

// EmitTerms expands groups into basis terms. All RealGroups come first, in
// group order, then all PositiveImagGroups; DroppedNegativeImagGroups emit
// nothing.
//
//   - RealGroup (r, m):        k = 0..m−1 → xᵏ·e^(r x).
//   - PositiveImagGroup (α+iβ, m): k = 0..m−1 → xᵏ·e^(α x)·cos(β x), xᵏ·e^(α x)·sin(β x).
//
// The exponential factor is left out when |rate| < tol.
func EmitTerms(groups []RootGroup, tol float64) []Term {
	var terms []Term
	var k int
	for _, g := range groups {
		if g.Kind != RealGroup {
			continue
		}
		r := g.Real()
		for k = 0; k < g.Multiplicity; k++ {
			terms = append(terms, Term{Power: k, Rate: r, HasRate: math.Abs(r) >= tol})
		}
	}
	for _, g := range groups {
		if g.Kind != PositiveImagGroup {
			continue
		}
		alpha, beta := g.Real(), g.Imag()
		hasRate := math.Abs(alpha) >= tol
		for k = 0; k < g.Multiplicity; k++ {
			terms = append(terms,
				Term{Power: k, Rate: alpha, HasRate: hasRate, Trig: TrigCos, Freq: beta},
				Term{Power: k, Rate: alpha, HasRate: hasRate, Trig: TrigSin, Freq: beta},
			)
		}
	}

	return terms
}
