package poly

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
)

// Roots returns the n complex roots of p, repeated according to multiplicity
// and ordered by (real, imag) ascending.
//
// Implementation:
//   - Stage 1: eigenvalues of the companion matrix (balanced Francis QR, or
//     gonum's LAPACK port with WithBackend(BackendLAPACK)).
//   - Stage 2 (unless WithoutPolish): group raw roots lying within
//     clusterRadius·max(1,|seed|) of a seed. A group of m > 1 roots is replaced
//     by m copies of the root of p^(m−1) nearest the group centroid, provided
//     p, p′, …, p^(m−1) all vanish there (Residual ≤ residual tolerance).
//     Singletons get Newton steps on p. Any candidate that fails its check or
//     wanders out of the group radius is dropped in favor of the raw values.
//
// Errors:
//   - ErrTooShort (degree 0).
//   - ErrRootFindingFailed (eigenvalue iteration failed, or a coefficient ratio
//     is not representable); the matrix sentinel stays matchable as well.
func Roots(p Poly, opts ...Option) ([]complex128, error) {
	o := gatherOptions(opts...)
	if p.Degree() < 1 {
		return nil, polyErrorf(opRoots, ErrTooShort)
	}
	comp, err := p.Companion()
	if err != nil {
		return nil, polyErrorf(opRoots, fmt.Errorf("%w: %w", ErrRootFindingFailed, err))
	}
	raw, err := eigenvalues(comp, o)
	if err != nil {
		return nil, polyErrorf(opRoots, fmt.Errorf("%w: %w", ErrRootFindingFailed, err))
	}
	sortRoots(raw)
	if !o.polish {
		return raw, nil
	}
	out := polishRoots(p, raw, o)
	sortRoots(out)

	return out, nil
}

// sortRoots orders roots by (real, imag) ascending in place.
func sortRoots(roots []complex128) {
	sort.SliceStable(roots, func(i, j int) bool {
		if real(roots[i]) != real(roots[j]) {
			return real(roots[i]) < real(roots[j])
		}
		return imag(roots[i]) < imag(roots[j])
	})
}

// polishRoots groups sorted raw roots around first-seen seeds and polishes each group.
func polishRoots(p Poly, sorted []complex128, o Options) []complex128 {
	used := make([]bool, len(sorted))
	out := make([]complex128, 0, len(sorted))
	var i, j int
	for i = 0; i < len(sorted); i++ {
		if used[i] {
			continue
		}
		used[i] = true
		seed := sorted[i]
		radius := o.clusterRadius * math.Max(1, cmplx.Abs(seed))
		members := []complex128{seed}
		for j = i + 1; j < len(sorted); j++ {
			if !used[j] && cmplx.Abs(sorted[j]-seed) < radius {
				used[j] = true
				members = append(members, sorted[j])
			}
		}
		out = append(out, polishGroup(p, members, radius, o)...)
	}

	return out
}

// polishGroup refines one group of raw roots; see Roots for the acceptance rules.
func polishGroup(p Poly, members []complex128, radius float64, o Options) []complex128 {
	m := len(members)
	if m == 1 {
		z := newton(p, members[0], o.newtonSteps)
		if cmplx.Abs(z-members[0]) < radius && p.Residual(z) <= p.Residual(members[0]) {
			return []complex128{z}
		}

		return members
	}

	var centroid complex128
	for _, z := range members {
		centroid += z
	}
	centroid /= complex(float64(m), 0)

	z := newton(p.DerivativeN(m-1), centroid, o.newtonSteps)
	if cmplx.Abs(z-centroid) >= radius || !isMultipleRoot(p, z, m, o.residualTol) {
		return members
	}
	// A group straddling the real axis of a real polynomial is a real root.
	if math.Abs(imag(z)) <= o.residualTol*math.Max(1, cmplx.Abs(z)) {
		z = complex(real(z), 0)
	}
	out := make([]complex128, m)
	for i := range out {
		out[i] = z
	}

	return out
}

// isMultipleRoot reports whether p, p′, …, p^(m−1) all vanish at z within tol.
func isMultipleRoot(p Poly, z complex128, m int, tol float64) bool {
	d := p
	for k := 0; k < m; k++ {
		if d.Residual(z) > tol {
			return false
		}
		d = d.Derivative()
	}

	return true
}

// newton runs at most steps Newton iterations on f from z.
func newton(f Poly, z complex128, steps int) complex128 {
	df := f.Derivative()
	var fz, dfz, step complex128
	for i := 0; i < steps; i++ {
		if fz = f.Eval(z); fz == 0 {
			return z
		}
		if dfz = df.Eval(z); dfz == 0 {
			return z
		}
		step = fz / dfz
		z -= step
		if cmplx.Abs(step) <= 4*DefaultEigenTolerance*math.Max(1, cmplx.Abs(z)) {
			return z
		}
	}

	return z
}
