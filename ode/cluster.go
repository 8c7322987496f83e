package ode

import (
	"math"
	"math/cmplx"
	"sort"
)

// SortRoots returns a copy of roots ordered by (real, imag) ascending.
func SortRoots(roots []complex128) []complex128 {
	out := make([]complex128, len(roots))
	copy(out, roots)
	sort.SliceStable(out, func(i, j int) bool {
		if real(out[i]) != real(out[j]) {
			return real(out[i]) < real(out[j])
		}
		return imag(out[i]) < imag(out[j])
	})

	return out
}

// ClusterRoots partitions sorted roots greedily. Scanning left to right, each
// still-unclustered root becomes a seed and takes every later unclustered
// root with |z − seed| < tol. Distance is always measured to the seed, so
// the grouping depends on scan order and is not transitive.
//
// Complexity: O(n²).
func ClusterRoots(sorted []complex128, tol float64) []RootCluster {
	used := make([]bool, len(sorted))
	var out []RootCluster
	var i, j int
	for i = 0; i < len(sorted); i++ {
		if used[i] {
			continue
		}
		used[i] = true
		c := RootCluster{Seed: sorted[i], Members: []complex128{sorted[i]}}
		for j = i + 1; j < len(sorted); j++ {
			if !used[j] && cmplx.Abs(sorted[j]-c.Seed) < tol {
				used[j] = true
				c.Members = append(c.Members, sorted[j])
			}
		}
		out = append(out, c)
	}

	return out
}

// Classify tags a cluster by the imaginary part of its seed.
func Classify(c RootCluster, tol float64) RootGroup {
	g := RootGroup{Root: c.Seed, Multiplicity: len(c.Members)}
	im := imag(c.Seed)
	switch {
	case math.Abs(im) < tol:
		g.Kind = RealGroup
		g.Root = complex(real(c.Seed), 0)
	case im > 0:
		g.Kind = PositiveImagGroup
	default:
		g.Kind = DroppedNegativeImagGroup
	}

	return g
}

// unpaired returns the dropped groups that have no PositiveImagGroup twin
// (conjugate within tol, equal multiplicity). For a real polynomial whose
// roots were found accurately the result is empty.
func unpaired(groups []RootGroup, tol float64) []RootGroup {
	var out []RootGroup
	for _, d := range groups {
		if d.Kind != DroppedNegativeImagGroup {
			continue
		}
		matched := false
		for _, p := range groups {
			if p.Kind == PositiveImagGroup && p.Multiplicity == d.Multiplicity &&
				cmplx.Abs(p.Root-cmplx.Conj(d.Root)) < tol {
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, d)
		}
	}

	return out
}
