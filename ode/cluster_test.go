package ode_test

import (
	"testing"

	"github.com/katalvlaran/odechar/ode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSortRoots orders by real then imaginary part and leaves the input alone.
func TestSortRoots(t *testing.T) {
	in := []complex128{complex(1, 1), complex(-1, 0), complex(1, -1), 0}
	got := ode.SortRoots(in)
	assert.Equal(t, []complex128{complex(-1, 0), 0, complex(1, -1), complex(1, 1)}, got)
	assert.Equal(t, complex(1, 1), in[0], "input must not be reordered")
}

// TestClusterRoots covers singletons, multiplicity and the strict bound.
func TestClusterRoots(t *testing.T) {
	const tol = 1e-5
	sorted := []complex128{1, 1 + 5e-6, 2, 2 + tol*2}
	got := ode.ClusterRoots(sorted, tol)
	require.Len(t, got, 3)
	assert.Equal(t, ode.RootCluster{Seed: 1, Members: []complex128{1, 1 + 5e-6}}, got[0])
	assert.Equal(t, complex128(2), got[1].Seed)
	assert.Len(t, got[2].Members, 1)

	assert.Empty(t, ode.ClusterRoots(nil, tol))
}

// TestClassify covers each tagged kind and the real-part projection.
func TestClassify(t *testing.T) {
	const tol = 1e-5
	tests := []struct {
		name string
		seed complex128
		want ode.RootGroup
	}{
		{"real", complex(2, 1e-7), ode.RootGroup{Kind: ode.RealGroup, Root: 2, Multiplicity: 1}},
		{"positive", complex(-1, 2), ode.RootGroup{Kind: ode.PositiveImagGroup, Root: complex(-1, 2), Multiplicity: 1}},
		{"negative", complex(-1, -2), ode.RootGroup{Kind: ode.DroppedNegativeImagGroup, Root: complex(-1, -2), Multiplicity: 1}},
		{"boundary is complex", complex(0, tol), ode.RootGroup{Kind: ode.PositiveImagGroup, Root: complex(0, tol), Multiplicity: 1}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := ode.Classify(ode.RootCluster{Seed: tc.seed, Members: []complex128{tc.seed}}, tol)
			assert.Equal(t, tc.want, got)
		})
	}
	assert.Equal(t, "real", ode.RealGroup.String())
	assert.Equal(t, "complex", ode.PositiveImagGroup.String())
	assert.Equal(t, "dropped", ode.DroppedNegativeImagGroup.String())
}

// TestEmitTerms checks ordering (real first) and the rate cut-off.
func TestEmitTerms(t *testing.T) {
	const tol = 1e-5
	groups := []ode.RootGroup{
		{Kind: ode.DroppedNegativeImagGroup, Root: complex(0, -3), Multiplicity: 1},
		{Kind: ode.PositiveImagGroup, Root: complex(0, 3), Multiplicity: 1},
		{Kind: ode.RealGroup, Root: 1e-6, Multiplicity: 2},
	}
	got := ode.EmitTerms(groups, tol)
	assert.Equal(t, []ode.Term{
		{Power: 0, Rate: 1e-6},
		{Power: 1, Rate: 1e-6},
		{Power: 0, Trig: ode.TrigCos, Freq: 3},
		{Power: 0, Trig: ode.TrigSin, Freq: 3},
	}, got)
}

// TestTermRender covers the term grammar in both renderers.
func TestTermRender(t *testing.T) {
	term := ode.Term{Power: 2, Rate: -1, HasRate: true, Trig: ode.TrigCos, Freq: 3}
	assert.Equal(t, "x^2e^(-1x)cos(3x)", term.Render("x", 5))
	assert.Equal(t, `x^{2}e^{-1x}\cos(3x)`, term.LaTeX("x", 5))
	assert.Equal(t, "", ode.Term{}.Render("x", 5))
	assert.Equal(t, "t", ode.Term{Power: 1}.Render("t", 5))
}

// TestFormatNumber pins general-format rounding.
func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		2:           "2",
		-0.5:        "-0.5",
		1.23456789:  "1.2346",
		100:         "100",
		123456:      "1.2346e+05",
		0.0001:      "0.0001",
		0.00001234:  "1.234e-05",
		99999.5:     "1e+05",
		0.999999999: "1",
	}
	for in, want := range cases {
		assert.Equalf(t, want, ode.FormatNumber(in, 5), "FormatNumber(%v)", in)
	}
}
