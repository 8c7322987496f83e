package ode

// GroupKind tags how a group of roots contributes to the solution.
type GroupKind int

const (
	// RealGroup: |Im(seed)| < tolerance. Contributes xᵏ·e^(r x), k < multiplicity.
	RealGroup GroupKind = iota

	// PositiveImagGroup: Im(seed) ≥ tolerance. Contributes xᵏ·e^(α x)·cos(β x)
	// and xᵏ·e^(α x)·sin(β x), k < multiplicity.
	PositiveImagGroup

	// DroppedNegativeImagGroup: Im(seed) ≤ −tolerance. Assumed to be the
	// conjugate twin of a PositiveImagGroup and contributes nothing.
	DroppedNegativeImagGroup
)

// String returns a stable lower-case name, also used in JSON/YAML output.
func (k GroupKind) String() string {
	switch k {
	case RealGroup:
		return "real"
	case PositiveImagGroup:
		return "complex"
	case DroppedNegativeImagGroup:
		return "dropped"
	default:
		return "unknown"
	}
}

// RootCluster is one output of ClusterRoots: the first unclustered root seen
// (Seed) and every root gathered around it, seed included.
type RootCluster struct {
	Seed    complex128
	Members []complex128
}

// RootGroup is a classified cluster. For RealGroup, Root has a zero
// imaginary part; otherwise Root is the seed as found.
type RootGroup struct {
	Kind         GroupKind
	Root         complex128
	Multiplicity int
}

// Real returns the representative real part (r or α).
func (g RootGroup) Real() float64 { return real(g.Root) }

// Imag returns the representative imaginary part (0 or β).
func (g RootGroup) Imag() float64 { return imag(g.Root) }

// TrigKind selects the oscillating factor of a Term.
type TrigKind int

const (
	TrigNone TrigKind = iota
	TrigCos
	TrigSin
)

// Term is one basis function xᵏ · e^(Rate·x) · trig(Freq·x), kept structured
// until the final rendering pass. HasRate false means the exponential factor
// is absent (|rate| below tolerance).
type Term struct {
	Power   int
	Rate    float64
	HasRate bool
	Trig    TrigKind
	Freq    float64
}
