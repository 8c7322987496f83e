package poly

import (
	"fmt"
	"math"

	"github.com/katalvlaran/odechar/matrix"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEigenTolerance is the relative deflation threshold handed to
	// matrix.Eigenvalues (float64 machine epsilon).
	DefaultEigenTolerance = 2.220446049250313e-16

	// DefaultMaxIterations caps QR iterations per eigenvalue.
	DefaultMaxIterations = matrix.DefaultEigenMaxIter

	// DefaultPolish enables multiplicity-aware polishing of raw eigenvalues.
	DefaultPolish = true

	// DefaultClusterRadius is the relative radius (scaled by max(1,|z|)) within
	// which raw roots are tested as one multiple root.
	DefaultClusterRadius = 1e-3

	// DefaultResidualTolerance is the largest Residual accepted for each of
	// p, p′, …, p^(m−1) at a candidate m-fold root.
	DefaultResidualTolerance = 1e-12

	// DefaultNewtonSteps caps Newton iterations during polishing.
	DefaultNewtonSteps = 50
)

// Backend selects the eigenvalue solver applied to the companion matrix.
type Backend int

const (
	// BackendQR is the in-module balanced Francis double-shift QR (matrix.Eigenvalues).
	BackendQR Backend = iota

	// BackendLAPACK is gonum's Dgeev (mat.Eigen). The eigen tolerance and
	// iteration cap do not apply to it.
	BackendLAPACK
)

// String returns "qr" or "lapack".
func (b Backend) String() string {
	switch b {
	case BackendQR:
		return "qr"
	case BackendLAPACK:
		return "lapack"
	default:
		return "unknown"
	}
}

// ParseBackend maps "qr" / "lapack" to a Backend.
func ParseBackend(name string) (Backend, error) {
	switch name {
	case "qr":
		return BackendQR, nil
	case "lapack":
		return BackendLAPACK, nil
	default:
		return 0, fmt.Errorf("poly: unknown backend %q (want qr or lapack)", name)
	}
}

// Option mutates Options.
type Option func(*Options)

// Options configures Roots. Fields are unexported; use the WithX constructors.
type Options struct {
	eigenTol      float64
	maxIter       int
	polish        bool
	clusterRadius float64
	residualTol   float64
	newtonSteps   int
	backend       Backend
}

// WithEigenTolerance sets the deflation threshold of the eigenvalue iteration.
// Panics if tol is not a finite positive number.
func WithEigenTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(fmt.Sprintf("poly: WithEigenTolerance(%g): must be finite and > 0", tol))
	}

	return func(o *Options) { o.eigenTol = tol }
}

// WithMaxIterations sets the per-eigenvalue QR iteration cap. Panics if n ≤ 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("poly: WithMaxIterations(%d): must be > 0", n))
	}

	return func(o *Options) { o.maxIter = n }
}

// WithBackend selects the eigenvalue solver. Panics on an unknown Backend.
func WithBackend(b Backend) Option {
	if b != BackendQR && b != BackendLAPACK {
		panic(fmt.Sprintf("poly: WithBackend(%d): unknown backend", int(b)))
	}

	return func(o *Options) { o.backend = b }
}

// WithPolish enables multiplicity-aware polishing (the default).
func WithPolish() Option { return func(o *Options) { o.polish = true } }

// WithoutPolish returns the raw eigenvalues of the companion matrix.
func WithoutPolish() Option { return func(o *Options) { o.polish = false } }

// WithClusterRadius sets the relative radius for multiple-root candidates.
// Panics if r is not a finite positive number.
func WithClusterRadius(r float64) Option {
	if !(r > 0) || math.IsInf(r, 0) {
		panic(fmt.Sprintf("poly: WithClusterRadius(%g): must be finite and > 0", r))
	}

	return func(o *Options) { o.clusterRadius = r }
}

// WithResidualTolerance sets the acceptance threshold for polished roots.
// Panics if tol is not a finite positive number.
func WithResidualTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(fmt.Sprintf("poly: WithResidualTolerance(%g): must be finite and > 0", tol))
	}

	return func(o *Options) { o.residualTol = tol }
}

func defaultOptions() Options {
	return Options{
		eigenTol:      DefaultEigenTolerance,
		maxIter:       DefaultMaxIterations,
		polish:        DefaultPolish,
		clusterRadius: DefaultClusterRadius,
		residualTol:   DefaultResidualTolerance,
		newtonSteps:   DefaultNewtonSteps,
		backend:       BackendQR,
	}
}

func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
