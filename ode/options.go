// Package ode: functional configuration.
// Defaults reproduce the reference output format exactly; every WithX
// constructor panics on nonsensical values (programmer error).

package ode

import (
	"fmt"
	"math"

	"github.com/katalvlaran/odechar/poly"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance groups roots (|z − seed| < tol), decides realness
	// (|Im| < tol) and drops negligible exponential rates (|α| < tol).
	DefaultTolerance = 1e-5

	// DefaultSignificantDigits is the precision of every rendered number.
	DefaultSignificantDigits = 5

	// DefaultVariable is the independent variable.
	DefaultVariable = "x"

	// DefaultFunctionName is the unknown function.
	DefaultFunctionName = "y"

	// DefaultConstantPrefix precedes the 1-based index of each arbitrary constant.
	DefaultConstantPrefix = "C_"

	// maxSignificantDigits is the most digits a float64 can meaningfully show.
	maxSignificantDigits = 17
)

// RootFinder returns the n roots of the degree-n polynomial whose
// coefficients (highest degree first) are given, in any order.
type RootFinder func(coeffs []float64) ([]complex128, error)

// PolyRootFinder returns a RootFinder backed by poly.Roots with opts.
func PolyRootFinder(opts ...poly.Option) RootFinder {
	return func(coeffs []float64) ([]complex128, error) {
		p, err := poly.New(coeffs...)
		if err != nil {
			return nil, err
		}

		return poly.Roots(p, opts...)
	}
}

// DefaultRootFinder is poly.Roots with default options.
var DefaultRootFinder = PolyRootFinder()

// Option mutates Options.
type Option func(*Options)

// Options configures Solve and Analyze. Fields are unexported; use WithX.
type Options struct {
	tolerance   float64
	digits      int
	finder      RootFinder
	variable    string
	function    string
	constPrefix string
}

// WithTolerance sets the grouping/realness tolerance. Panics unless tol is finite and > 0.
func WithTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 0) {
		panic(fmt.Sprintf("ode: WithTolerance(%g): must be finite and > 0", tol))
	}

	return func(o *Options) { o.tolerance = tol }
}

// WithSignificantDigits sets the rendering precision. Panics unless 1 ≤ d ≤ 17.
func WithSignificantDigits(d int) Option {
	if d < 1 || d > maxSignificantDigits {
		panic(fmt.Sprintf("ode: WithSignificantDigits(%d): must be in [1, %d]", d, maxSignificantDigits))
	}

	return func(o *Options) { o.digits = d }
}

// WithRootFinder replaces the numeric root finder. Panics on nil.
func WithRootFinder(f RootFinder) Option {
	if f == nil {
		panic("ode: WithRootFinder(nil)")
	}

	return func(o *Options) { o.finder = f }
}

// WithVariable renames the independent variable. Panics on "".
func WithVariable(v string) Option {
	if v == "" {
		panic("ode: WithVariable(\"\")")
	}

	return func(o *Options) { o.variable = v }
}

// WithFunctionName renames the unknown function. Panics on "".
func WithFunctionName(name string) Option {
	if name == "" {
		panic("ode: WithFunctionName(\"\")")
	}

	return func(o *Options) { o.function = name }
}

// WithConstantPrefix changes the arbitrary-constant label prefix. Panics on "".
func WithConstantPrefix(prefix string) Option {
	if prefix == "" {
		panic("ode: WithConstantPrefix(\"\")")
	}

	return func(o *Options) { o.constPrefix = prefix }
}

func defaultOptions() Options {
	return Options{
		tolerance:   DefaultTolerance,
		digits:      DefaultSignificantDigits,
		finder:      DefaultRootFinder,
		variable:    DefaultVariable,
		function:    DefaultFunctionName,
		constPrefix: DefaultConstantPrefix,
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
