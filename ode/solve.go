package ode

import (
	"errors"
	"fmt"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/katalvlaran/odechar/poly"
)

// Solution is the analysed general solution of one equation.
//
// Groups partition Roots; Terms are emitted from Groups (see EmitTerms) and
// carry no labels: label i+1 belongs to Terms[i].
type Solution struct {
	Coefficients []float64
	Roots        []complex128 // sorted by (real, imag)
	Groups       []RootGroup
	Terms        []Term

	opts Options
}

// Solve returns the general solution of a_n·y⁽ⁿ⁾ + … + a_0·y = 0 as text,
// e.g. Solve([]float64{1, -3, 2}) == "y(x) = C_1e^(1x) + C_2e^(2x)".
//
// Errors:
//   - ErrInvalidInput (len < 2, zero leading coefficient, NaN/Inf).
//   - ErrRootFindingFailed.
func Solve(coeffs []float64, opts ...Option) (string, error) {
	s, err := analyze(coeffs, opts...)
	if err != nil {
		return "", odeErrorf(opSolve, err)
	}

	return s.String(), nil
}

// Analyze runs the whole pipeline and returns the structured Solution.
// Errors are the same as for Solve.
func Analyze(coeffs []float64, opts ...Option) (*Solution, error) {
	s, err := analyze(coeffs, opts...)
	if err != nil {
		return nil, odeErrorf(opAnalyze, err)
	}

	return s, nil
}

func analyze(coeffs []float64, opts ...Option) (*Solution, error) {
	o := gatherOptions(opts...)

	p, err := poly.New(coeffs...)
	if err != nil {
		return nil, err
	}
	roots, err := o.finder(p.Coeffs())
	if err != nil {
		if !errors.Is(err, ErrRootFindingFailed) {
			err = fmt.Errorf("%w: %w", ErrRootFindingFailed, err)
		}
		return nil, err
	}
	if len(roots) != p.Degree() {
		return nil, fmt.Errorf("%w: got %d roots for degree %d", ErrRootFindingFailed, len(roots), p.Degree())
	}
	for i, z := range roots {
		if cmplx.IsNaN(z) || cmplx.IsInf(z) {
			return nil, fmt.Errorf("%w: root %d is %v", ErrRootFindingFailed, i, z)
		}
	}

	sorted := SortRoots(roots)
	clusters := ClusterRoots(sorted, o.tolerance)
	groups := make([]RootGroup, len(clusters))
	for i, c := range clusters {
		groups[i] = Classify(c, o.tolerance)
	}

	return &Solution{
		Coefficients: p.Coeffs(),
		Roots:        sorted,
		Groups:       groups,
		Terms:        EmitTerms(groups, o.tolerance),
		opts:         o,
	}, nil
}

// Labels returns the arbitrary-constant labels C_1 … C_N, one per term.
func (s *Solution) Labels() []string {
	out := make([]string, len(s.Terms))
	for i := range out {
		out[i] = s.opts.constPrefix + strconv.Itoa(i+1)
	}

	return out
}

// Dimension is the number of basis terms (n for a well-conditioned real polynomial).
func (s *Solution) Dimension() int { return len(s.Terms) }

// Unpaired returns the dropped negative-imaginary groups that lack a positive
// conjugate twin of equal multiplicity. Their terms are missing from the
// solution; a non-empty result means the real-coefficient pairing assumption
// was broken by numerical error.
func (s *Solution) Unpaired() []RootGroup {
	return unpaired(s.Groups, s.opts.tolerance)
}

// String renders "y(x) = C_1<term> + C_2<term> + …". A solution without
// terms (only reachable with a custom RootFinder) renders as "y(x) = 0".
func (s *Solution) String() string {
	var sb strings.Builder
	sb.WriteString(s.opts.function + "(" + s.opts.variable + ") = ")
	if len(s.Terms) == 0 {
		sb.WriteByte('0')
		return sb.String()
	}
	for i, t := range s.Terms {
		if i > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(s.opts.constPrefix)
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(t.Render(s.opts.variable, s.opts.digits))
	}

	return sb.String()
}

// LaTeX renders the solution for math mode, e.g. "y(x) = C_{1}e^{2x} + C_{2}xe^{2x}".
func (s *Solution) LaTeX() string {
	var sb strings.Builder
	sb.WriteString(s.opts.function + "(" + s.opts.variable + ") = ")
	if len(s.Terms) == 0 {
		sb.WriteByte('0')
		return sb.String()
	}
	prefix := strings.TrimSuffix(s.opts.constPrefix, "_")
	for i, t := range s.Terms {
		if i > 0 {
			sb.WriteString(" + ")
		}
		sb.WriteString(prefix + "_{" + strconv.Itoa(i+1) + "}")
		sb.WriteString(t.LaTeX(s.opts.variable, s.opts.digits))
	}

	return sb.String()
}

// Tolerance reports the tolerance the solution was built with.
func (s *Solution) Tolerance() float64 { return s.opts.tolerance }
