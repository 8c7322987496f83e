package poly

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/katalvlaran/odechar/matrix"
)

// Poly is a real polynomial a_n·xⁿ + … + a_1·x + a_0 stored degree-descending
// as [a_n, …, a_0]. Values built by New have a_n ≠ 0 and n ≥ 1; derivatives
// may drop to degree 0.
type Poly struct {
	c []float64
}

// New validates coeffs and returns the polynomial they describe.
// The slice is copied; later changes to coeffs do not affect the result.
//
// Errors (all match ErrInvalidInput):
//   - ErrTooShort    (len(coeffs) < 2).
//   - ErrNaNInf      (any coefficient not finite).
//   - ErrZeroLeading (coeffs[0] == 0).
func New(coeffs ...float64) (Poly, error) {
	if len(coeffs) < 2 {
		return Poly{}, polyErrorf(opNew, fmt.Errorf("got %d: %w", len(coeffs), ErrTooShort))
	}
	for i, v := range coeffs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Poly{}, polyErrorf(opNew, fmt.Errorf("coefficient %d: %w", i, ErrNaNInf))
		}
	}
	if coeffs[0] == 0 {
		return Poly{}, polyErrorf(opNew, ErrZeroLeading)
	}
	c := make([]float64, len(coeffs))
	copy(c, coeffs)

	return Poly{c: c}, nil
}

// Degree returns n.
func (p Poly) Degree() int { return len(p.c) - 1 }

// Coeffs returns a copy of the coefficients, highest degree first.
func (p Poly) Coeffs() []float64 {
	out := make([]float64, len(p.c))
	copy(out, p.c)

	return out
}

// Eval evaluates p at z with Horner's scheme.
func (p Poly) Eval(z complex128) complex128 {
	var acc complex128
	for _, a := range p.c {
		acc = acc*z + complex(a, 0)
	}

	return acc
}

// magnitude returns Σ|a_k|·|z|^k, the scale against which a residual |p(z)|
// is judged: rounding in Horner's scheme is bounded by a small multiple of it.
func (p Poly) magnitude(z complex128) float64 {
	r := cmplx.Abs(z)
	var acc float64
	for _, a := range p.c {
		acc = acc*r + math.Abs(a)
	}

	return acc
}

// Residual returns |p(z)| / Σ|a_k|·|z|^k, a scale-free measure of how well z
// solves p(z) = 0. It is 0 for the zero polynomial.
func (p Poly) Residual(z complex128) float64 {
	mag := p.magnitude(z)
	if mag == 0 {
		return 0
	}

	return cmplx.Abs(p.Eval(z)) / mag
}

// Derivative returns p′. The derivative of a degree-0 polynomial is the zero
// polynomial of degree 0.
func (p Poly) Derivative() Poly {
	n := p.Degree()
	if n == 0 {
		return Poly{c: []float64{0}}
	}
	d := make([]float64, n)
	for i := 0; i < n; i++ {
		d[i] = p.c[i] * float64(n-i)
	}

	return Poly{c: d}
}

// DerivativeN returns the k-th derivative of p (k ≥ 0).
func (p Poly) DerivativeN(k int) Poly {
	d := p
	for ; k > 0; k-- {
		d = d.Derivative()
	}

	return d
}

// Monic returns p divided by its leading coefficient.
func (p Poly) Monic() Poly {
	lead := p.c[0]
	c := make([]float64, len(p.c))
	for i, a := range p.c {
		c[i] = a / lead
	}

	return Poly{c: c}
}

// Companion returns the n×n companion matrix of p: first row −a_{n−1}/a_n …
// −a_0/a_n, ones on the subdiagonal, zeros elsewhere. Its eigenvalues are
// the roots of p; it is already upper Hessenberg.
//
// Errors:
//   - ErrTooShort (degree 0 polynomial, only reachable through derivatives).
//   - matrix.ErrNaNInf (coefficient ratio overflowed).
func (p Poly) Companion() (*matrix.Dense, error) {
	n := p.Degree()
	if n < 1 {
		return nil, polyErrorf(opCompanion, ErrTooShort)
	}
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, polyErrorf(opCompanion, err)
	}
	lead := p.c[0]
	for j := 0; j < n; j++ {
		if err = m.Set(0, j, -p.c[j+1]/lead); err != nil {
			return nil, polyErrorf(opCompanion, err)
		}
	}
	for i := 1; i < n; i++ {
		if err = m.Set(i, i-1, 1); err != nil {
			return nil, polyErrorf(opCompanion, err)
		}
	}

	return m, nil
}

// String renders p highest power first, e.g. "x^2 - 3x + 2".
func (p Poly) String() string {
	n := p.Degree()
	var sb strings.Builder
	for i, a := range p.c {
		if a == 0 {
			continue
		}
		pow := n - i
		switch {
		case sb.Len() == 0 && a < 0:
			sb.WriteByte('-')
		case sb.Len() > 0 && a < 0:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}
		abs := math.Abs(a)
		if abs != 1 || pow == 0 {
			sb.WriteString(strconv.FormatFloat(abs, 'g', -1, 64))
		}
		switch pow {
		case 0:
		case 1:
			sb.WriteByte('x')
		default:
			sb.WriteString("x^" + strconv.Itoa(pow))
		}
	}
	if sb.Len() == 0 {
		return "0"
	}

	return sb.String()
}
