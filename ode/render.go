package ode

import (
	"strconv"
	"strings"
)

// FormatNumber renders v with the given number of significant digits in
// general format: trailing zeros and a bare decimal point are dropped, and
// exponent notation is used when the decimal exponent is < −4 or ≥ digits.
//
//	FormatNumber(2, 5)        == "2"
//	FormatNumber(-0.5, 5)     == "-0.5"
//	FormatNumber(123456, 5)   == "1.2346e+05"
func FormatNumber(v float64, digits int) string {
	return strconv.FormatFloat(v, 'g', digits, 64)
}

// monomial renders xᵏ as "", "x" or "x^k".
func monomial(k int, variable string) string {
	switch k {
	case 0:
		return ""
	case 1:
		return variable
	default:
		return variable + "^" + strconv.Itoa(k)
	}
}

// Render writes t in plain text, e.g. "x^2e^(-1x)cos(3x)".
func (t Term) Render(variable string, digits int) string {
	var sb strings.Builder
	sb.WriteString(monomial(t.Power, variable))
	if t.HasRate {
		sb.WriteString("e^(")
		sb.WriteString(FormatNumber(t.Rate, digits))
		sb.WriteString(variable)
		sb.WriteByte(')')
	}
	if name := t.Trig.plain(); name != "" {
		sb.WriteString(name)
		sb.WriteByte('(')
		sb.WriteString(FormatNumber(t.Freq, digits))
		sb.WriteString(variable)
		sb.WriteByte(')')
	}

	return sb.String()
}

// LaTeX writes t in LaTeX math mode, e.g. "x^{2}e^{-1x}\cos(3x)".
func (t Term) LaTeX(variable string, digits int) string {
	var sb strings.Builder
	switch t.Power {
	case 0:
	case 1:
		sb.WriteString(variable)
	default:
		sb.WriteString(variable + "^{" + strconv.Itoa(t.Power) + "}")
	}
	if t.HasRate {
		sb.WriteString("e^{")
		sb.WriteString(latexNumber(t.Rate, digits))
		sb.WriteString(variable)
		sb.WriteByte('}')
	}
	if t.Trig != TrigNone {
		sb.WriteString(`\` + t.Trig.plain() + "(")
		sb.WriteString(latexNumber(t.Freq, digits))
		sb.WriteString(variable)
		sb.WriteByte(')')
	}

	return sb.String()
}

func (k TrigKind) plain() string {
	switch k {
	case TrigCos:
		return "cos"
	case TrigSin:
		return "sin"
	default:
		return ""
	}
}

// latexNumber turns "1.2346e+05" into "1.2346 \cdot 10^{5}"; plain numbers pass through.
func latexNumber(v float64, digits int) string {
	s := FormatNumber(v, digits)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	e, err := strconv.Atoi(exp)
	if err != nil {
		return s
	}

	return mant + ` \cdot 10^{` + strconv.Itoa(e) + "}"
}
