// Package report renders batch results as Markdown and as a standalone HTML
// page (goldmark with GitHub-flavored tables).
package report

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/katalvlaran/odechar/batch"
	"github.com/katalvlaran/odechar/poly"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// DefaultTitle heads every report.
const DefaultTitle = "Linear ODE solutions"

// Markdown returns a report with one table row per result, in order.
//
//	| # | Name | Characteristic polynomial | General solution |
func Markdown(results []batch.Result) string {
	var sb strings.Builder
	sb.WriteString("# " + DefaultTitle + "\n\n")
	fmt.Fprintf(&sb, "%d equations, %d failed.\n\n", len(results), batch.Failed(results))
	if len(results) == 0 {
		return sb.String()
	}

	sb.WriteString("| # | Name | Characteristic polynomial | General solution |\n")
	sb.WriteString("|---|------|---------------------------|------------------|\n")
	for i, r := range results {
		outcome := "**error:** " + cell(r.Error)
		if r.OK() {
			outcome = "`" + cell(r.Solution) + "`"
		}
		fmt.Fprintf(&sb, "| %d | %s | `%s` | %s |\n", i+1, cell(r.Name), cell(polynomial(r.Coefficients)), outcome)
	}

	return sb.String()
}

// HTML renders Markdown(results) to a complete UTF-8 HTML document.
func HTML(results []batch.Result) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(results)), &body); err != nil {
		return nil, fmt.Errorf("report: render html: %w", err)
	}

	var out bytes.Buffer
	out.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	out.WriteString("<title>" + html.EscapeString(DefaultTitle) + "</title>\n</head>\n<body>\n")
	out.Write(body.Bytes())
	out.WriteString("</body>\n</html>\n")

	return out.Bytes(), nil
}

// polynomial shows the characteristic polynomial, or the raw coefficients
// when they do not form one.
func polynomial(coeffs []float64) string {
	p, err := poly.New(coeffs...)
	if err == nil {
		return p.String()
	}
	parts := make([]string, len(coeffs))
	for i, c := range coeffs {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// cell keeps a value on one table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")

	return strings.ReplaceAll(s, "|", `\|`)
}
