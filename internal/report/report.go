// Package report renders hypothesis results into Markdown and HTML. It is
// pure presentation: statistics pass through formatting untouched.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"hypotest/domain/hypothesis"
	"hypotest/internal/engine"
)

// Markdown renders a single result as a Markdown section.
func Markdown(r hypothesis.HypothesisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", r.TestName)
	fmt.Fprintf(&b, "- %s\n", r.NullHypothesis)
	fmt.Fprintf(&b, "- %s\n\n", r.AltHypothesis)

	fmt.Fprintf(&b, "| Quantity | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Statistic | %s |\n", engine.FormatNumber(r.Statistic))
	if r.DF > 0 {
		fmt.Fprintf(&b, "| Degrees of freedom | %s |\n", engine.FormatNumber(r.DF))
	}
	fmt.Fprintf(&b, "| p-value | %s |\n", engine.FormatNumber(r.PValue))
	fmt.Fprintf(&b, "| Critical value | %s |\n", engine.FormatNumber(r.CriticalValue))
	fmt.Fprintf(&b, "| α | %s |\n", engine.FormatNumber(r.Alpha))
	fmt.Fprintf(&b, "| Effect size (%s) | %s |\n", r.EffectUnit, engine.FormatNumber(r.EffectSize))
	fmt.Fprintf(&b, "| Approximate power | %s |\n", engine.FormatNumber(r.Power))
	if r.SampleSize2 > 0 {
		fmt.Fprintf(&b, "| n₁, n₂ | %d, %d |\n", r.SampleSize, r.SampleSize2)
	} else {
		fmt.Fprintf(&b, "| n | %d |\n", r.SampleSize)
	}

	fmt.Fprintf(&b, "\n%s\n", r.Interpretation)
	return b.String()
}

// MarkdownAll renders several results under a shared title.
func MarkdownAll(title string, results []hypothesis.HypothesisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	for _, r := range results {
		b.WriteString(Markdown(r))
		b.WriteString("\n")
	}
	return b.String()
}

// HTML converts a Markdown report to HTML for embedding in web views.
func HTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(md), p, renderer))
}
