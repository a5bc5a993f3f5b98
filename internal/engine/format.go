package engine

import (
	"fmt"
	"math"

	"hypotest/domain/hypothesis"
)

// FormatNumber renders a statistic for display: scientific notation for
// magnitudes at or above 1000 or below 0.001, fixed four decimals otherwise.
func FormatNumber(v float64) string {
	abs := math.Abs(v)
	if abs >= 1000 || (abs > 0 && abs < 0.001) {
		return fmt.Sprintf("%.4e", v)
	}
	return fmt.Sprintf("%.4f", v)
}

// parameter symbols per test kind.
func paramSymbol(kind hypothesis.TestKind) string {
	switch kind {
	case hypothesis.KindMean:
		return "μ"
	case hypothesis.KindVariance:
		return "σ²"
	case hypothesis.KindProportion:
		return "p"
	case hypothesis.KindCorrelation:
		return "ρ"
	}
	return "θ"
}

func nullValue(kind hypothesis.TestKind, cfg hypothesis.TestConfig) float64 {
	switch kind {
	case hypothesis.KindMean:
		return cfg.NullMean
	case hypothesis.KindVariance:
		return cfg.NullVariance
	case hypothesis.KindProportion:
		return cfg.NullProportion
	}
	return 0 // correlation tests against rho = 0
}

// NullHypothesis renders the H0 statement for a test.
func NullHypothesis(kind hypothesis.TestKind, cfg hypothesis.TestConfig) string {
	if kind == hypothesis.KindWelch {
		return "H₀: μ₁ = μ₂"
	}
	return fmt.Sprintf("H₀: %s = %s", paramSymbol(kind), FormatNumber(nullValue(kind, cfg)))
}

// AltHypothesis renders the H1 statement, with the comparison symbol chosen
// by the tail.
func AltHypothesis(kind hypothesis.TestKind, cfg hypothesis.TestConfig) string {
	symbol := "≠"
	switch cfg.Tail {
	case hypothesis.TailLeft:
		symbol = "<"
	case hypothesis.TailRight:
		symbol = ">"
	}

	if kind == hypothesis.KindWelch {
		return fmt.Sprintf("H₁: μ₁ %s μ₂", symbol)
	}
	return fmt.Sprintf("H₁: %s %s %s", paramSymbol(kind), symbol, FormatNumber(nullValue(kind, cfg)))
}

// Interpret composes the human-readable conclusion for a result. Pure string
// assembly; it never recomputes or alters a statistic.
func Interpret(r hypothesis.HypothesisResult) string {
	decision := "Fail to reject H₀"
	comparison := "≥"
	if r.Significant {
		decision = "Reject H₀"
		comparison = "<"
	}

	return fmt.Sprintf(
		"%s at α=%s: p-value %s %s α (statistic %s, critical value %s, effect size %s %s, approximate power %s).",
		decision, FormatNumber(r.Alpha),
		FormatNumber(r.PValue), comparison,
		FormatNumber(r.Statistic), FormatNumber(r.CriticalValue),
		FormatNumber(r.EffectSize), r.EffectUnit,
		FormatNumber(r.Power),
	)
}
