package engine

import (
	"strings"
	"testing"

	"hypotest/domain/hypothesis"
)

func TestFormatNumber_Adaptive(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.0000"},
		{1.5, "1.5000"},
		{-3.14159, "-3.1416"},
		{0.001, "0.0010"},
		{0.0005, "5.0000e-04"},
		{999.9, "999.9000"},
		{1000, "1.0000e+03"},
		{-2500000, "-2.5000e+06"},
	}
	for _, c := range cases {
		if got := FormatNumber(c.in); got != c.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHypothesisText(t *testing.T) {
	cfg := hypothesis.DefaultConfig(hypothesis.KindMean)
	cfg.NullMean = 3

	if got := NullHypothesis(hypothesis.KindMean, cfg); got != "H₀: μ = 3.0000" {
		t.Errorf("null text = %q", got)
	}
	if got := AltHypothesis(hypothesis.KindMean, cfg); got != "H₁: μ ≠ 3.0000" {
		t.Errorf("two-tailed alt text = %q", got)
	}

	cfg.Tail = hypothesis.TailLeft
	if got := AltHypothesis(hypothesis.KindMean, cfg); got != "H₁: μ < 3.0000" {
		t.Errorf("left-tailed alt text = %q", got)
	}

	cfg.Tail = hypothesis.TailRight
	if got := AltHypothesis(hypothesis.KindMean, cfg); got != "H₁: μ > 3.0000" {
		t.Errorf("right-tailed alt text = %q", got)
	}

	if got := NullHypothesis(hypothesis.KindWelch, cfg); got != "H₀: μ₁ = μ₂" {
		t.Errorf("welch null text = %q", got)
	}
	if got := NullHypothesis(hypothesis.KindCorrelation, cfg); got != "H₀: ρ = 0.0000" {
		t.Errorf("correlation null text = %q", got)
	}
}

func TestInterpret_DecisionPhrase(t *testing.T) {
	base := hypothesis.HypothesisResult{
		Alpha: 0.05, PValue: 0.01, Statistic: 2.5, CriticalValue: 1.96,
		EffectSize: 0.5, EffectUnit: "d", Power: 0.7, Significant: true,
	}
	text := Interpret(base)
	if !strings.HasPrefix(text, "Reject H₀") {
		t.Errorf("significant interpretation = %q", text)
	}
	if !strings.Contains(text, "0.0100") {
		t.Errorf("interpretation missing p-value: %q", text)
	}

	base.Significant = false
	base.PValue = 0.4
	text = Interpret(base)
	if !strings.HasPrefix(text, "Fail to reject H₀") {
		t.Errorf("non-significant interpretation = %q", text)
	}
}
