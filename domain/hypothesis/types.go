package hypothesis

import (
	"fmt"
	"math"

	"hypotest/domain/core"
)

// ============================================================================
// TYPE DEFINITIONS
// ============================================================================

// TestKind defines the statistical test performed
type TestKind string

const (
	KindMean        TestKind = "mean"        // One-sample t-test on the mean
	KindVariance    TestKind = "variance"    // Chi-square test on the variance
	KindProportion  TestKind = "proportion"  // One-sample z-test on a proportion
	KindCorrelation TestKind = "correlation" // t-test on lag-1 autocorrelation
	KindWelch       TestKind = "welch"       // Independent two-sample Welch t-test
)

// IsValid reports whether the kind is one of the closed set of tests.
func (k TestKind) IsValid() bool {
	switch k {
	case KindMean, KindVariance, KindProportion, KindCorrelation, KindWelch:
		return true
	}
	return false
}

// MinSamples returns the structural minimum number of finite values the kind
// requires (per group, for the Welch test).
func (k TestKind) MinSamples() int {
	if k == KindCorrelation {
		return 3
	}
	return 2
}

// Tail defines the alternative-hypothesis direction
type Tail string

const (
	TailTwo   Tail = "two"   // H1: parameter differs from the null value
	TailLeft  Tail = "left"  // H1: parameter is below the null value
	TailRight Tail = "right" // H1: parameter is above the null value
)

// IsValid reports whether the tail is one of the closed set.
func (t Tail) IsValid() bool {
	switch t {
	case TailTwo, TailLeft, TailRight:
		return true
	}
	return false
}

// ============================================================================
// CONFIGURATION
// ============================================================================

// TestConfig fully specifies a one-sample test. Zero values are filled by
// DefaultConfig; callers that build the struct by hand should start from it.
type TestConfig struct {
	Kind           TestKind `json:"kind"`
	Alpha          float64  `json:"alpha"`           // Significance level in (0,1)
	Tail           Tail     `json:"tail"`            // Alternative direction
	NullMean       float64  `json:"null_mean"`       // Mu0 for the mean test
	NullVariance   float64  `json:"null_variance"`   // Sigma0^2 for the variance test, > 0
	NullProportion float64  `json:"null_proportion"` // P0 for the proportion test, in (0,1)

	// SuccessIf maps a raw observation to success/failure for the proportion
	// test. Nil means the default predicate (value > 0).
	SuccessIf func(float64) bool `json:"-"`
}

// DefaultConfig returns the documented defaults for a test kind:
// alpha 0.05, two-tailed, mu0=0, sigma0^2=1, p0=0.5.
func DefaultConfig(kind TestKind) TestConfig {
	return TestConfig{
		Kind:           kind,
		Alpha:          0.05,
		Tail:           TailTwo,
		NullMean:       0,
		NullVariance:   1,
		NullProportion: 0.5,
	}
}

// Validate checks the configuration invariants. Fields irrelevant to the
// configured kind are not inspected, so a config built from DefaultConfig
// and overridden per-kind always passes.
func (c TestConfig) Validate() error {
	if !c.Kind.IsValid() {
		return core.NewInvalidParameterError("kind", fmt.Sprintf("unknown test kind %q", string(c.Kind)))
	}
	if !c.Tail.IsValid() {
		return core.NewInvalidParameterError("tail", fmt.Sprintf("unknown tail %q", string(c.Tail)))
	}
	if !(c.Alpha > 0 && c.Alpha < 1) || math.IsNaN(c.Alpha) {
		return core.NewInvalidParameterError("alpha", fmt.Sprintf("must be in (0,1), got %v", c.Alpha))
	}
	if c.Kind == KindVariance && !(c.NullVariance > 0) {
		return core.NewInvalidParameterError("null_variance", fmt.Sprintf("must be > 0, got %v", c.NullVariance))
	}
	if c.Kind == KindProportion && !(c.NullProportion > 0 && c.NullProportion < 1) {
		return core.NewInvalidParameterError("null_proportion", fmt.Sprintf("must be in (0,1), got %v", c.NullProportion))
	}
	return nil
}

// ============================================================================
// RESULTS
// ============================================================================

// HypothesisResult is the immutable record produced by a single engine call.
// INVARIANTS:
// - PValue in [0.0, 1.0]
// - CriticalValue is the positive cutoff for the configured tail
// - SampleSize > 0 (SampleSize2 > 0 for two-sample tests)
// - Power is a normal-approximation estimate, not exact noncentral power
type HypothesisResult struct {
	TestName       string   `json:"test_name"`
	Kind           TestKind `json:"kind"`
	NullHypothesis string   `json:"null_hypothesis"`
	AltHypothesis  string   `json:"alt_hypothesis"`
	Statistic      float64  `json:"statistic"`
	DF             float64  `json:"df,omitempty"` // 0 when the test has no df (z-test)
	PValue         float64  `json:"p_value"`
	CriticalValue  float64  `json:"critical_value"`
	Alpha          float64  `json:"alpha"`
	Tail           Tail     `json:"tail"`
	Significant    bool     `json:"significant"` // p < alpha
	EffectSize     float64  `json:"effect_size"`
	EffectUnit     string   `json:"effect_unit"` // "d", "h", "r", "variance_ratio"
	Power          float64  `json:"power"`       // Approximate, normal model
	SampleSize     int      `json:"sample_size"`
	SampleSize2    int      `json:"sample_size_2,omitempty"` // Second group, Welch only
	Interpretation string   `json:"interpretation"`
}

// Fingerprint returns a deterministic hash of the numeric content of the
// result. Identical inputs produce bit-identical results, so the fingerprint
// is stable across runs and usable in golden regression tests.
func (r HypothesisResult) Fingerprint() core.Hash {
	payload := fmt.Sprintf("%s|%s|%s|%b|%b|%b|%b|%b|%v|%d|%d",
		r.Kind, r.Tail, r.EffectUnit,
		r.Statistic, r.PValue, r.CriticalValue, r.EffectSize, r.Power,
		r.Significant, r.SampleSize, r.SampleSize2)
	return core.NewHash([]byte(payload))
}

// Validate checks result invariants before the record leaves the engine.
func (r HypothesisResult) Validate() error {
	if r.PValue < 0 || r.PValue > 1 || math.IsNaN(r.PValue) {
		return fmt.Errorf("p-value must be in [0,1], got %v", r.PValue)
	}
	if r.SampleSize <= 0 {
		return fmt.Errorf("sample size must be > 0, got %d", r.SampleSize)
	}
	return nil
}
