// Package engine implements the hypothesis-testing core: one-sample tests on
// mean, variance, proportion and lag-1 autocorrelation, and the independent
// two-sample Welch t-test. Every call is a pure function of its inputs, so
// the engine is safe for unsynchronized concurrent use and its outputs are
// bit-identical across runs for identical inputs.
package engine

import (
	"math"

	"github.com/montanaflynn/stats"

	"hypotest/domain/core"
	"hypotest/domain/hypothesis"
	"hypotest/internal/numeric"
)

// Engine runs hypothesis tests. It holds no state; the zero value is usable.
type Engine struct{}

// New creates a test engine.
func New() *Engine {
	return &Engine{}
}

// RunOneSampleTest dispatches on cfg.Kind and runs the configured one-sample
// test against values. Non-finite values are dropped before the minimum
// sample size is checked.
func (e *Engine) RunOneSampleTest(values []float64, cfg hypothesis.TestConfig) (hypothesis.HypothesisResult, error) {
	if err := cfg.Validate(); err != nil {
		return hypothesis.HypothesisResult{}, err
	}
	if cfg.Kind == hypothesis.KindWelch {
		return hypothesis.HypothesisResult{}, core.NewInvalidParameterError("kind", "welch requires two samples; use RunWelchTwoSampleTest")
	}

	sample := filterFinite(values)
	if need := cfg.Kind.MinSamples(); len(sample) < need {
		return hypothesis.HypothesisResult{}, core.NewInsufficientDataError(string(cfg.Kind), len(sample), need)
	}

	switch cfg.Kind {
	case hypothesis.KindMean:
		return e.meanTest(sample, cfg)
	case hypothesis.KindVariance:
		return e.varianceTest(sample, cfg)
	case hypothesis.KindProportion:
		return e.proportionTest(sample, cfg)
	case hypothesis.KindCorrelation:
		return e.correlationTest(sample, cfg)
	}
	// Unreachable: Validate rejects unknown kinds.
	return hypothesis.HypothesisResult{}, core.NewInvalidParameterError("kind", "unknown test kind")
}

// RunWelchTwoSampleTest runs the independent two-sample Welch t-test. The
// groups must be supplied with equal raw lengths (they originate as paired
// columns); non-finite entries are then dropped per group before the
// two-per-group minimum is checked.
func (e *Engine) RunWelchTwoSampleTest(groupA, groupB []float64, alpha float64, tail hypothesis.Tail) (hypothesis.HypothesisResult, error) {
	if len(groupA) != len(groupB) {
		return hypothesis.HypothesisResult{}, core.NewLengthMismatchError(len(groupA), len(groupB))
	}
	if !(alpha > 0 && alpha < 1) || math.IsNaN(alpha) {
		return hypothesis.HypothesisResult{}, core.NewInvalidParameterError("alpha", "must be in (0,1)")
	}
	if !tail.IsValid() {
		return hypothesis.HypothesisResult{}, core.NewInvalidParameterError("tail", "unknown tail "+string(tail))
	}

	a := filterFinite(groupA)
	b := filterFinite(groupB)
	if len(a) < 2 || len(b) < 2 {
		got := len(a)
		if len(b) < got {
			got = len(b)
		}
		return hypothesis.HypothesisResult{}, core.NewInsufficientDataError("welch", got, 2)
	}

	n1 := float64(len(a))
	n2 := float64(len(b))
	m1, _ := stats.Mean(a)
	m2, _ := stats.Mean(b)
	v1, _ := stats.SampleVariance(a)
	v2, _ := stats.SampleVariance(b)

	se := math.Sqrt(v1/n1 + v2/n2)
	if se == 0 {
		return hypothesis.HypothesisResult{}, core.NewDegeneracyError("both groups have zero variance")
	}

	tStat := (m1 - m2) / se

	// Welch-Satterthwaite degrees of freedom.
	df := math.Pow(v1/n1+v2/n2, 2) /
		(math.Pow(v1/n1, 2)/(n1-1) + math.Pow(v2/n2, 2)/(n2-1))

	pValue := pValueFromCDF(numeric.TCDF(tStat, df), tail)
	critical, err := tCritical(df, alpha, tail)
	if err != nil {
		return hypothesis.HypothesisResult{}, err
	}

	pooledSD := math.Sqrt(((n1-1)*v1 + (n2-1)*v2) / (n1 + n2 - 2))
	effect := (m1 - m2) / pooledSD

	nEff := n1 * n2 / (n1 + n2)
	power := approxPower(effect, alpha, nEff, tail)

	result := hypothesis.HypothesisResult{
		TestName:       "Welch Two-Sample t-Test",
		Kind:           hypothesis.KindWelch,
		NullHypothesis: NullHypothesis(hypothesis.KindWelch, hypothesis.TestConfig{}),
		AltHypothesis:  AltHypothesis(hypothesis.KindWelch, hypothesis.TestConfig{Tail: tail}),
		Statistic:      tStat,
		DF:             df,
		PValue:         pValue,
		CriticalValue:  critical,
		Alpha:          alpha,
		Tail:           tail,
		Significant:    pValue < alpha,
		EffectSize:     effect,
		EffectUnit:     "d",
		Power:          power,
		SampleSize:     len(a),
		SampleSize2:    len(b),
	}
	result.Interpretation = Interpret(result)
	return result, result.Validate()
}

func (e *Engine) meanTest(sample []float64, cfg hypothesis.TestConfig) (hypothesis.HypothesisResult, error) {
	n := float64(len(sample))
	mean, _ := stats.Mean(sample)
	sd, _ := stats.StandardDeviationSample(sample)
	if sd == 0 {
		return hypothesis.HypothesisResult{}, core.NewDegeneracyError("zero sample variance in mean test")
	}

	tStat := (mean - cfg.NullMean) / (sd / math.Sqrt(n))
	df := n - 1

	pValue := pValueFromCDF(numeric.TCDF(tStat, df), cfg.Tail)
	critical, err := tCritical(df, cfg.Alpha, cfg.Tail)
	if err != nil {
		return hypothesis.HypothesisResult{}, err
	}

	effect := (mean - cfg.NullMean) / sd // Cohen's d

	return e.finish(hypothesis.HypothesisResult{
		TestName:      "One-Sample Mean Test (t)",
		Kind:          hypothesis.KindMean,
		Statistic:     tStat,
		DF:            df,
		PValue:        pValue,
		CriticalValue: critical,
		EffectSize:    effect,
		EffectUnit:    "d",
		Power:         approxPower(effect, cfg.Alpha, n, cfg.Tail),
		SampleSize:    len(sample),
	}, cfg)
}

func (e *Engine) varianceTest(sample []float64, cfg hypothesis.TestConfig) (hypothesis.HypothesisResult, error) {
	n := float64(len(sample))
	variance, _ := stats.SampleVariance(sample)

	chi2 := (n - 1) * variance / cfg.NullVariance
	df := n - 1

	cdfVal, err := numeric.ChiSquareCDF(chi2, df)
	if err != nil {
		return hypothesis.HypothesisResult{}, err
	}
	pValue := pValueFromCDF(cdfVal, cfg.Tail)
	critical, err := chiSquareCritical(df, cfg.Alpha, cfg.Tail)
	if err != nil {
		return hypothesis.HypothesisResult{}, err
	}

	effect := math.Abs(variance/cfg.NullVariance - 1)

	return e.finish(hypothesis.HypothesisResult{
		TestName:      "Variance Test (chi-square)",
		Kind:          hypothesis.KindVariance,
		Statistic:     chi2,
		DF:            df,
		PValue:        pValue,
		CriticalValue: critical,
		EffectSize:    effect,
		EffectUnit:    "variance_ratio",
		Power:         approxPower(effect, cfg.Alpha, n, cfg.Tail),
		SampleSize:    len(sample),
	}, cfg)
}

func (e *Engine) proportionTest(sample []float64, cfg hypothesis.TestConfig) (hypothesis.HypothesisResult, error) {
	n := float64(len(sample))
	success := cfg.SuccessIf
	if success == nil {
		success = func(v float64) bool { return v > 0 }
	}

	count := 0
	for _, v := range sample {
		if success(v) {
			count++
		}
	}
	pHat := float64(count) / n

	p0 := cfg.NullProportion
	zStat := (pHat - p0) / math.Sqrt(p0*(1-p0)/n)

	pValue := pValueFromCDF(numeric.NormalCDF(zStat), cfg.Tail)
	critical, err := zCritical(cfg.Alpha, cfg.Tail)
	if err != nil {
		return hypothesis.HypothesisResult{}, err
	}

	// Cohen's h via the arcsine variance-stabilizing transform.
	effect := 2*math.Asin(math.Sqrt(pHat)) - 2*math.Asin(math.Sqrt(p0))

	return e.finish(hypothesis.HypothesisResult{
		TestName:      "Proportion Test (z)",
		Kind:          hypothesis.KindProportion,
		Statistic:     zStat,
		PValue:        pValue,
		CriticalValue: critical,
		EffectSize:    effect,
		EffectUnit:    "h",
		Power:         approxPower(effect, cfg.Alpha, n, cfg.Tail),
		SampleSize:    len(sample),
	}, cfg)
}

func (e *Engine) correlationTest(sample []float64, cfg hypothesis.TestConfig) (hypothesis.HypothesisResult, error) {
	n := float64(len(sample))
	head := sample[:len(sample)-1]
	tailSeries := sample[1:]

	vHead, _ := stats.SampleVariance(head)
	vTail, _ := stats.SampleVariance(tailSeries)
	if vHead == 0 || vTail == 0 {
		return hypothesis.HypothesisResult{}, core.NewDegeneracyError("zero variance in lagged series")
	}

	r, err := stats.Pearson(head, tailSeries)
	if err != nil {
		return hypothesis.HypothesisResult{}, core.NewDegeneracyError("correlation undefined: " + err.Error())
	}
	if math.Abs(r) >= 1 {
		return hypothesis.HypothesisResult{}, core.NewDegeneracyError("perfect lag-1 correlation")
	}

	df := n - 2
	tStat := r * math.Sqrt(df/(1-r*r))

	pValue := pValueFromCDF(numeric.TCDF(tStat, df), cfg.Tail)
	critical, err := tCritical(df, cfg.Alpha, cfg.Tail)
	if err != nil {
		return hypothesis.HypothesisResult{}, err
	}

	effect := math.Abs(r)

	return e.finish(hypothesis.HypothesisResult{
		TestName:      "Lag-1 Autocorrelation Test (t)",
		Kind:          hypothesis.KindCorrelation,
		Statistic:     tStat,
		DF:            df,
		PValue:        pValue,
		CriticalValue: critical,
		EffectSize:    effect,
		EffectUnit:    "r",
		Power:         approxPower(effect, cfg.Alpha, n, cfg.Tail),
		SampleSize:    len(sample),
	}, cfg)
}

// finish fills the shared fields of a one-sample result and validates it.
func (e *Engine) finish(r hypothesis.HypothesisResult, cfg hypothesis.TestConfig) (hypothesis.HypothesisResult, error) {
	r.Alpha = cfg.Alpha
	r.Tail = cfg.Tail
	r.Significant = r.PValue < cfg.Alpha
	r.NullHypothesis = NullHypothesis(cfg.Kind, cfg)
	r.AltHypothesis = AltHypothesis(cfg.Kind, cfg)
	r.Interpretation = Interpret(r)
	return r, r.Validate()
}

// filterFinite drops NaN and infinite values, preserving order.
func filterFinite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// pValueFromCDF converts a CDF value at the observed statistic into a
// p-value: 2*min(F, 1-F) two-tailed, F left, 1-F right.
func pValueFromCDF(cdfVal float64, tail hypothesis.Tail) float64 {
	var p float64
	switch tail {
	case hypothesis.TailLeft:
		p = cdfVal
	case hypothesis.TailRight:
		p = 1 - cdfVal
	default:
		p = 2 * math.Min(cdfVal, 1-cdfVal)
	}
	return math.Max(0, math.Min(1, p))
}

// upperTailTarget is the CDF level of the positive critical cutoff: alpha is
// split across both sides for two-tailed tests.
func upperTailTarget(alpha float64, tail hypothesis.Tail) float64 {
	if tail == hypothesis.TailTwo {
		return 1 - alpha/2
	}
	return 1 - alpha
}

// tCritical computes the positive t cutoff by inverting the t CDF.
func tCritical(df, alpha float64, tail hypothesis.Tail) (float64, error) {
	target := upperTailTarget(alpha, tail)
	return numeric.InvertCDF(func(x float64) float64 {
		return numeric.TCDF(x, df)
	}, target, 0, 5)
}

// zCritical computes the positive normal cutoff.
func zCritical(alpha float64, tail hypothesis.Tail) (float64, error) {
	return numeric.NormalQuantile(upperTailTarget(alpha, tail))
}

// chiSquareCritical computes the chi-square cutoff. The distribution is not
// symmetric: a left-tailed test cuts at the lower alpha quantile, which is
// still a positive value.
func chiSquareCritical(df, alpha float64, tail hypothesis.Tail) (float64, error) {
	var target float64
	switch tail {
	case hypothesis.TailTwo:
		target = 1 - alpha/2
	case hypothesis.TailRight:
		target = 1 - alpha
	default:
		target = alpha
	}

	var cdfErr error
	cv, err := numeric.InvertCDF(func(x float64) float64 {
		p, cerr := numeric.ChiSquareCDF(x, df)
		if cerr != nil && cdfErr == nil {
			cdfErr = cerr
		}
		return p
	}, target, 0, df+10)
	if cdfErr != nil {
		return 0, cdfErr
	}
	return cv, err
}

// approxPower estimates power under a normal model: the noncentrality is
// effect*sqrt(n) and the cutoff is the normal critical value for the tail.
// This is a deliberate approximation, not exact noncentral power; it is
// reported as such and must not be sharpened silently.
func approxPower(effect, alpha, n float64, tail hypothesis.Tail) float64 {
	e := math.Abs(effect) * math.Sqrt(n)

	var power float64
	if tail == hypothesis.TailTwo {
		za, err := numeric.NormalQuantile(1 - alpha/2)
		if err != nil {
			return 0
		}
		power = numeric.NormalCDF(e-za) + (1 - numeric.NormalCDF(e+za))
	} else {
		za, err := numeric.NormalQuantile(1 - alpha)
		if err != nil {
			return 0
		}
		power = numeric.NormalCDF(e - za)
	}
	return math.Max(0, math.Min(1, power))
}
