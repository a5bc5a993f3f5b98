package hypothesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotest/domain/core"
)

func TestTestKindIsValid(t *testing.T) {
	for _, k := range []TestKind{KindMean, KindVariance, KindProportion, KindCorrelation, KindWelch} {
		assert.True(t, k.IsValid(), "kind %q should be valid", k)
	}
	assert.False(t, TestKind("anova").IsValid())
	assert.False(t, TestKind("").IsValid())
}

func TestMinSamples(t *testing.T) {
	assert.Equal(t, 3, KindCorrelation.MinSamples())
	assert.Equal(t, 2, KindMean.MinSamples())
	assert.Equal(t, 2, KindWelch.MinSamples())
}

func TestDefaultConfigValidatesForEveryKind(t *testing.T) {
	for _, k := range []TestKind{KindMean, KindVariance, KindProportion, KindCorrelation, KindWelch} {
		cfg := DefaultConfig(k)
		require.NoError(t, cfg.Validate(), "defaults for %q should validate", k)
		assert.Equal(t, 0.05, cfg.Alpha)
		assert.Equal(t, TailTwo, cfg.Tail)
	}
}

func TestConfigValidateRejectsBadFields(t *testing.T) {
	cfg := DefaultConfig(KindMean)
	cfg.Alpha = 1.0
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, core.IsInvalidParameter(err))

	cfg = DefaultConfig(KindVariance)
	cfg.NullVariance = 0
	assert.True(t, core.IsInvalidParameter(cfg.Validate()))

	cfg = DefaultConfig(KindProportion)
	cfg.NullProportion = 1
	assert.True(t, core.IsInvalidParameter(cfg.Validate()))

	cfg = DefaultConfig(KindMean)
	cfg.Tail = Tail("sideways")
	assert.True(t, core.IsInvalidParameter(cfg.Validate()))
}

func TestConfigValidateIgnoresIrrelevantFields(t *testing.T) {
	// A mean test with a nonsense null variance still passes: the field is
	// not inspected for that kind.
	cfg := DefaultConfig(KindMean)
	cfg.NullVariance = -5
	assert.NoError(t, cfg.Validate())
}

func TestFingerprintDistinguishesResults(t *testing.T) {
	a := HypothesisResult{Kind: KindMean, Tail: TailTwo, Statistic: 1.5, PValue: 0.13, SampleSize: 10}
	b := a
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Statistic = 1.5000000001
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestResultValidate(t *testing.T) {
	ok := HypothesisResult{PValue: 0.5, SampleSize: 3}
	assert.NoError(t, ok.Validate())

	bad := HypothesisResult{PValue: 1.2, SampleSize: 3}
	assert.Error(t, bad.Validate())

	bad = HypothesisResult{PValue: 0.5, SampleSize: 0}
	assert.Error(t, bad.Validate())
}
