package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotest/domain/hypothesis"
	"hypotest/internal/engine"
)

func sampleResult(t *testing.T) hypothesis.HypothesisResult {
	t.Helper()
	res, err := engine.New().RunOneSampleTest([]float64{1, 2, 3, 4, 5}, hypothesis.TestConfig{
		Kind: hypothesis.KindMean, Alpha: 0.05, Tail: hypothesis.TailTwo, NullMean: 1,
	})
	require.NoError(t, err)
	return res
}

func TestMarkdown_ContainsResultFields(t *testing.T) {
	res := sampleResult(t)
	md := Markdown(res)

	assert.Contains(t, md, res.TestName)
	assert.Contains(t, md, res.NullHypothesis)
	assert.Contains(t, md, res.AltHypothesis)
	assert.Contains(t, md, engine.FormatNumber(res.Statistic))
	assert.Contains(t, md, engine.FormatNumber(res.PValue))
	assert.Contains(t, md, res.Interpretation)
}

func TestMarkdown_TwoSampleShowsBothSizes(t *testing.T) {
	res, err := engine.New().RunWelchTwoSampleTest(
		[]float64{1, 2, 3, 4, 5}, []float64{2, 3, 4, 5, 6}, 0.05, hypothesis.TailTwo)
	require.NoError(t, err)

	md := Markdown(res)
	assert.Contains(t, md, "n₁, n₂ | 5, 5")
}

func TestHTML_RendersTable(t *testing.T) {
	res := sampleResult(t)
	out := HTML(MarkdownAll("Session Report", []hypothesis.HypothesisResult{res}))

	assert.True(t, strings.Contains(out, "<table>"), "expected an HTML table, got: %s", out)
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "Session Report")
}
