package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotest/domain/core"
	"hypotest/domain/hypothesis"
	"hypotest/internal/testkit"
)

func TestBatchRunner_MixedRequests(t *testing.T) {
	gen := testkit.New(11)
	e := New()
	runner := NewBatchRunner(e, 4)

	welchCfg := hypothesis.DefaultConfig(hypothesis.KindWelch)
	requests := []BatchRequest{
		{Name: "mean", Values: gen.Normal(30, 0.5, 1), Config: hypothesis.DefaultConfig(hypothesis.KindMean)},
		{Name: "variance", Values: gen.Normal(30, 0, 2), Config: hypothesis.DefaultConfig(hypothesis.KindVariance)},
		{Name: "welch", Values: gen.Normal(25, 0, 1), GroupB: gen.Normal(25, 1, 1), Config: welchCfg},
		{Name: "too-small", Values: []float64{1}, Config: hypothesis.DefaultConfig(hypothesis.KindMean)},
	}

	items := runner.Run(context.Background(), requests)
	require.Len(t, items, 4)

	// Order is preserved and failures stay local to their request.
	assert.Equal(t, "mean", items[0].Name)
	assert.NoError(t, items[0].Err)
	assert.NoError(t, items[1].Err)
	assert.NoError(t, items[2].Err)
	assert.True(t, core.IsInsufficientData(items[3].Err))
}

func TestBatchRunner_MatchesDirectCalls(t *testing.T) {
	gen := testkit.New(23)
	sample := gen.Normal(40, 0.3, 1)
	e := New()

	direct, err := e.RunOneSampleTest(sample, hypothesis.DefaultConfig(hypothesis.KindMean))
	require.NoError(t, err)

	requests := make([]BatchRequest, 16)
	for i := range requests {
		requests[i] = BatchRequest{Name: "same", Values: sample, Config: hypothesis.DefaultConfig(hypothesis.KindMean)}
	}
	items := NewBatchRunner(e, 8).Run(context.Background(), requests)

	for i, item := range items {
		require.NoError(t, item.Err, "item %d", i)
		assert.Equal(t, direct, item.Result, "concurrent run %d must be bit-identical", i)
	}
}

func TestBatchRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := NewBatchRunner(New(), 1).Run(ctx, []BatchRequest{
		{Name: "never-runs", Values: []float64{1, 2, 3}, Config: hypothesis.DefaultConfig(hypothesis.KindMean)},
	})
	require.Len(t, items, 1)
	assert.Error(t, items[0].Err)
}
