package engine

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"hypotest/domain/hypothesis"
)

// BatchRequest is one unit of work for the batch runner: either a one-sample
// test (Values + Config) or, when GroupB is non-nil, a Welch two-sample test.
type BatchRequest struct {
	Name   string                `json:"name"`
	Values []float64             `json:"values"`
	GroupB []float64             `json:"group_b,omitempty"`
	Config hypothesis.TestConfig `json:"config"`
}

// BatchItem pairs a request with its outcome. Exactly one of Result/Err is
// meaningful; failures never abort the rest of the batch.
type BatchItem struct {
	Name   string
	Result hypothesis.HypothesisResult
	Err    error
}

// BatchRunner executes independent test requests concurrently under a
// weighted semaphore. Engine calls are pure, so no locking beyond the
// result slice is needed and outputs stay deterministic per request.
type BatchRunner struct {
	engine *Engine
	sem    *semaphore.Weighted
}

// NewBatchRunner creates a runner allowing up to maxConcurrent tests in flight.
func NewBatchRunner(engine *Engine, maxConcurrent int64) *BatchRunner {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &BatchRunner{
		engine: engine,
		sem:    semaphore.NewWeighted(maxConcurrent),
	}
}

// Run executes all requests and returns items in request order. A cancelled
// context stops admission of new work; already-running tests finish.
func (b *BatchRunner) Run(ctx context.Context, requests []BatchRequest) []BatchItem {
	items := make([]BatchItem, len(requests))

	var wg sync.WaitGroup
	for i, req := range requests {
		if err := b.sem.Acquire(ctx, 1); err != nil {
			items[i] = BatchItem{Name: req.Name, Err: err}
			continue
		}

		wg.Add(1)
		go func(i int, req BatchRequest) {
			defer wg.Done()
			defer b.sem.Release(1)

			item := BatchItem{Name: req.Name}
			if req.GroupB != nil {
				item.Result, item.Err = b.engine.RunWelchTwoSampleTest(req.Values, req.GroupB, req.Config.Alpha, req.Config.Tail)
			} else {
				item.Result, item.Err = b.engine.RunOneSampleTest(req.Values, req.Config)
			}
			items[i] = item
		}(i, req)
	}
	wg.Wait()

	return items
}
