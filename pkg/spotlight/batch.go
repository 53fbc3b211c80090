package spotlight

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// BatchQuery is one search in a batch: a query string plus its options.
type BatchQuery struct {
	Query   string
	Options *SearchOptions
}

// BatchResult is the outcome of one batched search. Results and Err are
// mutually exclusive; a failing search fills Err without aborting the batch.
type BatchResult struct {
	Query   string
	Options *SearchOptions
	Results []string
	Err     error
}

type batchOptions struct {
	maxConcurrency int64
}

type BatchOption func(*batchOptions)

// WithMaxConcurrency caps how many child processes a parallel batch runs at
// once. Zero or negative means one process per query.
func WithMaxConcurrency(n int) BatchOption {
	return func(o *batchOptions) {
		o.maxConcurrency = int64(n)
	}
}

// BatchSearch fans out all queries concurrently and collects results slotted
// by input index, regardless of completion order.
func (s *Spotlight) BatchSearch(ctx context.Context, queries []BatchQuery, opts ...BatchOption) []BatchResult {
	o := &batchOptions{}
	for _, opt := range opts {
		opt(o)
	}

	if o.maxConcurrency <= 0 {
		o.maxConcurrency = int64(len(queries))
	}
	if o.maxConcurrency < 1 {
		o.maxConcurrency = 1
	}

	results := make([]BatchResult, len(queries))
	sem := semaphore.NewWeighted(o.maxConcurrency)

	var wg sync.WaitGroup
	for i, q := range queries {
		results[i] = BatchResult{Query: q.Query, Options: q.Options}

		if err := sem.Acquire(ctx, 1); err != nil {
			results[i].Err = err
			continue
		}

		wg.Add(1)
		go func(i int, q BatchQuery) {
			defer wg.Done()
			defer sem.Release(1)

			results[i].Results, results[i].Err = s.Search(ctx, q.Query, q.Options)
		}(i, q)
	}

	wg.Wait()
	return results
}

// BatchSearchSequential runs each query to completion before starting the
// next, collecting results in input order.
func (s *Spotlight) BatchSearchSequential(ctx context.Context, queries []BatchQuery) []BatchResult {
	results := make([]BatchResult, len(queries))

	for i, q := range queries {
		results[i] = BatchResult{Query: q.Query, Options: q.Options}
		results[i].Results, results[i].Err = s.Search(ctx, q.Query, q.Options)
	}

	return results
}
