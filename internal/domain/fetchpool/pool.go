// Package fetchpool runs batches of independent network fetches with a
// fixed maximum parallelism.
//
// Workers claim items off a shared atomically incremented index, so no
// two workers ever process the same item. Outcomes are written to slots
// aligned with the input order regardless of completion order, and a
// per-item failure is captured as a miss rather than aborting the batch.
package fetchpool

import (
	"context"
	"sync"
	"sync/atomic"
)

// DefaultConcurrency is used when a caller passes a non-positive limit.
const DefaultConcurrency = 4

// Outcome holds the result of one work item. A non-nil Err marks a miss;
// the batch itself never fails.
type Outcome[R any] struct {
	Value R
	Err   error
}

// Miss reports whether this item failed.
func (o Outcome[R]) Miss() bool { return o.Err != nil }

// Map executes fn over items with at most concurrency workers and returns
// outcomes aligned to the input order. The context is passed through to
// fn; already-dispatched items run to completion even if it is canceled,
// but no new items are claimed after cancellation.
func Map[T, R any](ctx context.Context, items []T, concurrency int, fn func(ctx context.Context, item T) (R, error)) []Outcome[R] {
	out := make([]Outcome[R], len(items))
	if len(items) == 0 {
		return out
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if concurrency > len(items) {
		concurrency = len(items)
	}

	// next is the sole shared mutable state; Add hands each worker a
	// distinct index.
	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for w := 0; w < concurrency; w++ {
		go func() {
			defer wg.Done()
			for {
				idx := int(next.Add(1)) - 1
				if idx >= len(items) {
					return
				}
				if ctx.Err() != nil {
					out[idx] = Outcome[R]{Err: ctx.Err()}
					continue
				}
				v, err := fn(ctx, items[idx])
				out[idx] = Outcome[R]{Value: v, Err: err}
			}
		}()
	}
	wg.Wait()
	return out
}

// Start runs Map in the background and delivers the outcomes on the
// returned channel. Callers that time out may abandon the channel; the
// in-flight batch still runs to completion.
func Start[T, R any](ctx context.Context, items []T, concurrency int, fn func(ctx context.Context, item T) (R, error)) <-chan []Outcome[R] {
	ch := make(chan []Outcome[R], 1)
	go func() {
		ch <- Map(ctx, items, concurrency, fn)
		close(ch)
	}()
	return ch
}

// Misses counts the failed items in a batch.
func Misses[R any](outs []Outcome[R]) int {
	n := 0
	for _, o := range outs {
		if o.Miss() {
			n++
		}
	}
	return n
}
