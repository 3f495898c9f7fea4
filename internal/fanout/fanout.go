// Package fanout provides a settle-all concurrent join: every task maps
// to a tagged success/failure outcome in its input position, and the
// join returns only after all tasks have settled. Failure handling is
// uniform here instead of ad hoc inside each task body.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome is the settled result of one task
type Outcome[T any] struct {
	Value T
	Err   error
}

// Settle runs fn for indices 0..n-1 with at most limit tasks in flight
// (limit <= 0 means unbounded) and returns one outcome per index, in
// index order regardless of completion order. Task failures are data,
// not errors; Settle itself never fails.
func Settle[T any](ctx context.Context, n int, limit int, fn func(ctx context.Context, i int) (T, error)) []Outcome[T] {
	outcomes := make([]Outcome[T], n)
	if n == 0 {
		return outcomes
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			v, err := fn(ctx, i)
			outcomes[i] = Outcome[T]{Value: v, Err: err}
			return nil
		})
	}

	// Always nil: tasks settle into their slots instead of failing the group
	_ = g.Wait()

	return outcomes
}

// Sequential runs the same contract without concurrency, for callers
// that disable parallel processing
func Sequential[T any](ctx context.Context, n int, fn func(ctx context.Context, i int) (T, error)) []Outcome[T] {
	outcomes := make([]Outcome[T], n)
	for i := 0; i < n; i++ {
		v, err := fn(ctx, i)
		outcomes[i] = Outcome[T]{Value: v, Err: err}
	}
	return outcomes
}
