// Package pool provides bounded parallel execution over a slice of items
// with a join barrier: calls return only after every dispatched item has
// been resolved.
package pool

import (
	"context"
	"sync"
)

// DefaultWidth is used when the caller passes a non-positive width.
const DefaultWidth = 5

// Map runs fn over items with at most width workers and returns the results
// in input order plus any errors. A canceled context stops dispatch of items
// that have not started yet; items already running are left to finish.
func Map[T any, R any](
	ctx context.Context,
	items []T,
	width int,
	fn func(ctx context.Context, index int, item T) (R, error),
) ([]R, []error) {
	if len(items) == 0 {
		return []R{}, nil
	}

	if width <= 0 {
		width = DefaultWidth
	}
	if width > len(items) {
		width = len(items)
	}

	type outcome struct {
		index  int
		result R
		err    error
	}

	jobs := make(chan int, len(items))
	outcomes := make(chan outcome, len(items))

	var wg sync.WaitGroup
	for w := 0; w < width; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				r, err := fn(ctx, i, items[i])
				outcomes <- outcome{index: i, result: r, err: err}
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(outcomes)

	results := make([]R, len(items))
	var errs []error
	for o := range outcomes {
		results[o.index] = o.result
		if o.err != nil {
			errs = append(errs, o.err)
		}
	}
	return results, errs
}

// Each is Map without result collection, for side-effect-only work.
func Each[T any](
	ctx context.Context,
	items []T,
	width int,
	fn func(ctx context.Context, index int, item T) error,
) []error {
	_, errs := Map(ctx, items, width, func(ctx context.Context, i int, item T) (struct{}, error) {
		return struct{}{}, fn(ctx, i, item)
	})
	return errs
}
