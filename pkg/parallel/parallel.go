// Package parallel distributes index ranges across goroutines.
//
// Work over [0, n) is split into contiguous, non-overlapping ranges, one per
// worker, so each index is handled by exactly one goroutine. Callers that
// write per-index output therefore need no locking as long as the shared
// input stays read-only while the work runs.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minItemsPerRange keeps tiny inputs on a single goroutine.
const minItemsPerRange = 1024

// RangeFunc processes indices [first, last).
type RangeFunc func(ctx context.Context, first, last int) error

// Workers returns n if positive, otherwise GOMAXPROCS.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Split divides [0, n) into at most parts contiguous ranges of nearly
// equal size. Each range is returned as [first, last).
func Split(n, parts int) [][2]int {
	if n <= 0 {
		return nil
	}
	parts = max(1, min(parts, n))
	ranges := make([][2]int, 0, parts)
	size, rem := n/parts, n%parts
	first := 0
	for i := range parts {
		last := first + size
		if i < rem {
			last++
		}
		ranges = append(ranges, [2]int{first, last})
		first = last
	}
	return ranges
}

// Ranges runs fn over [0, n) split across workers goroutines (GOMAXPROCS if
// workers <= 0). The first error cancels the context passed to the other
// ranges and is returned.
func Ranges(ctx context.Context, n, workers int, fn RangeFunc) error {
	if n <= 0 {
		return nil
	}
	parts := min(Workers(workers), (n+minItemsPerRange-1)/minItemsPerRange)
	if parts <= 1 {
		return fn(ctx, 0, n)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parts)
	for _, r := range Split(n, parts) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, r[0], r[1])
		})
	}
	return g.Wait()
}

// For is Ranges for per-index work that cannot fail.
func For(ctx context.Context, n, workers int, fn func(i int)) error {
	return Ranges(ctx, n, workers, func(ctx context.Context, first, last int) error {
		for i := first; i < last; i++ {
			fn(i)
		}
		return nil
	})
}
