package vision

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// forEachRange делит [0, n) на полосы и обрабатывает их параллельно.
// Каждая полоса пишет только в свои индексы выходного буфера.
func forEachRange(ctx context.Context, n, workers int, fn func(lo, hi int)) error {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	bands := min(workers*4, n)
	step := (n + bands - 1) / bands

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += step {
		if gctx.Err() != nil {
			break
		}
		hi := min(lo+step, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// forEachRow обрабатывает строки параллельно, проверяя отмену перед каждой строкой.
func forEachRow(ctx context.Context, height, workers int, fn func(y int)) error {
	return forEachRange(ctx, height, workers, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			if ctx.Err() != nil {
				return
			}
			fn(y)
		}
	})
}
