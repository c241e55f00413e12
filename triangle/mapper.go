// SPDX-License-Identifier: MIT
// Package triangle: execution strategies for the group-key fallback.
//
// Per-key combinations share no mutable state: each reads its own slices of
// the two operands and produces its own result. A Mapper decides how they
// run. Results are placed by key position and the caller sorts the merged
// triangle by index afterwards, so every strategy yields the same output.

package triangle

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Mapper runs fn for every i in [0, n) and collects the results by i.
// The first error wins; remaining work may be skipped.
type Mapper interface {
	Map(ctx context.Context, n int, fn func(ctx context.Context, i int) (*Triangle, error)) ([]*Triangle, error)
}

// SequentialMapper runs keys one after another on the caller's goroutine.
type SequentialMapper struct{}

// Map implements Mapper.
func (SequentialMapper) Map(ctx context.Context, n int, fn func(ctx context.Context, i int) (*Triangle, error)) ([]*Triangle, error) {
	out := make([]*Triangle, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := fn(ctx, i)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}

	return out, nil
}

// ParallelMapper runs keys on at most Workers goroutines (DefaultWorkers
// when Workers < 1). Map returns only after every started goroutine has
// finished.
type ParallelMapper struct {
	Workers int
}

// Map implements Mapper.
func (p ParallelMapper) Map(ctx context.Context, n int, fn func(ctx context.Context, i int) (*Triangle, error)) ([]*Triangle, error) {
	workers := p.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	out := make([]*Triangle, n)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			r, err := fn(egCtx, i)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
