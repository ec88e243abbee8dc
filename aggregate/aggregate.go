// SPDX-License-Identifier: MIT

package aggregate

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/matcompose/compose"
)

// ComposeDense assembles a numRows-row matrix from row partitions and reduces
// the partial states into one.
// MAIN DESCRIPTION:
//   - Phase 1: one worker per partition, at most Options.workers at a time, each
//     owning a private *compose.State built with compose.AssembleRow.
//   - Phase 2: Reduce with the configured Strategy.
//
// Behavior highlights:
//   - The first failing worker cancels the others; its error is returned
//     wrapped with ErrPartition and the partition index.
//   - Empty partitions produce nil states, which Merge ignores.
//   - The result is nil when no partition held a row.
//
// Errors:
//   - ErrPartition wrapping any compose error; ctx.Err() on cancellation;
//     compose.ErrIncompatibleStates from the reduction.
func ComposeDense(ctx context.Context, numRows int, partitions [][]Row, opts ...Option) (*compose.State, error) {
	o := gatherOptions(opts)
	start := time.Now()

	states, err := assemble(ctx, o, len(partitions), func(p int) (*compose.State, error) {
		var (
			st  *compose.State
			err error
		)
		for k, r := range partitions[p] {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
			if st, err = compose.AssembleRow(st, numRows, r.Index, r.Values, o.composeOpts...); err != nil {
				return nil, fmt.Errorf("row entry %d: %w", k, err)
			}
		}
		return st, nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Debug("dense partitions assembled",
		"partitions", len(partitions), "rows", numRows, "elapsed", time.Since(start))

	return reduce(ctx, o, states)
}

// ComposeSparse assembles a numRows×numCols matrix from cell partitions and
// reduces the partial states into one. Semantics match ComposeDense.
func ComposeSparse(ctx context.Context, numRows, numCols int, partitions [][]Cell, opts ...Option) (*compose.State, error) {
	o := gatherOptions(opts)
	start := time.Now()

	states, err := assemble(ctx, o, len(partitions), func(p int) (*compose.State, error) {
		var (
			st  *compose.State
			err error
		)
		for k, c := range partitions[p] {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
			if st, err = compose.AssembleCell(st, numRows, numCols, c.Row, c.Col, c.Value, o.composeOpts...); err != nil {
				return nil, fmt.Errorf("cell entry %d: %w", k, err)
			}
		}
		return st, nil
	})
	if err != nil {
		return nil, err
	}

	o.logger.Debug("sparse partitions assembled",
		"partitions", len(partitions), "rows", numRows, "cols", numCols, "elapsed", time.Since(start))

	return reduce(ctx, o, states)
}

// Reduce merges states (nil entries allowed) into one with the configured
// Strategy. Input states may be mutated: they are consumed by the reduction.
func Reduce(ctx context.Context, states []*compose.State, opts ...Option) (*compose.State, error) {
	return reduce(ctx, gatherOptions(opts), states)
}

// assemble runs work(p) for every partition p on a bounded errgroup and
// collects one state per partition. Each goroutine writes only its own slot.
func assemble(ctx context.Context, o Options, n int, work func(p int) (*compose.State, error)) ([]*compose.State, error) {
	states := make([]*compose.State, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for p := 0; p < n; p++ {
		p := p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			st, err := work(p)
			if err != nil {
				o.logger.Warn("partition failed", "partition", p, "err", err)
				return fmt.Errorf("%w %d: %w", ErrPartition, p, err)
			}
			states[p] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return states, nil
}

// reduce dispatches on the strategy.
func reduce(ctx context.Context, o Options, states []*compose.State) (*compose.State, error) {
	start := time.Now()
	var (
		out *compose.State
		err error
	)
	switch o.strategy {
	case Chain:
		out, err = reduceChain(ctx, states)
	default:
		out, err = reduceTree(ctx, o, states)
	}
	if err != nil {
		return nil, err
	}

	rows, cols := out.Shape()
	o.logger.Debug("partial states reduced",
		"strategy", o.strategy.String(), "states", len(states),
		"rows", rows, "cols", cols, "elapsed", time.Since(start))

	return out, nil
}

// reduceChain folds left to right on the calling goroutine.
func reduceChain(ctx context.Context, states []*compose.State) (*compose.State, error) {
	var (
		acc *compose.State
		err error
	)
	for i, s := range states {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		if acc, err = compose.Merge(acc, s); err != nil {
			return nil, fmt.Errorf("chain merge %d: %w", i, err)
		}
	}

	return acc, nil
}

// reduceTree merges (0,1), (2,3), ... in parallel, then repeats on the
// results until one state remains. An odd trailing state is carried up as is.
// The pairs of one level are disjoint, so every goroutine owns its operands.
func reduceTree(ctx context.Context, o Options, states []*compose.State) (*compose.State, error) {
	if len(states) == 0 {
		return nil, nil
	}
	level := states
	for depth := 0; len(level) > 1; depth++ {
		next := make([]*compose.State, (len(level)+1)/2)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(o.workers)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next[i/2] = level[i]
				continue
			}
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				m, err := compose.Merge(level[i], level[i+1])
				if err != nil {
					return fmt.Errorf("tree merge depth %d pair %d: %w", depth, i/2, err)
				}
				next[i/2] = m
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		level = next
	}

	return level[0], nil
}
