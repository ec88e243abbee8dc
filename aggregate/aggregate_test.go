// SPDX-License-Identifier: MIT
// Package aggregate_test contains tests for the parallel coordinator.
package aggregate_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matcompose/aggregate"
	"github.com/katalvlaran/matcompose/compose"
	"github.com/katalvlaran/matcompose/matrix"
)

// reference returns a deterministic r×c matrix and its row-major data.
func reference(r, c int, seed int64) ([][]float64, []float64) {
	rng := rand.New(rand.NewSource(seed))
	m := make([][]float64, r)
	flat := make([]float64, 0, r*c)
	for i := range m {
		m[i] = make([]float64, c)
		for j := range m[i] {
			m[i][j] = rng.NormFloat64()
			if i == j {
				m[i][j] += float64(2 * c)
			}
		}
		flat = append(flat, m[i]...)
	}

	return m, flat
}

func denseRows(m [][]float64) []aggregate.Row {
	rows := make([]aggregate.Row, len(m))
	for i := range m {
		rows[i] = aggregate.Row{Index: i, Values: m[i]}
	}

	return rows
}

func sparseCells(m [][]float64) []aggregate.Cell {
	var cells []aggregate.Cell
	for i := range m {
		for j, v := range m[i] {
			cells = append(cells, aggregate.Cell{Row: i, Col: j, Value: v})
		}
	}

	return cells
}

func stateData(t *testing.T, s *compose.State) []float64 {
	t.Helper()
	m, err := s.Matrix()
	require.NoError(t, err)

	return m.RawData()
}

// TestComposeDense reconstructs the reference matrix for several fan-outs.
func TestComposeDense(t *testing.T) {
	t.Parallel()

	m, want := reference(9, 4, 1)
	for _, parts := range []int{1, 2, 3, 9, 20} {
		for _, strategy := range []aggregate.Strategy{aggregate.Tree, aggregate.Chain} {
			got, err := aggregate.ComposeDense(context.Background(), 9,
				aggregate.Split(denseRows(m), parts),
				aggregate.WithStrategy(strategy), aggregate.WithWorkers(3))
			require.NoError(t, err)
			require.Equalf(t, want, stateData(t, got), "parts=%d strategy=%v", parts, strategy)
		}
	}
}

// TestComposeSparse reconstructs the reference matrix from shuffled cells.
func TestComposeSparse(t *testing.T) {
	t.Parallel()

	m, want := reference(5, 5, 2)
	cells := sparseCells(m)
	rand.New(rand.NewSource(3)).Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	got, err := aggregate.ComposeSparse(context.Background(), 5, 5, aggregate.Split(cells, 7))
	require.NoError(t, err)
	require.Equal(t, want, stateData(t, got))
}

// TestStrategiesAgreeBitwise checks that Tree and Chain produce identical storage.
func TestStrategiesAgreeBitwise(t *testing.T) {
	t.Parallel()

	m, _ := reference(8, 8, 4)
	cells := sparseCells(m)
	parts := aggregate.Split(cells, 11)

	tree, err := aggregate.ComposeSparse(context.Background(), 8, 8, parts, aggregate.WithStrategy(aggregate.Tree))
	require.NoError(t, err)
	chain, err := aggregate.ComposeSparse(context.Background(), 8, 8, parts, aggregate.WithStrategy(aggregate.Chain))
	require.NoError(t, err)

	a, b := tree.Encode(), chain.Encode()
	require.Len(t, b, len(a))
	for i := range a {
		require.Equal(t, math.Float64bits(a[i]), math.Float64bits(b[i]), "slot %d", i)
	}
}

// TestComposeThenInvert runs the whole pipeline on 4·I.
func TestComposeThenInvert(t *testing.T) {
	t.Parallel()

	parts := [][]aggregate.Cell{
		{{Row: 0, Col: 0, Value: 4}},
		{{Row: 1, Col: 1, Value: 4}},
		{{Row: 2, Col: 2, Value: 4}},
	}
	s, err := aggregate.ComposeSparse(context.Background(), 3, 3, parts)
	require.NoError(t, err)

	inv, err := compose.Invert(s, matrix.ColMajor)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.25, 0, 0, 0, 0.25, 0, 0, 0, 0.25}, inv.Data, 1e-12)
}

// TestComposeEmpty checks that no contributions yield no state.
func TestComposeEmpty(t *testing.T) {
	t.Parallel()

	got, err := aggregate.ComposeDense(context.Background(), 3, nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = aggregate.ComposeSparse(context.Background(), 3, 3, [][]aggregate.Cell{{}, {}})
	require.NoError(t, err)
	require.Nil(t, got)
}

// TestPartitionFailure checks that a bad contribution names its partition.
func TestPartitionFailure(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	parts := [][]aggregate.Row{
		{{Index: 0, Values: []float64{1, 2}}},
		{{Index: 1, Values: []float64{3, 4}}, {Index: 5, Values: []float64{5, 6}}},
	}
	got, err := aggregate.ComposeDense(context.Background(), 2, parts, aggregate.WithLogger(logger))
	require.Nil(t, got)
	require.ErrorIs(t, err, aggregate.ErrPartition)
	require.ErrorIs(t, err, compose.ErrIndexOutOfRange)
	require.Contains(t, err.Error(), "partition failed 1")
	require.Contains(t, err.Error(), "row entry 1")
	require.Contains(t, logs.String(), "partition failed")
}

// TestComposeRejectsOversizedShape checks that an impossible declared shape is
// reported by the worker instead of crashing it.
func TestComposeRejectsOversizedShape(t *testing.T) {
	t.Parallel()

	parts := [][]aggregate.Cell{{{Row: 0, Col: 0, Value: 1}}, {{Row: 1, Col: 1, Value: 1}}}
	got, err := aggregate.ComposeSparse(context.Background(), 1<<32, 1<<32, parts)
	require.Nil(t, got)
	require.ErrorIs(t, err, aggregate.ErrPartition)
	require.ErrorIs(t, err, compose.ErrInvalidDimensions)

	rows := [][]aggregate.Row{{{Index: 0, Values: []float64{1, 2, 3, 4}}}}
	_, err = aggregate.ComposeDense(context.Background(), 1<<62, rows)
	require.ErrorIs(t, err, compose.ErrInvalidDimensions)
}

// TestIncompatiblePartitions surfaces a merge failure from the reduction.
func TestIncompatiblePartitions(t *testing.T) {
	t.Parallel()

	a := compose.NewState()
	a, err := compose.AssembleCell(a, 2, 2, 0, 0, 1)
	require.NoError(t, err)
	b, err := compose.AssembleCell(nil, 3, 3, 0, 0, 1)
	require.NoError(t, err)

	for _, strategy := range []aggregate.Strategy{aggregate.Tree, aggregate.Chain} {
		_, err = aggregate.Reduce(context.Background(), []*compose.State{a.Clone(), b.Clone()}, aggregate.WithStrategy(strategy))
		require.ErrorIs(t, err, compose.ErrIncompatibleStates)
	}
}

// TestComposeForwardsComposeOptions checks the legacy row check reaches workers.
func TestComposeForwardsComposeOptions(t *testing.T) {
	t.Parallel()

	parts := [][]aggregate.Row{{
		{Index: 0, Values: []float64{1, 2, 3}},
		{Index: 1, Values: []float64{4, 5, 6}},
	}}

	_, err := aggregate.ComposeDense(context.Background(), 2, parts)
	require.NoError(t, err)

	_, err = aggregate.ComposeDense(context.Background(), 2, parts,
		aggregate.WithComposeOptions(compose.WithLegacyRowLengthCheck()))
	require.ErrorIs(t, err, compose.ErrShapeMismatch)
}

// TestComposeCanceled checks that a canceled context stops the coordinator.
func TestComposeCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, _ := reference(4, 4, 5)
	_, err := aggregate.ComposeDense(ctx, 4, aggregate.Split(denseRows(m), 2))
	require.True(t, errors.Is(err, context.Canceled), "got %v", err)

	_, err = aggregate.Reduce(ctx, []*compose.State{compose.NewState(), compose.NewState()}, aggregate.WithStrategy(aggregate.Chain))
	require.ErrorIs(t, err, context.Canceled)
}

// TestReduceOddCount carries the trailing state up the tree.
func TestReduceOddCount(t *testing.T) {
	t.Parallel()

	var states []*compose.State
	for i := 0; i < 5; i++ {
		s, err := compose.AssembleCell(nil, 5, 1, i, 0, float64(i+1))
		require.NoError(t, err)
		states = append(states, s)
	}

	got, err := aggregate.Reduce(context.Background(), states, aggregate.WithWorkers(2))
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 4, 5}, stateData(t, got))

	got, err = aggregate.Reduce(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, got)
}

// TestOptionPanics checks the programmer-error guards.
func TestOptionPanics(t *testing.T) {
	t.Parallel()

	require.PanicsWithValue(t, "aggregate: WithWorkers: n must be >= 0", func() { aggregate.WithWorkers(-1) })
	require.PanicsWithValue(t, "aggregate: WithStrategy: unknown strategy", func() { aggregate.WithStrategy(aggregate.Strategy(9)) })
	require.PanicsWithValue(t, "aggregate: WithLogger: logger must be non-nil", func() { aggregate.WithLogger(nil) })
	require.NotPanics(t, func() { aggregate.WithWorkers(0) })
}

// TestParseStrategy covers both names and the failure.
func TestParseStrategy(t *testing.T) {
	t.Parallel()

	s, err := aggregate.ParseStrategy("tree")
	require.NoError(t, err)
	require.Equal(t, aggregate.Tree, s)
	require.Equal(t, "tree", s.String())

	s, err = aggregate.ParseStrategy("chain")
	require.NoError(t, err)
	require.Equal(t, aggregate.Chain, s)
	require.Equal(t, "chain", s.String())

	_, err = aggregate.ParseStrategy("star")
	require.ErrorIs(t, err, aggregate.ErrUnknownStrategy)
	require.Equal(t, "Strategy(9)", aggregate.Strategy(9).String())
}
