// SPDX-License-Identifier: MIT
// Package compose_test contains test helpers.

package compose_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matcompose/compose"
)

// mustRows assembles rows[i] at index i into one fresh state per call.
func mustRows(tb testing.TB, numRows int, rows map[int][]float64, opts ...compose.Option) *compose.State {
	tb.Helper()
	var (
		s   *compose.State
		err error
	)
	for i := 0; i < numRows; i++ {
		row, ok := rows[i]
		if !ok {
			continue
		}
		s, err = compose.AssembleRow(s, numRows, i, row, opts...)
		require.NoError(tb, err)
	}

	return s
}

// mustCell writes one cell into s.
func mustCell(tb testing.TB, s *compose.State, r, c, i, j int, v float64) *compose.State {
	tb.Helper()
	s, err := compose.AssembleCell(s, r, c, i, j, v)
	require.NoError(tb, err)

	return s
}

// mustMerge merges two states.
func mustMerge(tb testing.TB, a, b *compose.State) *compose.State {
	tb.Helper()
	s, err := compose.Merge(a, b)
	require.NoError(tb, err)

	return s
}

// randomMatrix returns an r×c matrix of small non-zero integers-plus-fractions,
// deterministic for a seed.
func randomMatrix(r, c int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = float64(rng.Intn(19)-9) + rng.Float64()
		}
	}

	return out
}

// sparseWorkers deals every cell of m to one of k workers at random and
// returns one state per worker (nil for a worker that received nothing).
func sparseWorkers(tb testing.TB, m [][]float64, k int, seed int64) []*compose.State {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	r, c := len(m), len(m[0])
	states := make([]*compose.State, k)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			w := rng.Intn(k)
			states[w] = mustCell(tb, states[w], r, c, i, j, m[i][j])
		}
	}

	return states
}

// cloneAll deep-copies states so the same inputs can be reduced twice.
func cloneAll(states []*compose.State) []*compose.State {
	out := make([]*compose.State, len(states))
	for i, s := range states {
		out[i] = s.Clone()
	}

	return out
}

// cells returns the row-major cell data of an initialized state.
func cells(tb testing.TB, s *compose.State) []float64 {
	tb.Helper()
	m, err := s.Matrix()
	require.NoError(tb, err)

	return m.RawData()
}
