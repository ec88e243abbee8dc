// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures shared by the matrix tests.
//   • Keep all data finite so the numeric policy never interferes.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/matcompose/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the At/Set fallback paths in kernels.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(tb testing.TB, r, c int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(tb, err)

	return m
}

// MustFromRows builds a *Dense from literal rows or fails the test.
func MustFromRows(tb testing.TB, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(tb, err)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(tb testing.TB, m matrix.Matrix, i, j int) float64 {
	tb.Helper()
	v, err := m.At(i, j)
	require.NoError(tb, err)

	return v
}

// requireClose asserts AllClose(got, want) under the default tolerances.
func requireClose(tb testing.TB, want, got matrix.Matrix) {
	tb.Helper()
	ok, err := matrix.AllClose(got, want, matrix.DefaultRTol, matrix.DefaultATol)
	require.NoError(tb, err)
	require.Truef(tb, ok, "matrices differ:\nwant\n%v\ngot\n%v", want, got)
}

// fillDenseRand fills m with uniform values in [-1, 1) from a fixed seed.
func fillDenseRand(tb testing.TB, m *matrix.Dense, seed int64) {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	r, c := m.Shape()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.NoError(tb, m.Set(i, j, 2*rng.Float64()-1))
		}
	}
}

// diagonallyDominant returns a random n×n matrix that is safely invertible.
func diagonallyDominant(tb testing.TB, n int, seed int64) *matrix.Dense {
	tb.Helper()
	m := MustDense(tb, n, n)
	fillDenseRand(tb, m, seed)
	for i := 0; i < n; i++ {
		v := MustAt(tb, m, i, i)
		require.NoError(tb, m.Set(i, i, v+float64(n)))
	}

	return m
}
