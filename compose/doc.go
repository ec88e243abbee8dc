// Package compose builds a dense matrix from unordered partial contributions
// and inverts it.
//
// What & Why:
//
//	Independent workers each receive a disjoint subset of a matrix: whole rows
//	(AssembleRow) or single cells (AssembleCell). Each worker accumulates into a
//	private *State. States are then combined with Merge in any order and any
//	grouping (chain, tree, pairwise) into one complete State, which Invert
//	consumes exactly once.
//
//	Merge is element-wise addition. That is only correct because every cell is
//	written by at most one worker; under that rule Merge is commutative and
//	associative, and nil (absent) or uninitialized states are its identity.
//
// Quick example:
//
//	a, _ := compose.AssembleRow(nil, 2, 0, []float64{1, 2})
//	b, _ := compose.AssembleRow(nil, 2, 1, []float64{3, 4})
//	s, _ := compose.Merge(a, b)
//	inv, _ := compose.Invert(s, matrix.RowMajor) // [[-2 1] [1.5 -0.5]]
//
// Concurrency:
//
//	A State has no locks. Give each goroutine its own State and hand it over
//	for merging; package aggregate does exactly that.
//
// Persistence:
//
//	Encode/Decode and MarshalBinary/UnmarshalBinary move a State as a flat
//	[numRows, numCols, cells...] buffer between processes.
package compose
