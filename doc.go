// Package matcompose builds one dense matrix out of many partial
// contributions and inverts it.
//
// 🚀 What is matcompose?
//
//	A small, deterministic library for "scatter, accumulate, merge, invert":
//		• Workers receive disjoint rows (dense) or cells (sparse)
//		• Each worker fills a private partial state, no locks involved
//		• Partial states merge in any order or grouping, bit for bit the same
//		• The merged matrix is inverted through gonum's LU with partial pivoting
//
// ✨ Why choose matcompose?
//
//   - One flat buffer per state: header slots + row-major cells, easy to persist
//   - Fail-fast sentinels for every shape, bound and numeric failure
//   - Explicit row-/column-major output, never guessed from the host
//
// Under the hood, everything is organized under these packages:
//
//	matrix/         - Dense storage, validators, transpose/accumulate kernels, inverse
//	compose/        - partial State, row & cell assemblers, Merge, Invert, codec
//	aggregate/      - parallel workers (errgroup) and Tree/Chain reduction
//	cmd/matcompose/ - CLI: CSV in, inverse out
//
// Quick ASCII example:
//
//	worker A: row 0 = [1 2]     ┐
//	                            ├─ Merge ─→ [1 2] ─ Invert ─→ [-2    1  ]
//	worker B: row 1 = [3 4]     ┘           [3 4]             [ 1.5 -0.5]
//
//	go install github.com/katalvlaran/matcompose/cmd/matcompose@latest
package matcompose
