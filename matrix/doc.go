// Package matrix provides the dense numeric substrate used by matcompose.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set/SetRow that
//     return sentinel errors instead of panicking. A Dense either owns its
//     storage (NewDense) or is a capped window over a larger caller-owned buffer
//     (NewDenseOver), which is how compose keeps shape header and cell data in
//     one allocation.
//   - Layout (RowMajor, ColMajor) and Dense.Flatten for handing results to
//     consumers with a different storage convention.
//   - Kernels: AddInPlace, Transpose, LeftCols, NewIdentity, AllClose.
//   - Inverse, backed by gonum's LU with partial pivoting.
//
// All errors are package sentinels (errors.go) matched with errors.Is.
package matrix
