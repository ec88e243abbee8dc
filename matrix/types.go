// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by dense storage and kernels.
// This file intentionally contains ONLY types (Matrix interface, Layout).
// Errors and numeric defaults live in dedicated files (errors.go, options.go).
package matrix

import "fmt"

// Matrix represents a two-dimensional mutable array of float64 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix with its own storage.
	Clone() Matrix
}

// Layout names the order in which a flat buffer enumerates matrix elements.
//
//   - RowMajor: element (i,j) lives at offset i*cols + j (Go, C, this package).
//   - ColMajor: element (i,j) lives at offset j*rows + i (Fortran, LAPACK, SQL array hosts).
//
// Dense storage in this package is always RowMajor; Layout only describes how a
// result is flattened for an external consumer.
type Layout int

const (
	// RowMajor enumerates rows first.
	RowMajor Layout = iota

	// ColMajor enumerates columns first.
	ColMajor
)

// String implements fmt.Stringer.
func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "col-major"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout maps "row"/"row-major" and "col"/"col-major" onto a Layout.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "row", "row-major", "rowmajor":
		return RowMajor, nil
	case "col", "col-major", "colmajor", "column", "column-major":
		return ColMajor, nil
	default:
		return RowMajor, fmt.Errorf("ParseLayout(%q): %w", s, ErrUnknownLayout)
	}
}
