// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Kernels return these sentinels (optionally wrapped with an
// operation tag) and tests check them via errors.Is. No kernel panics on
// user-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Wrap with fmt.Errorf("ctx: %w", ErrX) when
// context is essential; callers still match with errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape/index -> NaN/Inf -> numeric failure (singular, ill-conditioned).

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/SetRow) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., AddInPlace on different shapes or a row of the wrong length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrShortBuffer indicates a backing buffer that cannot hold the requested shape.
	ErrShortBuffer = errors.New("matrix: backing buffer too short")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrSingular is returned when the LU factorization hits an exact zero pivot.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrUnknownLayout indicates a layout name that is neither row- nor column-major.
	ErrUnknownLayout = errors.New("matrix: unknown layout")

	// ErrIllConditioned is returned when the estimated condition number exceeds
	// the solver tolerance; the computed inverse would be meaningless.
	ErrIllConditioned = errors.New("matrix: matrix is ill-conditioned")
)
