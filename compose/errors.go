// SPDX-License-Identifier: MIT
// Package compose: sentinel error set.
// Every operation in this package fails fast and returns one of these
// sentinels wrapped with an operation tag; callers match with errors.Is.
// Nothing here is retried: recovery (restart a partition, restart the whole
// aggregation) belongs to the coordinator.

package compose

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/matcompose/matrix"
)

var (
	// ErrShapeMismatch is returned when a write disagrees with the shape fixed
	// by the first write into a state. The aggregation must be aborted: the
	// state itself is still consistent, but the inputs are not.
	ErrShapeMismatch = errors.New("compose: dimensions of state and input not consistent")

	// ErrIndexOutOfRange is returned when a row or column index falls outside
	// the declared bounds. It also matches matrix.ErrOutOfRange.
	ErrIndexOutOfRange = fmt.Errorf("compose: invalid row or column id: %w", matrix.ErrOutOfRange)

	// ErrIncompatibleStates is returned by Merge when two initialized states
	// disagree on shape or storage length. It signals partitions configured with
	// different declared dimensions, an internal error of the coordinator.
	ErrIncompatibleStates = errors.New("compose: internal error: incompatible transition states")

	// ErrCorruptState is returned when storage is shorter than 2 + rows*cols or
	// its header slots are not valid dimensions.
	ErrCorruptState = errors.New("compose: out-of-bounds state storage detected")

	// ErrInvalidDimensions is returned when a declared dimension (or a first row)
	// is empty or negative, so no shape could be fixed.
	ErrInvalidDimensions = fmt.Errorf("compose: declared dimensions must be > 0: %w", matrix.ErrInvalidDimensions)

	// ErrNoData is returned by State accessors (At, Matrix) on a state that
	// holds no matrix yet.
	ErrNoData = errors.New("compose: state holds no matrix")
)

// Operation tags for uniform error wrapping.
const (
	opAssembleRow  = "AssembleRow"
	opAssembleCell = "AssembleCell"
	opMerge        = "Merge"
	opInvert       = "Invert"
	opDecode       = "Decode"
	opUnmarshal    = "UnmarshalBinary"
)

// composeErrorf wraps err with an operation tag, preserving it for errors.Is.
// Use only when err != nil.
func composeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
