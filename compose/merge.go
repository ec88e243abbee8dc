// SPDX-License-Identifier: MIT

package compose

import (
	"fmt"

	"github.com/katalvlaran/matcompose/matrix"
)

// Merge combines two partial states and returns the result.
// MAIN DESCRIPTION:
//   - Identity: a nil operand, or a present operand with numRows == 0, is
//     ignored and the other operand is returned unchanged (possibly nil).
//   - Otherwise right is added cell by cell into left, and left is returned.
//
// Behavior highlights:
//   - Addition reconstructs the union of writes only because every cell is
//     written by at most one assembler; overlapping writes are summed.
//   - Adding an exact +0 leaves every IEEE double except -0 unchanged, and
//     the assemblers never store -0, so for disjoint writers any number of
//     partitions and any order and grouping of Merge calls yield a
//     bitwise-identical matrix.
//   - left and right must be distinct states: merging a state into itself
//     would double every cell.
//   - right is read, never written; the caller must not keep using left's old
//     contents, and should treat right as consumed.
//
// Errors:
//   - ErrIncompatibleStates: shapes or storage lengths differ, or left and
//     right are the same initialized state.
//   - ErrCorruptState / ErrShapeMismatch: an operand failed its consistency check.
//
// Complexity: Time O(rows*cols), Space O(1).
func Merge(left, right *State) (*State, error) {
	if left == nil {
		return right, nil
	}
	if right == nil {
		return left, nil
	}

	lRows, lCols := left.Shape()
	rRows, rCols := right.Shape()
	if lRows == 0 {
		return right, nil
	}
	if rRows == 0 {
		return left, nil
	}
	if left == right {
		return nil, composeErrorf(opMerge, fmt.Errorf("state merged into itself: %w", ErrIncompatibleStates))
	}

	if len(left.storage) != len(right.storage) || lRows != rRows || lCols != rCols {
		return nil, composeErrorf(opMerge,
			fmt.Errorf("%dx%d (len %d) vs %dx%d (len %d): %w",
				lRows, lCols, len(left.storage), rRows, rCols, len(right.storage), ErrIncompatibleStates))
	}
	if err := left.checkConsistent(); err != nil {
		return nil, composeErrorf(opMerge, err)
	}
	if err := right.checkConsistent(); err != nil {
		return nil, composeErrorf(opMerge, err)
	}

	if err := matrix.AddInPlace(left.view, right.view); err != nil {
		return nil, composeErrorf(opMerge, fmt.Errorf("%v: %w", err, ErrIncompatibleStates))
	}

	return left, nil
}

// MergeAll folds states left to right with Merge. Nil entries are skipped.
// The first initialized state becomes the accumulator and is mutated.
// The result is nil when every entry is nil (or the slice is empty).
func MergeAll(states ...*State) (*State, error) {
	var (
		acc *State
		err error
	)
	for i, s := range states {
		if acc, err = Merge(acc, s); err != nil {
			return nil, fmt.Errorf("MergeAll[%d]: %w", i, err)
		}
	}

	return acc, nil
}
