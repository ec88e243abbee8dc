// SPDX-License-Identifier: MIT

// Package compose - dense row and sparse cell assemblers.
//
// Both assemblers follow the same three stages:
//   - Stage 1 (Validate): declared dims, consistency of an initialized state,
//     index bounds, numeric policy. Nothing is written yet.
//   - Stage 2 (Initialize): the first accepted write fixes the shape and
//     allocates zeroed storage.
//   - Stage 3 (Write): the row or cell lands in the view; -0 is stored as +0.
//
// A failed call returns its input state exactly as it was (nil stays nil).

package compose

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/matcompose/matrix"
)

// AssembleRow writes row into position rowIndex of a declaredNumRows×len(row)
// matrix under construction and returns the updated state.
//
// A nil or uninitialized state is initialized with shape
// (declaredNumRows, len(row)); the returned pointer must replace the caller's.
//
// Errors:
//   - ErrInvalidDimensions: declaredNumRows <= 0 or above MaxDimension, an
//     empty first row, or a first shape beyond MaxCells.
//   - ErrShapeMismatch: declaredNumRows or the row length disagree with the fixed shape.
//   - ErrIndexOutOfRange: rowIndex outside [0, declaredNumRows).
//   - ErrCorruptState: storage shorter than the header demands.
//   - matrix.ErrNaNInf: non-finite value while the numeric policy is on.
//
// Complexity: O(cols) per call, plus O(rows*cols) zeroing on the first call.
func AssembleRow(s *State, declaredNumRows, rowIndex int, row []float64, opts ...Option) (*State, error) {
	o := gatherOptions(opts)

	if declaredNumRows <= 0 || uint64(declaredNumRows) > MaxDimension {
		return s, composeErrorf(opAssembleRow,
			fmt.Errorf("declared %d rows: %w", declaredNumRows, ErrInvalidDimensions))
	}

	if s.Initialized() {
		if err := s.checkConsistent(); err != nil {
			return s, composeErrorf(opAssembleRow, err)
		}
		rows, cols := s.Shape()
		if declaredNumRows != rows {
			return s, composeErrorf(opAssembleRow,
				fmt.Errorf("declared %d rows, state has %d: %w", declaredNumRows, rows, ErrShapeMismatch))
		}
		want := cols
		if o.legacyRowLengthCheck {
			want = rows
		}
		if len(row) != want {
			return s, composeErrorf(opAssembleRow,
				fmt.Errorf("row length %d, expected %d: %w", len(row), want, ErrShapeMismatch))
		}
	} else if err := validateShape(declaredNumRows, len(row)); err != nil {
		return s, composeErrorf(opAssembleRow, err)
	}

	if rowIndex < 0 || rowIndex >= declaredNumRows {
		return s, composeErrorf(opAssembleRow,
			fmt.Errorf("row %d of %d: %w", rowIndex, declaredNumRows, ErrIndexOutOfRange))
	}
	if o.validateNaNInf {
		if err := matrix.ValidateFinite(row); err != nil {
			return s, composeErrorf(opAssembleRow, err)
		}
	}

	if !s.Initialized() {
		if s == nil {
			s = NewState()
		}
		if err := s.initialize(declaredNumRows, len(row)); err != nil {
			return s, composeErrorf(opAssembleRow, err)
		}
	}

	s.view.SetValidateNaNInf(o.validateNaNInf)
	if err := s.view.SetRow(rowIndex, row); err != nil {
		if errors.Is(err, matrix.ErrDimensionMismatch) {
			err = fmt.Errorf("%v: %w", err, ErrShapeMismatch)
		}
		return s, composeErrorf(opAssembleRow, err)
	}
	_, cols := s.Shape()
	off := headerSize + rowIndex*cols
	canonicalizeZeros(s.storage[off : off+cols])

	return s, nil
}

// AssembleCell writes value at (rowIndex, colIndex) of a
// declaredNumRows×declaredNumCols matrix under construction.
//
// A nil or uninitialized state is initialized with the declared shape.
//
// Errors:
//   - ErrInvalidDimensions: a declared dimension <= 0 or above MaxDimension,
//     or a shape beyond MaxCells.
//   - ErrShapeMismatch: declared shape disagrees with the fixed shape.
//   - ErrIndexOutOfRange: rowIndex or colIndex outside the declared bounds.
//   - ErrCorruptState, matrix.ErrNaNInf as for AssembleRow.
//
// Complexity: O(1) per call, plus O(rows*cols) zeroing on the first call.
func AssembleCell(s *State, declaredNumRows, declaredNumCols, rowIndex, colIndex int, value float64, opts ...Option) (*State, error) {
	o := gatherOptions(opts)

	if err := validateShape(declaredNumRows, declaredNumCols); err != nil {
		return s, composeErrorf(opAssembleCell, err)
	}

	if s.Initialized() {
		if err := s.checkConsistent(); err != nil {
			return s, composeErrorf(opAssembleCell, err)
		}
		rows, cols := s.Shape()
		if declaredNumRows != rows || declaredNumCols != cols {
			return s, composeErrorf(opAssembleCell,
				fmt.Errorf("declared %dx%d, state has %dx%d: %w",
					declaredNumRows, declaredNumCols, rows, cols, ErrShapeMismatch))
		}
	}

	if rowIndex < 0 || rowIndex >= declaredNumRows {
		return s, composeErrorf(opAssembleCell,
			fmt.Errorf("row %d of %d: %w", rowIndex, declaredNumRows, ErrIndexOutOfRange))
	}
	if colIndex < 0 || colIndex >= declaredNumCols {
		return s, composeErrorf(opAssembleCell,
			fmt.Errorf("col %d of %d: %w", colIndex, declaredNumCols, ErrIndexOutOfRange))
	}
	if o.validateNaNInf {
		if err := matrix.ValidateFinite([]float64{value}); err != nil {
			return s, composeErrorf(opAssembleCell, err)
		}
	}

	if !s.Initialized() {
		if s == nil {
			s = NewState()
		}
		if err := s.initialize(declaredNumRows, declaredNumCols); err != nil {
			return s, composeErrorf(opAssembleCell, err)
		}
	}

	if value == 0 {
		value = 0 // -0 → +0
	}
	s.view.SetValidateNaNInf(o.validateNaNInf)
	if err := s.view.Set(rowIndex, colIndex, value); err != nil {
		return s, composeErrorf(opAssembleCell, err)
	}

	return s, nil
}
