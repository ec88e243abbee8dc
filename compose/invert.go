// SPDX-License-Identifier: MIT

// Package compose - inverter.
//
// The inverse is computed in this package's row-major convention. The caller
// names the convention it stores matrices in (matrix.Layout); for ColMajor the
// inverse is transposed before being truncated to numCols leading columns and
// flattened, so that the caller, reading Data column by column, recovers the
// true inverse. The transpose is a relabelling of storage, never a change of
// the mathematical result: Inverse.At always returns (A⁻¹)[i,j].

package compose

import (
	"fmt"

	"github.com/katalvlaran/matcompose/matrix"
)

// Inverse is the inverter's output: a rows×cols matrix flattened in Layout.
type Inverse struct {
	Rows, Cols int
	Layout     matrix.Layout
	Data       []float64
}

// At returns element (i, j) of the inverse, independent of Layout.
func (inv *Inverse) At(i, j int) (float64, error) {
	if i < 0 || i >= inv.Rows || j < 0 || j >= inv.Cols {
		return 0, fmt.Errorf("Inverse.At(%d,%d): %w", i, j, ErrIndexOutOfRange)
	}
	if inv.Layout == matrix.ColMajor {
		return inv.Data[j*inv.Rows+i], nil
	}

	return inv.Data[i*inv.Cols+j], nil
}

// Matrix rebuilds the inverse as a row-major Dense.
func (inv *Inverse) Matrix() (*matrix.Dense, error) {
	m, err := matrix.NewDense(inv.Rows, inv.Cols)
	if err != nil {
		return nil, err
	}
	var v float64
	for i := 0; i < inv.Rows; i++ {
		for j := 0; j < inv.Cols; j++ {
			if v, err = inv.At(i, j); err != nil {
				return nil, err
			}
			if err = m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// Invert computes the inverse of a fully merged state.
// MAIN DESCRIPTION:
//   - A nil or never-written state yields (nil, nil): the inverse of nothing
//     is "no result", not an error.
//   - The state is read, never written; scratch buffers belong to this call.
//
// Implementation:
//   - Stage 1: consistency check; matrix.Inverse over the state's view.
//   - Stage 2: layout correction - transpose for ColMajor.
//   - Stage 3: truncate to numCols leading columns; flatten row-major.
//
// Errors:
//   - ErrCorruptState / ErrShapeMismatch: failed consistency check.
//   - matrix.ErrNonSquare, matrix.ErrSingular, matrix.ErrIllConditioned: numeric failure.
//   - matrix.ErrUnknownLayout: layout is neither RowMajor nor ColMajor.
//
// Complexity: Time O(n^3), Space O(n^2).
func Invert(s *State, layout matrix.Layout) (*Inverse, error) {
	if !s.Initialized() {
		return nil, nil
	}
	if layout != matrix.RowMajor && layout != matrix.ColMajor {
		return nil, composeErrorf(opInvert, fmt.Errorf("%v: %w", layout, matrix.ErrUnknownLayout))
	}
	if err := s.checkConsistent(); err != nil {
		return nil, composeErrorf(opInvert, err)
	}

	inv, err := matrix.Inverse(s.view)
	if err != nil {
		return nil, composeErrorf(opInvert, err)
	}

	out := inv
	if layout == matrix.ColMajor {
		if out, err = matrix.Transpose(inv); err != nil {
			return nil, composeErrorf(opInvert, err)
		}
	}
	_, cols := s.Shape()
	if out, err = matrix.LeftCols(out, cols); err != nil {
		return nil, composeErrorf(opInvert, err)
	}

	// out holds the layout-corrected matrix row-major, which is exactly the
	// caller's flat buffer.
	return &Inverse{
		Rows:   inv.Rows(),
		Cols:   cols,
		Layout: layout,
		Data:   out.RawData(),
	}, nil
}
