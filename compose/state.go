// SPDX-License-Identifier: MIT

// Package compose - Partial Matrix State.
//
// Storage layout (one owned allocation, persisted verbatim by Encode):
//
//	slot 0      numRows  (0 ⇒ uninitialized)
//	slot 1      numCols  (0 ⇒ uninitialized)
//	slot 2..    row-major cell data, numRows*numCols slots, zero-filled at init
//
// The matrix is reached through a *matrix.Dense window (offset 2, stride
// numCols) rebuilt from the header whenever the storage changes; the header is
// the single source of truth for the shape.

package compose

import (
	"fmt"
	"math"

	"github.com/katalvlaran/matcompose/matrix"
)

const (
	slotRows   = 0 // header slot holding numRows
	slotCols   = 1 // header slot holding numCols
	headerSize = 2 // data starts right after the header
)

// State is a matrix under construction plus its fixed shape.
//
// A nil *State means "absent" (never touched by any assembler); NewState
// returns a present but uninitialized state. Both are identities for Merge.
// A State is owned by exactly one goroutine at a time; it has no locks.
type State struct {
	storage []float64     // header + cell data
	view    *matrix.Dense // window over storage[headerSize:]; nil until initialized
}

// NewState returns a present, uninitialized state holding only a zeroed header.
func NewState() *State {
	return &State{storage: make([]float64, headerSize)}
}

// MaxCells bounds numRows*numCols for a state built by the assemblers
// (32 GiB of float64 cells).
const MaxCells = 1 << 32

// stateSize is the minimum storage length for a rows×cols state.
// Callers guarantee rows*cols cannot overflow (validateShape or Decode).
func stateSize(rows, cols int) int {
	return headerSize + rows*cols
}

// validateShape rejects a shape no state may take: a dimension <= 0 or above
// MaxDimension, more than MaxCells cells, or a storage length beyond int.
func validateShape(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%dx%d: %w", rows, cols, ErrInvalidDimensions)
	}
	if uint64(rows) > MaxDimension || uint64(cols) > MaxDimension {
		return fmt.Errorf("%dx%d exceeds %d per dimension: %w", rows, cols, uint64(MaxDimension), ErrInvalidDimensions)
	}
	// Both factors are <= MaxUint32, so the uint64 product cannot wrap.
	cells := uint64(rows) * uint64(cols)
	if cells > MaxCells || cells > uint64(math.MaxInt-headerSize) {
		return fmt.Errorf("%dx%d = %d cells: %w", rows, cols, cells, ErrInvalidDimensions)
	}

	return nil
}

// initialize allocates zeroed storage for rows×cols, writes the header and
// binds the view. Any previous storage is dropped.
func (s *State) initialize(rows, cols int) error {
	s.storage = make([]float64, stateSize(rows, cols))
	s.storage[slotRows] = float64(rows)
	s.storage[slotCols] = float64(cols)

	return s.rebind()
}

// rebind rebuilds the view from the header slots.
// Storage shorter than the header demands is reported as ErrCorruptState.
func (s *State) rebind() error {
	if len(s.storage) < headerSize {
		return fmt.Errorf("storage length %d: %w", len(s.storage), ErrCorruptState)
	}
	rows, cols := s.Shape()
	if rows == 0 || cols == 0 {
		s.view = nil
		return nil
	}
	if len(s.storage) < stateSize(rows, cols) {
		return fmt.Errorf("storage length %d < %d for %dx%d: %w",
			len(s.storage), stateSize(rows, cols), rows, cols, ErrCorruptState)
	}
	v, err := matrix.NewDenseOver(s.storage, headerSize, rows, cols)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrCorruptState)
	}
	s.view = v

	return nil
}

// canonicalizeZeros rewrites -0 as +0. Stored cells never hold -0: Merge
// would turn one into +0 (-0 + +0 == +0).
func canonicalizeZeros(cells []float64) {
	for k, v := range cells {
		if v == 0 {
			cells[k] = 0
		}
	}
}

// checkConsistent verifies that the view still agrees with the header and that
// the storage is long enough. It guards every mutation of an initialized state.
func (s *State) checkConsistent() error {
	rows, cols := s.Shape()
	if len(s.storage) < stateSize(rows, cols) {
		return fmt.Errorf("storage length %d < %d: %w", len(s.storage), stateSize(rows, cols), ErrCorruptState)
	}
	if s.view == nil || s.view.Rows() != rows || s.view.Cols() != cols {
		return fmt.Errorf("header %dx%d disagrees with view: %w", rows, cols, ErrShapeMismatch)
	}

	return nil
}

// Shape returns the fixed (numRows, numCols); (0, 0) when uninitialized.
// A nil state reports (0, 0).
func (s *State) Shape() (rows, cols int) {
	if s == nil || len(s.storage) < headerSize {
		return 0, 0
	}

	return int(s.storage[slotRows]), int(s.storage[slotCols])
}

// Initialized reports whether a shape has been fixed.
func (s *State) Initialized() bool {
	rows, cols := s.Shape()

	return rows != 0 && cols != 0
}

// At returns cell (i, j) of the matrix under construction.
func (s *State) At(i, j int) (float64, error) {
	if !s.Initialized() {
		return 0, ErrNoData
	}
	v, err := s.view.At(i, j)
	if err != nil {
		return 0, fmt.Errorf("%v: %w", err, ErrIndexOutOfRange)
	}

	return v, nil
}

// Matrix returns an independent row-major copy of the assembled matrix.
func (s *State) Matrix() (*matrix.Dense, error) {
	if !s.Initialized() {
		return nil, ErrNoData
	}

	return s.view.Clone().(*matrix.Dense), nil
}

// Clone returns a deep copy. Cloning nil yields nil.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	cp := &State{storage: make([]float64, len(s.storage))}
	copy(cp.storage, s.storage)
	// The copy has the same header, so rebind cannot fail where s was valid.
	if err := cp.rebind(); err != nil {
		cp.view = nil
	}

	return cp
}

// String renders the shape and, when initialized, the matrix.
func (s *State) String() string {
	if s == nil {
		return "State(absent)"
	}
	if !s.Initialized() {
		return "State(uninitialized)"
	}
	rows, cols := s.Shape()

	return fmt.Sprintf("State(%dx%d)\n%s", rows, cols, s.view.String())
}
