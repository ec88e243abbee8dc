// SPDX-License-Identifier: MIT

// Package compose - persisted representation of a State.
//
// A State persists as a flat sequence of doubles:
//
//	[numRows, numCols, a00, a01, ..., a(r-1)(c-1)]   (row-major cells)
//
// Binary form: the same slots as little-endian IEEE-754 float64, 8 bytes each.
// Any consumer rebuilding a State must reject buffers shorter than
// 2 + numRows*numCols; Decode and UnmarshalBinary do.

package compose

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"math"
)

// MaxDimension bounds each dimension, whether declared to an assembler or read
// from persisted storage (the range of an unsigned 32-bit row/column id).
const MaxDimension = math.MaxUint32

// slotBytes is the width of one persisted slot.
const slotBytes = 8

var (
	_ encoding.BinaryMarshaler   = (*State)(nil)
	_ encoding.BinaryUnmarshaler = (*State)(nil)
)

// Encode returns a copy of the state's flat storage. Encoding nil yields nil.
func (s *State) Encode() []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s.storage))
	copy(out, s.storage)

	return out
}

// Decode rebuilds a State from its flat representation. buf is copied and
// any -0 cell is stored as +0, as the assemblers do.
// Extra trailing slots are preserved (they take part in Merge's length check).
//
// Errors:
//   - ErrCorruptState: fewer than 2 slots; a header slot that is not an
//     integral value in [0, MaxDimension]; exactly one zero dimension;
//     fewer than 2 + rows*cols slots.
func Decode(buf []float64) (*State, error) {
	if len(buf) < headerSize {
		return nil, composeErrorf(opDecode, fmt.Errorf("length %d: %w", len(buf), ErrCorruptState))
	}
	rows, err := headerDim(buf[slotRows])
	if err != nil {
		return nil, composeErrorf(opDecode, fmt.Errorf("numRows: %w", err))
	}
	cols, err := headerDim(buf[slotCols])
	if err != nil {
		return nil, composeErrorf(opDecode, fmt.Errorf("numCols: %w", err))
	}
	if (rows == 0) != (cols == 0) {
		return nil, composeErrorf(opDecode, fmt.Errorf("half-initialized shape %dx%d: %w", rows, cols, ErrCorruptState))
	}
	if rows != 0 && uint64(len(buf)-headerSize)/rows < cols {
		return nil, composeErrorf(opDecode,
			fmt.Errorf("length %d for %dx%d: %w", len(buf), rows, cols, ErrCorruptState))
	}

	s := &State{storage: make([]float64, len(buf))}
	copy(s.storage, buf)
	canonicalizeZeros(s.storage[headerSize:])
	if err = s.rebind(); err != nil {
		return nil, composeErrorf(opDecode, err)
	}

	return s, nil
}

// headerDim validates one header slot.
func headerDim(v float64) (uint64, error) {
	if math.IsNaN(v) || v < 0 || v > MaxDimension || v != math.Trunc(v) {
		return 0, fmt.Errorf("slot value %v: %w", v, ErrCorruptState)
	}

	return uint64(v), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *State) MarshalBinary() ([]byte, error) {
	slots := s.Encode()
	out := make([]byte, len(slots)*slotBytes)
	for i, v := range slots {
		binary.LittleEndian.PutUint64(out[i*slotBytes:], math.Float64bits(v))
	}

	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. On error s is unchanged.
func (s *State) UnmarshalBinary(data []byte) error {
	if len(data)%slotBytes != 0 {
		return composeErrorf(opUnmarshal, fmt.Errorf("%d bytes is not a whole number of slots: %w", len(data), ErrCorruptState))
	}
	slots := make([]float64, len(data)/slotBytes)
	for i := range slots {
		slots[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[i*slotBytes:]))
	}
	decoded, err := Decode(slots)
	if err != nil {
		return composeErrorf(opUnmarshal, err)
	}
	*s = *decoded

	return nil
}
