// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/SetRow return errors instead of panicking.
//   - Allow a Dense to be a window over a caller-owned flat buffer (NewDenseOver), so that
//     header slots and matrix data can share one allocation without pointer aliasing.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; NewDenseOver: O(1); At/Set: O(1); SetRow: O(c); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt     = "At"     // method tag used in error wrappers
	ctxSet    = "Set"    // method tag used in error wrappers
	ctxSetRow = "SetRow" // method tag used in error wrappers
	ctxRow    = "Row"    // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Format: "Dense.<method>(row,col): %w"; preserves the sentinel for errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat window of length r*c in row-major order (offset = i*c + j).
//     It is either owned (NewDense) or a capped sub-slice of a larger buffer (NewDenseOver).
//   - validateNaNInf enables optional NaN/Inf rejection in Set/SetRow.
type Dense struct {
	r, c           int       // row and column counts (>0)
	data           []float64 // row-major window, len == cap == r*c
	validateNaNInf bool      // numeric guard: reject NaN/Inf in writes when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0, cols<=0 or rows*cols overflows int.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 || rows > math.MaxInt/cols {
		return nil, ErrInvalidDimensions
	}
	// make() zero-fills deterministically.
	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseOver returns an r×c Dense window over buf[offset : offset+rows*cols].
// MAIN DESCRIPTION:
//   - No copy: writes through the Dense land in buf. The window is capped so
//     that appends on it can never spill into the rest of buf.
//
// Implementation:
//   - Stage 1: validate rows>0, cols>0, offset>=0 and that offset+rows*cols fits in int.
//   - Stage 2: check len(buf) >= offset + rows*cols; else ErrShortBuffer.
//   - Stage 3: slice with a full-slice expression to cap the window.
//
// Errors:
//   - ErrInvalidDimensions, ErrShortBuffer.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Use this to layer a matrix over a header-prefixed storage buffer.
func NewDenseOver(buf []float64, offset, rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 || offset < 0 || rows > (math.MaxInt-offset)/cols {
		return nil, ErrInvalidDimensions
	}
	end := offset + rows*cols
	if end > len(buf) {
		return nil, fmt.Errorf("NewDenseOver(len=%d, need=%d): %w", len(buf), end, ErrShortBuffer)
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           buf[offset:end:end],
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseFromRows builds a Dense by copying a rectangular [][]float64.
//
// Errors:
//   - ErrInvalidDimensions for an empty input or empty first row.
//   - ErrDimensionMismatch when rows have differing lengths.
//   - ErrNaNInf for non-finite values (default policy).
func NewDenseFromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	m, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if err = m.SetRow(i, row); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// ValidateNaNInf reports whether writes reject NaN/±Inf.
func (m *Dense) ValidateNaNInf() bool { return m.validateNaNInf }

// SetValidateNaNInf toggles the numeric policy for subsequent writes.
func (m *Dense) SetValidateNaNInf(on bool) { m.validateNaNInf = on }

// indexOf bounds-checks (row,col) and returns the row-major offset.
// Returns a bare sentinel; public methods wrap with coordinates.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for non-finite v when the policy is on.
//
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// SetRow overwrites row i with vals (len(vals) must equal Cols()).
// MAIN DESCRIPTION:
//   - All-or-nothing: every check runs before the first write, so a failed
//     call leaves the row untouched.
//
// Errors:
//   - ErrOutOfRange (row), ErrDimensionMismatch (length), ErrNaNInf (policy).
//
// Complexity: O(c).
func (m *Dense) SetRow(i int, vals []float64) error {
	if i < 0 || i >= m.r {
		return denseErrorf(ctxSetRow, i, 0, ErrOutOfRange)
	}
	if len(vals) != m.c {
		return denseErrorf(ctxSetRow, i, len(vals), ErrDimensionMismatch)
	}
	if m.validateNaNInf {
		for j, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return denseErrorf(ctxSetRow, i, j, ErrNaNInf)
			}
		}
	}
	copy(m.data[i*m.c:(i+1)*m.c], vals)

	return nil
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// RawData returns a copy of the row-major buffer (len == r*c).
func (m *Dense) RawData() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// Clone returns a deep copy (new owned buffer, same numeric policy).
// A Dense built with NewDenseOver clones into independent storage.
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf,
	}
}

// String provides a readable row-wise dump for diagnostics.
// Not for hot paths.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Flatten returns the elements of m as a flat slice in the requested layout.
//
//   - RowMajor: data[i*c + j].
//   - ColMajor: data[j*r + i].
//
// Errors:
//   - ErrUnknownLayout for an unsupported layout value.
//
// Complexity: O(r*c).
func (m *Dense) Flatten(layout Layout) ([]float64, error) {
	switch layout {
	case RowMajor:
		return m.RawData(), nil
	case ColMajor:
		out := make([]float64, len(m.data))
		var i, j, base int
		for i = 0; i < m.r; i++ {
			base = i * m.c
			for j = 0; j < m.c; j++ {
				out[j*m.r+i] = m.data[base+j]
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("Dense.Flatten(%v): %w", layout, ErrUnknownLayout)
	}
}
