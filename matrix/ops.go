// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation:
// in-place accumulation, transpose, leading-column truncation, identity
// construction and tolerance comparison. All functions perform strict
// fail-fast validation and return clear errors on dimension mismatches.
//
// Notes:
//   - Each kernel has a *Dense fast-path over the flat slice and an At/Set
//     fallback with a fixed i→j order; both produce identical results.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping.
const (
	opAddInPlace = "AddInPlace"
	opTranspose  = "Transpose"
	opLeftCols   = "LeftCols"
	opIdentity   = "Identity"
	opAllClose   = "AllClose"
	opInverse    = "Inverse"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// AddInPlace accumulates src into dst element-wise: dst[i,j] += src[i,j].
// MAIN DESCRIPTION:
//   - The only mutating kernel in the package; src is never written.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(dst, src).
//   - Stage 2: Fast-path when both are *Dense - single flat loop 0..n-1.
//     Otherwise At/Set in fixed i→j order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch; ErrNaNInf if the sum overflows and
//     dst enforces the finite policy (fallback path only).
//
// Determinism:
//   - Each cell receives exactly one addition; IEEE addition of an exact zero is
//     the identity, so accumulating disjoint supports is order-independent.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func AddInPlace(dst, src Matrix) error {
	if err := ValidateBinarySameShape(dst, src); err != nil {
		return matrixErrorf(opAddInPlace, err)
	}

	if dd, ok := dst.(*Dense); ok {
		if sd, ok2 := src.(*Dense); ok2 {
			for k := range dd.data {
				dd.data[k] += sd.data[k]
			}
			return nil
		}
	}

	rows, cols := dst.Rows(), dst.Cols()
	var (
		i, j   int
		av, bv float64
		err    error
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = dst.At(i, j); err != nil {
				return matrixErrorf(opAddInPlace, err)
			}
			if bv, err = src.At(i, j); err != nil {
				return matrixErrorf(opAddInPlace, err)
			}
			if err = dst.Set(i, j, av+bv); err != nil {
				return matrixErrorf(opAddInPlace, err)
			}
		}
	}

	return nil
}

// Transpose returns a new Dense holding mᵀ.
// Complexity: O(r*c) time and space.
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows) // dims flipped
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if dm, ok := m.(*Dense); ok {
		res.validateNaNInf = dm.validateNaNInf
		// data[i*cols + j] → res.data[j*rows + i]
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * cols
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = dm.data[baseSrc+j]
			}
		}
		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("At(%d,%d): %w", i, j, err))
			}
			if err = res.Set(j, i, v); err != nil {
				return nil, matrixErrorf(opTranspose, fmt.Errorf("Set(%d,%d): %w", j, i, err))
			}
		}
	}

	return res, nil
}

// LeftCols copies the k leading columns of m into a new rows×k Dense.
//
// Errors:
//   - ErrNilMatrix; ErrOutOfRange when k<=0 or k>Cols().
//
// Complexity: O(r*k).
func LeftCols(m Matrix, k int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opLeftCols, err)
	}
	rows, cols := m.Rows(), m.Cols()
	if k <= 0 || k > cols {
		return nil, matrixErrorf(opLeftCols, fmt.Errorf("k=%d of %d: %w", k, cols, ErrOutOfRange))
	}
	res, err := NewDense(rows, k)
	if err != nil {
		return nil, matrixErrorf(opLeftCols, err)
	}

	var i, j int
	if dm, ok := m.(*Dense); ok {
		res.validateNaNInf = dm.validateNaNInf
		for i = 0; i < rows; i++ {
			copy(res.data[i*k:(i+1)*k], dm.data[i*cols:i*cols+k])
		}
		return res, nil
	}

	var v float64
	for i = 0; i < rows; i++ {
		for j = 0; j < k; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opLeftCols, err)
			}
			res.data[i*k+j] = v
		}
	}

	return res, nil
}

// NewIdentity returns I_n (ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opIdentity, err)
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything. Negative tolerances are normalized to their absolute value.
//
// Errors:
//   - ErrNaNInf for non-finite tolerances; ErrNilMatrix; ErrDimensionMismatch.
//
// Complexity: Time O(r*c), Space O(1).
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if math.IsNaN(rtol) || math.IsNaN(atol) || math.IsInf(rtol, 0) || math.IsInf(atol, 0) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if !(math.Abs(da.data[idx]-db.data[idx]) <= atol+rtol*math.Abs(db.data[idx])) {
					return false, nil
				}
			}
			return true, nil
		}
	}

	r, c := a.Rows(), a.Cols()
	var av, bv float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			av, _ = a.At(i, j)
			bv, _ = b.At(i, j)
			if !(math.Abs(av-bv) <= atol+rtol*math.Abs(bv)) {
				return false, nil
			}
		}
	}

	return true, nil
}
