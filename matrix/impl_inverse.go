// SPDX-License-Identifier: MIT

// Package matrix - inversion kernel.
//
// Purpose:
//   - Compute A⁻¹ for a square Dense through gonum's LAPACK-backed LU
//     factorization with partial pivoting (Getrf/Getri) and a 1-norm condition
//     estimate (Gecon).
//   - Translate gonum's Condition error into package sentinels:
//     exact zero pivot → ErrSingular; condition above mat.ConditionTolerance → ErrIllConditioned.
//
// Determinism:
//   - gonum's pure-Go LAPACK uses fixed loop orders; identical inputs give
//     bitwise-identical outputs on the same platform.

package matrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Inverse returns A⁻¹ as a new row-major Dense. m is never mutated.
// MAIN DESCRIPTION:
//   - Copies m into a gonum matrix (gonum factorizes in place), inverts it and
//     copies the result back into package storage.
//
// Implementation:
//   - Stage 1: ValidateNotNil → ValidateSquare (gonum panics on non-square input).
//   - Stage 2: reject non-finite entries up front (LAPACK would propagate NaN silently).
//   - Stage 3: mat.Dense.Inverse; map mat.Condition to ErrSingular/ErrIllConditioned.
//   - Stage 4: copy back with the source numeric policy.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrSingular, ErrIllConditioned.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func Inverse(m Matrix) (*Dense, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	n := m.Rows()
	src := make([]float64, n*n)
	policy := DefaultValidateNaNInf
	if dm, ok := m.(*Dense); ok {
		copy(src, dm.data)
		policy = dm.validateNaNInf
	} else {
		var (
			i, j int
			v    float64
			err  error
		)
		for i = 0; i < n; i++ {
			for j = 0; j < n; j++ {
				if v, err = m.At(i, j); err != nil {
					return nil, matrixErrorf(opInverse, err)
				}
				src[i*n+j] = v
			}
		}
	}
	if err := ValidateFinite(src); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var inv mat.Dense
	if err := inv.Inverse(mat.NewDense(n, n, src)); err != nil {
		return nil, matrixErrorf(opInverse, conditionError(err))
	}

	res, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	res.validateNaNInf = policy
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			res.data[i*n+j] = inv.At(i, j)
		}
	}

	return res, nil
}

// conditionError maps a gonum solver error onto the package sentinels.
func conditionError(err error) error {
	var cond mat.Condition
	if errors.As(err, &cond) {
		if math.IsInf(float64(cond), 1) {
			return ErrSingular
		}
		return fmt.Errorf("condition number %.3g: %w", float64(cond), ErrIllConditioned)
	}

	return err
}
