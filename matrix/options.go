// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults.
//
// Design goals:
//   - Deterministic behavior: no global mutable state, no implicit randomness.
//   - Single source of truth: constructors read these constants; nothing else
//     hard-codes a tolerance or a policy flag.
package matrix

// Numeric policy.
const (
	// DefaultValidateNaNInf toggles strict finite-value validation on Set/SetRow.
	DefaultValidateNaNInf = true

	// DefaultRTol is the relative tolerance used by AllClose-based helpers.
	DefaultRTol = 1e-9

	// DefaultATol is the absolute tolerance used by AllClose-based helpers.
	DefaultATol = 1e-12
)
