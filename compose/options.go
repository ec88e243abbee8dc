// SPDX-License-Identifier: MIT

// Package compose: functional configuration for the assemblers.
//
// Design goals:
//   - No global state: every call gathers its own Options.
//   - No dead switches: each flag changes behavior and is covered by tests.
package compose

import "github.com/katalvlaran/matcompose/matrix"

// Defaults (single source of truth).
const (
	// DefaultLegacyRowLengthCheck keeps the corrected dense-row check: a row's
	// length is compared against the fixed column count.
	DefaultLegacyRowLengthCheck = false

	// DefaultValidateNaNInf rejects NaN/±Inf cell values at assembly time.
	DefaultValidateNaNInf = matrix.DefaultValidateNaNInf
)

// Option mutates Options. Safe to apply repeatedly.
type Option func(*Options)

// Options holds assembler configuration. Fields are unexported; use WithX.
type Options struct {
	legacyRowLengthCheck bool
	validateNaNInf       bool
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		legacyRowLengthCheck: DefaultLegacyRowLengthCheck,
		validateNaNInf:       DefaultValidateNaNInf,
	}
}

// WithLegacyRowLengthCheck makes AssembleRow compare the length of every
// non-first row against the fixed ROW count instead of the column count.
// This reproduces the historical check bit for bit; it only accepts rows of a
// square matrix, and a row that passes it but has the wrong width still fails
// at write time with ErrShapeMismatch.
func WithLegacyRowLengthCheck() Option {
	return func(o *Options) { o.legacyRowLengthCheck = true }
}

// WithValidateNaNInf toggles rejection of NaN/±Inf cell values.
func WithValidateNaNInf(on bool) Option {
	return func(o *Options) { o.validateNaNInf = on }
}

// gatherOptions applies opts over the defaults. Nil options are skipped.
func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
