// SPDX-License-Identifier: MIT

// Command matcompose assembles a matrix from CSV input with parallel workers,
// merges the partial states and prints the inverse.
//
// Usage:
//
//	matcompose invert [file] [flags]
//
// Dense input has one row per line; sparse input (--sparse) has one
// "row,col,value" triple per line and needs --rows/--cols.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
