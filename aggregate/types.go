// SPDX-License-Identifier: MIT

// Package aggregate defines the inputs handed to workers and the reduction strategies.
package aggregate

import "fmt"

// Row is one dense contribution: the full row at Index.
type Row struct {
	Index  int
	Values []float64
}

// Cell is one sparse contribution: Value at (Row, Col).
type Cell struct {
	Row, Col int
	Value    float64
}

// Strategy selects how partial states are combined.
//
//   - Chain: fold left to right on one goroutine: ((s0+s1)+s2)+...
//     O(P) merges on the critical path; no extra concurrency.
//   - Tree: merge disjoint pairs level by level, each level in parallel:
//     O(log P) merges on the critical path.
//
// Both produce bitwise-identical matrices for disjoint writers.
type Strategy int

const (
	// Tree merges pairs level by level, in parallel.
	Tree Strategy = iota

	// Chain folds sequentially.
	Chain
)

// String implements fmt.Stringer.
func (s Strategy) String() string {
	switch s {
	case Tree:
		return "tree"
	case Chain:
		return "chain"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "tree"/"chain" onto a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "tree":
		return Tree, nil
	case "chain":
		return Chain, nil
	default:
		return Tree, fmt.Errorf("aggregate: strategy %q: %w", s, ErrUnknownStrategy)
	}
}
