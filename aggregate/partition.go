// SPDX-License-Identifier: MIT
package aggregate

// Split deals items round-robin into n partitions (n <= 0 ⇒ 1).
// Partitions never share a backing array.
// Every item lands in exactly one partition, which preserves the
// at-most-one-writer rule as long as the items themselves are distinct.
func Split[T any](items []T, n int) [][]T {
	if n <= 0 {
		n = 1
	}
	if n > len(items) && len(items) > 0 {
		n = len(items)
	}
	parts := make([][]T, n)
	for i, it := range items {
		parts[i%n] = append(parts[i%n], it)
	}

	return parts
}
