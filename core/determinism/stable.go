// Package determinism provides primitives for deterministic iteration over
// results and queries. Evaluation results and query answers are keyed by
// module/fact name; Go map iteration order is randomized, so anything
// returned to a caller or compared in a test is produced through these
// helpers instead of a bare, unordered map range.
package determinism

import (
	"fmt"
	"sort"
)

// SortSlice sorts a slice in a stable, deterministic manner.
func SortSlice[T any](slice []T, less func(a, b T) bool) {
	sort.SliceStable(slice, func(i, j int) bool {
		return less(slice[i], slice[j])
	})
}

// SortStrings sorts strings in place.
func SortStrings(s []string) {
	sort.Strings(s)
}

// SortedKeys returns m's keys sorted by their string representation.
func SortedKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}

// RangeMapSorted iterates over m in sorted key order, stopping early if fn
// returns false.
func RangeMapSorted[K comparable, V any](m map[K]V, fn func(K, V) bool) {
	for _, k := range SortedKeys(m) {
		if !fn(k, m[k]) {
			break
		}
	}
}
