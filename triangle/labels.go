// SPDX-License-Identifier: MIT

package triangle

import (
	"strings"
	"time"
)

// keySep joins key fields into a map key. validate rejects key fields that
// contain it.
const keySep = "\x1f"

func keyString(k []string) string { return strings.Join(k, keySep) }

func identity[T comparable](v T) T { return v }

func timeKey(t time.Time) int64 { return t.UnixNano() }

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}

	return append([]string{}, s...)
}

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}

	return append([]int{}, s...)
}

func cloneKeys(keys [][]string) [][]string {
	out := make([][]string, len(keys))
	for i, k := range keys {
		out[i] = cloneStrings(k)
	}

	return out
}

// firstDuplicate returns the first element whose key was already seen.
func firstDuplicate[T any, K comparable](s []T, key func(T) K) (T, bool) {
	seen := make(map[K]struct{}, len(s))
	for _, v := range s {
		k := key(v)
		if _, ok := seen[k]; ok {
			return v, true
		}
		seen[k] = struct{}{}
	}
	var zero T

	return zero, false
}

// equalBy reports whether a and b hold the same keys in the same order.
func equalBy[T any, K comparable](a, b []T, key func(T) K) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if key(a[i]) != key(b[i]) {
			return false
		}
	}

	return true
}

// sameSet reports whether a and b hold the same distinct strings.
func sameSet(a, b []string) bool {
	sa := make(map[string]struct{}, len(a))
	for _, s := range a {
		sa[s] = struct{}{}
	}
	sb := make(map[string]struct{}, len(b))
	for _, s := range b {
		sb[s] = struct{}{}
	}
	if len(sa) != len(sb) {
		return false
	}
	for s := range sa {
		if _, ok := sb[s]; !ok {
			return false
		}
	}

	return true
}

// intersect returns the labels of a that also appear in b, in a's order.
func intersect(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, s := range b {
		in[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := in[s]; ok {
			out = append(out, s)
		}
	}

	return out
}

// positions maps each label to its position in labels.
func positions(labels []string) map[string]int {
	out := make(map[string]int, len(labels))
	for i, s := range labels {
		out[s] = i
	}

	return out
}

// compareKeys orders key tuples field by field.
func compareKeys(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}

	return len(a) - len(b)
}
