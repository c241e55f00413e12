// SPDX-License-Identifier: MIT
// Package triangle: row-index operations.
//
// Purpose:
//   - Reorder, relabel and look up rows by key tuple.
//   - Every function returns a new Triangle; the receiver is never touched.

package triangle

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/lossdev/ndarray"
)

// takeRows returns t restricted to rows pos (in that order).
func (t *Triangle) takeRows(pos []int) (*Triangle, error) {
	v, err := t.values.Take(ndarray.AxisIndex, pos, math.NaN())
	if err != nil {
		return nil, err
	}
	out := t.withValues(v)
	out.kdims = make([][]string, len(pos))
	for i, p := range pos {
		out.kdims[i] = cloneStrings(t.kdims[p])
	}

	return out, nil
}

// SortIndex returns t with rows ordered by key tuple. Ties keep their
// original order.
func (t *Triangle) SortIndex() (*Triangle, error) {
	perm := make([]int, len(t.kdims))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int { return compareKeys(t.kdims[a], t.kdims[b]) })

	return t.takeRows(perm)
}

// indexEqual reports whether t and u carry the same key labels and the same
// key tuples in the same order.
func (t *Triangle) indexEqual(u *Triangle) bool {
	return slices.Equal(t.keyLabels, u.keyLabels) && equalBy(t.kdims, u.kdims, keyString)
}

// Loc returns the rows of t matching keys, in the order of keys. Repeated
// keys consume repeated rows of t one by one.
//
// Errors:
//   - ErrKeyNotFound when a key has no (remaining) matching row.
func (t *Triangle) Loc(keys [][]string) (*Triangle, error) {
	rows := make(map[string][]int, len(t.kdims))
	for i, k := range t.kdims {
		s := keyString(k)
		rows[s] = append(rows[s], i)
	}
	pos := make([]int, len(keys))
	for i, k := range keys {
		s := keyString(k)
		queue := rows[s]
		if len(queue) == 0 {
			return nil, triangleErrorf(opLoc, fmt.Errorf("%v: %w", k, ErrKeyNotFound))
		}
		pos[i], rows[s] = queue[0], queue[1:]
	}
	out, err := t.takeRows(pos)
	if err != nil {
		return nil, triangleErrorf(opLoc, err)
	}

	return out, nil
}

// withKeyOrder returns t with key fields permuted to labels, which must be a
// permutation of t's key labels.
func (t *Triangle) withKeyOrder(labels []string) *Triangle {
	out := t.clone()
	at := positions(t.keyLabels)
	out.keyLabels = cloneStrings(labels)
	for i, k := range t.kdims {
		row := make([]string, len(labels))
		for j, l := range labels {
			row[j] = k[at[l]]
		}
		out.kdims[i] = row
	}

	return out
}

// SetIndex returns t with a new key schema and key tuples. The row count
// must not change.
func (t *Triangle) SetIndex(labels []string, keys [][]string) (*Triangle, error) {
	out := t.clone()
	out.keyLabels = cloneStrings(labels)
	out.kdims = cloneKeys(keys)
	if err := out.validate(); err != nil {
		return nil, triangleErrorf(opSetIndex, err)
	}

	return out, nil
}

// SetBackend returns t with values stored in backend b.
func (t *Triangle) SetBackend(b ndarray.Backend) (*Triangle, error) {
	v, err := ndarray.AsBackend(t.values, b)
	if err != nil {
		return nil, triangleErrorf(opSetBackend, err)
	}

	return t.withValues(v), nil
}
