// SPDX-License-Identifier: MIT

// Package triangle - row partitions by key.
//
// Purpose:
//   - GroupBy partitions the rows of a triangle by a subset of its key
//     fields. The partition is read-only: an ordered key list and, per key,
//     the positions of the member rows.
//   - Slice returns the member rows of one key untouched; Sum collapses each
//     partition into one row.
//
// Determinism:
//   - Keys are sorted by tuple. Member positions keep row order.
package triangle

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lossdev/ndarray"
)

// Grouping is a partition of a triangle's rows by the values of some key
// fields.
type Grouping struct {
	obj     *Triangle
	by      []string
	keys    [][]string
	indices map[string][]int
}

// GroupBy partitions the rows of t by the key fields labels (in that order).
//
// Errors:
//   - ErrUnknownLabel when a label is not one of t's key labels.
//   - ErrDuplicateLabel when labels repeats a name.
func (t *Triangle) GroupBy(labels ...string) (*Grouping, error) {
	if dup, ok := firstDuplicate(labels, identity[string]); ok {
		return nil, triangleErrorf(opGroupBy, fmt.Errorf("%q: %w", dup, ErrDuplicateLabel))
	}
	at := positions(t.keyLabels)
	fields := make([]int, len(labels))
	for i, l := range labels {
		p, ok := at[l]
		if !ok {
			return nil, triangleErrorf(opGroupBy, fmt.Errorf("%q: %w", l, ErrUnknownLabel))
		}
		fields[i] = p
	}

	g := &Grouping{obj: t, by: cloneStrings(labels), indices: make(map[string][]int)}
	for row, k := range t.kdims {
		key := make([]string, len(fields))
		for i, f := range fields {
			key[i] = k[f]
		}
		s := keyString(key)
		if _, ok := g.indices[s]; !ok {
			g.keys = append(g.keys, key)
		}
		g.indices[s] = append(g.indices[s], row)
	}
	slices.SortFunc(g.keys, compareKeys)

	return g, nil
}

// Triangle returns the partitioned triangle.
func (g *Grouping) Triangle() *Triangle { return g.obj }

// By returns the grouping key labels.
func (g *Grouping) By() []string { return cloneStrings(g.by) }

// Keys returns the partition keys in sorted order.
func (g *Grouping) Keys() [][]string { return cloneKeys(g.keys) }

// Indices returns the row positions of key, or false when key is absent.
func (g *Grouping) Indices(key []string) ([]int, bool) {
	pos, ok := g.indices[keyString(key)]
	if !ok {
		return nil, false
	}

	return append([]int(nil), pos...), true
}

// Has reports whether key is one of the partition keys.
func (g *Grouping) Has(key []string) bool {
	_, ok := g.indices[keyString(key)]
	return ok
}

// Slice returns the member rows of key with their full key tuples.
func (g *Grouping) Slice(key []string) (*Triangle, error) {
	pos, ok := g.indices[keyString(key)]
	if !ok {
		return nil, triangleErrorf(opGroupBy, fmt.Errorf("%v: %w", key, ErrKeyNotFound))
	}
	out, err := g.obj.takeRows(pos)
	if err != nil {
		return nil, triangleErrorf(opGroupBy, err)
	}

	return out, nil
}

// Sum collapses every partition into one row holding the NaN-skipping sum
// of its members. The result is keyed by the grouping labels.
func (g *Grouping) Sum() (*Triangle, error) {
	groups := make([][]int, len(g.keys))
	for i, k := range g.keys {
		groups[i] = g.indices[keyString(k)]
	}
	v, err := ndarray.SumGroups(g.obj.values, ndarray.AxisIndex, groups)
	if err != nil {
		return nil, triangleErrorf(opGroupBy, err)
	}
	out := g.obj.withValues(v)
	out.keyLabels = cloneStrings(g.by)
	out.kdims = cloneKeys(g.keys)

	return out, nil
}
