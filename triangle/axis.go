// SPDX-License-Identifier: MIT
// Package triangle: column selection and whole-axis reshaping.
//
// Purpose:
//   - SelectColumns: reorder columns and insert zero-valued ones.
//   - SortAxis: sort any axis by its labels.
//   - BroadcastColumns / BroadcastIndex: repeat a length-1 label axis.

package triangle

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/katalvlaran/lossdev/ndarray"
)

// SelectColumns returns t with columns in the order of cols. A name t does
// not carry becomes a column of zeros in every row, origin and development.
//
// Errors:
//   - ErrDuplicateLabel when cols repeats a name.
func (t *Triangle) SelectColumns(cols ...string) (*Triangle, error) {
	if dup, ok := firstDuplicate(cols, identity[string]); ok {
		return nil, triangleErrorf(opColumns, fmt.Errorf("column %q: %w", dup, ErrDuplicateLabel))
	}
	at := positions(t.vdims)
	pos := make([]int, len(cols))
	for i, c := range cols {
		p, ok := at[c]
		if !ok {
			p = -1
		}
		pos[i] = p
	}
	v, err := t.values.Take(ndarray.AxisColumn, pos, 0)
	if err != nil {
		return nil, triangleErrorf(opColumns, err)
	}
	out := t.withValues(v)
	out.vdims = cloneStrings(cols)

	return out, nil
}

// Column returns the single-column triangle named name.
func (t *Triangle) Column(name string) (*Triangle, error) {
	if !slices.Contains(t.vdims, name) {
		return nil, triangleErrorf(opColumns, fmt.Errorf("%q: %w", name, ErrUnknownLabel))
	}

	return t.SelectColumns(name)
}

// SortAxis returns t sorted ascending along axis by its labels: key tuples
// for the index, names for columns, dates for origins, ages for developments.
func (t *Triangle) SortAxis(axis int) (*Triangle, error) {
	if err := ndarray.ValidateAxis(axis); err != nil {
		return nil, triangleErrorf(opSortAxis, err)
	}
	if axis == ndarray.AxisIndex {
		out, err := t.SortIndex()
		if err != nil {
			return nil, triangleErrorf(opSortAxis, err)
		}
		return out, nil
	}

	n := t.values.Shape()[axis]
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	var cmp func(a, b int) int
	switch axis {
	case ndarray.AxisColumn:
		cmp = func(a, b int) int { return strings.Compare(t.vdims[a], t.vdims[b]) }
	case ndarray.AxisOrigin:
		cmp = func(a, b int) int { return t.odims[a].Compare(t.odims[b]) }
	default:
		cmp = func(a, b int) int { return t.ddims[a] - t.ddims[b] }
	}
	slices.SortStableFunc(perm, cmp)

	v, err := t.values.Take(axis, perm, math.NaN())
	if err != nil {
		return nil, triangleErrorf(opSortAxis, err)
	}
	out := t.withValues(v)
	for i, p := range perm {
		switch axis {
		case ndarray.AxisColumn:
			out.vdims[i] = t.vdims[p]
		case ndarray.AxisOrigin:
			out.odims[i] = t.odims[p]
		default:
			out.ddims[i] = t.ddims[p]
		}
	}

	return out, nil
}

// repeatAxis repeats the single slice of axis n times.
func (t *Triangle) repeatAxis(axis, n int) (ndarray.Array, error) {
	if t.values.Shape()[axis] != 1 {
		return nil, fmt.Errorf("axis %d has length %d, want 1: %w", axis, t.values.Shape()[axis], ErrShapeMismatch)
	}

	return t.values.Take(axis, make([]int, n), math.NaN())
}

// BroadcastColumns returns a single-column t repeated under the given names.
//
// Errors:
//   - ErrShapeMismatch when t has more than one column.
//   - ErrDuplicateLabel when cols repeats a name.
func (t *Triangle) BroadcastColumns(cols ...string) (*Triangle, error) {
	if dup, ok := firstDuplicate(cols, identity[string]); ok {
		return nil, triangleErrorf(opBroadcast, fmt.Errorf("column %q: %w", dup, ErrDuplicateLabel))
	}
	v, err := t.repeatAxis(ndarray.AxisColumn, len(cols))
	if err != nil {
		return nil, triangleErrorf(opBroadcast, err)
	}
	out := t.withValues(v)
	out.vdims = cloneStrings(cols)

	return out, nil
}

// BroadcastIndex returns a single-row t repeated under the given key tuples,
// which must match the width of t's key labels.
func (t *Triangle) BroadcastIndex(keys ...[]string) (*Triangle, error) {
	v, err := t.repeatAxis(ndarray.AxisIndex, len(keys))
	if err != nil {
		return nil, triangleErrorf(opBroadcast, err)
	}
	out := t.withValues(v)
	out.kdims = cloneKeys(keys)
	if err := out.validate(); err != nil {
		return nil, triangleErrorf(opBroadcast, err)
	}

	return out, nil
}
