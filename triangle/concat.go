// SPDX-License-Identifier: MIT

package triangle

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lossdev/ndarray"
)

// Concat stacks parts along the row axis, in input order.
//
// Parts must share columns, origins, developments and grains. Their key
// schemas may differ: the result carries the union of key labels (first
// part's order first) and a part lacking a field gets "" for it. The
// valuation date is the latest one; the result is a pattern only when every
// part is.
//
// Errors:
//   - ErrNilTriangle for nil or zero parts.
//   - ErrIncompatibleGrain, ErrShapeMismatch.
func Concat(parts ...*Triangle) (*Triangle, error) {
	if len(parts) == 0 || parts[0] == nil {
		return nil, triangleErrorf(opConcat, ErrNilTriangle)
	}
	first := parts[0]
	labels := cloneStrings(first.keyLabels)
	arrays := make([]ndarray.Array, len(parts))
	out := first.clone()
	for i, p := range parts {
		if p == nil {
			return nil, triangleErrorf(opConcat, ErrNilTriangle)
		}
		if p.originGrain != first.originGrain || p.developmentGrain != first.developmentGrain {
			return nil, triangleErrorf(opConcat, ErrIncompatibleGrain)
		}
		if !slices.Equal(p.vdims, first.vdims) ||
			!equalBy(p.odims, first.odims, timeKey) ||
			!slices.Equal(p.ddims, first.ddims) {
			return nil, triangleErrorf(opConcat, fmt.Errorf("part %d axes differ: %w", i, ErrShapeMismatch))
		}
		for _, l := range p.keyLabels {
			if !slices.Contains(labels, l) {
				labels = append(labels, l)
			}
		}
		if p.valuationDate.After(out.valuationDate) {
			out.valuationDate = p.valuationDate
		}
		out.isPattern = out.isPattern && p.isPattern
		arrays[i] = p.values
	}

	v, err := ndarray.Concat(ndarray.AxisIndex, arrays...)
	if err != nil {
		return nil, triangleErrorf(opConcat, err)
	}
	out.values = v
	out.keyLabels = labels
	out.kdims = make([][]string, 0, v.Shape()[ndarray.AxisIndex])
	for _, p := range parts {
		at := positions(p.keyLabels)
		for _, k := range p.kdims {
			row := make([]string, len(labels))
			for j, l := range labels {
				if f, ok := at[l]; ok {
					row[j] = k[f]
				}
			}
			out.kdims = append(out.kdims, row)
		}
	}
	if err := out.checkShape(); err != nil {
		return nil, triangleErrorf(opConcat, err)
	}

	return out, nil
}
