// SPDX-License-Identifier: MIT

// Package triangle - group-key fallback.
//
// Purpose:
//   - Combine two operands whose row indexes are not a plain broadcast of one
//     another, one partition key at a time.
//
// Implementation:
//   - Stage 1: key universe = left keys in partition order, then right-only keys.
//   - Stage 2: per key, take each side's member rows, or a zero placeholder
//     row labeled from the other side when the key is missing there.
//   - Stage 3: combine each key's pair through the full engine (the pair may
//     still differ in shape), on the configured Mapper.
//   - Stage 4: concatenate and sort by index.
package triangle

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// CombineGroups applies op key by key to two partitions made over the same
// key labels and returns one triangle sorted by index.
//
// Errors:
//   - ErrNilTriangle for a nil partition.
//   - ErrKeyJoin when the partitions use different labels, hold no keys, or a
//     placeholder cannot be labeled.
//   - Any alignment error of a per-key combination.
func (e *Engine) CombineGroups(op Op, ga, gb *Grouping) (*Triangle, error) {
	if ga == nil || gb == nil {
		return nil, triangleErrorf(opCombine, ErrNilTriangle)
	}
	if !slices.Equal(ga.by, gb.by) {
		return nil, triangleErrorf(opCombine, fmt.Errorf("partitions by %v and %v: %w", ga.by, gb.by, ErrKeyJoin))
	}
	keys := keyUnion(ga, gb)
	if len(keys) == 0 {
		return nil, triangleErrorf(opCombine, fmt.Errorf("no keys: %w", ErrKeyJoin))
	}
	e.log.Debug("group-key fallback",
		zap.Stringer("op", op), zap.Strings("by", ga.by), zap.Int("keys", len(keys)))

	parts, err := e.opts.mapper.Map(context.Background(), len(keys), func(_ context.Context, i int) (*Triangle, error) {
		sa, err := sliceOrPlaceholder(ga, gb, keys[i])
		if err != nil {
			return nil, err
		}
		sb, err := sliceOrPlaceholder(gb, ga, keys[i])
		if err != nil {
			return nil, err
		}

		return e.binary(op, sa, sb, true)
	})
	if err != nil {
		return nil, triangleErrorf(opCombine, err)
	}

	out, err := Concat(parts...)
	if err != nil {
		return nil, triangleErrorf(opCombine, err)
	}
	out, err = out.SortIndex()
	if err != nil {
		return nil, triangleErrorf(opCombine, err)
	}

	return out, nil
}

// keyUnion returns the keys of a, then the keys of b that a lacks.
func keyUnion(a, b *Grouping) [][]string {
	keys := cloneKeys(a.keys)
	for _, k := range b.keys {
		if !a.Has(k) {
			keys = append(keys, cloneStrings(k))
		}
	}

	return keys
}

// sliceOrPlaceholder returns own's rows for key. When own lacks key it
// returns one of own's rows times zero (NaN cells stay NaN), keyed in own's
// schema: fields shared with the partner's last row for key are copied from
// it, other fields are "".
func sliceOrPlaceholder(own, partner *Grouping, key []string) (*Triangle, error) {
	if own.Has(key) {
		return own.Slice(key)
	}
	ps, err := partner.Slice(key)
	if err != nil {
		return nil, err
	}
	if ps.Len() == 0 || own.obj.Len() == 0 {
		return nil, fmt.Errorf("%v: empty slice: %w", key, ErrKeyJoin)
	}
	common := intersect(own.obj.keyLabels, ps.keyLabels)
	if len(common) == 0 {
		return nil, fmt.Errorf("%v and %v share no key label: %w", own.obj.keyLabels, ps.keyLabels, ErrKeyJoin)
	}

	base, err := own.obj.takeRows([]int{0})
	if err != nil {
		return nil, err
	}
	base.values = base.values.Map(func(v float64) float64 { return v * 0 })
	last := ps.kdims[len(ps.kdims)-1]
	at := positions(ps.keyLabels)
	row := make([]string, len(base.keyLabels))
	for j, l := range base.keyLabels {
		if f, ok := at[l]; ok {
			row[j] = last[f]
		}
	}
	base.kdims = [][]string{row}

	return base, nil
}
