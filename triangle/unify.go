// SPDX-License-Identifier: MIT
// Package triangle: label union of the measurement axes.
//
// Purpose:
//   - When origin or development axes cannot be broadcast, give both
//     operands the union of the two label sequences and re-embed their
//     values at the union positions. Uncovered cells are NaN (absent), never
//     0, since 0 is a recorded value.
//
// Contract:
//   - Union order is a positional outer join: the left labels in their order,
//     then right-only labels in their order. It is never a sorted union.
//   - Labels must be unique within an axis (ErrDuplicateLabel). Embedding is
//     addressed by label, so neither contiguity nor sortedness of the labels
//     is required.
//   - Dense values are reallocated NaN-filled; sparse values only have their
//     stored coordinates remapped.

package triangle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/lossdev/ndarray"
)

// unionPositions returns the outer-join union of left and right and, for
// each side, the union position of each of its labels.
func unionPositions[T any, K comparable](left, right []T, key func(T) K) (union []T, pl, pr []int, err error) {
	if _, dup := firstDuplicate(left, key); dup {
		return nil, nil, nil, ErrDuplicateLabel
	}
	if _, dup := firstDuplicate(right, key); dup {
		return nil, nil, nil, ErrDuplicateLabel
	}
	at := make(map[K]int, len(left)+len(right))
	union = make([]T, 0, len(left)+len(right))
	pl = make([]int, len(left))
	for i, v := range left {
		at[key(v)] = len(union)
		pl[i] = len(union)
		union = append(union, v)
	}
	pr = make([]int, len(right))
	for i, v := range right {
		p, ok := at[key(v)]
		if !ok {
			p = len(union)
			at[key(v)] = p
			union = append(union, v)
		}
		pr[i] = p
	}

	return union, pl, pr, nil
}

// unify gives x and y the union of every measurement axis whose labels
// differ.
func (e *Engine) unify(x, y *Triangle) (*Triangle, *Triangle, error) {
	if !equalBy(x.odims, y.odims, timeKey) {
		union, pl, pr, err := unionPositions(x.odims, y.odims, timeKey)
		if err != nil {
			return nil, nil, fmt.Errorf("origin: %w", err)
		}
		if x, y, err = embedPair(x, y, ndarray.AxisOrigin, len(union), pl, pr); err != nil {
			return nil, nil, err
		}
		x.odims = union
		y.odims = append(union[:0:0], union...)
		e.log.Debug("axis union", zap.String("axis", "origin"),
			zap.Int("left", len(pl)), zap.Int("right", len(pr)), zap.Int("union", len(union)))
	}
	if !equalBy(x.ddims, y.ddims, identity[int]) {
		union, pl, pr, err := unionPositions(x.ddims, y.ddims, identity[int])
		if err != nil {
			return nil, nil, fmt.Errorf("development: %w", err)
		}
		if x, y, err = embedPair(x, y, ndarray.AxisDevelopment, len(union), pl, pr); err != nil {
			return nil, nil, err
		}
		x.ddims = union
		y.ddims = cloneInts(union)
		e.log.Debug("axis union", zap.String("axis", "development"),
			zap.Int("left", len(pl)), zap.Int("right", len(pr)), zap.Int("union", len(union)))
	}

	return x, y, nil
}

// embedPair re-embeds both operands along axis into an extent of n.
func embedPair(x, y *Triangle, axis, n int, pl, pr []int) (*Triangle, *Triangle, error) {
	xv, err := x.values.Embed(axis, n, pl)
	if err != nil {
		return nil, nil, err
	}
	yv, err := y.values.Embed(axis, n, pr)
	if err != nil {
		return nil, nil, err
	}

	return x.withValues(xv), y.withValues(yv), nil
}
