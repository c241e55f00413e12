// SPDX-License-Identifier: MIT
// Package triangle: axis alignment of two triangle operands.
//
// Purpose:
//   - Turn two triangles into a pair whose four axes are pairwise equal or
//     broadcast-compatible, in one shared backend, or route the pair to the
//     group-key fallback when the row indexes cannot be matched directly.
//
// Steps (order matters; each works on owned copies):
//  1. grain check and common backend,
//  2. pattern flag and valuation date,
//  3. columns,
//  4. row index (may decide to route to the fallback),
//  5. origin and development,
//  6. backend parity, then grouping when routed.
//
// Broadcast convention:
//   - A side of length 1 on an axis adopts the other side's labels while its
//     values keep length 1. The mismatch is internal to alignment; the
//     kernels broadcast it and results always match their labels.

package triangle

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/lossdev/ndarray"
)

// pair is the outcome of align: two aligned triangles, or two partitions
// when routed to the group-key fallback.
type pair struct {
	x, y   *Triangle
	gx, gy *Grouping
}

func (p pair) grouped() bool { return p.gx != nil }

// align runs the alignment steps on a and b. nested is set for the per-key
// combinations of the fallback, which may not route again.
func (e *Engine) align(a, b *Triangle, nested bool) (pair, error) {
	if a == nil || b == nil {
		return pair{}, triangleErrorf(opAlign, ErrNilTriangle)
	}

	// Stage 1: grain, then common backend.
	if err := sameGrain(a, b); err != nil {
		return pair{}, triangleErrorf(opAlign, err)
	}
	backend, err := ndarray.CommonBackend(e.opts.priority, a.Backend(), b.Backend())
	if err != nil {
		return pair{}, triangleErrorf(opAlign, err)
	}
	if a.Backend() != b.Backend() {
		e.log.Debug("backend coercion",
			zap.Stringer("left", a.Backend()), zap.Stringer("right", b.Backend()), zap.Stringer("common", backend))
	}
	x, err := a.SetBackend(backend)
	if err != nil {
		return pair{}, triangleErrorf(opAlign, err)
	}
	y, err := b.SetBackend(backend)
	if err != nil {
		return pair{}, triangleErrorf(opAlign, err)
	}

	// Stage 2: pattern flag and valuation date.
	if x.isPattern != y.isPattern {
		x.isPattern, y.isPattern = false, false
	}
	if y.valuationDate.After(x.valuationDate) {
		x.valuationDate = y.valuationDate
	}
	y.valuationDate = x.valuationDate

	// Stage 3: columns.
	if x, y, err = prepColumns(x, y); err != nil {
		return pair{}, triangleErrorf(opAlign, err)
	}

	// Stage 4: row index.
	x, y, common, route, err := prepIndex(x, y)
	if err != nil {
		return pair{}, triangleErrorf(opAlign, err)
	}
	if route && nested {
		return pair{}, triangleErrorf(opAlign, fmt.Errorf("rows keyed %v and %v repeat within group key: %w",
			x.keyLabels, y.keyLabels, ErrAmbiguousIndex))
	}

	// Stage 5: origin and development.
	if x, y, err = e.prepOriginDevelopment(x, y); err != nil {
		return pair{}, triangleErrorf(opAlign, err)
	}

	// Stage 6: backend parity.
	if x, err = x.SetBackend(backend); err != nil {
		return pair{}, triangleErrorf(opAlign, err)
	}
	if y, err = y.SetBackend(backend); err != nil {
		return pair{}, triangleErrorf(opAlign, err)
	}
	if !route {
		return pair{x: x, y: y}, nil
	}

	gx, err := x.GroupBy(common...)
	if err != nil {
		return pair{}, triangleErrorf(opAlign, err)
	}
	gy, err := y.GroupBy(common...)
	if err != nil {
		return pair{}, triangleErrorf(opAlign, err)
	}

	return pair{x: x, y: y, gx: gx, gy: gy}, nil
}

// sameGrain reports ErrIncompatibleGrain when a and b differ in origin or
// development grain.
func sameGrain(a, b *Triangle) error {
	if a.originGrain != b.originGrain || a.developmentGrain != b.developmentGrain {
		return fmt.Errorf("%s/%s vs %s/%s: %w",
			a.originGrain, a.developmentGrain, b.originGrain, b.developmentGrain, ErrIncompatibleGrain)
	}

	return nil
}

// prepColumns makes the column axes of x and y identical or 1-vs-N
// broadcastable. Each side keeps its backend.
func prepColumns(x, y *Triangle) (*Triangle, *Triangle, error) {
	xb, yb := x.Backend(), y.Backend()
	nx, ny := len(x.vdims), len(y.vdims)
	switch {
	case nx == 1 && ny > 1:
		x.vdims = cloneStrings(y.vdims)
	case ny == 1 && nx > 1:
		y.vdims = cloneStrings(x.vdims)
	case nx == 1 && ny == 1 && x.vdims[0] != y.vdims[0]:
		y.vdims = cloneStrings(x.vdims)
	case slices.Equal(x.vdims, y.vdims):
	default:
		union := cloneStrings(x.vdims)
		for _, c := range y.vdims {
			if !slices.Contains(x.vdims, c) {
				union = append(union, c)
			}
		}
		var err error
		if x, err = x.SelectColumns(union...); err != nil {
			return nil, nil, err
		}
		if y, err = y.SelectColumns(union...); err != nil {
			return nil, nil, err
		}
	}

	x, err := x.SetBackend(xb)
	if err != nil {
		return nil, nil, err
	}
	y, err = y.SetBackend(yb)
	if err != nil {
		return nil, nil, err
	}

	return x, y, nil
}

// prepIndex aligns the row axes. When route is true the pair must be
// combined key by key over the common labels.
//
// Implementation:
//   - 1 row vs N rows: the single row adopts the other index.
//   - 1 row each, different schemas: both adopt the wider schema.
//   - common labels equal one side's set and the sets or row counts differ:
//     route.
//   - common labels equal neither set: ErrAmbiguousIndex.
//   - same sets and counts: put y's key fields in x's order; if the indexes
//     differ, sort x and look y's rows up by key, routing when a key is
//     missing.
func prepIndex(x, y *Triangle) (xo, yo *Triangle, common []string, route bool, err error) {
	nx, ny := x.Len(), y.Len()
	switch {
	case nx == 1 && ny > 1:
		x.keyLabels, x.kdims = cloneStrings(y.keyLabels), cloneKeys(y.kdims)
		return x, y, nil, false, nil
	case nx > 1 && ny == 1:
		y.keyLabels, y.kdims = cloneStrings(x.keyLabels), cloneKeys(x.kdims)
		return x, y, nil, false, nil
	case nx == 1 && ny == 1 && !slices.Equal(x.keyLabels, y.keyLabels):
		src := y
		if len(x.keyLabels) > len(y.keyLabels) {
			src = x
		}
		labels, keys := src.keyLabels, src.kdims
		x.keyLabels, x.kdims = cloneStrings(labels), cloneKeys(keys)
		y.keyLabels, y.kdims = cloneStrings(labels), cloneKeys(keys)
		return x, y, nil, false, nil
	}

	common = intersect(x.keyLabels, y.keyLabels)
	subX, subY := sameSet(common, x.keyLabels), sameSet(common, y.keyLabels)
	same := subX && subY
	if (subX || subY) && (!same || nx != ny) {
		return x, y, common, true, nil
	}
	if !subX && !subY {
		return nil, nil, nil, false, fmt.Errorf("%v vs %v: %w", x.keyLabels, y.keyLabels, ErrAmbiguousIndex)
	}

	if !slices.Equal(x.keyLabels, y.keyLabels) {
		y = y.withKeyOrder(x.keyLabels)
	}
	if nx > 1 && !x.indexEqual(y) {
		if x, err = x.SortIndex(); err != nil {
			return nil, nil, nil, false, err
		}
		yy, err := y.Loc(x.kdims)
		if errors.Is(err, ErrKeyNotFound) {
			return x, y, common, true, nil
		}
		if err != nil {
			return nil, nil, nil, false, err
		}
		y = yy
	}

	return x, y, common, false, nil
}

// compatible reports numpy broadcast compatibility of two extents.
func compatible(m, n int) bool { return m == n || m == 1 || n == 1 }

// prepOriginDevelopment aligns the measurement axes: 1-vs-N broadcasting
// where possible, label union otherwise.
//
// An axis with the same count (more than one period) on both sides but
// different labels is never broadcast, so equal counts cannot pair up
// different periods.
func (e *Engine) prepOriginDevelopment(x, y *Triangle) (*Triangle, *Triangle, error) {
	ox, oy := len(x.odims), len(y.odims)
	dx, dy := len(x.ddims), len(y.ddims)
	ok := compatible(ox, oy) && compatible(dx, dy)
	if ox == oy && ox > 1 && !equalBy(x.odims, y.odims, timeKey) {
		ok = false
	}
	if dx == dy && dx > 1 && !slices.Equal(x.ddims, y.ddims) {
		ok = false
	}

	switch {
	case oy == 1 && ox > 1:
		y.odims = append(y.odims[:0:0], x.odims...)
	case ox == 1 && oy > 1:
		x.odims = append(x.odims[:0:0], y.odims...)
	case ox == 1 && oy == 1:
		y.odims = append(y.odims[:0:0], x.odims...)
	}
	switch {
	case dy == 1 && dx > 1:
		y.ddims = cloneInts(x.ddims)
	case dx == 1 && dy > 1:
		x.ddims = cloneInts(y.ddims)
	case dx == 1 && dy == 1:
		y.ddims = cloneInts(x.ddims)
	}
	if ok {
		return x, y, nil
	}

	return e.unify(x, y)
}
