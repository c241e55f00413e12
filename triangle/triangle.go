// SPDX-License-Identifier: MIT

// Package triangle - the Triangle value.
//
// Purpose:
//   - Hold a 4D ndarray.Array together with the labels of its four axes.
//   - Derive structural facts from the labels: per-cell valuation dates and
//     the 0/NaN validity mask (NaNTriangle).
//
// Contract:
//   - A Triangle is immutable-in-spirit. Accessors return copies; every
//     method that "changes" a triangle returns a new one.
//   - Values arrays are shared between copies. This is safe because nothing
//     in this module writes into an array after construction.
package triangle

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/katalvlaran/lossdev/ndarray"
)

// Axes carries the labels and metadata of a Triangle at construction time.
type Axes struct {
	// KeyLabels names the fields of a row key, e.g. ["lob", "state"].
	KeyLabels []string
	// Keys holds one tuple per row; each tuple has len(KeyLabels) fields.
	Keys [][]string
	// Columns names the value fields.
	Columns []string
	// Origins holds the start date of each origin period.
	Origins []time.Time
	// Developments holds development ages in months.
	Developments []int

	OriginGrain      Grain
	DevelopmentGrain Grain

	// ValuationDate is the as-of date. Zero means "latest valuation of any
	// populated cell".
	ValuationDate time.Time

	// Pattern marks a factor triangle.
	Pattern bool
}

// Triangle is a labeled (index, column, origin, development) array.
type Triangle struct {
	values ndarray.Array

	keyLabels []string
	kdims     [][]string
	vdims     []string
	odims     []time.Time
	ddims     []int

	originGrain      Grain
	developmentGrain Grain

	isPattern     bool
	valuationDate time.Time
}

var _ fmt.Stringer = (*Triangle)(nil)

// New validates ax against values and builds a Triangle.
//
// Errors:
//   - ndarray.ErrNilArray for nil values.
//   - ErrBadGrain for an unknown grain.
//   - ErrShapeMismatch when label counts differ from the value extents or a
//     key tuple has the wrong width.
//   - ErrDuplicateLabel for repeated key labels, columns, origins or ages.
func New(ax Axes, values ndarray.Array) (*Triangle, error) {
	if err := ndarray.ValidateNotNil(values); err != nil {
		return nil, triangleErrorf(opNew, err)
	}
	if !ax.OriginGrain.Valid() || !ax.DevelopmentGrain.Valid() {
		return nil, triangleErrorf(opNew, ErrBadGrain)
	}

	t := &Triangle{
		values:           values,
		keyLabels:        cloneStrings(ax.KeyLabels),
		kdims:            cloneKeys(ax.Keys),
		vdims:            cloneStrings(ax.Columns),
		odims:            make([]time.Time, len(ax.Origins)),
		ddims:            cloneInts(ax.Developments),
		originGrain:      ax.OriginGrain,
		developmentGrain: ax.DevelopmentGrain,
		isPattern:        ax.Pattern,
	}
	for i, o := range ax.Origins {
		t.odims[i] = o.UTC()
	}
	if err := t.validate(); err != nil {
		return nil, triangleErrorf(opNew, err)
	}

	t.valuationDate = ax.ValuationDate.UTC()
	if ax.ValuationDate.IsZero() {
		vd, err := t.latestPopulatedValuation()
		if err != nil {
			return nil, triangleErrorf(opNew, err)
		}
		t.valuationDate = vd
	}

	return t, nil
}

// validate checks label/extent agreement and label uniqueness.
func (t *Triangle) validate() error {
	if err := t.checkShape(); err != nil {
		return err
	}
	for i, k := range t.kdims {
		if len(k) != len(t.keyLabels) {
			return fmt.Errorf("row %d has %d key fields, want %d: %w", i, len(k), len(t.keyLabels), ErrShapeMismatch)
		}
		for _, f := range k {
			if strings.Contains(f, keySep) {
				return fmt.Errorf("row %d key field %q: %w", i, f, ErrBadLabel)
			}
		}
	}
	if dup, ok := firstDuplicate(t.keyLabels, identity[string]); ok {
		return fmt.Errorf("key label %q: %w", dup, ErrDuplicateLabel)
	}
	if dup, ok := firstDuplicate(t.vdims, identity[string]); ok {
		return fmt.Errorf("column %q: %w", dup, ErrDuplicateLabel)
	}
	if dup, ok := firstDuplicate(t.odims, timeKey); ok {
		return fmt.Errorf("origin %s: %w", dup.Format(time.DateOnly), ErrDuplicateLabel)
	}
	if dup, ok := firstDuplicate(t.ddims, identity[int]); ok {
		return fmt.Errorf("development %d: %w", dup, ErrDuplicateLabel)
	}

	return nil
}

// checkShape reports ErrShapeMismatch when value extents differ from the
// label counts.
func (t *Triangle) checkShape() error {
	want := ndarray.Shape{len(t.kdims), len(t.vdims), len(t.odims), len(t.ddims)}
	if got := t.values.Shape(); got != want {
		return fmt.Errorf("values %v, labels %v: %w", got, want, ErrShapeMismatch)
	}

	return nil
}

// latestPopulatedValuation returns the latest valuation among cells holding
// a value in any row or column, or the latest grid valuation when every
// cell is NaN.
func (t *Triangle) latestPopulatedValuation() (time.Time, error) {
	if len(t.odims) == 0 || len(t.ddims) == 0 {
		return time.Time{}, nil
	}
	var latest, grid time.Time
	if len(t.kdims) > 0 && len(t.vdims) > 0 {
		perRow, err := ndarray.SumAxis(t.values, ndarray.AxisIndex)
		if err != nil {
			return time.Time{}, err
		}
		flat, err := ndarray.SumAxis(perRow, ndarray.AxisColumn)
		if err != nil {
			return time.Time{}, err
		}
		for k := range t.odims {
			for l := range t.ddims {
				v, err := flat.At(ndarray.Index{0, 0, k, l})
				if err != nil {
					return time.Time{}, err
				}
				if vd := t.Valuation(k, l); !math.IsNaN(v) && vd.After(latest) {
					latest = vd
				}
			}
		}
	}
	if !latest.IsZero() {
		return latest, nil
	}
	for k := range t.odims {
		for l := range t.ddims {
			if vd := t.Valuation(k, l); vd.After(grid) {
				grid = vd
			}
		}
	}

	return grid, nil
}

// clone returns a copy with owned label slices; values are shared.
func (t *Triangle) clone() *Triangle {
	c := *t
	c.keyLabels = cloneStrings(t.keyLabels)
	c.kdims = cloneKeys(t.kdims)
	c.vdims = cloneStrings(t.vdims)
	c.odims = append([]time.Time(nil), t.odims...)
	c.ddims = cloneInts(t.ddims)

	return &c
}

// withValues returns a clone carrying v.
func (t *Triangle) withValues(v ndarray.Array) *Triangle {
	c := t.clone()
	c.values = v

	return c
}

// Copy returns an independent copy of t.
func (t *Triangle) Copy() *Triangle {
	return t.withValues(t.values.Clone())
}

// Values returns a copy of the underlying array.
func (t *Triangle) Values() ndarray.Array { return t.values.Clone() }

// Backend reports the storage backend of the values.
func (t *Triangle) Backend() ndarray.Backend { return t.values.Backend() }

// Shape returns (rows, columns, origins, developments).
func (t *Triangle) Shape() ndarray.Shape { return t.values.Shape() }

// Len returns the number of index rows.
func (t *Triangle) Len() int { return len(t.kdims) }

// KeyLabels returns the names of the key fields.
func (t *Triangle) KeyLabels() []string { return cloneStrings(t.keyLabels) }

// Keys returns the row key tuples.
func (t *Triangle) Keys() [][]string { return cloneKeys(t.kdims) }

// Columns returns the value-field names.
func (t *Triangle) Columns() []string { return cloneStrings(t.vdims) }

// Origins returns the origin period start dates.
func (t *Triangle) Origins() []time.Time { return append([]time.Time(nil), t.odims...) }

// Developments returns the development ages in months.
func (t *Triangle) Developments() []int { return cloneInts(t.ddims) }

// OriginGrain returns the origin period size.
func (t *Triangle) OriginGrain() Grain { return t.originGrain }

// DevelopmentGrain returns the development period size.
func (t *Triangle) DevelopmentGrain() Grain { return t.developmentGrain }

// ValuationDate returns the as-of date.
func (t *Triangle) ValuationDate() time.Time { return t.valuationDate }

// IsPattern reports whether t is a factor triangle.
func (t *Triangle) IsPattern() bool { return t.isPattern }

// Axes returns the labels and metadata of t.
func (t *Triangle) Axes() Axes {
	return Axes{
		KeyLabels:        t.KeyLabels(),
		Keys:             t.Keys(),
		Columns:          t.Columns(),
		Origins:          t.Origins(),
		Developments:     t.Developments(),
		OriginGrain:      t.originGrain,
		DevelopmentGrain: t.developmentGrain,
		ValuationDate:    t.valuationDate,
		Pattern:          t.isPattern,
	}
}

// At returns the cell (row, column, origin, development).
func (t *Triangle) At(i, j, k, l int) (float64, error) {
	return t.values.At(ndarray.Index{i, j, k, l})
}

// Valuation returns the valuation date of origin k at development l: the
// last day of the month that is Developments()[l] months after the origin
// start.
func (t *Triangle) Valuation(k, l int) time.Time {
	return t.odims[k].AddDate(0, t.ddims[l], -1)
}

// NaNTriangle returns the structural mask of t: a (1,1,O,D) array holding 1
// where the cell's valuation is on or before the valuation date and NaN
// elsewhere, in the backend of t.
func (t *Triangle) NaNTriangle() ndarray.Array {
	mask, _ := ndarray.NewFull(ndarray.Shape{1, 1, len(t.odims), len(t.ddims)}, math.NaN())
	for k := range t.odims {
		for l := range t.ddims {
			if !t.Valuation(k, l).After(t.valuationDate) {
				_ = mask.Set(ndarray.Index{0, 0, k, l}, 1)
			}
		}
	}
	if t.values.Backend() == ndarray.Sparse {
		s, _ := ndarray.ToSparse(mask)
		return s
	}

	return mask
}

// IsFull reports whether every (origin, development) cell is on or before
// the valuation date.
func (t *Triangle) IsFull() bool {
	for k := range t.odims {
		for l := range t.ddims {
			if t.Valuation(k, l).After(t.valuationDate) {
				return false
			}
		}
	}

	return true
}

// LatestDiagonal returns, for every row, column and origin, the value at the
// latest development whose valuation is on or before the valuation date.
// The result has shape (rows, columns, origins, 1) in the backend of t;
// origins with no valid development are NaN.
func (t *Triangle) LatestDiagonal() (ndarray.Array, error) {
	shape := t.values.Shape()
	out, err := ndarray.NewFull(shape.With(ndarray.AxisDevelopment, 1), math.NaN())
	if err != nil {
		return nil, err
	}
	for k := range t.odims {
		best := -1
		for l := range t.ddims {
			vd := t.Valuation(k, l)
			if vd.After(t.valuationDate) {
				continue
			}
			if best < 0 || vd.After(t.Valuation(k, best)) {
				best = l
			}
		}
		if best < 0 {
			continue
		}
		for i := 0; i < shape[0]; i++ {
			for j := 0; j < shape[1]; j++ {
				v, err := t.values.At(ndarray.Index{i, j, k, best})
				if err != nil {
					return nil, err
				}
				if err := out.Set(ndarray.Index{i, j, k, 0}, v); err != nil {
					return nil, err
				}
			}
		}
	}

	return ndarray.AsBackend(out, t.values.Backend())
}

// Contains reports whether attr names an attribute t carries. It is
// introspection over the triangle's own fields, unrelated to cell values.
func (t *Triangle) Contains(attr string) bool {
	switch attr {
	case "values", "kdims", "vdims", "odims", "ddims", "key_labels",
		"origin_grain", "development_grain", "is_pattern", "array_backend":
		return true
	case "valuation_date":
		return !t.valuationDate.IsZero()
	default:
		return false
	}
}

// String renders the axes and shape for diagnostics.
func (t *Triangle) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Triangle%v %s grain=%s/%s valuation=%s\n",
		t.values.Shape(), t.values.Backend(), t.originGrain, t.developmentGrain,
		t.valuationDate.Format(time.DateOnly))
	fmt.Fprintf(&b, "  index %v: %v\n", t.keyLabels, t.kdims)
	fmt.Fprintf(&b, "  columns: %v\n", t.vdims)
	origins := make([]string, len(t.odims))
	for i, o := range t.odims {
		origins[i] = o.Format(time.DateOnly)
	}
	fmt.Fprintf(&b, "  origins: %v\n  developments: %v\n", origins, t.ddims)

	return b.String()
}
