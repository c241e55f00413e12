// SPDX-License-Identifier: MIT

// Package ndarray - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the offset formula
//     i*s0 + j*s1 + k*s2 + l (strides precomputed once per array).
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//
// Complexity quicksheet:
//   - NewDense: O(n) zero-init; At/Set: O(1); Clone/Map: O(n); Take/Embed: O(n').

package ndarray

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"    // method tag used in error wrappers
	ctxSet   = "Set"   // method tag used in error wrappers
	ctxTake  = "Take"  // method tag used in error wrappers
	ctxEmbed = "Embed" // method tag used in error wrappers
	ctxNew   = "New"   // constructor tag
)

// denseErrorf wraps an error with a uniform Dense context and the coordinate.
func denseErrorf(method string, idx Index, err error) error {
	return fmt.Errorf("DenseArray.%s(%d,%d,%d,%d): %w", method, idx[0], idx[1], idx[2], idx[3], err)
}

// DenseArray is a concrete row-major 4D array.
//   - shape holds the four extents.
//   - strides[a] is the flat distance between neighbours on axis a.
//   - data is the flat buffer of length shape.Size().
type DenseArray struct {
	shape   Shape
	strides [Rank]int
	data    []float64
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Array        = (*DenseArray)(nil)
	_ fmt.Stringer = (*DenseArray)(nil)
)

// stridesOf computes row-major strides for s.
func stridesOf(s Shape) [Rank]int {
	var st [Rank]int
	acc := 1
	for a := Rank - 1; a >= 0; a-- {
		st[a] = acc
		acc *= s[a]
	}

	return st
}

// NewDense creates a zero-filled DenseArray of the given shape.
// Zero-length axes are legal (an empty triangle slice); negative extents are not.
//
// Errors:
//   - ErrBadShape when any extent is negative.
//
// Complexity: Time O(n), Space O(n).
func NewDense(shape Shape) (*DenseArray, error) {
	if !shape.valid() {
		return nil, arrayErrorf("NewDense", ErrBadShape)
	}

	return &DenseArray{
		shape:   shape,
		strides: stridesOf(shape),
		data:    make([]float64, shape.Size()),
	}, nil
}

// NewFull creates a DenseArray with every cell set to v.
// Complexity: Time O(n), Space O(n).
func NewFull(shape Shape, v float64) (*DenseArray, error) {
	d, err := NewDense(shape)
	if err != nil {
		return nil, arrayErrorf("NewFull", err)
	}
	for i := range d.data {
		d.data[i] = v
	}

	return d, nil
}

// FromSlice wraps a copy of data (row-major) into a DenseArray.
//
// Errors:
//   - ErrBadShape when len(data) != shape.Size() or an extent is negative.
func FromSlice(shape Shape, data []float64) (*DenseArray, error) {
	if !shape.valid() || len(data) != shape.Size() {
		return nil, arrayErrorf("FromSlice", ErrBadShape)
	}
	cp := make([]float64, len(data))
	copy(cp, data)

	return &DenseArray{shape: shape, strides: stridesOf(shape), data: cp}, nil
}

// Scalar returns a 1×1×1×1 DenseArray holding v. It broadcasts against any shape.
func Scalar(v float64) *DenseArray {
	return &DenseArray{shape: Shape{1, 1, 1, 1}, strides: stridesOf(Shape{1, 1, 1, 1}), data: []float64{v}}
}

// Backend reports Dense.
func (m *DenseArray) Backend() Backend { return Dense }

// Shape returns the extents. Complexity: O(1).
func (m *DenseArray) Shape() Shape { return m.shape }

// offset returns the flat offset of idx without bounds checking.
func (m *DenseArray) offset(idx Index) int {
	return idx[0]*m.strides[0] + idx[1]*m.strides[1] + idx[2]*m.strides[2] + idx[3]*m.strides[3]
}

// At returns the value at idx or ErrOutOfRange.
// Complexity: O(1).
func (m *DenseArray) At(idx Index) (float64, error) {
	if !idx.inBounds(m.shape) {
		return 0, denseErrorf(ctxAt, idx, ErrOutOfRange)
	}

	return m.data[m.offset(idx)], nil
}

// Set stores v at idx or returns ErrOutOfRange.
// Set mutates the receiver; it exists for builders and codecs that own the
// array they fill. Arithmetic code never calls it on an operand.
func (m *DenseArray) Set(idx Index, v float64) error {
	if !idx.inBounds(m.shape) {
		return denseErrorf(ctxSet, idx, ErrOutOfRange)
	}
	m.data[m.offset(idx)] = v

	return nil
}

// Clone returns a deep copy (new buffer).
// Complexity: Time O(n), Space O(n).
func (m *DenseArray) Clone() Array {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &DenseArray{shape: m.shape, strides: m.strides, data: cp}
}

// Data returns a copy of the flat row-major buffer.
func (m *DenseArray) Data() []float64 {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return cp
}

// Map returns a new DenseArray with f applied to every cell.
// Deterministic flat loop; Complexity: Time O(n), Space O(n).
func (m *DenseArray) Map(f func(v float64) float64) Array {
	out := &DenseArray{shape: m.shape, strides: m.strides, data: make([]float64, len(m.data))}
	for i, v := range m.data {
		out.data[i] = f(v)
	}

	return out
}

// Take selects positions along axis; -1 positions become slices filled with fill.
//
// Implementation:
//   - Stage 1: validate axis and every position against the source extent.
//   - Stage 2: allocate the result with extent len(pos) on axis.
//   - Stage 3: walk the result in row-major order, reading the mapped source cell.
//
// Errors:
//   - ErrBadAxis, ErrOutOfRange.
//
// Complexity: Time O(n'), Space O(n') where n' is the result size.
func (m *DenseArray) Take(axis int, pos []int, fill float64) (Array, error) {
	if err := validateTake(m.shape, axis, pos); err != nil {
		return nil, arrayErrorf("DenseArray."+ctxTake, err)
	}
	out, err := NewDense(m.shape.With(axis, len(pos)))
	if err != nil {
		return nil, arrayErrorf("DenseArray."+ctxTake, err)
	}

	var idx, src Index
	for idx[0] = 0; idx[0] < out.shape[0]; idx[0]++ {
		for idx[1] = 0; idx[1] < out.shape[1]; idx[1]++ {
			for idx[2] = 0; idx[2] < out.shape[2]; idx[2]++ {
				for idx[3] = 0; idx[3] < out.shape[3]; idx[3]++ {
					p := pos[idx[axis]]
					if p < 0 {
						out.data[out.offset(idx)] = fill
						continue
					}
					src = idx
					src[axis] = p
					out.data[out.offset(idx)] = m.data[m.offset(src)]
				}
			}
		}
	}

	return out, nil
}

// Embed re-places slice k of axis at pos[k] in a NaN-filled array whose
// extent on axis is n.
//
// Errors:
//   - ErrBadAxis, ErrDimensionMismatch (len(pos) != extent), ErrOutOfRange
//     (target outside [0,n) or targeted twice).
//
// Complexity: Time O(n'), Space O(n').
func (m *DenseArray) Embed(axis, n int, pos []int) (Array, error) {
	if err := validateEmbed(m.shape, axis, n, pos); err != nil {
		return nil, arrayErrorf("DenseArray."+ctxEmbed, err)
	}
	out, err := NewFull(m.shape.With(axis, n), math.NaN())
	if err != nil {
		return nil, arrayErrorf("DenseArray."+ctxEmbed, err)
	}

	var idx, dst Index
	for idx[0] = 0; idx[0] < m.shape[0]; idx[0]++ {
		for idx[1] = 0; idx[1] < m.shape[1]; idx[1]++ {
			for idx[2] = 0; idx[2] < m.shape[2]; idx[2]++ {
				for idx[3] = 0; idx[3] < m.shape[3]; idx[3]++ {
					dst = idx
					dst[axis] = pos[idx[axis]]
					out.data[out.offset(dst)] = m.data[m.offset(idx)]
				}
			}
		}
	}

	return out, nil
}

// String renders the array as one bracketed line per (i, j, k) vector.
// Intended for diagnostics, not hot paths.
func (m *DenseArray) String() string {
	var b strings.Builder
	var idx Index
	fmt.Fprintf(&b, "DenseArray%v\n", m.shape)
	for idx[0] = 0; idx[0] < m.shape[0]; idx[0]++ {
		for idx[1] = 0; idx[1] < m.shape[1]; idx[1]++ {
			for idx[2] = 0; idx[2] < m.shape[2]; idx[2]++ {
				b.WriteString("[")
				for idx[3] = 0; idx[3] < m.shape[3]; idx[3]++ {
					if idx[3] > 0 {
						b.WriteString(", ")
					}
					fmt.Fprintf(&b, "%g", m.data[m.offset(idx)])
				}
				b.WriteString("]\n")
			}
		}
	}

	return b.String()
}
