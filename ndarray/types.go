// SPDX-License-Identifier: MIT

// Package ndarray: domain types shared by both backends.
// This file contains ONLY the Backend tag, shape/coordinate types and the
// Array interface. Kernels live in ops_*.go, storage in impl_*.go.
package ndarray

import "fmt"

// Rank is the fixed number of axes of every Array.
const Rank = 4

// Axis numbers in triangle order.
const (
	AxisIndex       = 0 // row-index keys
	AxisColumn      = 1 // value fields
	AxisOrigin      = 2 // origin periods
	AxisDevelopment = 3 // development periods
)

// Backend is the closed set of storage representations.
type Backend int

const (
	// Dense stores every cell in a flat row-major buffer.
	Dense Backend = iota
	// Sparse stores only the cells that differ from the fill value.
	Sparse
)

// String returns the lower-case backend name used in documents and configs.
func (b Backend) String() string {
	switch b {
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend maps "dense"/"sparse" back to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "dense", "numpy":
		return Dense, nil
	case "sparse":
		return Sparse, nil
	default:
		return 0, fmt.Errorf("ParseBackend(%q): %w", s, ErrUnknownBackend)
	}
}

// Valid reports whether b is one of the known backends.
func (b Backend) Valid() bool { return b == Dense || b == Sparse }

// Shape holds the extents of the four axes.
type Shape [Rank]int

// Size returns the number of cells (product of extents).
func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d
	}

	return n
}

// valid reports whether every extent is non-negative.
func (s Shape) valid() bool {
	for _, d := range s {
		if d < 0 {
			return false
		}
	}

	return true
}

// With returns a copy of s whose extent on axis is n.
func (s Shape) With(axis, n int) Shape {
	s[axis] = n

	return s
}

// Index is a cell coordinate (i, j, k, l).
type Index [Rank]int

// inBounds reports whether idx lies inside s.
func (idx Index) inBounds(s Shape) bool {
	for a := 0; a < Rank; a++ {
		if idx[a] < 0 || idx[a] >= s[a] {
			return false
		}
	}

	return true
}

// Array is a four-dimensional float64 array in one of the two backends.
//
// Implementations are value-like: every method that changes cells returns a
// new Array and leaves the receiver untouched. The alignment code relies on
// this to never corrupt a caller's operand.
type Array interface {
	// Backend reports the storage tag. Kernels dispatch on it explicitly.
	Backend() Backend

	// Shape returns the four extents.
	Shape() Shape

	// At returns the cell at idx, or ErrOutOfRange.
	At(idx Index) (float64, error)

	// Clone returns an independent deep copy.
	Clone() Array

	// Map returns f applied to every cell (the fill value included for Sparse).
	Map(f func(v float64) float64) Array

	// Take selects positions along axis. A position of -1 produces a slice
	// whose every cell equals fill.
	Take(axis int, pos []int, fill float64) (Array, error)

	// Embed places slice k of axis at position pos[k] of a new axis of
	// length n; positions not targeted are NaN. Dense reallocates, Sparse
	// only remaps stored coordinates.
	Embed(axis, n int, pos []int) (Array, error)
}
