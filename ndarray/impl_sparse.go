// SPDX-License-Identifier: MIT

// Package ndarray - Sparse storage (coordinate map with explicit fill).
//
// Purpose:
//   - Store only the cells that differ from the fill value. Loss triangles are
//     roughly half NaN by construction, and many index rows are empty, so the
//     fill defaults to NaN.
//   - Re-embedding along an axis is a coordinate remap; no dense buffer is
//     ever allocated for it.
//
// Determinism:
//   - Map iteration is never observable: every exported traversal goes through
//     Coords(), which returns coordinates in row-major order.

package ndarray

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// SparseArray is a 4D array storing only non-fill cells.
type SparseArray struct {
	shape   Shape
	fill    float64
	entries map[Index]float64
}

var (
	_ Array        = (*SparseArray)(nil)
	_ fmt.Stringer = (*SparseArray)(nil)
)

// sameValue reports a == b, treating NaN as equal to NaN.
func sameValue(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// NewSparse creates an empty SparseArray whose every cell is NaN.
//
// Errors:
//   - ErrBadShape when any extent is negative.
func NewSparse(shape Shape) (*SparseArray, error) {
	return NewSparseFill(shape, math.NaN())
}

// NewSparseFill creates an empty SparseArray whose every cell equals fill.
func NewSparseFill(shape Shape, fill float64) (*SparseArray, error) {
	if !shape.valid() {
		return nil, arrayErrorf("NewSparse", ErrBadShape)
	}

	return &SparseArray{shape: shape, fill: fill, entries: make(map[Index]float64)}, nil
}

// Backend reports Sparse.
func (s *SparseArray) Backend() Backend { return Sparse }

// Shape returns the extents.
func (s *SparseArray) Shape() Shape { return s.shape }

// FillValue returns the value of every cell that is not stored.
func (s *SparseArray) FillValue() float64 { return s.fill }

// NNZ returns the number of stored cells.
func (s *SparseArray) NNZ() int { return len(s.entries) }

// get reads idx without bounds checking.
func (s *SparseArray) get(idx Index) float64 {
	if v, ok := s.entries[idx]; ok {
		return v
	}

	return s.fill
}

// put stores v at idx, dropping it when it equals the fill.
func (s *SparseArray) put(idx Index, v float64) {
	if sameValue(v, s.fill) {
		delete(s.entries, idx)
		return
	}
	s.entries[idx] = v
}

// At returns the value at idx or ErrOutOfRange.
func (s *SparseArray) At(idx Index) (float64, error) {
	if !idx.inBounds(s.shape) {
		return 0, fmt.Errorf("SparseArray.%s(%d,%d,%d,%d): %w", ctxAt, idx[0], idx[1], idx[2], idx[3], ErrOutOfRange)
	}

	return s.get(idx), nil
}

// Set stores v at idx. Like DenseArray.Set it is reserved for owners
// building a fresh array.
func (s *SparseArray) Set(idx Index, v float64) error {
	if !idx.inBounds(s.shape) {
		return fmt.Errorf("SparseArray.%s(%d,%d,%d,%d): %w", ctxSet, idx[0], idx[1], idx[2], idx[3], ErrOutOfRange)
	}
	s.put(idx, v)

	return nil
}

// Coords returns the stored coordinates in row-major order.
// Complexity: O(nnz log nnz).
func (s *SparseArray) Coords() []Index {
	out := make([]Index, 0, len(s.entries))
	for idx := range s.entries {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return lessIndex(out[i], out[j]) })

	return out
}

// lessIndex orders coordinates row-major.
func lessIndex(a, b Index) bool {
	for ax := 0; ax < Rank; ax++ {
		if a[ax] != b[ax] {
			return a[ax] < b[ax]
		}
	}

	return false
}

// Clone returns a deep copy.
func (s *SparseArray) Clone() Array {
	out := &SparseArray{shape: s.shape, fill: s.fill, entries: make(map[Index]float64, len(s.entries))}
	for idx, v := range s.entries {
		out.entries[idx] = v
	}

	return out
}

// Map applies f to the fill and to every stored cell; results equal to the
// new fill are dropped.
// Complexity: O(nnz).
func (s *SparseArray) Map(f func(v float64) float64) Array {
	out := &SparseArray{shape: s.shape, fill: f(s.fill), entries: make(map[Index]float64, len(s.entries))}
	for idx, v := range s.entries {
		out.put(idx, f(v))
	}

	return out
}

// Take selects positions along axis; -1 positions become slices of fill.
//
// Implementation:
//   - Stage 1: build the inverse map source position → result positions.
//   - Stage 2: copy each stored cell to all of its result positions.
//   - Stage 3: when fill differs from the array fill, store it explicitly
//     across the inserted slices.
//
// Complexity: O(nnz·dup + inserted slice volume).
func (s *SparseArray) Take(axis int, pos []int, fill float64) (Array, error) {
	if err := validateTake(s.shape, axis, pos); err != nil {
		return nil, arrayErrorf("SparseArray."+ctxTake, err)
	}
	out := &SparseArray{shape: s.shape.With(axis, len(pos)), fill: s.fill, entries: make(map[Index]float64, len(s.entries))}

	inverse := make(map[int][]int, len(pos))
	var inserted []int
	for j, p := range pos {
		if p < 0 {
			inserted = append(inserted, j)
			continue
		}
		inverse[p] = append(inverse[p], j)
	}

	for idx, v := range s.entries {
		for _, j := range inverse[idx[axis]] {
			dst := idx
			dst[axis] = j
			out.entries[dst] = v
		}
	}

	if len(inserted) > 0 && !sameValue(fill, s.fill) {
		slab := out.shape.With(axis, 1)
		var idx Index
		for _, j := range inserted {
			for idx[0] = 0; idx[0] < slab[0]; idx[0]++ {
				for idx[1] = 0; idx[1] < slab[1]; idx[1]++ {
					for idx[2] = 0; idx[2] < slab[2]; idx[2]++ {
						for idx[3] = 0; idx[3] < slab[3]; idx[3]++ {
							dst := idx
							dst[axis] = j
							out.entries[dst] = fill
						}
					}
				}
			}
		}
	}

	return out, nil
}

// Embed remaps the coordinates of stored cells along axis to pos and
// relabels the extent to n. Cells not covered are NaN. When the fill is not
// NaN, the old extent is materialized first so that only the new positions
// read as absent.
//
// Complexity: O(nnz) for a NaN fill.
func (s *SparseArray) Embed(axis, n int, pos []int) (Array, error) {
	if err := validateEmbed(s.shape, axis, n, pos); err != nil {
		return nil, arrayErrorf("SparseArray."+ctxEmbed, err)
	}
	src := s
	if !math.IsNaN(s.fill) {
		src = s.materialized()
	}
	out := &SparseArray{shape: s.shape.With(axis, n), fill: math.NaN(), entries: make(map[Index]float64, len(src.entries))}
	for idx, v := range src.entries {
		dst := idx
		dst[axis] = pos[idx[axis]]
		out.put(dst, v)
	}

	return out, nil
}

// materialized returns a copy with a NaN fill where every previously
// implicit cell is stored explicitly.
func (s *SparseArray) materialized() *SparseArray {
	out := &SparseArray{shape: s.shape, fill: math.NaN(), entries: make(map[Index]float64, s.shape.Size())}
	var idx Index
	for idx[0] = 0; idx[0] < s.shape[0]; idx[0]++ {
		for idx[1] = 0; idx[1] < s.shape[1]; idx[1]++ {
			for idx[2] = 0; idx[2] < s.shape[2]; idx[2]++ {
				for idx[3] = 0; idx[3] < s.shape[3]; idx[3]++ {
					out.put(idx, s.get(idx))
				}
			}
		}
	}

	return out
}

// String renders stored coordinates and the fill for diagnostics.
func (s *SparseArray) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "SparseArray%v fill=%g nnz=%d\n", s.shape, s.fill, len(s.entries))
	for _, idx := range s.Coords() {
		fmt.Fprintf(&b, "  %v = %g\n", idx, s.entries[idx])
	}

	return b.String()
}
