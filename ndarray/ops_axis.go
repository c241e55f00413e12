// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//   - Axis-level kernels used by grouping (SumGroups) and row concatenation
//     (Concat).
//
// NaN policy:
//   - SumGroups skips NaN members; a group whose members are all NaN stays NaN.

package ndarray

import (
	"fmt"
	"math"
)

// SumGroups collapses axis so that result position g holds the NaN-skipping
// sum of the source positions listed in groups[g].
//
// Errors:
//   - ErrNilArray, ErrBadAxis, ErrOutOfRange.
//
// Complexity: O(n) dense; O(nnz) sparse with a NaN fill.
func SumGroups(a Array, axis int, groups [][]int) (Array, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, arrayErrorf("SumGroups", err)
	}
	if err := validateGroups(a.Shape(), axis, groups); err != nil {
		return nil, arrayErrorf("SumGroups", err)
	}

	if s, ok := a.(*SparseArray); ok && math.IsNaN(s.fill) {
		return sumGroupsSparse(s, axis, groups), nil
	}

	d, err := ToDense(a)
	if err != nil {
		return nil, arrayErrorf("SumGroups", err)
	}
	out := sumGroupsDense(d, axis, groups)
	if a.Backend() == Sparse {
		return ToSparse(out)
	}

	return out, nil
}

func sumGroupsDense(d *DenseArray, axis int, groups [][]int) *DenseArray {
	shape := d.shape.With(axis, len(groups))
	out := &DenseArray{shape: shape, strides: stridesOf(shape), data: make([]float64, shape.Size())}
	var idx Index
	for idx[0] = 0; idx[0] < shape[0]; idx[0]++ {
		for idx[1] = 0; idx[1] < shape[1]; idx[1]++ {
			for idx[2] = 0; idx[2] < shape[2]; idx[2]++ {
				for idx[3] = 0; idx[3] < shape[3]; idx[3]++ {
					sum, found := 0.0, false
					src := idx
					for _, p := range groups[idx[axis]] {
						src[axis] = p
						if v := d.data[d.offset(src)]; !math.IsNaN(v) {
							sum += v
							found = true
						}
					}
					if !found {
						sum = math.NaN()
					}
					out.data[out.offset(idx)] = sum
				}
			}
		}
	}

	return out
}

func sumGroupsSparse(s *SparseArray, axis int, groups [][]int) *SparseArray {
	owners := make(map[int][]int)
	for g, members := range groups {
		for _, p := range members {
			owners[p] = append(owners[p], g)
		}
	}
	out := &SparseArray{shape: s.shape.With(axis, len(groups)), fill: math.NaN(), entries: make(map[Index]float64)}
	for idx, v := range s.entries {
		if math.IsNaN(v) {
			continue
		}
		for _, g := range owners[idx[axis]] {
			dst := idx
			dst[axis] = g
			if cur, ok := out.entries[dst]; ok {
				out.entries[dst] = cur + v
			} else {
				out.entries[dst] = v
			}
		}
	}

	return out
}

// SumAxis collapses axis to length 1 with a NaN-skipping sum.
func SumAxis(a Array, axis int) (Array, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, arrayErrorf("SumAxis", err)
	}
	if err := ValidateAxis(axis); err != nil {
		return nil, arrayErrorf("SumAxis", err)
	}
	all := make([]int, a.Shape()[axis])
	for i := range all {
		all[i] = i
	}

	return SumGroups(a, axis, [][]int{all})
}

// Concat joins parts along axis. Every other extent must match. The result is
// Sparse only when every part is Sparse with a NaN fill.
//
// Errors:
//   - ErrNilArray, ErrBadAxis, ErrDimensionMismatch (also for zero parts).
//
// Complexity: O(total size) dense; O(total nnz) sparse.
func Concat(axis int, parts ...Array) (Array, error) {
	if err := ValidateAxis(axis); err != nil {
		return nil, arrayErrorf("Concat", err)
	}
	if len(parts) == 0 {
		return nil, arrayErrorf("Concat: no parts", ErrDimensionMismatch)
	}
	allSparse := true
	shape := Shape{}
	for i, p := range parts {
		if err := ValidateNotNil(p); err != nil {
			return nil, arrayErrorf("Concat", err)
		}
		s := p.Shape()
		if i == 0 {
			shape = s.With(axis, 0)
		}
		for ax := 0; ax < Rank; ax++ {
			if ax != axis && s[ax] != shape[ax] {
				return nil, arrayErrorf(fmt.Sprintf("Concat: part %d axis %d", i, ax), ErrDimensionMismatch)
			}
		}
		shape[axis] += s[axis]
		if sp, ok := p.(*SparseArray); !ok || !math.IsNaN(sp.fill) {
			allSparse = false
		}
	}

	if allSparse {
		out := &SparseArray{shape: shape, fill: math.NaN(), entries: make(map[Index]float64)}
		base := 0
		for _, p := range parts {
			sp := p.(*SparseArray)
			for idx, v := range sp.entries {
				dst := idx
				dst[axis] += base
				out.entries[dst] = v
			}
			base += sp.shape[axis]
		}
		return out, nil
	}

	out, err := NewDense(shape)
	if err != nil {
		return nil, arrayErrorf("Concat", err)
	}
	base := 0
	for _, p := range parts {
		d, err := ToDense(p)
		if err != nil {
			return nil, arrayErrorf("Concat", err)
		}
		var idx Index
		for idx[0] = 0; idx[0] < d.shape[0]; idx[0]++ {
			for idx[1] = 0; idx[1] < d.shape[1]; idx[1]++ {
				for idx[2] = 0; idx[2] < d.shape[2]; idx[2]++ {
					for idx[3] = 0; idx[3] < d.shape[3]; idx[3]++ {
						dst := idx
						dst[axis] += base
						out.data[out.offset(dst)] = d.data[d.offset(idx)]
					}
				}
			}
		}
		base += d.shape[axis]
	}

	return out, nil
}
