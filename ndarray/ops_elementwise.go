// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//   - Element-wise and broadcast kernels shared by every triangle operator.
//   - Dispatch on the explicit Backend tag: Sparse⊕Sparse stays sparse,
//     any other pairing runs on the dense kernel.
//
// Determinism & Performance:
//   - Dense kernel walks the result in fixed row-major order.
//   - Sparse kernel only visits coordinates where at least one operand
//     differs from its fill; everything else is the combined fill.

package ndarray

import "math"

// BinaryFunc combines two cells into one.
type BinaryFunc func(x, y float64) float64

// Common binary functions used by the triangle operators.
var (
	AddFunc  BinaryFunc = func(x, y float64) float64 { return x + y }
	SubFunc  BinaryFunc = func(x, y float64) float64 { return x - y }
	MulFunc  BinaryFunc = func(x, y float64) float64 { return x * y }
	DivFunc  BinaryFunc = func(x, y float64) float64 { return x / y }
	PowFunc  BinaryFunc = math.Pow
	LessFunc BinaryFunc = func(x, y float64) float64 { return boolToFloat(x < y) }
)

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

// Apply2 combines a and b cell by cell under broadcasting.
//
// Implementation:
//   - Stage 1: validate operands and compute the broadcast shape.
//   - Stage 2: both Sparse → sparse kernel; otherwise both go dense.
//
// Errors:
//   - ErrNilArray, ErrDimensionMismatch.
//
// Complexity:
//   - Dense: O(n) over the result. Sparse: O(candidates) ≤ O(n).
func Apply2(a, b Array, f BinaryFunc) (Array, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, arrayErrorf("Apply2", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, arrayErrorf("Apply2", err)
	}
	out, err := BroadcastShape(a.Shape(), b.Shape())
	if err != nil {
		return nil, arrayErrorf("Apply2", err)
	}

	if a.Backend() == Sparse && b.Backend() == Sparse {
		return apply2Sparse(a.(*SparseArray), b.(*SparseArray), out, f), nil
	}

	da, err := ToDense(a)
	if err != nil {
		return nil, arrayErrorf("Apply2", err)
	}
	db, err := ToDense(b)
	if err != nil {
		return nil, arrayErrorf("Apply2", err)
	}

	return apply2Dense(da, db, out, f), nil
}

// project maps a result coordinate onto an operand of shape s (broadcast axes → 0).
func project(idx Index, s Shape) Index {
	for ax := 0; ax < Rank; ax++ {
		if s[ax] == 1 {
			idx[ax] = 0
		}
	}

	return idx
}

// apply2Dense is the dense broadcast kernel.
func apply2Dense(a, b *DenseArray, out Shape, f BinaryFunc) *DenseArray {
	res := &DenseArray{shape: out, strides: stridesOf(out), data: make([]float64, out.Size())}
	var idx Index
	for idx[0] = 0; idx[0] < out[0]; idx[0]++ {
		for idx[1] = 0; idx[1] < out[1]; idx[1]++ {
			for idx[2] = 0; idx[2] < out[2]; idx[2]++ {
				for idx[3] = 0; idx[3] < out[3]; idx[3]++ {
					x := a.data[a.offset(project(idx, a.shape))]
					y := b.data[b.offset(project(idx, b.shape))]
					res.data[res.offset(idx)] = f(x, y)
				}
			}
		}
	}

	return res
}

// isUnit reports whether every extent of s is 1.
func isUnit(s Shape) bool { return s == Shape{1, 1, 1, 1} }

// apply2Sparse is the sparse broadcast kernel. The result fill is f(fillA, fillB).
func apply2Sparse(a, b *SparseArray, out Shape, f BinaryFunc) *SparseArray {
	// Scalar fast paths: a unit operand contributes the same value everywhere.
	if isUnit(b.shape) && out == a.shape {
		y := b.get(Index{})
		res := &SparseArray{shape: out, fill: f(a.fill, y), entries: make(map[Index]float64, len(a.entries))}
		for idx, x := range a.entries {
			res.put(idx, f(x, y))
		}
		return res
	}
	if isUnit(a.shape) && out == b.shape {
		x := a.get(Index{})
		res := &SparseArray{shape: out, fill: f(x, b.fill), entries: make(map[Index]float64, len(b.entries))}
		for idx, y := range b.entries {
			res.put(idx, f(x, y))
		}
		return res
	}

	res := &SparseArray{shape: out, fill: f(a.fill, b.fill), entries: make(map[Index]float64)}
	visit := func(idx Index) {
		res.put(idx, f(a.get(project(idx, a.shape)), b.get(project(idx, b.shape))))
	}
	seen := make(map[Index]struct{})
	for _, src := range []*SparseArray{a, b} {
		for idx := range src.entries {
			expand(idx, src.shape, out, func(c Index) {
				if _, ok := seen[c]; ok {
					return
				}
				seen[c] = struct{}{}
				visit(c)
			})
		}
	}

	return res
}

// expand calls fn for every result coordinate that projects onto idx.
func expand(idx Index, s, out Shape, fn func(Index)) {
	var lo, hi Index
	for ax := 0; ax < Rank; ax++ {
		if s[ax] == 1 && out[ax] != 1 {
			lo[ax], hi[ax] = 0, out[ax]
		} else {
			lo[ax], hi[ax] = idx[ax], idx[ax]+1
		}
	}
	var c Index
	for c[0] = lo[0]; c[0] < hi[0]; c[0]++ {
		for c[1] = lo[1]; c[1] < hi[1]; c[1]++ {
			for c[2] = lo[2]; c[2] < hi[2]; c[2]++ {
				for c[3] = lo[3]; c[3] < hi[3]; c[3]++ {
					fn(c)
				}
			}
		}
	}
}

// NaNToZero returns a copy of a with every NaN replaced by 0.
func NaNToZero(a Array) Array {
	return a.Map(func(v float64) float64 {
		if math.IsNaN(v) {
			return 0
		}
		return v
	})
}

// ZeroToNaN returns a copy of a with every 0 replaced by NaN.
func ZeroToNaN(a Array) Array {
	return a.Map(func(v float64) float64 {
		if v == 0 {
			return math.NaN()
		}
		return v
	})
}

// NonFiniteToNaN returns a copy of a with ±Inf and 0 replaced by NaN.
// It is the normalization used after reflected division, where x/0 and 0/x
// both mean "no data" in a loss triangle.
func NonFiniteToNaN(a Array) Array {
	return a.Map(func(v float64) float64 {
		if math.IsInf(v, 0) || v == 0 {
			return math.NaN()
		}
		return v
	})
}

// Round returns a copy of a rounded to n decimals, half to even.
func Round(a Array, n int) Array {
	p := math.Pow(10, float64(n))
	return a.Map(func(v float64) float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return v
		}
		return math.RoundToEven(v*p) / p
	})
}

// AllEqual reports whether a and b have the same shape and every cell pair
// is equal (NaN equals NaN).
// Complexity: O(n) dense, O(nnz) when both are sparse.
func AllEqual(a, b Array) (bool, error) {
	if err := ValidateNotNil(a); err != nil {
		return false, arrayErrorf("AllEqual", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, arrayErrorf("AllEqual", err)
	}
	if a.Shape() != b.Shape() {
		return false, nil
	}

	if sa, ok := a.(*SparseArray); ok {
		if sb, ok := b.(*SparseArray); ok && sameValue(sa.fill, sb.fill) {
			for _, src := range []*SparseArray{sa, sb} {
				for idx := range src.entries {
					if !sameValue(sa.get(idx), sb.get(idx)) {
						return false, nil
					}
				}
			}
			return true, nil
		}
	}

	return allEqualDense(a, b)
}

func allEqualDense(a, b Array) (bool, error) {
	da, err := ToDense(a)
	if err != nil {
		return false, arrayErrorf("AllEqual", err)
	}
	db, err := ToDense(b)
	if err != nil {
		return false, arrayErrorf("AllEqual", err)
	}
	for i := range da.data {
		if !sameValue(da.data[i], db.data[i]) {
			return false, nil
		}
	}

	return true, nil
}
