// SPDX-License-Identifier: MIT
// Package ndarray: backend conversion and backend-priority resolution.
//
// Purpose:
//   - Convert between Dense and Sparse without changing any cell value.
//   - Resolve which backend two operands share from an explicit priority
//     list (no ambient global state).

package ndarray

import "math"

// DefaultPriority lists backends from most to least preferred when two
// operands disagree. Sparse wins so that a sparse operand is never
// densified behind the caller's back.
var DefaultPriority = []Backend{Sparse, Dense}

// ToDense returns a as a *DenseArray (a itself when already dense).
// Complexity: O(n).
func ToDense(a Array) (*DenseArray, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, arrayErrorf("ToDense", err)
	}
	switch v := a.(type) {
	case *DenseArray:
		return v, nil
	case *SparseArray:
		out, err := NewFull(v.shape, v.fill)
		if err != nil {
			return nil, arrayErrorf("ToDense", err)
		}
		for idx, x := range v.entries {
			out.data[out.offset(idx)] = x
		}

		return out, nil
	default:
		return nil, arrayErrorf("ToDense", ErrUnknownBackend)
	}
}

// ToSparse returns a as a *SparseArray with a NaN fill (a itself when
// already sparse). Only non-NaN cells are stored.
// Complexity: O(n).
func ToSparse(a Array) (*SparseArray, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, arrayErrorf("ToSparse", err)
	}
	switch v := a.(type) {
	case *SparseArray:
		return v, nil
	case *DenseArray:
		out, err := NewSparse(v.shape)
		if err != nil {
			return nil, arrayErrorf("ToSparse", err)
		}
		var idx Index
		for idx[0] = 0; idx[0] < v.shape[0]; idx[0]++ {
			for idx[1] = 0; idx[1] < v.shape[1]; idx[1]++ {
				for idx[2] = 0; idx[2] < v.shape[2]; idx[2]++ {
					for idx[3] = 0; idx[3] < v.shape[3]; idx[3]++ {
						if x := v.data[v.offset(idx)]; !math.IsNaN(x) {
							out.entries[idx] = x
						}
					}
				}
			}
		}

		return out, nil
	default:
		return nil, arrayErrorf("ToSparse", ErrUnknownBackend)
	}
}

// AsBackend converts a to backend b (no-op when already there).
func AsBackend(a Array, b Backend) (Array, error) {
	switch b {
	case Dense:
		return ToDense(a)
	case Sparse:
		return ToSparse(a)
	default:
		return nil, arrayErrorf("AsBackend", ErrUnknownBackend)
	}
}

// CommonBackend returns the first backend in priority that any of the given
// backends uses. An empty priority falls back to DefaultPriority.
func CommonBackend(priority []Backend, backends ...Backend) (Backend, error) {
	if len(priority) == 0 {
		priority = DefaultPriority
	}
	for _, p := range priority {
		for _, b := range backends {
			if b == p {
				return p, nil
			}
		}
	}

	return 0, arrayErrorf("CommonBackend", ErrUnknownBackend)
}
