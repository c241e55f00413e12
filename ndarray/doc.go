// Package ndarray provides the four-dimensional numeric storage used by
// loss-development triangles.
//
// The package provides:
//
//   - A closed Backend tag (Dense, Sparse) instead of runtime type probing.
//   - DenseArray: a flat row-major buffer over (index, column, origin, development).
//   - SparseArray: coordinate storage with an explicit fill value (NaN by default),
//     where only cells that differ from the fill are stored.
//   - Broadcasting element-wise kernels (Apply2, Map) that follow numpy rules:
//     two axes are compatible when they are equal or one of them is 1.
//   - Axis primitives used by label alignment: Take (reorder/insert slices),
//     Embed (re-place slices into a larger axis), SumGroups, Concat.
//
// NaN is a first-class value here: it marks a structurally absent cell, so the
// numeric policy is plain IEEE-754 and no kernel rejects NaN or ±Inf.
//
// See the tests in this package for usage patterns.
package ndarray
