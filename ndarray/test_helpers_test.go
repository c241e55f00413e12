// SPDX-License-Identifier: MIT
// Package ndarray_test contains test helpers.
//
// Purpose:
//   - Small deterministic fixtures shared by the dense and sparse tests.
//   - Every helper fails the test immediately (t.Fatalf) on setup errors.

package ndarray_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lossdev/ndarray"
	"github.com/stretchr/testify/require"
)

var nan = math.NaN()

// MustFromSlice builds a DenseArray from row-major data or fails the test.
func MustFromSlice(t *testing.T, shape ndarray.Shape, data []float64) *ndarray.DenseArray {
	t.Helper()
	d, err := ndarray.FromSlice(shape, data)
	require.NoError(t, err)

	return d
}

// MustSparse converts a dense fixture into a sparse one or fails the test.
func MustSparse(t *testing.T, a ndarray.Array) *ndarray.SparseArray {
	t.Helper()
	s, err := ndarray.ToSparse(a)
	require.NoError(t, err)

	return s
}

// Flat returns the cells of a in row-major order (via ToDense).
func Flat(t *testing.T, a ndarray.Array) []float64 {
	t.Helper()
	d, err := ndarray.ToDense(a)
	require.NoError(t, err)

	return d.Data()
}

// RequireCells compares cells treating NaN == NaN.
func RequireCells(t *testing.T, want []float64, a ndarray.Array) {
	t.Helper()
	got := Flat(t, a)
	require.Len(t, got, len(want))
	for i := range want {
		if math.IsNaN(want[i]) {
			require.Truef(t, math.IsNaN(got[i]), "cell %d: want NaN, got %v", i, got[i])
			continue
		}
		require.InDeltaf(t, want[i], got[i], 1e-12, "cell %d", i)
	}
}

// bothBackends runs fn against the dense fixture and its sparse twin.
func bothBackends(t *testing.T, a *ndarray.DenseArray, fn func(t *testing.T, a ndarray.Array)) {
	t.Helper()
	t.Run("dense", func(t *testing.T) { fn(t, a) })
	t.Run("sparse", func(t *testing.T) { fn(t, MustSparse(t, a)) })
}
