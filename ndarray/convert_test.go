// SPDX-License-Identifier: MIT

package ndarray_test

import (
	"testing"

	"github.com/katalvlaran/lossdev/ndarray"
	"github.com/stretchr/testify/require"
)

func TestCommonBackend_Priority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		priority []ndarray.Backend
		in       []ndarray.Backend
		want     ndarray.Backend
	}{
		{"default prefers sparse", nil, []ndarray.Backend{ndarray.Dense, ndarray.Sparse}, ndarray.Sparse},
		{"default all dense", nil, []ndarray.Backend{ndarray.Dense, ndarray.Dense}, ndarray.Dense},
		{"explicit prefers dense", []ndarray.Backend{ndarray.Dense, ndarray.Sparse}, []ndarray.Backend{ndarray.Sparse, ndarray.Dense}, ndarray.Dense},
	}
	for _, tt := range tests {
		got, err := ndarray.CommonBackend(tt.priority, tt.in...)
		require.NoError(t, err, tt.name)
		require.Equal(t, tt.want, got, tt.name)
	}

	_, err := ndarray.CommonBackend([]ndarray.Backend{ndarray.Dense}, ndarray.Sparse)
	require.ErrorIs(t, err, ndarray.ErrUnknownBackend)
}

func TestRoundTrip_DenseSparseDense(t *testing.T) {
	t.Parallel()

	d := MustFromSlice(t, ndarray.Shape{1, 2, 2, 2}, []float64{1, 2, 3, nan, 0, nan, nan, nan})
	s := MustSparse(t, d)
	require.Equal(t, 4, s.NNZ())

	back, err := ndarray.AsBackend(s, ndarray.Dense)
	require.NoError(t, err)
	ok, err := ndarray.AllEqual(d, back)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestParseBackend(t *testing.T) {
	t.Parallel()

	b, err := ndarray.ParseBackend("sparse")
	require.NoError(t, err)
	require.Equal(t, ndarray.Sparse, b)
	require.Equal(t, "sparse", b.String())

	_, err = ndarray.ParseBackend("cupy")
	require.ErrorIs(t, err, ndarray.ErrUnknownBackend)
}
