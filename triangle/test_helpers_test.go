// SPDX-License-Identifier: MIT
// Package triangle_test contains fixtures shared by the triangle tests.
//
// Purpose:
//   - Build small annual triangles from flat row-major data.
//   - Compare cells with NaN == NaN.

package triangle_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lossdev/ndarray"
	"github.com/katalvlaran/lossdev/triangle"
)

var nan = math.NaN()

// farFuture is a valuation date after every cell of every fixture, making
// the fixture a full (rectangular) triangle.
var farFuture = date(2030, 12, 31)

func date(y, m, d int) time.Time { return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC) }

func years(ys ...int) []time.Time {
	out := make([]time.Time, len(ys))
	for i, y := range ys {
		out[i] = date(y, 1, 1)
	}

	return out
}

// fixture describes a test triangle. Zero fields take the defaults of build.
type fixture struct {
	labels    []string   // default [lob]
	keys      [][]string // default [[auto]]
	cols      []string   // default [paid]
	origins   []int      // years
	devs      []int      // months
	valuation time.Time  // zero → computed by New
	grain     triangle.Grain
	pattern   bool
	backend   ndarray.Backend
	data      []float64 // row-major (rows, cols, origins, devs)
}

// build constructs the triangle described by s or fails the test.
func build(t *testing.T, s fixture) *triangle.Triangle {
	t.Helper()
	if s.labels == nil {
		s.labels = []string{"lob"}
	}
	if s.keys == nil {
		s.keys = [][]string{{"auto"}}
	}
	if s.cols == nil {
		s.cols = []string{"paid"}
	}
	if s.grain == "" {
		s.grain = triangle.Annual
	}
	shape := ndarray.Shape{len(s.keys), len(s.cols), len(s.origins), len(s.devs)}
	d, err := ndarray.FromSlice(shape, s.data)
	require.NoError(t, err)
	v, err := ndarray.AsBackend(d, s.backend)
	require.NoError(t, err)

	tri, err := triangle.New(triangle.Axes{
		KeyLabels:        s.labels,
		Keys:             s.keys,
		Columns:          s.cols,
		Origins:          years(s.origins...),
		Developments:     s.devs,
		OriginGrain:      s.grain,
		DevelopmentGrain: s.grain,
		ValuationDate:    s.valuation,
		Pattern:          s.pattern,
	}, v)
	require.NoError(t, err)

	return tri
}

// paidTriangle is the 3x3 annual paid triangle valued 2021-12-31:
//
//	2019: 100 150 175
//	2020: 110 160  .
//	2021: 120  .   .
func paidTriangle(t *testing.T, backend ndarray.Backend) *triangle.Triangle {
	t.Helper()

	return build(t, fixture{
		origins:   []int{2019, 2020, 2021},
		devs:      []int{12, 24, 36},
		valuation: date(2021, 12, 31),
		backend:   backend,
		data: []float64{
			100, 150, 175,
			110, 160, nan,
			120, nan, nan,
		},
	})
}

// cells returns the values of tri in row-major order.
func cells(t *testing.T, tri *triangle.Triangle) []float64 {
	t.Helper()
	d, err := ndarray.ToDense(tri.Values())
	require.NoError(t, err)

	return d.Data()
}

// requireCells compares the cells of tri with want, treating NaN == NaN.
func requireCells(t *testing.T, want []float64, tri *triangle.Triangle) {
	t.Helper()
	got := cells(t, tri)
	require.Len(t, got, len(want))
	for i := range want {
		if math.IsNaN(want[i]) {
			require.Truef(t, math.IsNaN(got[i]), "cell %d: want NaN, got %v", i, got[i])
			continue
		}
		require.InDeltaf(t, want[i], got[i], 1e-9, "cell %d", i)
	}
}

// backends runs fn once per storage backend.
func backends(t *testing.T, fn func(t *testing.T, b ndarray.Backend)) {
	t.Helper()
	for _, b := range []ndarray.Backend{ndarray.Dense, ndarray.Sparse} {
		b := b
		t.Run(b.String(), func(t *testing.T) {
			t.Parallel()
			fn(t, b)
		})
	}
}
