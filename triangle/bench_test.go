// SPDX-License-Identifier: MIT

// Package triangle_test provides benchmarks for the arithmetic engine, using
// deterministic random fill.
package triangle_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/katalvlaran/lossdev/ndarray"
	"github.com/katalvlaran/lossdev/triangle"
)

// benchRows are the index lengths to benchmark.
var benchRows = []int{16, 128}

// sink to defeat dead-code elimination
var sinkT *triangle.Triangle

// benchTriangle builds rows×1×n×n annual triangles keyed (lob, state) with
// origins starting at first, valued 2030-12-31.
func benchTriangle(b *testing.B, rows, first, n int, backend ndarray.Backend, seed int64) *triangle.Triangle {
	b.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, rows*n*n)
	for i := range data {
		data[i] = rng.Float64() * 1000
	}
	d, err := ndarray.FromSlice(ndarray.Shape{rows, 1, n, n}, data)
	if err != nil {
		b.Fatal(err)
	}
	v, err := ndarray.AsBackend(d, backend)
	if err != nil {
		b.Fatal(err)
	}
	keys := make([][]string, rows)
	for i := range keys {
		keys[i] = []string{fmt.Sprintf("lob%02d", i%8), fmt.Sprintf("st%03d", i)}
	}
	origins := make([]time.Time, n)
	devs := make([]int, n)
	for k := range origins {
		origins[k] = date(first+k, 1, 1)
		devs[k] = 12 * (k + 1)
	}
	t, err := triangle.New(triangle.Axes{
		KeyLabels:        []string{"lob", "state"},
		Keys:             keys,
		Columns:          []string{"paid"},
		Origins:          origins,
		Developments:     devs,
		OriginGrain:      triangle.Annual,
		DevelopmentGrain: triangle.Annual,
		ValuationDate:    farFuture,
	}, v)
	if err != nil {
		b.Fatal(err)
	}

	return t
}

func BenchmarkAdd_Aligned(b *testing.B) {
	b.ReportAllocs()
	for _, backend := range []ndarray.Backend{ndarray.Dense, ndarray.Sparse} {
		for _, rows := range benchRows {
			b.Run(fmt.Sprintf("%s/rows=%d", backend, rows), func(b *testing.B) {
				x := benchTriangle(b, rows, 2010, 10, backend, 1337)
				y := benchTriangle(b, rows, 2010, 10, backend, 4242)
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					t, err := x.Add(y)
					if err != nil {
						b.Fatal(err)
					}
					sinkT = t
				}
			})
		}
	}
}

func BenchmarkAdd_OriginUnion(b *testing.B) {
	b.ReportAllocs()
	for _, rows := range benchRows {
		b.Run(fmt.Sprintf("rows=%d", rows), func(b *testing.B) {
			x := benchTriangle(b, rows, 2010, 10, ndarray.Dense, 11)
			y := benchTriangle(b, rows, 2013, 10, ndarray.Dense, 22)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				t, err := x.Add(y)
				if err != nil {
					b.Fatal(err)
				}
				sinkT = t
			}
		})
	}
}

func BenchmarkMul_GroupFallback(b *testing.B) {
	b.ReportAllocs()
	engines := map[string]*triangle.Engine{
		"sequential": triangle.NewEngine(),
		"parallel":   triangle.NewEngine(triangle.WithWorkers(4)),
	}
	for name, eng := range engines {
		b.Run(name, func(b *testing.B) {
			x := benchTriangle(b, 128, 2010, 10, ndarray.Dense, 7)
			g, err := x.GroupBy("lob")
			if err != nil {
				b.Fatal(err)
			}
			y, err := g.Sum()
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				t, err := eng.Mul(x, y)
				if err != nil {
					b.Fatal(err)
				}
				sinkT = t
			}
		})
	}
}
