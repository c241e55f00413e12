// SPDX-License-Identifier: MIT

package triangle_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lossdev/ndarray"
	"github.com/katalvlaran/lossdev/triangle"
)

func TestIdentityLaws(t *testing.T) {
	t.Parallel()

	backends(t, func(t *testing.T, b ndarray.Backend) {
		a := paidTriangle(t, b)

		sum, err := a.Add(triangle.Scalar(0))
		require.NoError(t, err)
		require.True(t, sum.Equal(a))
		requireCells(t, []float64{100, 150, 175, 110, 160, nan, 120, nan, nan}, sum)
		require.Equal(t, b, sum.Backend())

		prod, err := a.Mul(triangle.Scalar(1))
		require.NoError(t, err)
		require.True(t, prod.Equal(a))

		require.True(t, a.Neg().Neg().Equal(a))
		require.Same(t, a, a.Pos())

		same, err := a.RAdd(triangle.Scalar(0))
		require.NoError(t, err)
		require.Same(t, a, same)
		same, err = a.RMul(triangle.Scalar(1))
		require.NoError(t, err)
		require.Same(t, a, same)
	})
}

func TestAdd_KeepsStructuralMask(t *testing.T) {
	t.Parallel()

	backends(t, func(t *testing.T, b ndarray.Backend) {
		a := paidTriangle(t, b)
		twice, err := a.Mul(triangle.Scalar(2))
		require.NoError(t, err)

		sum, err := a.Add(twice)
		require.NoError(t, err)
		requireCells(t, []float64{300, 450, 525, 330, 480, nan, 360, nan, nan}, sum)

		diff, err := twice.Sub(a)
		require.NoError(t, err)
		require.True(t, diff.Equal(a))
	})
}

func TestAdd_RemasksCellsAfterValuation(t *testing.T) {
	t.Parallel()

	// 2021 at 24 months values on 2022-12-31, after the valuation date.
	a := build(t, fixture{
		origins:   []int{2020, 2021},
		devs:      []int{12, 24},
		valuation: date(2021, 12, 31),
		data:      []float64{1, 2, 3, 4},
	})

	sum, err := a.Add(triangle.Scalar(0))
	require.NoError(t, err)
	requireCells(t, []float64{1, 2, 3, nan}, sum)

	prod, err := a.Mul(triangle.Scalar(1))
	require.NoError(t, err)
	requireCells(t, []float64{1, 2, 3, 4}, prod)
}

func TestAdd_BroadcastsSingleRow(t *testing.T) {
	t.Parallel()

	single := build(t, fixture{
		keys:      [][]string{{"total"}},
		origins:   []int{2019, 2020},
		devs:      []int{12, 24},
		valuation: farFuture,
		data:      []float64{1, 2, 3, 4},
	})
	many := build(t, fixture{
		keys:      [][]string{{"auto"}, {"home"}},
		origins:   []int{2019, 2020},
		devs:      []int{12, 24},
		valuation: farFuture,
		data:      []float64{10, 20, 30, 40, 50, 60, 70, 80},
	})

	for _, pair := range [][2]*triangle.Triangle{{single, many}, {many, single}} {
		out, err := pair[0].Add(pair[1])
		require.NoError(t, err)
		require.Equal(t, [][]string{{"auto"}, {"home"}}, out.Keys())
		requireCells(t, []float64{11, 22, 33, 44, 51, 62, 73, 84}, out)
	}
}

func TestBinary_RejectsGrainMismatch(t *testing.T) {
	t.Parallel()

	a := build(t, fixture{origins: []int{2019}, devs: []int{12}, valuation: farFuture, data: []float64{1}})
	q := build(t, fixture{origins: []int{2019}, devs: []int{12}, valuation: farFuture, grain: triangle.Quarterly, data: []float64{1}})

	ops := map[string]func(*triangle.Triangle, triangle.Operand) (*triangle.Triangle, error){
		"add":       (*triangle.Triangle).Add,
		"sub":       (*triangle.Triangle).Sub,
		"rsub":      (*triangle.Triangle).RSub,
		"mul":       (*triangle.Triangle).Mul,
		"div":       (*triangle.Triangle).Div,
		"pow":       (*triangle.Triangle).Pow,
		"rdiv":      (*triangle.Triangle).RDiv,
		"less":      (*triangle.Triangle).Less,
		"lessequal": (*triangle.Triangle).LessEqual,
	}
	for name, op := range ops {
		_, err := op(a, q)
		require.ErrorIs(t, err, triangle.ErrIncompatibleGrain, name)
		_, err = op(q, a)
		require.ErrorIs(t, err, triangle.ErrIncompatibleGrain, name)
	}
}

func TestRSub(t *testing.T) {
	t.Parallel()

	a := build(t, fixture{origins: []int{2019}, devs: []int{12, 24}, valuation: farFuture, data: []float64{1, 2}})
	b := build(t, fixture{origins: []int{2019}, devs: []int{12, 24}, valuation: farFuture, data: []float64{10, 20}})

	out, err := a.RSub(b)
	require.NoError(t, err)
	requireCells(t, []float64{9, 18}, out)

	out, err = a.RSub(triangle.Scalar(5))
	require.NoError(t, err)
	requireCells(t, []float64{4, 3}, out)
}

func TestDiv_ByZeroFollowsIEEE(t *testing.T) {
	t.Parallel()

	a := build(t, fixture{origins: []int{2019}, devs: []int{12, 24, 36}, valuation: farFuture, data: []float64{2, 0, -1}})
	out, err := a.Div(triangle.Scalar(0))
	require.NoError(t, err)
	got := cells(t, out)
	require.True(t, math.IsInf(got[0], 1))
	require.True(t, math.IsNaN(got[1]))
	require.True(t, math.IsInf(got[2], -1))
}

func TestRDiv_NormalizesNonFinite(t *testing.T) {
	t.Parallel()

	backends(t, func(t *testing.T, b ndarray.Backend) {
		a := build(t, fixture{
			origins: []int{2019}, devs: []int{12, 24, 36}, valuation: farFuture,
			backend: b, data: []float64{2, 0, nan},
		})
		out, err := a.RDiv(triangle.Scalar(1))
		require.NoError(t, err)
		requireCells(t, []float64{0.5, nan, nan}, out)
	})
}

func TestPow(t *testing.T) {
	t.Parallel()

	a := build(t, fixture{origins: []int{2019}, devs: []int{12, 24}, valuation: farFuture, data: []float64{2, nan}})
	out, err := a.Pow(triangle.Scalar(2))
	require.NoError(t, err)
	requireCells(t, []float64{4, 0}, out)

	e := build(t, fixture{origins: []int{2019}, devs: []int{12, 24}, valuation: farFuture, data: []float64{3, 2}})
	base := build(t, fixture{origins: []int{2019}, devs: []int{12, 24}, valuation: farFuture, data: []float64{2, 3}})
	out, err = base.Pow(e)
	require.NoError(t, err)
	requireCells(t, []float64{8, 9}, out)
}

func TestUnary(t *testing.T) {
	t.Parallel()

	a := build(t, fixture{origins: []int{2019}, devs: []int{12, 24}, valuation: farFuture, data: []float64{-1.125, 2.5}})
	requireCells(t, []float64{1.125, 2.5}, a.Abs())
	requireCells(t, []float64{1.125, -2.5}, a.Neg())
	requireCells(t, []float64{-1.12, 2.5}, a.Round(2))
	requireCells(t, []float64{-1, 2}, a.Round(0))
	// The operand is untouched.
	requireCells(t, []float64{-1.125, 2.5}, a)

	eng := triangle.NewEngine()
	require.Nil(t, eng.Neg(nil))
	require.Nil(t, eng.Abs(nil))
	require.Nil(t, eng.Round(nil, 2))
}

func TestLess_LessEqualIsStrict(t *testing.T) {
	t.Parallel()

	a := build(t, fixture{origins: []int{2019}, devs: []int{12, 24, 36}, valuation: farFuture, data: []float64{1, 2, nan}})

	lt, err := a.Less(triangle.Scalar(1.5))
	require.NoError(t, err)
	requireCells(t, []float64{1, 0, 1}, lt)

	// LessEqual returns what Less returns: 2 <= 2 reads as 0.
	lt, err = a.Less(triangle.Scalar(2))
	require.NoError(t, err)
	le, err := a.LessEqual(triangle.Scalar(2))
	require.NoError(t, err)
	requireCells(t, []float64{1, 0, 1}, le)
	require.True(t, le.Equal(lt))
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := paidTriangle(t, ndarray.Dense)
	require.True(t, a.Equal(a))
	require.True(t, a.Equal(a.Copy()))
	require.False(t, a.Equal(3.0))
	require.False(t, a.Equal(triangle.Scalar(1)))
	require.False(t, a.Equal(nil))

	sparse, err := a.SetBackend(ndarray.Sparse)
	require.NoError(t, err)
	require.True(t, a.Equal(sparse))

	// NaN reads as 0 on both sides.
	x := build(t, fixture{origins: []int{2019}, devs: []int{12, 24}, valuation: farFuture, data: []float64{1, nan}})
	y := build(t, fixture{origins: []int{2019}, devs: []int{12, 24}, valuation: farFuture, data: []float64{1, 0}})
	require.True(t, x.Equal(y))

	z := build(t, fixture{origins: []int{2019}, devs: []int{12, 24}, valuation: farFuture, data: []float64{1, 2}})
	require.False(t, x.Equal(z))
}

func TestValuesOperand(t *testing.T) {
	t.Parallel()

	a := build(t, fixture{origins: []int{2019, 2020}, devs: []int{12, 24}, valuation: farFuture, data: []float64{1, 2, 3, 4}})
	row, err := ndarray.FromSlice(ndarray.Shape{1, 1, 1, 2}, []float64{10, 20})
	require.NoError(t, err)

	out, err := a.Add(triangle.Values{Array: row})
	require.NoError(t, err)
	requireCells(t, []float64{11, 22, 13, 24}, out)

	grow, err := ndarray.NewFull(ndarray.Shape{2, 1, 2, 2}, 1)
	require.NoError(t, err)
	_, err = a.Add(triangle.Values{Array: grow})
	require.ErrorIs(t, err, triangle.ErrShapeMismatch)

	bad, err := ndarray.NewFull(ndarray.Shape{1, 1, 3, 2}, 1)
	require.NoError(t, err)
	_, err = a.Mul(triangle.Values{Array: bad})
	require.ErrorIs(t, err, ndarray.ErrDimensionMismatch)
}

func TestBinary_BadOperands(t *testing.T) {
	t.Parallel()

	a := paidTriangle(t, ndarray.Dense)
	_, err := a.Add(nil)
	require.ErrorIs(t, err, triangle.ErrUnsupportedOperand)

	var missing *triangle.Triangle
	_, err = a.Add(missing)
	require.ErrorIs(t, err, triangle.ErrNilTriangle)

	_, err = missing.Add(a)
	require.ErrorIs(t, err, triangle.ErrNilTriangle)
}
