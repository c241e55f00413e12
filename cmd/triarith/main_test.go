// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lossdev/converters"
	"github.com/katalvlaran/lossdev/ndarray"
	"github.com/katalvlaran/lossdev/triangle"
)

// writeTriangle stores a 1x1x1x2 annual triangle keyed (lob, state) and
// returns its path.
func writeTriangle(t *testing.T, dir, name string, keys [][]string, data []float64) string {
	t.Helper()
	v, err := ndarray.FromSlice(ndarray.Shape{len(keys), 1, 1, 2}, data)
	require.NoError(t, err)
	tri, err := triangle.New(triangle.Axes{
		KeyLabels:        []string{"lob", "state"},
		Keys:             keys,
		Columns:          []string{"paid"},
		Origins:          []time.Time{time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		Developments:     []int{12, 24},
		OriginGrain:      triangle.Annual,
		DevelopmentGrain: triangle.Annual,
		ValuationDate:    time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC),
	}, v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, converters.WriteFile(path, tri))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func cellsOf(t *testing.T, tri *triangle.Triangle) []float64 {
	t.Helper()
	d, err := ndarray.ToDense(tri.Values())
	require.NoError(t, err)

	return d.Data()
}

func TestEval_AddFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeTriangle(t, dir, "a.yaml", [][]string{{"auto", "CA"}}, []float64{1, 2})
	b := writeTriangle(t, dir, "b.toml", [][]string{{"auto", "CA"}}, []float64{10, 20})

	out, err := run(t, "eval", "add", a, b)
	require.NoError(t, err)
	tri, err := converters.Decode(bytes.NewBufferString(out), converters.YAML)
	require.NoError(t, err)
	require.Equal(t, []float64{11, 22}, cellsOf(t, tri))
}

func TestEval_ScalarToFile(t *testing.T) {
	dir := t.TempDir()
	a := writeTriangle(t, dir, "a.yaml", [][]string{{"auto", "CA"}, {"auto", "NY"}}, []float64{1, 2, 3, math.NaN()})
	dst := filepath.Join(dir, "out.toml")

	_, err := run(t, "eval", "mul", a, "2", "--output", dst, "--workers", "2", "--backend-priority", "dense,sparse")
	require.NoError(t, err)
	tri, err := converters.ReadFile(dst)
	require.NoError(t, err)
	got := cellsOf(t, tri)
	require.Equal(t, []float64{2, 4, 6}, got[:3])
	require.True(t, math.IsNaN(got[3]))
}

func TestEval_Errors(t *testing.T) {
	dir := t.TempDir()
	a := writeTriangle(t, dir, "a.yaml", [][]string{{"auto", "CA"}}, []float64{1, 2})

	_, err := run(t, "eval", "mod", a, "2")
	require.ErrorContains(t, err, "unknown operator")

	_, err = run(t, "eval", "add", a, filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, "eval", "add", a, "1", "--format", "xml")
	require.ErrorIs(t, err, converters.ErrUnsupportedFormat)

	_, err = run(t, "eval", "add", a, "1", "--backend-priority", "gpu")
	require.ErrorIs(t, err, ndarray.ErrUnknownBackend)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	a := writeTriangle(t, dir, "a.yaml", [][]string{{"auto", "CA"}}, []float64{1, 2})
	cfg := filepath.Join(dir, "triarith.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("workers: 0\n"), 0o644))

	_, err := run(t, "--config", cfg, "unary", "neg", a)
	require.ErrorContains(t, err, "workers")

	require.NoError(t, os.WriteFile(cfg, []byte("workers: 3\nlog_level: warn\n"), 0o644))
	out, err := run(t, "--config", cfg, "unary", "neg", a, "--format", "toml")
	require.NoError(t, err)
	tri, err := converters.Decode(bytes.NewBufferString(out), converters.TOML)
	require.NoError(t, err)
	require.Equal(t, []float64{-1, -2}, cellsOf(t, tri))

	_, err = run(t, "--config", filepath.Join(dir, "absent.yaml"), "unary", "neg", a)
	require.Error(t, err)
}

func TestShowAndGroup(t *testing.T) {
	dir := t.TempDir()
	a := writeTriangle(t, dir, "a.yml", [][]string{{"auto", "CA"}, {"auto", "NY"}}, []float64{1, 2, 3, 4})

	out, err := run(t, "show", a, "--diagonal")
	require.NoError(t, err)
	require.Contains(t, out, "full: true")
	require.Contains(t, out, "[auto NY] paid 2020-01-01: 4")

	out, err = run(t, "group", a, "--by", "lob")
	require.NoError(t, err)
	tri, err := converters.Decode(bytes.NewBufferString(out), converters.YAML)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"auto"}}, tri.Keys())
	require.Equal(t, []float64{4, 6}, cellsOf(t, tri))
}
