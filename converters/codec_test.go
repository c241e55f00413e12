// SPDX-License-Identifier: MIT

package converters_test

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lossdev/converters"
	"github.com/katalvlaran/lossdev/ndarray"
	"github.com/katalvlaran/lossdev/triangle"
)

// sample is a 2-row, 1-column, 2x2 annual triangle valued 2020-12-31.
func sample(t *testing.T, b ndarray.Backend) *triangle.Triangle {
	t.Helper()
	d, err := ndarray.FromSlice(ndarray.Shape{2, 1, 2, 2}, []float64{
		100, 150, 200, math.NaN(),
		10, 15, 20, math.NaN(),
	})
	require.NoError(t, err)
	v, err := ndarray.AsBackend(d, b)
	require.NoError(t, err)
	tri, err := triangle.New(triangle.Axes{
		KeyLabels:        []string{"lob"},
		Keys:             [][]string{{"auto"}, {"home"}},
		Columns:          []string{"paid"},
		Origins:          []time.Time{time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		Developments:     []int{12, 24},
		OriginGrain:      triangle.Annual,
		DevelopmentGrain: triangle.Annual,
	}, v)
	require.NoError(t, err)

	return tri
}

func requireSame(t *testing.T, want, got *triangle.Triangle) {
	t.Helper()
	require.Equal(t, want.Axes(), got.Axes())
	require.Equal(t, want.Backend(), got.Backend())
	ok, err := ndarray.AllEqual(want.Values(), got.Values())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, f := range []converters.Format{converters.YAML, converters.TOML} {
		f := f
		for _, b := range []ndarray.Backend{ndarray.Dense, ndarray.Sparse} {
			b := b
			t.Run(string(f)+"/"+b.String(), func(t *testing.T) {
				t.Parallel()
				want := sample(t, b)
				var buf bytes.Buffer
				require.NoError(t, converters.Encode(&buf, want, f))
				got, err := converters.Decode(&buf, f)
				require.NoError(t, err)
				requireSame(t, want, got)
			})
		}
	}
}

func TestEncodeYAML_NaNIsNull(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, converters.Encode(&buf, sample(t, ndarray.Dense), converters.YAML))
	require.Contains(t, buf.String(), "null")
	require.Contains(t, buf.String(), "2020-12-31")
}

const yamlDoc = `
key_labels: [lob]
columns: [paid]
origin_grain: "Y"
development_grain: "Y"
origins: ["2019-01-01", "2020-01-01"]
developments: [12, 24]
backend: sparse
rows:
  - key: [auto]
    values:
      paid:
        - [100, 150]
        - [200, ~]
`

func TestDecodeYAML_NullAndDefaults(t *testing.T) {
	t.Parallel()

	tri, err := converters.Decode(strings.NewReader(yamlDoc), converters.YAML)
	require.NoError(t, err)
	require.Equal(t, ndarray.Sparse, tri.Backend())
	require.Equal(t, time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC), tri.ValuationDate())
	v, err := tri.At(0, 0, 1, 1)
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))
	v, err = tri.At(0, 0, 1, 0)
	require.NoError(t, err)
	require.Equal(t, 200.0, v)
}

func TestDecodeTOML_NativeNaN(t *testing.T) {
	t.Parallel()

	doc := `
key_labels = ["lob"]
columns = ["paid"]
origin_grain = "Y"
development_grain = "Y"
origins = ["2019-01-01"]
developments = [12, 24]

[[rows]]
key = ["auto"]
[rows.values]
paid = [[1.5, nan]]
`
	tri, err := converters.Decode(strings.NewReader(doc), converters.TOML)
	require.NoError(t, err)
	require.Equal(t, ndarray.Dense, tri.Backend())
	v, err := tri.At(0, 0, 0, 1)
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))
}

func TestDecode_BadDocuments(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		edit func(string) string
	}{
		{"grain", func(s string) string { return strings.Replace(s, `origin_grain: "Y"`, `origin_grain: "W"`, 1) }},
		{"backend", func(s string) string { return strings.Replace(s, "backend: sparse", "backend: gpu", 1) }},
		{"date", func(s string) string { return strings.Replace(s, "2019-01-01", "01/01/2019", 1) }},
		{"short grid", func(s string) string { return strings.Replace(s, "[200, ~]", "[200]", 1) }},
		{"unknown column", func(s string) string { return strings.Replace(s, "      paid:", "      incurred:", 1) }},
		{"unknown field", func(s string) string { return s + "extra: 1\n" }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := converters.Decode(strings.NewReader(tc.edit(yamlDoc)), converters.YAML)
			require.ErrorIs(t, err, converters.ErrBadDocument)
		})
	}
}

func TestFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := sample(t, ndarray.Sparse)
	for _, name := range []string{"tri.yaml", "tri.yml", "tri.toml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, converters.WriteFile(path, want))
		got, err := converters.ReadFile(path)
		require.NoError(t, err)
		requireSame(t, want, got)
	}

	_, err := converters.ReadFile(filepath.Join(dir, "tri.csv"))
	require.ErrorIs(t, err, converters.ErrUnsupportedFormat)
	require.ErrorIs(t, converters.WriteFile(filepath.Join(dir, "tri.json"), want), converters.ErrUnsupportedFormat)
}
