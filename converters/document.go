// SPDX-License-Identifier: MIT

package converters

import (
	"fmt"
	"math"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lossdev/ndarray"
	"github.com/katalvlaran/lossdev/triangle"
)

// DateLayout is the layout of origin and valuation dates in a Document.
const DateLayout = "2006-01-02"

// Document is the serialized form of a triangle.
//
// Values of a row are stored per column as an origins × developments grid.
// A column missing from a row reads as all-NaN.
type Document struct {
	KeyLabels        []string `yaml:"key_labels" toml:"key_labels"`
	Columns          []string `yaml:"columns" toml:"columns"`
	OriginGrain      string   `yaml:"origin_grain" toml:"origin_grain"`
	DevelopmentGrain string   `yaml:"development_grain" toml:"development_grain"`
	ValuationDate    string   `yaml:"valuation_date,omitempty" toml:"valuation_date,omitempty"`
	Origins          []string `yaml:"origins" toml:"origins"`
	Developments     []int    `yaml:"developments" toml:"developments"`
	Pattern          bool     `yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	Backend          string   `yaml:"backend,omitempty" toml:"backend,omitempty"`
	Rows             []Row    `yaml:"rows" toml:"rows"`
}

// Row is one index entry: its key tuple and its value grids by column.
type Row struct {
	Key    []string           `yaml:"key" toml:"key"`
	Values map[string][]Cells `yaml:"values" toml:"values"`
}

// Cell is one triangle value. In YAML a NaN cell is written as null and
// both null and .nan read back as NaN.
type Cell float64

// Cells is one origin line of a value grid.
type Cells []Cell

// MarshalYAML implements yaml.Marshaler.
func (c Cell) MarshalYAML() (interface{}, error) {
	if math.IsNaN(float64(c)) {
		return nil, nil
	}

	return float64(c), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. The decoder never hands a
// null scalar to a Cell, so nulls are resolved here, one level up.
func (cs *Cells) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: cells must be a sequence: %w", n.Line, ErrBadDocument)
	}
	out := make(Cells, len(n.Content))
	for i, item := range n.Content {
		if item.ShortTag() == "!!null" {
			out[i] = Cell(math.NaN())
			continue
		}
		var f float64
		if err := item.Decode(&f); err != nil {
			return err
		}
		out[i] = Cell(f)
	}
	*cs = out

	return nil
}

// FromTriangle captures t as a Document. Cell grids are written for every
// row and column.
func FromTriangle(t *triangle.Triangle) (*Document, error) {
	if t == nil {
		return nil, converterErrorf("FromTriangle", triangle.ErrNilTriangle)
	}
	ax := t.Axes()
	doc := &Document{
		KeyLabels:        ax.KeyLabels,
		Columns:          ax.Columns,
		OriginGrain:      string(ax.OriginGrain),
		DevelopmentGrain: string(ax.DevelopmentGrain),
		ValuationDate:    ax.ValuationDate.Format(DateLayout),
		Origins:          make([]string, len(ax.Origins)),
		Developments:     ax.Developments,
		Pattern:          ax.Pattern,
		Backend:          t.Backend().String(),
		Rows:             make([]Row, len(ax.Keys)),
	}
	for k, o := range ax.Origins {
		doc.Origins[k] = o.Format(DateLayout)
	}

	v := t.Values()
	for i, key := range ax.Keys {
		row := Row{Key: key, Values: make(map[string][]Cells, len(ax.Columns))}
		for j, col := range ax.Columns {
			grid := make([]Cells, len(ax.Origins))
			for k := range grid {
				grid[k] = make(Cells, len(ax.Developments))
				for l := range grid[k] {
					x, err := v.At(ndarray.Index{i, j, k, l})
					if err != nil {
						return nil, converterErrorf("FromTriangle", err)
					}
					grid[k][l] = Cell(x)
				}
			}
			row.Values[col] = grid
		}
		doc.Rows[i] = row
	}

	return doc, nil
}

// Triangle builds the triangle d describes.
//
// Errors:
//   - ErrBadDocument for unparsable dates, grains or backend names and for
//     grids of the wrong size or naming unknown columns.
//   - Any triangle.New error (duplicate labels, key width).
func (d *Document) Triangle() (*triangle.Triangle, error) {
	const tag = "Document.Triangle"

	og, err := triangle.ParseGrain(d.OriginGrain)
	if err != nil {
		return nil, converterErrorf(tag, fmt.Errorf("origin_grain %q: %w", d.OriginGrain, ErrBadDocument))
	}
	dg, err := triangle.ParseGrain(d.DevelopmentGrain)
	if err != nil {
		return nil, converterErrorf(tag, fmt.Errorf("development_grain %q: %w", d.DevelopmentGrain, ErrBadDocument))
	}
	backend := ndarray.Dense
	if d.Backend != "" {
		if backend, err = ndarray.ParseBackend(d.Backend); err != nil {
			return nil, converterErrorf(tag, fmt.Errorf("backend %q: %w", d.Backend, ErrBadDocument))
		}
	}
	origins := make([]time.Time, len(d.Origins))
	for k, s := range d.Origins {
		if origins[k], err = time.Parse(DateLayout, s); err != nil {
			return nil, converterErrorf(tag, fmt.Errorf("origin %q: %w", s, ErrBadDocument))
		}
	}
	var valuation time.Time
	if d.ValuationDate != "" {
		if valuation, err = time.Parse(DateLayout, d.ValuationDate); err != nil {
			return nil, converterErrorf(tag, fmt.Errorf("valuation_date %q: %w", d.ValuationDate, ErrBadDocument))
		}
	}

	values, err := d.values()
	if err != nil {
		return nil, converterErrorf(tag, err)
	}
	arr, err := ndarray.AsBackend(values, backend)
	if err != nil {
		return nil, converterErrorf(tag, err)
	}
	keys := make([][]string, len(d.Rows))
	for i, r := range d.Rows {
		keys[i] = r.Key
	}

	return triangle.New(triangle.Axes{
		KeyLabels:        d.KeyLabels,
		Keys:             keys,
		Columns:          d.Columns,
		Origins:          origins,
		Developments:     d.Developments,
		OriginGrain:      og,
		DevelopmentGrain: dg,
		ValuationDate:    valuation,
		Pattern:          d.Pattern,
	}, arr)
}

// values lays the row grids out as a dense (rows, columns, origins, devs)
// array.
func (d *Document) values() (*ndarray.DenseArray, error) {
	nO, nD := len(d.Origins), len(d.Developments)
	col := make(map[string]int, len(d.Columns))
	for j, c := range d.Columns {
		col[c] = j
	}
	out, err := ndarray.NewFull(ndarray.Shape{len(d.Rows), len(d.Columns), nO, nD}, math.NaN())
	if err != nil {
		return nil, err
	}
	for i, r := range d.Rows {
		for name, grid := range r.Values {
			j, ok := col[name]
			if !ok {
				return nil, fmt.Errorf("row %d: column %q: %w", i, name, ErrBadDocument)
			}
			if len(grid) != nO {
				return nil, fmt.Errorf("row %d column %q: %d origins, want %d: %w", i, name, len(grid), nO, ErrBadDocument)
			}
			for k, line := range grid {
				if len(line) != nD {
					return nil, fmt.Errorf("row %d column %q origin %d: %d ages, want %d: %w", i, name, k, len(line), nD, ErrBadDocument)
				}
				for l, c := range line {
					if err = out.Set(ndarray.Index{i, j, k, l}, float64(c)); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	return out, nil
}
