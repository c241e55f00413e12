// SPDX-License-Identifier: MIT

package converters

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lossdev/triangle"
)

// Format is a document encoding.
type Format string

const (
	// YAML documents (.yaml, .yml).
	YAML Format = "yaml"
	// TOML documents (.toml).
	TOML Format = "toml"
)

// FormatOf maps a file extension to its Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", converterErrorf("FormatOf", fmt.Errorf("%q: %w", path, ErrUnsupportedFormat))
	}
}

// Decode reads one document in format f and builds its triangle.
func Decode(r io.Reader, f Format) (*triangle.Triangle, error) {
	var doc Document
	switch f {
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, converterErrorf("Decode yaml", fmt.Errorf("%v: %w", err, ErrBadDocument))
		}
	case TOML:
		md, err := toml.NewDecoder(r).Decode(&doc)
		if err != nil {
			return nil, converterErrorf("Decode toml", fmt.Errorf("%v: %w", err, ErrBadDocument))
		}
		if extra := md.Undecoded(); len(extra) > 0 {
			return nil, converterErrorf("Decode toml", fmt.Errorf("unknown key %q: %w", extra[0].String(), ErrBadDocument))
		}
	default:
		return nil, converterErrorf("Decode", fmt.Errorf("%q: %w", f, ErrUnsupportedFormat))
	}

	return doc.Triangle()
}

// Encode writes t to w in format f.
func Encode(w io.Writer, t *triangle.Triangle, f Format) error {
	doc, err := FromTriangle(t)
	if err != nil {
		return err
	}
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err != nil {
			return converterErrorf("Encode yaml", err)
		}
		return enc.Close()
	case TOML:
		if err = toml.NewEncoder(w).Encode(doc); err != nil {
			return converterErrorf("Encode toml", err)
		}
		return nil
	default:
		return converterErrorf("Encode", fmt.Errorf("%q: %w", f, ErrUnsupportedFormat))
	}
}

// ReadFile decodes the triangle stored at path, choosing the format from
// its extension.
func ReadFile(path string) (*triangle.Triangle, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, converterErrorf("ReadFile", err)
	}

	return Decode(bytes.NewReader(content), f)
}

// WriteFile encodes t to path, choosing the format from its extension.
func WriteFile(path string, t *triangle.Triangle) error {
	f, err := FormatOf(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err = Encode(&buf, t, f); err != nil {
		return err
	}
	if err = os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return converterErrorf("WriteFile", err)
	}

	return nil
}
