// SPDX-License-Identifier: MIT

package converters

import (
	"errors"
	"fmt"
)

var (
	// ErrBadDocument indicates a document that does not describe a valid
	// triangle: unparsable dates, unknown grain or backend, or cell grids
	// whose size disagrees with the origin and development axes.
	ErrBadDocument = errors.New("converters: bad document")

	// ErrUnsupportedFormat indicates a file extension other than .yaml,
	// .yml or .toml.
	ErrUnsupportedFormat = errors.New("converters: unsupported format")
)

func converterErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
