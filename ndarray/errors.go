// SPDX-License-Identifier: MIT
// Package ndarray: sentinel error set.
// All kernels return these sentinels (possibly wrapped with an operation tag
// via arrayErrorf) and tests match them with errors.Is. User-triggered
// conditions never panic.

package ndarray

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested shape has a negative extent
	// or when a data buffer does not match the shape volume.
	ErrBadShape = errors.New("ndarray: invalid shape")

	// ErrOutOfRange indicates that a coordinate or a position list entry
	// lies outside the valid bounds of an axis.
	ErrOutOfRange = errors.New("ndarray: index out of range")

	// ErrDimensionMismatch indicates shapes that cannot be broadcast together,
	// or operands of Concat that differ on a non-concatenated axis.
	ErrDimensionMismatch = errors.New("ndarray: dimension mismatch")

	// ErrNilArray indicates that a nil Array was passed to an operation.
	ErrNilArray = errors.New("ndarray: nil array")

	// ErrBadAxis indicates an axis number outside [0, Rank).
	ErrBadAxis = errors.New("ndarray: invalid axis")

	// ErrUnknownBackend indicates a Backend value outside the closed set.
	ErrUnknownBackend = errors.New("ndarray: unknown backend")
)

// arrayErrorf wraps an underlying error with the given operation tag.
func arrayErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
