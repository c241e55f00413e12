// SPDX-License-Identifier: MIT
// Package triangle: sentinel error set.
// Every exported operation returns one of these (wrapped with the operation
// name through triangleErrorf) or a wrapped ndarray sentinel. Callers match
// with errors.Is. User-triggered conditions never panic.

package triangle

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompatibleGrain is returned when two operands differ in origin or
	// development grain. It is never coerced away.
	ErrIncompatibleGrain = errors.New("triangle: arithmetic requires both triangles to be the same grain")

	// ErrAmbiguousIndex is returned when the key-label sets of two operands
	// share neither a subset nor a superset relation.
	ErrAmbiguousIndex = errors.New("triangle: index broadcasting is ambiguous")

	// ErrKeyJoin is returned when a placeholder slice for a missing group key
	// cannot be labeled by joining against the other operand's index.
	ErrKeyJoin = errors.New("triangle: group key cannot be joined")

	// ErrNilTriangle indicates a nil *Triangle operand.
	ErrNilTriangle = errors.New("triangle: nil triangle")

	// ErrShapeMismatch indicates that axis labels and value extents disagree,
	// or that parts handed to Concat differ on a non-row axis.
	ErrShapeMismatch = errors.New("triangle: shape mismatch")

	// ErrKeyNotFound indicates a row key absent from the index.
	ErrKeyNotFound = errors.New("triangle: key not found")

	// ErrDuplicateLabel indicates a repeated label on an origin, development
	// or column axis, or a repeated key-label name.
	ErrDuplicateLabel = errors.New("triangle: duplicate label")

	// ErrUnknownLabel indicates a key label or column name not carried by the
	// triangle.
	ErrUnknownLabel = errors.New("triangle: unknown label")

	// ErrUnsupportedOperand indicates an operand kind the operator does not
	// accept.
	ErrUnsupportedOperand = errors.New("triangle: unsupported operand")

	// ErrBadGrain indicates a grain outside {Y, Q, M}.
	ErrBadGrain = errors.New("triangle: invalid grain")

	// ErrBadLabel indicates a key field containing the unit separator
	// (U+001F), which is reserved for joining key tuples.
	ErrBadLabel = errors.New("triangle: key field contains a reserved character")
)

// Operation tags used as error context.
const (
	opNew        = "New"
	opAlign      = "align"
	opAdd        = "Add"
	opSub        = "Sub"
	opRSub       = "RSub"
	opMul        = "Mul"
	opDiv        = "Div"
	opRDiv       = "RDiv"
	opPow        = "Pow"
	opLess       = "Less"
	opGroupBy    = "GroupBy"
	opCombine    = "CombineGroups"
	opConcat     = "Concat"
	opLoc        = "Loc"
	opSortAxis   = "SortAxis"
	opBroadcast  = "Broadcast"
	opSetIndex   = "SetIndex"
	opSetBackend = "SetBackend"
	opColumns    = "SelectColumns"
)

// triangleErrorf wraps err with an operation tag, keeping errors.Is intact.
func triangleErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
