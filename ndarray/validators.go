// SPDX-License-Identifier: MIT
// Package: ndarray
//
// Purpose:
//   - Single source of truth for the shape/axis/position checks shared by
//     both backends.
//   - Return plain sentinel errors (no wrapping) so call sites wrap uniformly.

package ndarray

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the array reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(a Array) error {
	if a == nil {
		return validatorErrorf("ValidateNotNil", ErrNilArray)
	}

	return nil
}

// ValidateAxis ensures 0 ≤ axis < Rank.
func ValidateAxis(axis int) error {
	if axis < 0 || axis >= Rank {
		return validatorErrorf("ValidateAxis", ErrBadAxis)
	}

	return nil
}

// BroadcastShape returns the shape two operands broadcast to, or
// ErrDimensionMismatch when some axis pair is neither equal nor contains a 1.
// Complexity: O(1).
func BroadcastShape(a, b Shape) (Shape, error) {
	var out Shape
	for ax := 0; ax < Rank; ax++ {
		m, n := a[ax], b[ax]
		switch {
		case m == n:
			out[ax] = m
		case m == 1:
			out[ax] = n
		case n == 1:
			out[ax] = m
		default:
			return Shape{}, validatorErrorf(fmt.Sprintf("BroadcastShape: axis %d (%d vs %d)", ax, m, n), ErrDimensionMismatch)
		}
	}

	return out, nil
}

// validateTake checks axis and that each position is -1 or inside the extent.
func validateTake(s Shape, axis int, pos []int) error {
	if err := ValidateAxis(axis); err != nil {
		return err
	}
	for _, p := range pos {
		if p < -1 || p >= s[axis] {
			return validatorErrorf(fmt.Sprintf("validateTake: position %d", p), ErrOutOfRange)
		}
	}

	return nil
}

// validateEmbed checks that pos maps every source slice to a distinct target in [0,n).
func validateEmbed(s Shape, axis, n int, pos []int) error {
	if err := ValidateAxis(axis); err != nil {
		return err
	}
	if len(pos) != s[axis] {
		return validatorErrorf("validateEmbed: positions", ErrDimensionMismatch)
	}
	seen := make([]bool, n)
	for _, p := range pos {
		if p < 0 || p >= n || seen[p] {
			return validatorErrorf(fmt.Sprintf("validateEmbed: target %d", p), ErrOutOfRange)
		}
		seen[p] = true
	}

	return nil
}

// validateGroups checks that every group member is inside the extent.
func validateGroups(s Shape, axis int, groups [][]int) error {
	if err := ValidateAxis(axis); err != nil {
		return err
	}
	for _, g := range groups {
		for _, p := range g {
			if p < 0 || p >= s[axis] {
				return validatorErrorf(fmt.Sprintf("validateGroups: member %d", p), ErrOutOfRange)
			}
		}
	}

	return nil
}
