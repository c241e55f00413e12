// SPDX-License-Identifier: MIT

// Package triangle: small value types shared by the engine.
// This file contains ONLY the Grain tag, the Operand variants and the binary
// operator tag. The Triangle itself lives in triangle.go.
package triangle

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lossdev/ndarray"
)

// Grain is the period size of an origin or development axis.
type Grain string

const (
	// Annual periods.
	Annual Grain = "Y"
	// Quarterly periods.
	Quarterly Grain = "Q"
	// Monthly periods.
	Monthly Grain = "M"
)

// ParseGrain accepts "Y", "Q", "M" (case-insensitive).
func ParseGrain(s string) (Grain, error) {
	g := Grain(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("ParseGrain(%q): %w", s, ErrBadGrain)
	}

	return g, nil
}

// Valid reports whether g is one of Annual, Quarterly, Monthly.
func (g Grain) Valid() bool { return g == Annual || g == Quarterly || g == Monthly }

// Months returns the number of months in one period of g.
func (g Grain) Months() int {
	switch g {
	case Annual:
		return 12
	case Quarterly:
		return 3
	default:
		return 1
	}
}

// Operand is the right-hand side of a binary operator: *Triangle, Scalar or
// Values. The set is closed.
type Operand interface {
	operand()
}

// Scalar is a single number broadcast against every cell.
type Scalar float64

// Values is a raw array broadcast against the triangle's values. Its shape
// must broadcast to the triangle shape without growing it.
type Values struct {
	Array ndarray.Array
}

func (*Triangle) operand() {}
func (Scalar) operand()    {}
func (Values) operand()    {}

// Op names a binary operator that can run through the per-key fallback.
type Op int

const (
	// OpAdd is nan0(a) + nan0(b).
	OpAdd Op = iota
	// OpSub is nan0(a) - nan0(b).
	OpSub
	// OpRSub is nan0(b) - nan0(a).
	OpRSub
	// OpMul is a * b.
	OpMul
	// OpDiv is a / b.
	OpDiv
	// OpPow is nan0(a) ** b.
	OpPow
)

// String returns the operator symbol.
func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpRSub:
		return "r-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "**"
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

// tag returns the error tag of op.
func (op Op) tag() string {
	switch op {
	case OpAdd:
		return opAdd
	case OpSub:
		return opSub
	case OpRSub:
		return opRSub
	case OpMul:
		return opMul
	case OpDiv:
		return opDiv
	default:
		return opPow
	}
}

// cleans reports whether op results are re-masked by cleanup.
func (op Op) cleans() bool { return op == OpAdd || op == OpSub || op == OpRSub }

// compute applies op to two aligned arrays.
func (op Op) compute(x, y ndarray.Array) (ndarray.Array, error) {
	switch op {
	case OpAdd:
		return ndarray.Apply2(ndarray.NaNToZero(x), ndarray.NaNToZero(y), ndarray.AddFunc)
	case OpSub:
		return ndarray.Apply2(ndarray.NaNToZero(x), ndarray.NaNToZero(y), ndarray.SubFunc)
	case OpRSub:
		return ndarray.Apply2(ndarray.NaNToZero(y), ndarray.NaNToZero(x), ndarray.SubFunc)
	case OpMul:
		return ndarray.Apply2(x, y, ndarray.MulFunc)
	case OpDiv:
		return ndarray.Apply2(x, y, ndarray.DivFunc)
	case OpPow:
		return ndarray.Apply2(ndarray.NaNToZero(x), y, ndarray.PowFunc)
	default:
		return nil, fmt.Errorf("%v: %w", op, ErrUnsupportedOperand)
	}
}

// negate and friends are the unary kernels.
func negate(v float64) float64 { return -v }

func absolute(v float64) float64 { return math.Abs(v) }
