// SPDX-License-Identifier: MIT
// Package triangle: the arithmetic surface.
//
// Every binary operator follows align → compute → clean up:
//
//	| Operator   | Alignment            | Compute              | Cleanup |
//	|------------|----------------------|----------------------|---------|
//	| Add        | full                 | nan0(a) + nan0(b)    | yes     |
//	| Sub        | full                 | nan0(a) - nan0(b)    | yes     |
//	| RSub       | full                 | nan0(b) - nan0(a)    | yes     |
//	| Mul        | full                 | a * b                | no      |
//	| Div        | full                 | a / b (IEEE ±Inf)    | no      |
//	| Pow        | full                 | nan0(a) ** b         | no      |
//	| RDiv       | none (copy of a)     | b / a, non-finite→NaN| no      |
//	| Less(Equal)| none                 | nan0(a) < nan0(b)    | no      |
//	| Equal      | backend only         | all(nan0(a)==nan0(b))| -       |
//
// Scalar and Values operands skip axis alignment: the triangle is copied
// and the operand broadcast against its values.

package triangle

import (
	"fmt"

	"github.com/katalvlaran/lossdev/ndarray"
)

// binary runs op on a and other.
func (e *Engine) binary(op Op, a *Triangle, other Operand, nested bool) (*Triangle, error) {
	if a == nil {
		return nil, triangleErrorf(op.tag(), ErrNilTriangle)
	}

	var out *Triangle
	switch o := other.(type) {
	case *Triangle:
		if o == nil {
			return nil, triangleErrorf(op.tag(), ErrNilTriangle)
		}
		p, err := e.align(a, o, nested)
		if err != nil {
			return nil, triangleErrorf(op.tag(), err)
		}
		if p.grouped() {
			if out, err = e.CombineGroups(op, p.gx, p.gy); err != nil {
				return nil, triangleErrorf(op.tag(), err)
			}
			break
		}
		v, err := op.compute(p.x.values, p.y.values)
		if err != nil {
			return nil, triangleErrorf(op.tag(), err)
		}
		out = p.x.withValues(v)
	default:
		obj, y, err := e.operandArray(a, other)
		if err != nil {
			return nil, triangleErrorf(op.tag(), err)
		}
		v, err := op.compute(obj.values, y)
		if err != nil {
			return nil, triangleErrorf(op.tag(), err)
		}
		out = obj.withValues(v)
	}

	if err := out.checkShape(); err != nil {
		return nil, triangleErrorf(op.tag(), err)
	}
	if op.cleans() {
		cleaned, err := cleanup(out)
		if err != nil {
			return nil, triangleErrorf(op.tag(), err)
		}
		out = cleaned
	}

	return out, nil
}

// operandArray turns a non-triangle operand into an array in the backend
// both sides resolve to, along with a (possibly re-backed) copy of a.
func (e *Engine) operandArray(a *Triangle, other Operand) (*Triangle, ndarray.Array, error) {
	var arr ndarray.Array
	switch o := other.(type) {
	case Scalar:
		arr = ndarray.Scalar(float64(o))
		if a.Backend() == ndarray.Sparse {
			s, err := ndarray.ToSparse(arr)
			if err != nil {
				return nil, nil, err
			}
			arr = s
		}
		return a.clone(), arr, nil
	case Values:
		if o.Array == nil {
			return nil, nil, ndarray.ErrNilArray
		}
		arr = o.Array
	case *Triangle:
		if o == nil {
			return nil, nil, ErrNilTriangle
		}
		if err := sameGrain(a, o); err != nil {
			return nil, nil, err
		}
		arr = o.values
	default:
		return nil, nil, fmt.Errorf("%T: %w", other, ErrUnsupportedOperand)
	}

	backend, err := ndarray.CommonBackend(e.opts.priority, a.Backend(), arr.Backend())
	if err != nil {
		return nil, nil, err
	}
	obj, err := a.SetBackend(backend)
	if err != nil {
		return nil, nil, err
	}
	if arr, err = ndarray.AsBackend(arr, backend); err != nil {
		return nil, nil, err
	}

	return obj, arr, nil
}

// Add returns nan0(a) + nan0(b), re-masked.
func (e *Engine) Add(a *Triangle, b Operand) (*Triangle, error) { return e.binary(OpAdd, a, b, false) }

// Sub returns nan0(a) - nan0(b), re-masked.
func (e *Engine) Sub(a *Triangle, b Operand) (*Triangle, error) { return e.binary(OpSub, a, b, false) }

// RSub returns nan0(b) - nan0(a), re-masked, keeping a's axis order.
func (e *Engine) RSub(a *Triangle, b Operand) (*Triangle, error) {
	return e.binary(OpRSub, a, b, false)
}

// Mul returns a * b. NaN propagates, so no re-mask is needed.
func (e *Engine) Mul(a *Triangle, b Operand) (*Triangle, error) { return e.binary(OpMul, a, b, false) }

// Div returns a / b. Division by zero yields ±Inf or NaN, not an error.
func (e *Engine) Div(a *Triangle, b Operand) (*Triangle, error) { return e.binary(OpDiv, a, b, false) }

// Pow returns nan0(a) ** b.
func (e *Engine) Pow(a *Triangle, b Operand) (*Triangle, error) { return e.binary(OpPow, a, b, false) }

// RAdd returns a itself when b is Scalar(0), and Add(a, b) otherwise.
func (e *Engine) RAdd(a *Triangle, b Operand) (*Triangle, error) {
	if s, ok := b.(Scalar); ok && s == 0 {
		if a == nil {
			return nil, triangleErrorf(opAdd, ErrNilTriangle)
		}
		return a, nil
	}

	return e.Add(a, b)
}

// RMul returns a itself when b is Scalar(1), and Mul(a, b) otherwise.
func (e *Engine) RMul(a *Triangle, b Operand) (*Triangle, error) {
	if s, ok := b.(Scalar); ok && s == 1 {
		if a == nil {
			return nil, triangleErrorf(opMul, ErrNilTriangle)
		}
		return a, nil
	}

	return e.Mul(a, b)
}

// RDiv returns b / a on a copy of a without axis alignment. Infinite and
// zero results become NaN.
func (e *Engine) RDiv(a *Triangle, b Operand) (*Triangle, error) {
	if a == nil {
		return nil, triangleErrorf(opRDiv, ErrNilTriangle)
	}
	obj, num, err := e.operandArray(a, b)
	if err != nil {
		return nil, triangleErrorf(opRDiv, err)
	}
	v, err := ndarray.Apply2(num, obj.values, ndarray.DivFunc)
	if err != nil {
		return nil, triangleErrorf(opRDiv, err)
	}
	out := obj.withValues(ndarray.NonFiniteToNaN(v))
	if err := out.checkShape(); err != nil {
		return nil, triangleErrorf(opRDiv, err)
	}

	return out, nil
}

// Neg returns -a on a copy. A nil a gives nil.
func (e *Engine) Neg(a *Triangle) *Triangle {
	if a == nil {
		return nil
	}

	return a.withValues(a.values.Map(negate))
}

// Abs returns |a| on a copy. A nil a gives nil.
func (e *Engine) Abs(a *Triangle) *Triangle {
	if a == nil {
		return nil
	}

	return a.withValues(a.values.Map(absolute))
}

// Pos returns a itself.
func (e *Engine) Pos(a *Triangle) *Triangle { return a }

// Round returns a rounded to n decimals (half to even) on a copy. A nil a
// gives nil.
func (e *Engine) Round(a *Triangle, n int) *Triangle {
	if a == nil {
		return nil
	}

	return a.withValues(ndarray.Round(a.values, n))
}

// Less returns nan0(a) < nan0(b) as 1/0 cells on a copy of a. Operands are
// compared value by value without axis alignment; b must broadcast to a.
func (e *Engine) Less(a *Triangle, b Operand) (*Triangle, error) {
	if a == nil {
		return nil, triangleErrorf(opLess, ErrNilTriangle)
	}
	obj, y, err := e.operandArray(a, b)
	if err != nil {
		return nil, triangleErrorf(opLess, err)
	}
	v, err := ndarray.Apply2(ndarray.NaNToZero(obj.values), ndarray.NaNToZero(y), ndarray.LessFunc)
	if err != nil {
		return nil, triangleErrorf(opLess, err)
	}
	out := obj.withValues(v)
	if err := out.checkShape(); err != nil {
		return nil, triangleErrorf(opLess, err)
	}

	return out, nil
}

// LessEqual is strict: it returns exactly what Less returns. Callers that
// rely on <= semantics should combine Less with Equal.
func (e *Engine) LessEqual(a *Triangle, b Operand) (*Triangle, error) {
	return e.Less(a, b)
}

// Equal reports whether a and b are both *Triangle values of the same shape
// whose cells agree after NaN is read as 0. Both sides are first moved to
// the backend the engine's priority picks for the pair.
func (e *Engine) Equal(a, b any) bool {
	x, ok := a.(*Triangle)
	if !ok || x == nil {
		return false
	}
	y, ok := b.(*Triangle)
	if !ok || y == nil {
		return false
	}
	backend, err := ndarray.CommonBackend(e.opts.priority, x.Backend(), y.Backend())
	if err != nil {
		return false
	}
	xv, err := ndarray.AsBackend(x.values, backend)
	if err != nil {
		return false
	}
	yv, err := ndarray.AsBackend(y.values, backend)
	if err != nil {
		return false
	}
	eq, err := ndarray.AllEqual(ndarray.NaNToZero(xv), ndarray.NaNToZero(yv))

	return err == nil && eq
}

// Convenience methods on the shared default engine.

// Add returns t + b.
func (t *Triangle) Add(b Operand) (*Triangle, error) { return defaultEngine.Add(t, b) }

// Sub returns t - b.
func (t *Triangle) Sub(b Operand) (*Triangle, error) { return defaultEngine.Sub(t, b) }

// RSub returns b - t.
func (t *Triangle) RSub(b Operand) (*Triangle, error) { return defaultEngine.RSub(t, b) }

// Mul returns t * b.
func (t *Triangle) Mul(b Operand) (*Triangle, error) { return defaultEngine.Mul(t, b) }

// Div returns t / b.
func (t *Triangle) Div(b Operand) (*Triangle, error) { return defaultEngine.Div(t, b) }

// RDiv returns b / t.
func (t *Triangle) RDiv(b Operand) (*Triangle, error) { return defaultEngine.RDiv(t, b) }

// Pow returns t ** b.
func (t *Triangle) Pow(b Operand) (*Triangle, error) { return defaultEngine.Pow(t, b) }

// Neg returns -t.
func (t *Triangle) Neg() *Triangle { return defaultEngine.Neg(t) }

// Abs returns |t|.
func (t *Triangle) Abs() *Triangle { return defaultEngine.Abs(t) }

// Round returns t rounded to n decimals.
func (t *Triangle) Round(n int) *Triangle { return defaultEngine.Round(t, n) }

// Less returns t < b.
func (t *Triangle) Less(b Operand) (*Triangle, error) { return defaultEngine.Less(t, b) }

// LessEqual returns the same as Less.
func (t *Triangle) LessEqual(b Operand) (*Triangle, error) { return defaultEngine.LessEqual(t, b) }

// Equal reports t == other.
func (t *Triangle) Equal(other any) bool { return defaultEngine.Equal(t, other) }

// Pos returns t itself.
func (t *Triangle) Pos() *Triangle { return defaultEngine.Pos(t) }

// RAdd returns t when b is Scalar(0), t + b otherwise.
func (t *Triangle) RAdd(b Operand) (*Triangle, error) { return defaultEngine.RAdd(t, b) }

// RMul returns t when b is Scalar(1), t * b otherwise.
func (t *Triangle) RMul(b Operand) (*Triangle, error) { return defaultEngine.RMul(t, b) }
