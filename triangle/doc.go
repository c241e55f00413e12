// Package triangle implements labeled four-dimensional loss-development
// triangles and the arithmetic engine that combines them.
//
// A Triangle is a (index, column, origin, development) array. The first two
// axes are label axes: a multi-key row index and the value-field names. The
// last two are measurement axes: origin period start dates and development
// ages in months. Cells whose valuation lies after the triangle's valuation
// date are structurally absent and held as NaN.
//
// The package provides:
//
//   - Triangle construction and copy-returning accessors (New, Copy,
//     SetBackend, SetIndex, SortAxis, BroadcastColumns, BroadcastIndex).
//   - An Engine with the arithmetic surface: Add, Sub, Mul, Div, Pow and the
//     reflected RAdd, RSub, RMul, RDiv; unary Neg, Pos, Abs, Round;
//     comparisons Less, LessEqual; and the Equal reduction.
//   - Axis alignment before every binary operator: columns are broadcast or
//     unioned, row indexes are broadcast, reordered or routed to a per-key
//     fallback, origin and development axes are broadcast or unioned.
//   - The per-key fallback (CombineGroups) built on GroupBy partitions and a
//     pluggable Mapper (sequential by default, errgroup-backed in parallel).
//
// Operands are never modified. Every operator returns a new Triangle and
// alignment works on owned copies of the inputs.
//
// Errors are sentinel values (ErrIncompatibleGrain, ErrAmbiguousIndex,
// ErrKeyJoin, ...) wrapped with the failing operation and matched with
// errors.Is. Non-finite numbers are not errors: division by zero yields ±Inf
// and propagates like any other value.
//
// Quick start:
//
//	eng := triangle.NewEngine(triangle.WithWorkers(4))
//	sum, err := eng.Add(paid, incurred)
//	if err != nil {
//		return err
//	}
//	ratio, err := eng.Div(sum, triangle.Scalar(2))
//
// *Triangle also carries convenience methods (t.Add(u), t.Neg(), ...) that
// run on a shared engine with default options.
package triangle
