// Package lossdev is an in-memory toolkit for actuarial loss development
// triangles: labeled four-dimensional arrays of (index, column, origin,
// development) and the arithmetic between them.
//
// What is in the box?
//
//	• ndarray/    - 4D float64 arrays with Dense and Sparse backends,
//	                broadcasting kernels, NaN-aware reductions
//	• triangle/   - the Triangle type and its arithmetic Engine: alignment of
//	                index, columns, origins and development ages, the
//	                group-key fallback and NaN cleanup
//	• converters/ - YAML and TOML documents for triangles
//	• cmd/triarith - a CLI over the three packages above
//
// Why align before combining?
//
//	Two triangles rarely share every label. An auto book with origins
//	2019..2021 and a home book with origins 2020..2022 still add up: the
//	engine unions the origin axis, fills the gaps with NaN, and treats NaN as
//	0 under addition. Index rows are matched by key; when one triangle is
//	keyed by (lob, state) and the other by lob alone, rows are combined per
//	lob.
//
// Quick example:
//
//	auto, _ := converters.ReadFile("auto.yaml")
//	home, _ := converters.ReadFile("home.yaml")
//	total, err := auto.Add(home)
//
// Arithmetic with a non-default configuration (parallel group fallback,
// dense-first backend priority, logging) goes through an Engine:
//
//	eng := triangle.NewEngine(
//		triangle.WithWorkers(4),
//		triangle.WithBackendPriority(ndarray.Dense, ndarray.Sparse),
//		triangle.WithLogger(logger),
//	)
//	total, err := eng.Add(auto, home)
package lossdev
