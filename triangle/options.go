// SPDX-License-Identifier: MIT

// Package triangle: functional configuration of the arithmetic Engine.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors (panic only on nonsensical values),
//   - gatherOptions, which resolves the effective configuration.
//
// There is no ambient global state: the backend priority consulted by
// alignment and by Equal is part of the Engine's Options.
package triangle

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/lossdev/ndarray"
)

// DefaultWorkers bounds a ParallelMapper whose Workers field is unset.
// Engines run the group-key fallback sequentially unless configured.
const DefaultWorkers = 4

const (
	panicWorkersInvalid  = "triangle: WithWorkers: n must be >= 1"
	panicMapperNil       = "triangle: WithMapper: mapper must not be nil"
	panicPriorityInvalid = "triangle: WithBackendPriority: priority must list known backends"
	panicLoggerNil       = "triangle: WithLogger: logger must not be nil"
)

// Option mutates Engine options.
type Option func(*Options)

// Options stores the effective Engine configuration. Fields are unexported;
// NewEngine resolves them from ...Option.
type Options struct {
	mapper   Mapper            // SequentialMapper{} by default
	priority []ndarray.Backend // ndarray.DefaultPriority by default
	logger   *zap.Logger       // zap.NewNop() by default
}

// WithMapper sets the strategy that runs per-key combinations in the
// group-key fallback.
func WithMapper(m Mapper) Option {
	if m == nil {
		panic(panicMapperNil)
	}

	return func(o *Options) { o.mapper = m }
}

// WithWorkers runs the group-key fallback on a ParallelMapper bounded to n
// concurrent keys. n == 1 is sequential in effect.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.mapper = ParallelMapper{Workers: n} }
}

// WithBackendPriority sets the backend preference list, most preferred
// first. Two operands in different backends are coerced to the first listed
// backend either of them uses.
func WithBackendPriority(priority ...ndarray.Backend) Option {
	if len(priority) == 0 {
		panic(panicPriorityInvalid)
	}
	for _, b := range priority {
		if !b.Valid() {
			panic(panicPriorityInvalid)
		}
	}
	p := append([]ndarray.Backend(nil), priority...)

	return func(o *Options) { o.priority = p }
}

// WithLogger sets the logger for debug events (backend coercion, axis
// unions, group-key fallback).
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *Options) { o.logger = l }
}

func defaultOptions() Options {
	return Options{
		mapper:   SequentialMapper{},
		priority: append([]ndarray.Backend(nil), ndarray.DefaultPriority...),
		logger:   zap.NewNop(),
	}
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
