// SPDX-License-Identifier: MIT

package triangle

import "go.uber.org/zap"

// Engine runs triangle arithmetic under one configuration (mapper, backend
// priority, logger). It holds no mutable state and is safe for concurrent
// use.
type Engine struct {
	opts Options
	log  *zap.Logger
}

// NewEngine builds an Engine from opts.
func NewEngine(opts ...Option) *Engine {
	o := gatherOptions(opts...)

	return &Engine{opts: o, log: o.logger}
}

// defaultEngine backs the *Triangle convenience methods.
var defaultEngine = NewEngine()
