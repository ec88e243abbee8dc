// SPDX-License-Identifier: MIT

// Package aggregate: functional configuration for the coordinator.
//
// Safe by construction: WithX constructors panic only on nonsensical values
// (programmer error), never on data.
package aggregate

import (
	"errors"
	"io"
	"log/slog"
	"runtime"

	"github.com/katalvlaran/matcompose/compose"
)

// Defaults (single source of truth).
const (
	// DefaultStrategy combines partial states with a parallel merge tree.
	DefaultStrategy = Tree

	// DefaultWorkers of 0 means runtime.GOMAXPROCS(0) at gather time.
	DefaultWorkers = 0
)

const (
	panicWorkersInvalid  = "aggregate: WithWorkers: n must be >= 0"
	panicStrategyInvalid = "aggregate: WithStrategy: unknown strategy"
	panicLoggerNil       = "aggregate: WithLogger: logger must be non-nil"
)

var (
	// ErrUnknownStrategy is returned by ParseStrategy for an unknown name.
	ErrUnknownStrategy = errors.New("aggregate: unknown strategy")

	// ErrPartition wraps the failure of a single worker; the message names the partition.
	ErrPartition = errors.New("aggregate: partition failed")
)

// Option mutates Options.
type Option func(*Options)

// Options configures ComposeDense, ComposeSparse and Reduce.
type Options struct {
	workers     int
	strategy    Strategy
	logger      *slog.Logger
	composeOpts []compose.Option
}

// DefaultOptions returns the documented defaults with a discarding logger.
func DefaultOptions() Options {
	return Options{
		workers:  DefaultWorkers,
		strategy: DefaultStrategy,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithWorkers bounds the number of goroutines used per phase (0 ⇒ GOMAXPROCS).
// Panics if n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}
	return func(o *Options) { o.workers = n }
}

// WithStrategy selects the reduction strategy. Panics on an unknown value.
func WithStrategy(s Strategy) Option {
	if s != Tree && s != Chain {
		panic(panicStrategyInvalid)
	}
	return func(o *Options) { o.strategy = s }
}

// WithLogger routes coordinator logs to l. Panics if l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}
	return func(o *Options) { o.logger = l }
}

// WithComposeOptions forwards assembler options to every worker.
func WithComposeOptions(opts ...compose.Option) Option {
	return func(o *Options) { o.composeOpts = append(o.composeOpts, opts...) }
}

// gatherOptions applies opts over the defaults and resolves the worker count.
func gatherOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	return o
}
