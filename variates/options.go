// SPDX-License-Identifier: MIT
// Package: mergesim/variates
//
// options.go: functional options for Fill.
//
// Contract (strict):
//   • Options are functional (type Option func(*fillConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Fill itself never panics.
//   • WithThreads changes scheduling only; WithChunkRows changes the stream
//     layout and therefore the drawn values.

package variates

import "fmt"

const (
	// DefaultThreads is the worker bound used when WithThreads is not given.
	DefaultThreads = 16

	// DefaultChunkRows is the number of buffer rows drawn from one child stream.
	DefaultChunkRows = 1 << 14
)

// fillConfig holds the resolved Fill options.
type fillConfig struct {
	threads   int // max concurrent workers
	chunkRows int // rows per child stream
}

// Option customizes a Fill call.
// Complexity: applying N options costs O(N) time, O(1) space.
type Option func(*fillConfig)

// WithThreads bounds the number of concurrent workers. Output does not depend on n.
// Panics if n < 1.
// Complexity: O(1).
func WithThreads(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("variates: WithThreads(%d)", n))
	}
	return func(c *fillConfig) {
		c.threads = n
	}
}

// WithChunkRows sets the rows per child stream. Different values give
// different (equally valid) samples from the same seed pool.
// Panics if n < 1.
// Complexity: O(1).
func WithChunkRows(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("variates: WithChunkRows(%d)", n))
	}
	return func(c *fillConfig) {
		c.chunkRows = n
	}
}

// newFillConfig applies opts over the defaults.
func newFillConfig(opts ...Option) fillConfig {
	cfg := fillConfig{threads: DefaultThreads, chunkRows: DefaultChunkRows}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Threads reports the worker bound opts resolve to. Callers that schedule their
// own stages (e.g. one stage per stratum) use it to share the same bound.
func Threads(opts ...Option) int {
	return newFillConfig(opts...).threads
}
