// SPDX-License-Identifier: MIT
// Package: mergesim/mktsample
//
// options.go: functional options for Generate.
//
// Contract (strict):
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Generate itself never panics.
//   • Reproducibility is explicit: pass WithSeeds for repeatable runs; without it
//     every run draws fresh OS entropy.

package mktsample

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/mergesim/seedseq"
	"github.com/katalvlaran/mergesim/variates"
)

// config holds the resolved Generate options.
type config struct {
	seeds        []*seedseq.SeedSequence
	threads      int
	chunkRows    int
	logger       *slog.Logger
	oversampling Oversampling
}

// Option customizes Generate.
type Option func(*config)

// WithSeeds supplies the seed pools in assignment order (see AssignSeeds).
// Panics on a nil pool.
func WithSeeds(seqs ...*seedseq.SeedSequence) Option {
	for i, s := range seqs {
		if s == nil {
			panic(fmt.Sprintf("mktsample: WithSeeds: pool %d is nil", i))
		}
	}
	cp := append([]*seedseq.SeedSequence(nil), seqs...)

	return func(c *config) {
		c.seeds = cp
	}
}

// WithThreads bounds the number of concurrent workers. Output does not depend on n.
// Panics if n < 1.
func WithThreads(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("mktsample: WithThreads(%d)", n))
	}

	return func(c *config) {
		c.threads = n
	}
}

// WithChunkRows sets the rows drawn per child stream (see variates.WithChunkRows).
// Panics if n < 1.
func WithChunkRows(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("mktsample: WithChunkRows(%d)", n))
	}

	return func(c *config) {
		c.chunkRows = n
	}
}

// WithLogger routes progress records to l. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("mktsample: WithLogger(nil)")
	}

	return func(c *config) {
		c.logger = l
	}
}

// WithOversampling replaces DefaultOversampling. Panics on a factor below 1.
func WithOversampling(o Oversampling) Option {
	if !o.Valid() {
		panic(fmt.Sprintf("mktsample: WithOversampling(%+v)", o))
	}

	return func(c *config) {
		c.oversampling = o
	}
}

// newConfig applies opts over the defaults.
func newConfig(opts ...Option) config {
	cfg := config{
		threads:      variates.DefaultThreads,
		chunkRows:    variates.DefaultChunkRows,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		oversampling: DefaultOversampling,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// fillOptions translates the scheduling knobs for the samplers.
func (c config) fillOptions() []variates.Option {
	return []variates.Option{variates.WithThreads(c.threads), variates.WithChunkRows(c.chunkRows)}
}
