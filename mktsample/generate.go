// SPDX-License-Identifier: MIT
// Package: mergesim/mktsample
//
// generate.go: the end-to-end pipeline:
//
//	seeds → shares → prices/filing mask → diversion → margins/MNL mask → truncate → HHI
//
// Filters never remove rows in place inside a generator. Each stage returns a
// boolean mask and the assembler applies it to every row-aligned column at once.

package mktsample

import (
	"fmt"

	"github.com/katalvlaran/mergesim/diversion"
	"github.com/katalvlaran/mergesim/margins"
	"github.com/katalvlaran/mergesim/market"
	"github.com/katalvlaran/mergesim/matrix"
	"github.com/katalvlaran/mergesim/prices"
	"github.com/katalvlaran/mergesim/shares"
)

// candidates are the row-aligned columns under assembly. Nil fields have not
// been generated yet and are skipped by keep and head.
type candidates struct {
	arena      *matrix.Dense // full share arena (all firms)
	prices     *matrix.Dense
	diversion  *matrix.Dense
	margins    *matrix.Dense
	firmCounts []int
	nthShare   []float64
	outside    []float64
}

func (c *candidates) len() int { return c.arena.Rows() }

// keep retains the rows where mask is true in every generated column.
func (c *candidates) keep(mask []bool) error {
	for _, m := range []**matrix.Dense{&c.arena, &c.prices, &c.diversion, &c.margins} {
		if *m == nil {
			continue
		}
		out, err := matrix.SelectRows(*m, mask)
		if err != nil {
			return err
		}
		*m = out
	}
	var err error
	if c.firmCounts, err = matrix.Compress(c.firmCounts, mask); err != nil {
		return err
	}
	for _, xs := range []*[]float64{&c.nthShare, &c.outside} {
		if *xs, err = matrix.Compress(*xs, mask); err != nil {
			return err
		}
	}

	return nil
}

// head truncates every column to its first n rows.
func (c *candidates) head(n int) {
	for _, m := range []**matrix.Dense{&c.arena, &c.prices, &c.diversion, &c.margins} {
		if *m != nil {
			*m = (*m).Head(n)
		}
	}
	c.firmCounts = matrix.Truncate(c.firmCounts, n)
	c.nthShare = matrix.Truncate(c.nthShare, n)
	c.outside = matrix.Truncate(c.outside, n)
}

// Generate draws a market sample of spec.SampleSize rows.
// MAIN DESCRIPTION:
//   - Draws ⌈size·factor⌉ candidates (factor from the oversampling table), filters
//     them with the filing test and the MNL feasibility condition, truncates to
//     size and derives HHI statistics.
//
// Implementation:
//   - Stage 1: validate spec; assign seed pools (fixed order).
//   - Stage 2: shares; prices and filing mask; apply the mask.
//   - Stage 3: diversion ratios on the surviving rows (inside-out fills in the
//     outside-good probability).
//   - Stage 4: margins; apply the MNL mask when firm-2 margins are MNL.
//   - Stage 5: truncate; HHI delta = 2·s1·s2, HHI post = delta + Σ s_i² where
//     padding and NaN cells contribute 0.
//
// Behavior highlights:
//   - If the filters leave fewer than size rows, the short sample is returned
//     and a warning is logged.
//   - With WithSeeds the result is a pure function of spec, the pools and the
//     chunk size; the thread count never changes it.
//
// Errors:
//   - *market.ConfigError for invalid specs or missing seed pools.
//   - market.ErrShareSum / market.ErrDiversionOrder on broken invariants.
//
// Complexity:
//   - Time O(candidates · maxFirms), Space O(candidates · maxFirms).
func Generate(spec market.SampleSpec, opts ...Option) (*MarketSample, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)
	log := cfg.logger
	fill := cfg.fillOptions()

	plan, err := AssignSeeds(cfg.seeds, spec.Shares.Dist, spec.PriceSym)
	if err != nil {
		return nil, err
	}

	factor := cfg.oversampling.Factor(spec.Filing, spec.Margins.Firm2)
	n := cfg.oversampling.CandidateRows(spec.SampleSize, spec.Filing, spec.Margins.Firm2)
	log.Debug("drawing candidates",
		"size", spec.SampleSize, "candidates", n, "factor", factor.String(),
		"shares", spec.Shares.Dist, "recapture", spec.Shares.Recapture,
		"margins", spec.Margins.Dist, "firm2", spec.Margins.Firm2,
		"prices", spec.PriceSym, "filing", spec.Filing, "threads", cfg.threads)

	shr, err := shares.Generate(n, spec.Shares, plan.FirmCounts, plan.Shares, fill...)
	if err != nil {
		return nil, fmt.Errorf("mktsample: shares: %w", err)
	}
	pr, err := prices.Generate(shr.Shares, shr.NthShare, spec.PriceSym, spec.Filing, plan.Prices, fill...)
	if err != nil {
		return nil, fmt.Errorf("mktsample: prices: %w", err)
	}

	c := &candidates{
		arena:      shr.Shares,
		prices:     pr.Prices,
		firmCounts: shr.FirmCounts,
		nthShare:   shr.NthShare,
		outside:    shr.OutsideProb,
	}
	if spec.Filing != market.FilingNone {
		if err = c.keep(pr.Filing); err != nil {
			return nil, fmt.Errorf("mktsample: filing mask: %w", err)
		}
		log.Debug("filing test applied", "test", spec.Filing, "rows", c.len())
	}

	pair, err := c.arena.Columns(0, 1)
	if err != nil {
		return nil, fmt.Errorf("mktsample: %w", err)
	}
	dv, err := diversion.Ratios(pair, spec.RecaptureRate, spec.Shares.Recapture, c.outside)
	if err != nil {
		return nil, fmt.Errorf("mktsample: diversion: %w", err)
	}
	c.diversion, c.outside = dv.Ratios, dv.OutsideProb

	mg, err := margins.Generate(spec.Margins, spec.Shares.Recapture,
		margins.Inputs{Shares: pair, Prices: c.prices, OutsideProb: c.outside}, plan.Margins, fill...)
	if err != nil {
		return nil, fmt.Errorf("mktsample: margins: %w", err)
	}
	c.margins = mg.Margins
	if spec.Margins.Firm2 == market.Firm2MNL {
		if err = c.keep(mg.Feasible); err != nil {
			return nil, fmt.Errorf("mktsample: MNL mask: %w", err)
		}
		log.Debug("MNL feasibility applied", "rows", c.len())
	}

	c.head(spec.SampleSize)
	if c.len() < spec.SampleSize {
		log.Warn("sample short after filtering; raise the oversampling factor",
			"want", spec.SampleSize, "got", c.len(), "factor", factor.String())
	}

	out, err := c.assemble()
	if err != nil {
		return nil, fmt.Errorf("mktsample: %w", err)
	}
	log.Debug("sample assembled", "rows", out.Len())

	return out, nil
}

// assemble derives the merging-firm columns and HHI statistics.
func (c *candidates) assemble() (*MarketSample, error) {
	pair, err := c.arena.Columns(0, 1)
	if err != nil {
		return nil, err
	}
	sumSq, err := matrix.RowSumSquares(c.arena)
	if err != nil {
		return nil, err
	}

	rows := pair.Rows()
	delta := make([]float64, rows)
	post := make([]float64, rows)
	for i := 0; i < rows; i++ {
		s := pair.Row(i)
		delta[i] = 2 * s[0] * s[1]
		post[i] = delta[i] + sumSq[i]
	}

	return &MarketSample{
		Shares:      pair,
		Margins:     c.margins,
		Prices:      c.prices,
		FirmCounts:  c.firmCounts,
		OutsideProb: c.outside,
		NthShare:    c.nthShare,
		Diversion:   c.diversion,
		HHIPost:     post,
		HHIDelta:    delta,
	}, nil
}
