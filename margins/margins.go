// SPDX-License-Identifier: MIT
// Package: mergesim/margins
//
// margins.go: price-cost margin draws and the MNL first-order condition.
//
// Exposed API:
//   - Generate(spec, recapture, in, seq, opts...)  -> *Sample
//   - BetaLocated(mu, sigma)                       -> (alpha, beta)
//   - BetaLocatedBound(mu, sigma, min, max)        -> (alpha, beta)
//   - Distribution(spec)                           -> variates.Distribution

package margins

import (
	"fmt"

	"github.com/katalvlaran/mergesim/market"
	"github.com/katalvlaran/mergesim/matrix"
	"github.com/katalvlaran/mergesim/seedseq"
	"github.com/katalvlaran/mergesim/variates"
)

// Inputs are the row-aligned upstream columns firm-2 MNL margins depend on.
// Prices and OutsideProb are only read for MNL margins.
type Inputs struct {
	Shares      *matrix.Dense // rows × ≥2
	Prices      *matrix.Dense // rows × 2
	OutsideProb []float64     // rows
}

// Sample is the row-aligned margin output.
//   - Margins: rows × 2.
//   - Feasible: false where the MNL-derived firm-2 margin leaves [0, 1]. Rows are
//     kept; the assembler drops them.
type Sample struct {
	Margins  *matrix.Dense
	Feasible []bool
}

// BetaLocated returns the standard Beta shape parameters with mean mu and
// standard deviation sigma (method of moments).
// Complexity: O(1).
func BetaLocated(mu, sigma float64) (alpha, beta float64) {
	mul := (mu - mu*mu - sigma*sigma) / (sigma * sigma)

	return mu * mul, (1 - mu) * mul
}

// BetaLocatedBound returns the shape parameters of min + (max-min)·Beta(a, b)
// with mean mu and standard deviation sigma.
// Complexity: O(1).
func BetaLocatedBound(mu, sigma, lo, hi float64) (alpha, beta float64) {
	return BetaLocated((mu-lo)/(hi-lo), sigma/(hi-lo))
}

// Distribution maps a validated MarginSpec onto the base distribution drawn by
// the filler (before any bounded-beta rescale).
// Errors: *market.ConfigError from spec.Validate or an unknown Dist.
func Distribution(spec market.MarginSpec) (variates.Distribution, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	p := spec.Params
	switch spec.Dist {
	case market.MarginUniform:
		if len(p) == 0 {
			return variates.Uniform{Min: 0, Max: 1}, nil
		}

		return variates.Uniform{Min: p[0], Max: p[1]}, nil
	case market.MarginBeta:
		return variates.Beta{Alpha: p[0], Beta: p[1]}, nil
	case market.MarginBoundedBeta:
		a, b := BetaLocatedBound(p[0], p[1], p[2], p[3])

		return variates.Beta{Alpha: a, Beta: b}, nil
	case market.MarginEmpirical:
		return variates.Choice{Values: spec.Empirical.Obs, Weights: spec.Empirical.Weights}, nil
	default:
		return nil, market.NewConfigError("Margins.Dist", market.ErrInvalidSpec, "unknown value %d", spec.Dist)
	}
}

// Generate draws rows×2 margins and applies the firm-2 derivation.
// MAIN DESCRIPTION:
//   - Both columns are drawn i.i.d. from the base distribution, then bounded
//     beta draws are rescaled to min + (max-min)·raw.
//   - Firm2MNL with non-fixed recapture: pp = (1-outside)·s and
//     m2 = p1·m1·(1-pp1) / (p2·(1-pp2)); Feasible = 0 ≤ m2 ≤ 1.
//   - Firm2Symmetric: m2 = m1. Otherwise m2 is the independent draw.
//
// Implementation:
//   - Stage 1: resolve the base distribution (validates spec).
//   - Stage 2: validate Inputs shapes needed by the selected firm-2 mode.
//   - Stage 3: fill, rescale, derive firm 2.
//
// Errors:
//   - *market.ConfigError for invalid parameters.
//   - matrix.ErrNilMatrix / matrix.ErrDimensionMismatch for inconsistent inputs.
//
// Complexity:
//   - Time O(rows), Space O(rows).
func Generate(spec market.MarginSpec, recapture market.Recapture, in Inputs,
	seq *seedseq.SeedSequence, opts ...variates.Option) (*Sample, error) {
	dist, err := Distribution(spec)
	if err != nil {
		return nil, err
	}
	if err = matrix.ValidateNotNil(in.Shares); err != nil {
		return nil, fmt.Errorf("margins.Generate: shares: %w", err)
	}
	rows := in.Shares.Rows()
	mnl := spec.Firm2 == market.Firm2MNL && recapture != market.RecaptureFixed
	if mnl {
		if err = checkMNLInputs(in, rows); err != nil {
			return nil, fmt.Errorf("margins.Generate: %w", err)
		}
	}

	m, err := variates.Sample(rows, 2, dist, seq, opts...)
	if err != nil {
		return nil, fmt.Errorf("margins.Generate: %w", err)
	}

	if spec.Dist == market.MarginBoundedBeta {
		lo, hi := spec.Params[2], spec.Params[3]
		raw := m.RawData()
		for i := range raw {
			raw[i] = lo + (hi-lo)*raw[i]
		}
	}

	feasible := make([]bool, rows)
	switch {
	case mnl:
		for i := 0; i < rows; i++ {
			s, p, r := in.Shares.Row(i), in.Prices.Row(i), m.Row(i)
			inside := 1 - in.OutsideProb[i]
			pp0, pp1 := inside*s[0], inside*s[1]
			r[1] = p[0] * r[0] * (1 - pp0) / (p[1] * (1 - pp1))
			feasible[i] = r[1] >= 0 && r[1] <= 1
		}
	default:
		for i := 0; i < rows; i++ {
			feasible[i] = true
			if spec.Firm2 == market.Firm2Symmetric {
				r := m.Row(i)
				r[1] = r[0]
			}
		}
	}

	return &Sample{Margins: m, Feasible: feasible}, nil
}

// checkMNLInputs validates the columns the first-order condition reads.
func checkMNLInputs(in Inputs, rows int) error {
	if in.Shares.Cols() < 2 {
		return fmt.Errorf("shares have %d columns: %w", in.Shares.Cols(), matrix.ErrDimensionMismatch)
	}
	if err := matrix.ValidateSameRows(in.Shares, in.Prices); err != nil {
		return fmt.Errorf("prices: %w", err)
	}
	if err := matrix.ValidateCols(in.Prices, 2); err != nil {
		return fmt.Errorf("prices: %w", err)
	}
	if err := matrix.ValidateVecLen(in.OutsideProb, rows); err != nil {
		return fmt.Errorf("outside-good probability: %w", err)
	}

	return nil
}
