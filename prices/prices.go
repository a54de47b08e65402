// SPDX-License-Identifier: MIT

// Package prices draws merging-firm prices and evaluates premerger filing tests.
//
// Prices take integer values 1..MaxPriceRatio. They are either constant
// (symmetric), tied to shares (positive or negative), or drawn independently of
// shares from their own seed pool. The filing mask marks rows whose merging
// firms would have to notify under the selected test.
package prices

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mergesim/market"
	"github.com/katalvlaran/mergesim/matrix"
	"github.com/katalvlaran/mergesim/seedseq"
	"github.com/katalvlaran/mergesim/variates"
)

const (
	// MaxPriceRatio bounds prices to {1,…,MaxPriceRatio}.
	MaxPriceRatio = 5.0

	// RevenueRatio is the 10-to-1 size ratio of the filing tests.
	RevenueRatio = 10.0

	// revenueRatioInv is 1/RevenueRatio.
	revenueRatioInv = 1 / RevenueRatio
)

// Sample is the row-aligned price output.
//   - Prices: rows × 2, merging firms 1 and 2.
//   - NthPrice: price of the n-th firm (NaN where its share is not applicable).
//   - Filing: true where the row passes the filing test.
type Sample struct {
	Prices   *matrix.Dense
	NthPrice []float64
	Filing   []bool
}

// Generate computes prices for each row of shares and evaluates the filing test.
// Implementation:
//   - Stage 1: validate shapes (shares has ≥ 2 columns, nthShare matches rows).
//   - Stage 2: prices per sym; PriceIndependent draws rows×3 from {1..5} with seq.
//   - Stage 3: revenues = price × share; apply the filing test row by row.
//
// Errors:
//   - matrix.ErrNilMatrix / matrix.ErrDimensionMismatch for inconsistent inputs.
//   - *market.ConfigError for an unknown sym or test, or a nil seq with
//     PriceIndependent (market.ErrSeedCount).
//
// Complexity:
//   - Time O(rows), Space O(rows).
func Generate(shares *matrix.Dense, nthShare []float64, sym market.PriceSym, test market.FilingTest,
	seq *seedseq.SeedSequence, opts ...variates.Option) (*Sample, error) {
	if err := matrix.ValidateNotNil(shares); err != nil {
		return nil, fmt.Errorf("prices.Generate: %w", err)
	}
	rows := shares.Rows()
	if shares.Cols() < 2 {
		return nil, fmt.Errorf("prices.Generate: shares have %d columns: %w", shares.Cols(), matrix.ErrDimensionMismatch)
	}
	if err := matrix.ValidateVecLen(nthShare, rows); err != nil {
		return nil, fmt.Errorf("prices.Generate: nth share: %w", err)
	}

	p, err := matrix.NewDense(rows, 2)
	if err != nil {
		return nil, err
	}
	nthPrice := make([]float64, rows)

	switch sym {
	case market.PriceSymmetric:
		p.Fill(1)
		for i := range nthPrice {
			nthPrice[i] = 1
		}
	case market.PricePositive, market.PriceNegative:
		price := func(s float64) float64 { return math.Ceil(s * MaxPriceRatio) }
		if sym == market.PriceNegative {
			price = func(s float64) float64 { return math.Ceil((1 - s) * MaxPriceRatio) }
		}
		for i := 0; i < rows; i++ {
			s, dst := shares.Row(i), p.Row(i)
			dst[0], dst[1] = price(s[0]), price(s[1])
			nthPrice[i] = price(nthShare[i])
		}
	case market.PriceIndependent:
		if seq == nil {
			return nil, market.NewConfigError("PriceSym", market.ErrSeedCount, "%s prices need a seed sequence", sym)
		}
		draws, err := variates.Sample(rows, 3, variates.Choice{Values: []float64{1, 2, 3, 4, 5}}, seq, opts...)
		if err != nil {
			return nil, fmt.Errorf("prices.Generate: %w", err)
		}
		for i := 0; i < rows; i++ {
			d, dst := draws.Row(i), p.Row(i)
			dst[0], dst[1] = d[0], d[1]
			nthPrice[i] = d[2]
		}
	default:
		return nil, market.NewConfigError("PriceSym", market.ErrInvalidSpec, "unknown value %d", sym)
	}

	filing, err := FilingMask(shares, p, nthShare, nthPrice, test)
	if err != nil {
		return nil, err
	}

	return &Sample{Prices: p, NthPrice: nthPrice, Filing: filing}, nil
}

// FilingMask evaluates test for every row.
// MAIN DESCRIPTION:
//   - FilingRevenueRatio: round4(min rev / max rev) ≥ 1/10.
//   - FilingNthFirm: the n-th firm stands in for the smaller party of the size
//     test. Sorted merging-firm revenues over the n-th firm's revenue, rounded to
//     4 places, must exceed 1 and 10 respectively; alternatively the smaller
//     merging-firm share is at least 10%. NaN n-th firm data fails the size test.
//   - FilingNone: every row passes.
//
// Errors:
//   - *market.ConfigError for an unknown test.
//
// Complexity:
//   - Time O(rows), Space O(rows).
func FilingMask(shares, p *matrix.Dense, nthShare, nthPrice []float64, test market.FilingTest) ([]bool, error) {
	rows := shares.Rows()
	mask := make([]bool, rows)

	switch test {
	case market.FilingNone:
		for i := range mask {
			mask[i] = true
		}
	case market.FilingRevenueRatio:
		for i := 0; i < rows; i++ {
			lo, hi := revenues(shares.Row(i), p.Row(i))
			mask[i] = round4(lo/hi) >= revenueRatioInv
		}
	case market.FilingNthFirm:
		for i := 0; i < rows; i++ {
			s := shares.Row(i)
			lo, hi := revenues(s, p.Row(i))
			nthRev := nthPrice[i] * nthShare[i]
			size := round4(lo/nthRev) > 1 && round4(hi/nthRev) > RevenueRatio
			mask[i] = size || math.Min(s[0], s[1]) >= revenueRatioInv
		}
	default:
		return nil, market.NewConfigError("Filing", market.ErrInvalidSpec, "unknown value %d", test)
	}

	return mask, nil
}

// revenues returns the merging firms' revenues in ascending order.
func revenues(s, p []float64) (lo, hi float64) {
	lo, hi = s[0]*p[0], s[1]*p[1]
	if lo > hi {
		lo, hi = hi, lo
	}

	return lo, hi
}

// round4 rounds half to even at 4 decimal places.
func round4(x float64) float64 {
	return math.RoundToEven(x*1e4) / 1e4
}
