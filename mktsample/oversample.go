// SPDX-License-Identifier: MIT
// Package: mergesim/mktsample
//
// oversample.go: candidate-row inflation for filters that discard draws.

package mktsample

import (
	"fmt"

	"github.com/katalvlaran/mergesim/market"
)

// Ratio is a positive rational Num/Den.
type Ratio struct {
	Num, Den int64
}

// One is the neutral ratio.
var One = Ratio{1, 1}

// Valid reports whether r is a ratio ≥ 1.
func (r Ratio) Valid() bool { return r.Den > 0 && r.Num >= r.Den }

// Float returns Num/Den.
func (r Ratio) Float() float64 { return float64(r.Num) / float64(r.Den) }

// Mul multiplies two ratios without reducing.
func (r Ratio) Mul(o Ratio) Ratio { return Ratio{r.Num * o.Num, r.Den * o.Den} }

// String renders "num/den".
func (r Ratio) String() string { return fmt.Sprintf("%d/%d", r.Num, r.Den) }

// Oversampling holds the inflation factor per discarding filter. Each factor is
// a tunable: it only has to exceed 1/(survival rate) of its filter, and larger
// values change run time, not the distribution of the returned rows.
//
// The defaults are sized for symmetric prices. Share-correlated prices
// (PricePositive, PriceNegative) widen revenue gaps, so the revenue-ratio test
// keeps only about 58% (uniform shares) to 63% (flat Dirichlet) of candidates
// and FilingRevenueRatio must be raised to about 2/1 for full-size samples.
type Oversampling struct {
	FilingNthFirm      Ratio // ≈ 1/0.6
	FilingRevenueRatio Ratio // ≈ 1/0.81
	MNL                Ratio // ≈ 1/0.8
}

// DefaultOversampling is the factor table used unless WithOversampling overrides it.
var DefaultOversampling = Oversampling{
	FilingNthFirm:      Ratio{5, 3},
	FilingRevenueRatio: Ratio{100, 81},
	MNL:                Ratio{5, 4},
}

// Valid reports whether every factor is a ratio ≥ 1.
func (o Oversampling) Valid() bool {
	return o.FilingNthFirm.Valid() && o.FilingRevenueRatio.Valid() && o.MNL.Valid()
}

// Factor returns the combined inflation for a filing test and firm-2 mode.
func (o Oversampling) Factor(test market.FilingTest, firm2 market.Firm2Margin) Ratio {
	f := One
	switch test {
	case market.FilingNthFirm:
		f = f.Mul(o.FilingNthFirm)
	case market.FilingRevenueRatio:
		f = f.Mul(o.FilingRevenueRatio)
	}
	if firm2 == market.Firm2MNL {
		f = f.Mul(o.MNL)
	}

	return f
}

// CandidateRows returns ⌈size · Factor(test, firm2)⌉ in integer arithmetic.
// Complexity: O(1).
func (o Oversampling) CandidateRows(size int, test market.FilingTest, firm2 market.Firm2Margin) int {
	f := o.Factor(test, firm2)

	return int((int64(size)*f.Num + f.Den - 1) / f.Den)
}
