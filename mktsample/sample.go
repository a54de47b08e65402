// SPDX-License-Identifier: MIT
// Package: mergesim/mktsample
//
// sample.go: the assembled market sample and its summary statistics.

package mktsample

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mergesim/matrix"
	"gonum.org/v1/gonum/stat"
)

// MarketSample is the row-aligned result of Generate: row i of every field
// describes the same hypothetical merger.
type MarketSample struct {
	Shares      *matrix.Dense // n × 2 merging-firm shares
	Margins     *matrix.Dense // n × 2 price-cost margins
	Prices      *matrix.Dense // n × 2 prices
	FirmCounts  []int         // firms in the market; 0 for uniform shares
	OutsideProb []float64     // outside-good choice probability; NaN if n/a
	NthShare    []float64     // share of the n-th firm; NaN if n/a
	Diversion   *matrix.Dense // n × 2; column 0 is firm 1 → firm 2
	HHIPost     []float64     // post-merger HHI (fractions, not points)
	HHIDelta    []float64     // 2·s1·s2
}

// Len returns the number of rows.
func (m *MarketSample) Len() int { return m.Shares.Rows() }

// Summary holds column averages used to compare runs.
type Summary struct {
	Rows            int
	MeanShare       float64 // over both merging firms
	MeanMargin      float64
	MeanPrice       float64
	MeanDiversion   float64
	MeanFirmCount   float64
	MaxFirmCount    int
	MeanOutsideProb float64 // NaN when no row has one
	MeanHHIPost     float64
	MeanHHIDelta    float64
}

// String renders the summary on one line for logs and the CLI.
func (s Summary) String() string {
	return fmt.Sprintf("rows=%d share=%.7f margin=%.7f price=%.4f diversion=%.7f firms=%.4f (max %d) outside=%.7f hhi_post=%.7f hhi_delta=%.7f",
		s.Rows, s.MeanShare, s.MeanMargin, s.MeanPrice, s.MeanDiversion, s.MeanFirmCount, s.MaxFirmCount,
		s.MeanOutsideProb, s.MeanHHIPost, s.MeanHHIDelta)
}

// Summary computes the column averages. Means of an empty sample are NaN.
// Complexity: O(n).
func (m *MarketSample) Summary() Summary {
	s := Summary{
		Rows:            m.Len(),
		MeanShare:       denseMean(m.Shares),
		MeanMargin:      denseMean(m.Margins),
		MeanPrice:       denseMean(m.Prices),
		MeanDiversion:   denseMean(m.Diversion),
		MeanOutsideProb: nanMean(m.OutsideProb),
		MeanHHIPost:     nanMean(m.HHIPost),
		MeanHHIDelta:    nanMean(m.HHIDelta),
		MeanFirmCount:   math.NaN(),
	}
	if len(m.FirmCounts) > 0 {
		counts := make([]float64, len(m.FirmCounts))
		for i, n := range m.FirmCounts {
			counts[i] = float64(n)
			s.MaxFirmCount = max(s.MaxFirmCount, n)
		}
		s.MeanFirmCount = stat.Mean(counts, nil)
	}

	return s
}

func denseMean(d *matrix.Dense) float64 {
	v, err := matrix.Mean(d)
	if err != nil {
		return math.NaN()
	}

	return v
}

// nanMean averages the non-NaN values of xs; NaN when there are none.
func nanMean(xs []float64) float64 {
	vals := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			vals = append(vals, x)
		}
	}
	if len(vals) == 0 {
		return math.NaN()
	}

	return stat.Mean(vals, nil)
}
