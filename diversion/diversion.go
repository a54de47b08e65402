// SPDX-License-Identifier: MIT
// Package: mergesim/diversion
//
// diversion.go: merging-firm diversion ratios under three recapture models.
//
// Exposed API:
//   - Ratios(shares, rate, mode, outside) -> *Sample
//
// Column convention:
//   - Ratios[i][0] is the diversion from firm 1 to firm 2, Ratios[i][1] from firm 2
//     to firm 1.

package diversion

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mergesim/market"
	"github.com/katalvlaran/mergesim/matrix"
	"gonum.org/v1/gonum/floats"
)

// Sample is the row-aligned diversion output.
type Sample struct {
	Ratios *matrix.Dense // rows × 2
	// OutsideProb is 1-k for inside-out recapture and the supplied outside-good
	// probability otherwise (NaN when none was supplied).
	OutsideProb []float64
}

// Ratios converts merging-firm shares into diversion ratios.
// MAIN DESCRIPTION:
//   - Fixed (proportional): d_i = r · s_j / (1 − s_i).
//   - Inside-out: k = r / (1 − (1−r)·min(s1,s2)), pp = k·s, d_i = pp_j / (1 − pp_i).
//   - Outside-in: k = 1 − outside, then as inside-out.
//
// Implementation:
//   - Stage 1: validate shapes; outside must have one value per row for
//     outside-in and may be nil otherwise.
//   - Stage 2: compute both ratios per row.
//   - Stage 3: check that each row either has s1+s2 == 1 (15 decimals) or
//     argmin(s) == argmax(d).
//
// Errors:
//   - matrix.ErrNilMatrix / matrix.ErrDimensionMismatch for bad shapes.
//   - *market.ConfigError for an invalid rate or mode. Outside-in never reads rate.
//   - market.ErrDiversionOrder with the first failing row and the failure count.
//
// Complexity:
//   - Time O(rows), Space O(rows).
func Ratios(shares *matrix.Dense, rate float64, mode market.Recapture, outside []float64) (*Sample, error) {
	if err := matrix.ValidateNotNil(shares); err != nil {
		return nil, fmt.Errorf("diversion.Ratios: %w", err)
	}
	rows := shares.Rows()
	if shares.Cols() < 2 {
		return nil, fmt.Errorf("diversion.Ratios: shares have %d columns: %w", shares.Cols(), matrix.ErrDimensionMismatch)
	}
	if mode != market.RecaptureOutsideIn && !(rate > 0 && rate <= 1) {
		return nil, market.NewConfigError("RecaptureRate", market.ErrInvalidSpec, "must lie in (0, 1], got %g", rate)
	}
	switch {
	case mode == market.RecaptureOutsideIn:
		if err := matrix.ValidateVecLen(outside, rows); err != nil {
			return nil, fmt.Errorf("diversion.Ratios: outside-good probability: %w", err)
		}
	case outside != nil:
		if err := matrix.ValidateVecLen(outside, rows); err != nil {
			return nil, fmt.Errorf("diversion.Ratios: outside-good probability: %w", err)
		}
	}

	d, err := matrix.NewDense(rows, 2)
	if err != nil {
		return nil, err
	}
	out := make([]float64, rows)

	for i := 0; i < rows; i++ {
		s, dst := shares.Row(i)[:2], d.Row(i)
		switch mode {
		case market.RecaptureFixed:
			dst[0] = rate * s[1] / (1 - s[0])
			dst[1] = rate * s[0] / (1 - s[1])
			out[i] = passThrough(outside, i)
		case market.RecaptureInsideOut:
			k := rate / (1 - (1-rate)*math.Min(s[0], s[1]))
			purchase(dst, s, k)
			out[i] = 1 - k
		case market.RecaptureOutsideIn:
			purchase(dst, s, 1-outside[i])
			out[i] = outside[i]
		default:
			return nil, market.NewConfigError("Shares.Recapture", market.ErrInvalidSpec, "unknown value %d", mode)
		}
	}

	if err = CheckOrder(shares, d); err != nil {
		return nil, err
	}

	return &Sample{Ratios: d, OutsideProb: out}, nil
}

// purchase writes d_i = pp_j / (1 − pp_i) with pp = k·s.
func purchase(dst, s []float64, k float64) {
	pp0, pp1 := k*s[0], k*s[1]
	dst[0] = pp1 / (1 - pp0)
	dst[1] = pp0 / (1 - pp1)
}

func passThrough(outside []float64, i int) float64 {
	if outside == nil {
		return math.NaN()
	}

	return outside[i]
}

// CheckOrder verifies that diversion flows more strongly toward the larger
// merging firm: for every row, s1+s2 rounds to 1 at 15 decimals, or the index of
// the smaller share equals the index of the larger ratio (first index on ties).
// Errors: market.ErrDiversionOrder naming the first failing row and the count.
// Complexity: O(rows).
func CheckOrder(shares, ratios *matrix.Dense) error {
	var (
		first = -1
		bad   int
	)
	for i := 0; i < shares.Rows(); i++ {
		s, d := shares.Row(i)[:2], ratios.Row(i)
		if roundTo(s[0]+s[1], 15) == 1 || floats.MinIdx(s) == floats.MaxIdx(d) {
			continue
		}
		if first < 0 {
			first = i
		}
		bad++
	}
	if bad == 0 {
		return nil
	}
	s, d := shares.Row(first)[:2], ratios.Row(first)

	return fmt.Errorf("diversion: %d rows fail, first row %d shares=%v ratios=%v: %w",
		bad, first, s, d, market.ErrDiversionOrder)
}

// roundTo rounds half to even at the given number of decimals.
func roundTo(x float64, places int) float64 {
	p := math.Pow10(places)

	return math.RoundToEven(x*p) / p
}
