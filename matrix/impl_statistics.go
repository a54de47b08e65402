// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the reductions the samplers and the assembler need: grand sum (share
//     arena invariant), per-row sums and sums of squares (HHI), per-column means
//     (summary statistics).
//
// Exposed API:
//   - Sum(X)            -> float64    // Σ_ij X[i,j]
//   - RowSums(X)        -> []float64  // Σ_j X[i,j]
//   - RowSumSquares(X)  -> []float64  // Σ_j X[i,j]², NaN cells contribute 0
//   - ColMeans(X)       -> []float64  // Σ_i X[i,j] / r
//   - Mean(X)           -> float64    // grand mean
//
// Determinism & Performance:
//   - Fixed i→j traversal; row kernels delegate to gonum/floats on the row slice.
//   - Zero-row matrices are legal: sums are 0, means are NaN.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Operation name constants for unified error wrapping.
const (
	opSum           = "Sum"
	opRowSums       = "RowSums"
	opRowSumSquares = "RowSumSquares"
	opColMeans      = "ColMeans"
)

// Sum returns the sum of every cell.
// Implementation:
//   - Stage 1: validate X non-nil.
//   - Stage 2: accumulate row sums in row order (floats.Sum per row keeps the
//     accumulation order identical across calls).
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func Sum(X *Dense) (float64, error) {
	if X == nil {
		return 0, matrixErrorf(opSum, ErrNilMatrix)
	}
	var s float64
	for i := 0; i < X.r; i++ {
		s += floats.Sum(X.Row(i))
	}

	return s, nil
}

// RowSums returns Σ_j X[i,j] for each row.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func RowSums(X *Dense) ([]float64, error) {
	if X == nil {
		return nil, matrixErrorf(opRowSums, ErrNilMatrix)
	}
	out := make([]float64, X.r)
	for i := range out {
		out[i] = floats.Sum(X.Row(i))
	}

	return out, nil
}

// RowSumSquares returns Σ_j X[i,j]² for each row, skipping NaN cells.
// MAIN DESCRIPTION:
//   - Herfindahl kernel: padding columns (0) and not-applicable markers (NaN)
//     contribute nothing.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r).
func RowSumSquares(X *Dense) ([]float64, error) {
	if X == nil {
		return nil, matrixErrorf(opRowSumSquares, ErrNilMatrix)
	}
	out := make([]float64, X.r)
	var i int
	var s float64
	for i = 0; i < X.r; i++ {
		s = 0
		for _, v := range X.Row(i) {
			if math.IsNaN(v) {
				continue
			}
			s += v * v
		}
		out[i] = s
	}

	return out, nil
}

// ColMeans returns the per-column mean; NaN for every column when Rows()==0.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func ColMeans(X *Dense) ([]float64, error) {
	if X == nil {
		return nil, matrixErrorf(opColMeans, ErrNilMatrix)
	}
	means := make([]float64, X.c)
	if X.r == 0 {
		for j := range means {
			means[j] = math.NaN()
		}

		return means, nil
	}
	for i := 0; i < X.r; i++ {
		floats.Add(means, X.Row(i))
	}
	floats.Scale(1/float64(X.r), means)

	return means, nil
}

// Mean returns the grand mean of X; NaN when X has no cells.
// Errors: ErrNilMatrix.
// Complexity: O(r*c).
func Mean(X *Dense) (float64, error) {
	s, err := Sum(X)
	if err != nil {
		return 0, err
	}
	if len(X.data) == 0 {
		return math.NaN(), nil
	}

	return s / float64(len(X.data)), nil
}
