// Package matrix provides the row-major float64 buffer used as the
// buffer-of-draws by every sampler in this module.
//
// The matrix package provides:
//
//   - Dense, a flat row-major arena (rows = candidate draws, columns = per-firm
//     values) with bounds-checked At/Set and no-copy row windows for parallel fills.
//   - Row-selection kernels (SelectRows, Head, ScatterRows, PadCols, Compress)
//     that keep the columns of a sample row-aligned through filtering.
//   - Reductions (Sum, RowSums, RowSumSquares, ColMeans) for invariants and
//     concentration statistics.
//
// NaN is a legal value and marks not-applicable cells.
package matrix
