// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide the cache-friendly row-major buffer every generator fills: rows are
//     candidate draws, columns are per-firm values (offset = i*cols + j).
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Support no-copy row windows (RowsView) so parallel workers can own disjoint
//     row ranges of one caller-allocated buffer without locking.
//   - NaN is a legal cell value: it marks "not applicable" columns (e.g. the
//     residual share column of a Uniform-simplex sample).
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set/Row: O(1); Clone: O(r*c); RowsView: O(1).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxRowsView = "RowsView" // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Stable, human-friendly messages; preserves the sentinel via %w.
// Complexity: O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix of float64 values.
//   - r,c hold dimensions (rows, cols); r may be 0 (an empty, fully filtered sample).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts
	data []float64 // contiguous row-major storage (len == r*c)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for the buffer-of-draws with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>=0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Behavior highlights:
//   - Zero rows are legal: filters may discard every candidate draw.
//   - Zero columns are not: every sample carries at least one value per row.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows < 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	// make() zero-fills deterministically.
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFrom wraps an existing row-major slice without copying.
// len(data) must equal rows*cols.
// Complexity: O(1).
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	if rows < 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDenseFrom(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewDenseFrom(%d,%d): len=%d: %w", rows, cols, len(data), ErrDimensionMismatch)
	}

	return &Dense{r: rows, c: cols, data: data}, nil
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Never panics on out-of-range; returns a wrapped sentinel.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set writes v at (row, col) or returns ErrOutOfRange.
// NaN is accepted: it is the not-applicable marker.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Row returns row i as a slice aliasing the backing storage.
// MAIN DESCRIPTION:
//   - Hot-path accessor for generators: writes through the slice land in the matrix.
//
// Behavior highlights:
//   - Panics on an invalid index like a slice expression would; internal loops
//     iterate 0..Rows()-1 so the bound is structural.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Row(i int) []float64 {
	base := i * m.c

	return m.data[base : base+m.c : base+m.c]
}

// RawData exposes the flat row-major buffer (len == Rows()*Cols()).
// Mutations are visible in the matrix.
// Complexity: O(1).
func (m *Dense) RawData() []float64 { return m.data }

// RowsView returns a no-copy window over rows [r0, r0+n).
// MAIN DESCRIPTION:
//   - Partition primitive for parallel fills: disjoint windows never overlap in
//     the backing slice, so each worker may write its window without locks.
//
// Implementation:
//   - Stage 1: validate 0 ≤ r0, 0 ≤ n, r0+n ≤ Rows().
//   - Stage 2: reslice the backing buffer with a capped capacity.
//
// Errors:
//   - ErrOutOfRange for an invalid window.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) RowsView(r0, n int) (*Dense, error) {
	if r0 < 0 || n < 0 || r0+n > m.r {
		return nil, denseErrorf(ctxRowsView, r0, n, ErrOutOfRange)
	}
	lo, hi := r0*m.c, (r0+n)*m.c

	return &Dense{r: n, c: m.c, data: m.data[lo:hi:hi]}, nil
}

// Fill sets every cell to v.
// Complexity: O(r*c).
func (m *Dense) Fill(v float64) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Clone returns a deep copy of the matrix.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// String implements fmt.Stringer for debugging; one bracketed line per row.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
