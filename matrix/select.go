// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Row-selection kernels used by the sample assembler: boolean-mask compression,
//     head truncation, column padding and scatter of stratum rows.
//   - Keep every row-aligned column of a sample in step: the same mask and the
//     same truncation are applied to matrices (SelectRows/Head) and to plain
//     slices (Compress/Truncate).
//
// Determinism & Performance:
//   - Fixed i→j traversal; output order equals input order.
//   - Every kernel allocates its result once.

package matrix

import "fmt"

// SelectRows returns a new matrix holding the rows of m where mask is true.
// Implementation:
//   - Stage 1: validate m non-nil and len(mask) == Rows().
//   - Stage 2: count survivors, allocate once.
//   - Stage 3: copy surviving rows in order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
//
// Complexity:
//   - Time O(r*c), Space O(k*c) for k survivors.
func SelectRows(m *Dense, mask []bool) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf("SelectRows", ErrNilMatrix)
	}
	if len(mask) != m.r {
		return nil, fmt.Errorf("SelectRows: mask len=%d rows=%d: %w", len(mask), m.r, ErrDimensionMismatch)
	}

	k := CountTrue(mask)
	out := &Dense{r: k, c: m.c, data: make([]float64, k*m.c)}
	dst := 0
	for i, keep := range mask {
		if !keep {
			continue
		}
		copy(out.data[dst*m.c:(dst+1)*m.c], m.data[i*m.c:(i+1)*m.c])
		dst++
	}

	return out, nil
}

// Head returns a no-copy view of the first n rows (all rows if n ≥ Rows()).
// Complexity: O(1).
func (m *Dense) Head(n int) *Dense {
	if n >= m.r {
		return m
	}
	if n < 0 {
		n = 0
	}

	return &Dense{r: n, c: m.c, data: m.data[: n*m.c : n*m.c]}
}

// Columns returns a new matrix made of the listed columns, in order.
// Errors: ErrOutOfRange for any invalid column index.
// Complexity: O(r*len(cols)).
func (m *Dense) Columns(cols ...int) (*Dense, error) {
	for _, j := range cols {
		if j < 0 || j >= m.c {
			return nil, fmt.Errorf("Columns(%d): %w", j, ErrOutOfRange)
		}
	}
	w := len(cols)
	if w == 0 {
		return nil, matrixErrorf("Columns", ErrInvalidDimensions)
	}
	out := &Dense{r: m.r, c: w, data: make([]float64, m.r*w)}
	for i := 0; i < m.r; i++ {
		src := m.data[i*m.c : (i+1)*m.c]
		dst := out.data[i*w : (i+1)*w]
		for k, j := range cols {
			dst[k] = src[j]
		}
	}

	return out, nil
}

// PadCols returns a copy of m widened to width columns; new cells hold fill.
// Errors: ErrInvalidDimensions if width < Cols().
// Complexity: O(r*width).
func PadCols(m *Dense, width int, fill float64) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf("PadCols", ErrNilMatrix)
	}
	if width < m.c {
		return nil, fmt.Errorf("PadCols: width=%d cols=%d: %w", width, m.c, ErrInvalidDimensions)
	}
	out := &Dense{r: m.r, c: width, data: make([]float64, m.r*width)}
	for i := 0; i < m.r; i++ {
		dst := out.data[i*width : (i+1)*width]
		copy(dst, m.data[i*m.c:(i+1)*m.c])
		for j := m.c; j < width; j++ {
			dst[j] = fill
		}
	}

	return out, nil
}

// ScatterRows writes row k of src into row rows[k] of dst; src narrower than
// dst is padded with fill in the trailing columns.
// MAIN DESCRIPTION:
//   - Pushes a stratum (all draws sharing one firm count) back into the full-size
//     arena at the rows matching that stratum.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(rows) != src.Rows() or src wider
//     than dst), ErrOutOfRange (target row index invalid).
//
// Complexity:
//   - Time O(len(rows)*dst.Cols()).
func ScatterRows(dst *Dense, rows []int, src *Dense, fill float64) error {
	if dst == nil || src == nil {
		return matrixErrorf("ScatterRows", ErrNilMatrix)
	}
	if len(rows) != src.r || src.c > dst.c {
		return fmt.Errorf("ScatterRows: rows=%d src=%dx%d dst=%dx%d: %w",
			len(rows), src.r, src.c, dst.r, dst.c, ErrDimensionMismatch)
	}
	for k, i := range rows {
		if i < 0 || i >= dst.r {
			return fmt.Errorf("ScatterRows: row %d: %w", i, ErrOutOfRange)
		}
		d := dst.data[i*dst.c : (i+1)*dst.c]
		copy(d, src.data[k*src.c:(k+1)*src.c])
		for j := src.c; j < dst.c; j++ {
			d[j] = fill
		}
	}

	return nil
}

// Compress returns the elements of xs where mask is true, in order.
// Errors: ErrDimensionMismatch when the lengths differ.
// Complexity: O(n).
func Compress[T any](xs []T, mask []bool) ([]T, error) {
	if len(xs) != len(mask) {
		return nil, fmt.Errorf("Compress: len=%d mask=%d: %w", len(xs), len(mask), ErrDimensionMismatch)
	}
	out := make([]T, 0, CountTrue(mask))
	for i, keep := range mask {
		if keep {
			out = append(out, xs[i])
		}
	}

	return out, nil
}

// Truncate returns xs[:n], or xs unchanged when n ≥ len(xs).
// Complexity: O(1).
func Truncate[T any](xs []T, n int) []T {
	if n >= len(xs) {
		return xs
	}

	return xs[:n:n]
}

// CountTrue returns the number of true entries in mask.
// Complexity: O(n).
func CountTrue(mask []bool) int {
	n := 0
	for _, b := range mask {
		if b {
			n++
		}
	}

	return n
}

// AndMask returns the element-wise conjunction of a and b.
// Errors: ErrDimensionMismatch when the lengths differ.
// Complexity: O(n).
func AndMask(a, b []bool) ([]bool, error) {
	if len(a) != len(b) {
		return nil, matrixErrorf("AndMask", ErrDimensionMismatch)
	}
	out := make([]bool, len(a))
	for i := range a {
		out[i] = a[i] && b[i]
	}

	return out, nil
}
