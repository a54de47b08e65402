// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single source of truth for the shape checks generators run before
//    touching a buffer.
//  - Return wrapped sentinels so call sites can match with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateCols ensures m is non-nil and has exactly cols columns.
// Complexity: O(1).
func ValidateCols(m *Dense, cols int) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.c != cols {
		return validatorErrorf(fmt.Sprintf("ValidateCols: want %d, have %d", cols, m.c), ErrDimensionMismatch)
	}

	return nil
}

// ValidateSameRows ensures every matrix is non-nil and has the same row count
// as the first one.
// Complexity: O(len(ms)).
func ValidateSameRows(ms ...*Dense) error {
	if len(ms) == 0 {
		return nil
	}
	for _, m := range ms {
		if err := ValidateNotNil(m); err != nil {
			return err
		}
	}
	for _, m := range ms[1:] {
		if m.r != ms[0].r {
			return validatorErrorf("ValidateSameRows", ErrDimensionMismatch)
		}
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return validatorErrorf(fmt.Sprintf("ValidateVecLen: want %d, have %d", n, len(x)), ErrDimensionMismatch)
	}

	return nil
}
