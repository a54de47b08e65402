// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Public accessors return these sentinels and tests check them via
// errors.Is. No exported function panics on user-triggered error conditions.

package matrix

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "matrix: ..." so it can be grepped in logs.
// Wrap with matrixErrorf(tag, ErrX) at the detection site; callers match with
// errors.Is.

var (
	// ErrInvalidDimensions indicates a negative row count or a non-positive column count.
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible shapes between operands,
	// e.g. a mask whose length differs from the row count.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil *Dense (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)

// matrixErrorf wraps err with an operation tag: "<tag>: <err>".
// Complexity: O(1).
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
