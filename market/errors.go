// SPDX-License-Identifier: MIT
// Package: market
//
// errors.go: sentinel errors and the ConfigError wrapper.
//
// Error policy:
//   • Only sentinel variables are matched; callers use errors.Is(err, ErrX).
//   • Configuration errors are wrapped in *ConfigError so the message names the field.
//   • Generators wrap data-consistency sentinels with fmt.Errorf("...: %w", ErrX)
//     and attach the failing parameters.

package market

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpec indicates a field value outside its domain (unknown enum,
	// non-positive sample size, probability outside [0,1], ...).
	ErrInvalidSpec = errors.New("market: invalid specification")

	// ErrIncompatibleSpec indicates two individually valid fields that cannot be
	// combined, e.g. MNL firm-2 margins with fixed recapture.
	ErrIncompatibleSpec = errors.New("market: incompatible specification")

	// ErrParamLength indicates a distribution parameter vector of the wrong length.
	ErrParamLength = errors.New("market: wrong number of distribution parameters")

	// ErrSeedCount indicates that fewer seed pools were supplied than the
	// specification consumes.
	ErrSeedCount = errors.New("market: insufficient seed sequences")

	// ErrShareSum indicates a share arena whose cells do not sum to its row count.
	ErrShareSum = errors.New("market: share draws do not sum to the sample size")

	// ErrDiversionOrder indicates a row where the larger diversion ratio does not
	// flow toward the larger merging firm.
	ErrDiversionOrder = errors.New("market: diversion ratios inconsistent with shares")
)

// ConfigError reports a configuration error against a named spec field.
type ConfigError struct {
	Field  string // dotted field path, e.g. "Margins.Params"
	Detail string // human-readable reason
	Err    error  // sentinel (ErrInvalidSpec, ErrIncompatibleSpec, ...)
}

// Error implements error.
func (e *ConfigError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}

	return fmt.Sprintf("%s: %s: %v", e.Field, e.Detail, e.Err)
}

// Unwrap exposes the sentinel to errors.Is.
func (e *ConfigError) Unwrap() error { return e.Err }

// configErrorf builds a *ConfigError with a formatted detail.
func configErrorf(field string, sentinel error, format string, args ...any) error {
	return &ConfigError{Field: field, Detail: fmt.Sprintf(format, args...), Err: sentinel}
}

// NewConfigError is configErrorf for other packages that validate their own inputs.
func NewConfigError(field string, sentinel error, format string, args ...any) error {
	return configErrorf(field, sentinel, format, args...)
}
