// Package market defines the vocabulary shared by every generator: the
// distribution and derivation enums, the immutable SampleSpec, and the error
// taxonomy.
//
// Two classes of failure are distinguished:
//
//   - Configuration errors (ErrInvalidSpec, ErrIncompatibleSpec, ErrParamLength,
//     ErrSeedCount) are detected by SampleSpec.Validate before any random draw and
//     are reported as *ConfigError naming the offending field.
//   - Data-consistency errors (ErrShareSum, ErrDiversionOrder) are raised after
//     generation when a modelling invariant is broken. They signal a bug, are never
//     retried, and carry the state needed to reproduce the failing draw.
//
// Numerical edge cases (zero shares, margins outside [0,1]) are filtered by the
// generators and never surface as errors.
package market
