// SPDX-License-Identifier: MIT
// Package: market
//
// spec.go: the immutable sample specification and its eager validation.
//
// Purpose:
//   - Carry every knob of one generation run as a plain value (copyable, comparable
//     by field, decodable from YAML through the enum TextUnmarshalers).
//   - Reject invalid and incompatible combinations before any random draw.

package market

import (
	"math"
)

// Defaults for a fresh SampleSpec.
const (
	DefaultSampleSize    = 1_000_000
	DefaultRecaptureRate = 0.80

	// MinFirmCount is the firm count of the first weight bucket.
	MinFirmCount = 2

	// constrainedMinWeight is the normalized weight at or below which the
	// constrained flat Dirichlet drops a firm-count bucket.
	constrainedMinWeight = 0.03
)

// DefaultFirmCountWeights are the firm-count weights (5,4,3,2,1)/15 for firm
// counts 2..6. Callers must not modify the slice.
var DefaultFirmCountWeights = []float64{5.0 / 15, 4.0 / 15, 3.0 / 15, 2.0 / 15, 1.0 / 15}

// defaultUniformBuckets is the number of firm-count buckets used when no
// weights are given.
const defaultUniformBuckets = 5

// ShareSpec configures the share distribution.
type ShareSpec struct {
	Dist      ShareDist `yaml:"dist"`
	Recapture Recapture `yaml:"recapture"`
	// FirmCountWeights[k] is the (unnormalized) weight of firm count k+2.
	// Nil means uniform weights over firm counts 2..6. Ignored for ShareUniform.
	FirmCountWeights []float64 `yaml:"firm_count_weights"`
}

// EmpiricalMargins is an externally supplied margin sample to resample from.
type EmpiricalMargins struct {
	Obs     []float64 `yaml:"obs"`
	Weights []float64 `yaml:"weights"` // optional; len(Obs) when present
}

// MarginSpec configures the price-cost margin distribution.
//
// Params by distribution:
//
//	MarginUniform      []            or [min, max]
//	MarginBeta         [alpha, beta]
//	MarginBoundedBeta  [mu, sigma, min, max]
//	MarginEmpirical    []            (observations in Empirical)
type MarginSpec struct {
	Dist      MarginDist        `yaml:"dist"`
	Firm2     Firm2Margin       `yaml:"firm2"`
	Params    []float64         `yaml:"params"`
	Empirical *EmpiricalMargins `yaml:"empirical"`
}

// SampleSpec is the complete configuration of one market sample.
type SampleSpec struct {
	SampleSize    int        `yaml:"sample_size"`
	RecaptureRate float64    `yaml:"recapture_rate"` // (0, 1]; unused with outside-in recapture
	PriceSym      PriceSym   `yaml:"price_sym"`
	Shares        ShareSpec  `yaml:"shares"`
	Margins       MarginSpec `yaml:"margins"`
	Filing        FilingTest `yaml:"filing_test"`
}

// DefaultSampleSpec returns a valid spec: one million uniform-simplex draws,
// proportional recapture at 0.80, symmetric prices, i.i.d. Uniform(0,1)
// margins and no filing test.
func DefaultSampleSpec() SampleSpec {
	return SampleSpec{
		SampleSize:    DefaultSampleSize,
		RecaptureRate: DefaultRecaptureRate,
		PriceSym:      PriceSymmetric,
		Shares:        ShareSpec{Dist: ShareUniform, Recapture: RecaptureFixed},
		Margins:       MarginSpec{Dist: MarginUniform, Firm2: Firm2IID},
		Filing:        FilingNone,
	}
}

// Validate checks every field and the cross-field constraints.
// Implementation:
//   - Stage 1: scalar domains (size, rate) and enum ranges.
//   - Stage 2: cross-field compatibility (outside-in needs Dirichlet shares,
//     MNL margins need non-fixed recapture).
//   - Stage 3: firm-count weights and margin parameter vectors.
//
// Errors:
//   - *ConfigError wrapping ErrInvalidSpec, ErrIncompatibleSpec or ErrParamLength.
//
// Complexity:
//   - O(len(weights) + len(params) + len(empirical)).
func (s SampleSpec) Validate() error {
	if s.SampleSize <= 0 {
		return configErrorf("SampleSize", ErrInvalidSpec, "must be positive, got %d", s.SampleSize)
	}
	if s.Shares.Recapture != RecaptureOutsideIn && !(s.RecaptureRate > 0 && s.RecaptureRate <= 1) {
		return configErrorf("RecaptureRate", ErrInvalidSpec, "must lie in (0, 1], got %g", s.RecaptureRate)
	}
	switch {
	case !validEnum(priceSymNames, int(s.PriceSym)):
		return configErrorf("PriceSym", ErrInvalidSpec, "unknown value %d", s.PriceSym)
	case !validEnum(shareDistNames, int(s.Shares.Dist)):
		return configErrorf("Shares.Dist", ErrInvalidSpec, "unknown value %d", s.Shares.Dist)
	case !validEnum(recaptureNames, int(s.Shares.Recapture)):
		return configErrorf("Shares.Recapture", ErrInvalidSpec, "unknown value %d", s.Shares.Recapture)
	case !validEnum(marginDistNames, int(s.Margins.Dist)):
		return configErrorf("Margins.Dist", ErrInvalidSpec, "unknown value %d", s.Margins.Dist)
	case !validEnum(firm2Names, int(s.Margins.Firm2)):
		return configErrorf("Margins.Firm2", ErrInvalidSpec, "unknown value %d", s.Margins.Firm2)
	case !validEnum(filingNames, int(s.Filing)):
		return configErrorf("Filing", ErrInvalidSpec, "unknown value %d", s.Filing)
	}

	if s.Shares.Recapture == RecaptureOutsideIn && !s.Shares.Dist.IsDirichlet() {
		return configErrorf("Shares.Recapture", ErrIncompatibleSpec,
			"%s recapture requires a Dirichlet share distribution, got %s", s.Shares.Recapture, s.Shares.Dist)
	}
	if s.Margins.Firm2 == Firm2MNL && s.Shares.Recapture == RecaptureFixed {
		return configErrorf("Margins.Firm2", ErrIncompatibleSpec,
			"%s firm-2 margins cannot be combined with %s recapture", s.Margins.Firm2, s.Shares.Recapture)
	}

	if s.Shares.Dist.IsDirichlet() {
		if _, _, err := s.Shares.FirmCounts(); err != nil {
			return err
		}
	}

	return s.Margins.Validate()
}

// FirmCounts returns the firm-count keys and their normalized probabilities.
// MAIN DESCRIPTION:
//   - Bucket k carries firm count k+2. Buckets with zero normalized weight are
//     dropped; the constrained flat Dirichlet also drops buckets at or below 3%
//     and renormalizes the survivors.
//
// Errors:
//   - *ConfigError{Field: "Shares.FirmCountWeights"} wrapping ErrInvalidSpec for
//     negative, non-finite or all-zero weights.
//
// Complexity:
//   - O(len(FirmCountWeights)).
func (s ShareSpec) FirmCounts() (keys []int, probs []float64, err error) {
	const field = "Shares.FirmCountWeights"

	w := s.FirmCountWeights
	if w == nil {
		w = make([]float64, defaultUniformBuckets)
		for i := range w {
			w[i] = 1
		}
	}
	if len(w) == 0 {
		return nil, nil, configErrorf(field, ErrInvalidSpec, "empty weight vector")
	}

	var total float64
	for i, v := range w {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, configErrorf(field, ErrInvalidSpec, "weight %d is %g", i, v)
		}
		total += v
	}
	if total <= 0 {
		return nil, nil, configErrorf(field, ErrInvalidSpec, "weights sum to zero")
	}

	minW := 0.0
	if s.Dist == ShareDirFlatConstrained {
		minW = constrainedMinWeight
	}
	var kept float64
	for i, v := range w {
		if p := v / total; p > minW {
			keys = append(keys, MinFirmCount+i)
			probs = append(probs, p)
			kept += p
		}
	}
	if len(keys) == 0 {
		return nil, nil, configErrorf(field, ErrInvalidSpec, "no firm-count weight exceeds %g", minW)
	}
	for i := range probs {
		probs[i] /= kept
	}

	return keys, probs, nil
}

// ParamCount returns the parameter-vector lengths accepted for d.
func (d MarginDist) ParamCount() []int {
	switch d {
	case MarginUniform:
		return []int{0, 2}
	case MarginBeta:
		return []int{2}
	case MarginBoundedBeta:
		return []int{4}
	default:
		return []int{0}
	}
}

// Validate checks Params against Dist and, for empirical margins, the supplied data.
// Errors: *ConfigError wrapping ErrParamLength or ErrInvalidSpec.
func (m MarginSpec) Validate() error {
	n := len(m.Params)
	ok := false
	for _, want := range m.Dist.ParamCount() {
		ok = ok || n == want
	}
	if !ok {
		return configErrorf("Margins.Params", ErrParamLength,
			"%s takes %v parameters, got %d", m.Dist, m.Dist.ParamCount(), n)
	}
	for i, v := range m.Params {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return configErrorf("Margins.Params", ErrInvalidSpec, "parameter %d is %g", i, v)
		}
	}

	switch m.Dist {
	case MarginUniform:
		if n == 2 && !(m.Params[0] < m.Params[1]) {
			return configErrorf("Margins.Params", ErrInvalidSpec, "uniform bounds need min < max, got %v", m.Params)
		}
	case MarginBeta:
		if m.Params[0] <= 0 || m.Params[1] <= 0 {
			return configErrorf("Margins.Params", ErrInvalidSpec, "beta shapes must be positive, got %v", m.Params)
		}
	case MarginBoundedBeta:
		mu, sigma, lo, hi := m.Params[0], m.Params[1], m.Params[2], m.Params[3]
		if !(lo < mu && mu < hi) || sigma <= 0 {
			return configErrorf("Margins.Params", ErrInvalidSpec,
				"bounded beta needs min < mu < max and sigma > 0, got %v", m.Params)
		}
		// Positive shapes require sigma² < (mu-min)(max-mu).
		if sigma*sigma >= (mu-lo)*(hi-mu) {
			return configErrorf("Margins.Params", ErrInvalidSpec,
				"sigma %g too large for mean %g on [%g, %g]", sigma, mu, lo, hi)
		}
	case MarginEmpirical:
		return m.Empirical.validate()
	}

	return nil
}

func (e *EmpiricalMargins) validate() error {
	if e == nil || len(e.Obs) == 0 {
		return configErrorf("Margins.Empirical", ErrInvalidSpec, "empirical margins need observations")
	}
	if e.Weights != nil && len(e.Weights) != len(e.Obs) {
		return configErrorf("Margins.Empirical.Weights", ErrParamLength,
			"%d weights for %d observations", len(e.Weights), len(e.Obs))
	}
	var total float64
	for i, w := range e.Weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return configErrorf("Margins.Empirical.Weights", ErrInvalidSpec, "weight %d is %g", i, w)
		}
		total += w
	}
	if e.Weights != nil && total <= 0 {
		return configErrorf("Margins.Empirical.Weights", ErrInvalidSpec, "weights sum to zero")
	}

	return nil
}
