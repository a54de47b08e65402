// SPDX-License-Identifier: MIT

// Package market: enumerations for distributions and derivation modes.
// Every enum renders to and parses from its canonical name (TextMarshaler /
// TextUnmarshaler), so YAML configs can spell them out.
package market

import (
	"fmt"
	"strings"
)

// ShareDist selects the market-share distribution.
type ShareDist int

const (
	// ShareUniform draws merging-firm shares uniformly on the simplex s1+s2<1.
	ShareUniform ShareDist = iota
	// ShareDirFlat draws Dirichlet(1,…,1) shares stratified by firm count.
	ShareDirFlat
	// ShareDirFlatConstrained is ShareDirFlat with firm-count buckets of weight ≤ 3% dropped.
	ShareDirFlatConstrained
	// ShareDirAsymmetric uses graduated shapes 2.0 (6 firms), 1.5 (5), 1.25 thereafter.
	ShareDirAsymmetric
	// ShareDirConditional gives the merging firms shape 2.5 and splits one unit among the rest.
	ShareDirConditional
)

var shareDistNames = []string{"uniform", "dirichlet-flat", "dirichlet-flat-constrained", "dirichlet-asymmetric", "dirichlet-conditional"}

// IsDirichlet reports whether d is one of the stratified Dirichlet variants.
func (d ShareDist) IsDirichlet() bool { return d >= ShareDirFlat && d <= ShareDirConditional }

func (d ShareDist) String() string               { return enumName(shareDistNames, int(d), "ShareDist") }
func (d ShareDist) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
func (d *ShareDist) UnmarshalText(b []byte) error {
	return parseEnum(shareDistNames, b, (*int)(d), "ShareDist")
}

// Recapture selects how diversion ratios are derived from shares.
type Recapture int

const (
	// RecaptureInsideOut derives the outside-good probability from the recapture
	// rate and the smaller merging-firm share.
	RecaptureInsideOut Recapture = iota
	// RecaptureOutsideIn reads the outside-good probability from an extra Dirichlet column.
	RecaptureOutsideIn
	// RecaptureFixed applies the recapture rate proportionally to shares.
	// Its canonical name is "proportional"; "fixed" parses to the same value.
	RecaptureFixed
)

var recaptureNames = []string{"inside-out", "outside-in", "proportional"}

func (r Recapture) String() string               { return enumName(recaptureNames, int(r), "Recapture") }
func (r Recapture) MarshalText() ([]byte, error) { return []byte(r.String()), nil }
func (r *Recapture) UnmarshalText(b []byte) error {
	if strings.EqualFold(strings.TrimSpace(string(b)), "fixed") {
		*r = RecaptureFixed

		return nil
	}

	return parseEnum(recaptureNames, b, (*int)(r), "Recapture")
}

// PriceSym selects how prices relate to shares.
type PriceSym int

const (
	// PriceSymmetric sets every price to 1.
	PriceSymmetric PriceSym = iota
	// PriceIndependent draws prices independently over {1,…,5}.
	PriceIndependent
	// PriceNegative makes prices fall with share: ceil((1-s)·5).
	PriceNegative
	// PricePositive makes prices rise with share: ceil(s·5).
	PricePositive
)

var priceSymNames = []string{"symmetric", "independent", "negative", "positive"}

// NeedsStream reports whether prices consume their own random stream.
func (p PriceSym) NeedsStream() bool { return p == PriceIndependent }

func (p PriceSym) String() string               { return enumName(priceSymNames, int(p), "PriceSym") }
func (p PriceSym) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
func (p *PriceSym) UnmarshalText(b []byte) error {
	return parseEnum(priceSymNames, b, (*int)(p), "PriceSym")
}

// MarginDist selects the price-cost margin distribution.
type MarginDist int

const (
	// MarginUniform draws margins from Uniform(min, max); default [0,1].
	MarginUniform MarginDist = iota
	// MarginBeta draws margins from Beta(alpha, beta).
	MarginBeta
	// MarginBoundedBeta draws min+(max-min)·Beta(a,b) with (a,b) matched to (mu, sigma).
	MarginBoundedBeta
	// MarginEmpirical resamples caller-supplied margin observations.
	MarginEmpirical
)

var marginDistNames = []string{"uniform", "beta", "bounded-beta", "empirical"}

func (d MarginDist) String() string               { return enumName(marginDistNames, int(d), "MarginDist") }
func (d MarginDist) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
func (d *MarginDist) UnmarshalText(b []byte) error {
	return parseEnum(marginDistNames, b, (*int)(d), "MarginDist")
}

// Firm2Margin selects how the second merging firm's margin is derived.
type Firm2Margin int

const (
	// Firm2IID draws firm 2's margin independently.
	Firm2IID Firm2Margin = iota
	// Firm2MNL derives firm 2's margin from the MNL first-order condition.
	Firm2MNL
	// Firm2Symmetric copies firm 1's margin.
	Firm2Symmetric
)

var firm2Names = []string{"iid", "mnl", "symmetric"}

func (f Firm2Margin) String() string               { return enumName(firm2Names, int(f), "Firm2Margin") }
func (f Firm2Margin) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
func (f *Firm2Margin) UnmarshalText(b []byte) error {
	return parseEnum(firm2Names, b, (*int)(f), "Firm2Margin")
}

// FilingTest selects the premerger-notification eligibility screen.
type FilingTest int

const (
	// FilingNone accepts every draw.
	FilingNone FilingTest = iota
	// FilingNthFirm anchors the size test on the n-th firm's revenue.
	FilingNthFirm
	// FilingRevenueRatio requires merging-firm revenues within a 10:1 ratio.
	FilingRevenueRatio
)

var filingNames = []string{"none", "nth-firm", "revenue-ratio"}

func (f FilingTest) String() string               { return enumName(filingNames, int(f), "FilingTest") }
func (f FilingTest) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
func (f *FilingTest) UnmarshalText(b []byte) error {
	return parseEnum(filingNames, b, (*int)(f), "FilingTest")
}

// enumName renders v by table lookup, or "<kind>(v)" when out of range.
func enumName(names []string, v int, kind string) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%s(%d)", kind, v)
	}

	return names[v]
}

// parseEnum matches b case-insensitively against names.
func parseEnum(names []string, b []byte, dst *int, kind string) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i, n := range names {
		if n == s {
			*dst = i

			return nil
		}
	}

	return configErrorf(kind, ErrInvalidSpec, "unknown value %q (want one of %s)", s, strings.Join(names, ", "))
}

// validEnum reports whether v indexes names.
func validEnum(names []string, v int) bool { return v >= 0 && v < len(names) }
