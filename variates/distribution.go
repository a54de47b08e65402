// SPDX-License-Identifier: MIT
// Package: mergesim/variates
//
// distribution.go: the closed set of distributions Fill can draw from.
//
// Each variant carries its own parameter payload. newSampler matches the
// variants with a type switch, validates the payload against the buffer width,
// and returns a factory that binds a per-worker Source to a row kernel.

package variates

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/mergesim/market"
	xrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrUnknownDistribution indicates a Distribution outside the closed set below.
var ErrUnknownDistribution = errors.New("variates: unknown distribution")

// Distribution is one of Uniform, Beta, Dirichlet or Choice.
type Distribution interface {
	// Name returns a short label for logs and errors.
	Name() string
	isDistribution()
}

// Uniform draws each cell independently from U[Min, Max).
type Uniform struct{ Min, Max float64 }

// Beta draws each cell independently from Beta(Alpha, Beta).
type Beta struct{ Alpha, Beta float64 }

// Dirichlet draws each row jointly from Dir(Alpha); len(Alpha) must equal the
// buffer width.
type Dirichlet struct{ Alpha []float64 }

// Choice draws each cell independently from Values with probability
// proportional to Weights (uniform when Weights is nil).
type Choice struct {
	Values  []float64
	Weights []float64
}

func (Uniform) Name() string   { return "uniform" }
func (Beta) Name() string      { return "beta" }
func (Dirichlet) Name() string { return "dirichlet" }
func (Choice) Name() string    { return "choice" }

func (Uniform) isDistribution()   {}
func (Beta) isDistribution()      {}
func (Dirichlet) isDistribution() {}
func (Choice) isDistribution()    {}

// rowKernel fills one buffer row.
type rowKernel func(row []float64)

// samplerFactory binds a worker-owned Source to a row kernel.
type samplerFactory func(src xrand.Source) rowKernel

// paramError names the offending parameter in a *market.ConfigError.
func paramError(d Distribution, sentinel error, format string, args ...any) error {
	return market.NewConfigError(d.Name(), sentinel, format, args...)
}

// finite reports whether every value is neither NaN nor ±Inf.
func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}

// newSampler validates dist against a buffer of width cols.
// Implementation:
//   - Stage 1: exhaustive type switch over the variants.
//   - Stage 2: parameter checks (finiteness, positivity, length).
//   - Stage 3: return a factory; no Source is touched here.
//
// Errors:
//   - *market.ConfigError wrapping ErrUnknownDistribution, market.ErrParamLength
//     or market.ErrInvalidSpec.
//
// Complexity:
//   - O(len(params)).
func newSampler(dist Distribution, cols int) (samplerFactory, error) {
	switch d := dist.(type) {
	case Uniform:
		if !finite(d.Min, d.Max) || !(d.Min < d.Max) {
			return nil, paramError(d, market.ErrInvalidSpec, "need finite Min < Max, got [%g, %g]", d.Min, d.Max)
		}

		return func(src xrand.Source) rowKernel {
			u := distuv.Uniform{Min: d.Min, Max: d.Max, Src: src}

			return func(row []float64) {
				for j := range row {
					row[j] = u.Rand()
				}
			}
		}, nil

	case Beta:
		if !finite(d.Alpha, d.Beta) || d.Alpha <= 0 || d.Beta <= 0 {
			return nil, paramError(d, market.ErrInvalidSpec, "shapes must be positive, got (%g, %g)", d.Alpha, d.Beta)
		}

		return func(src xrand.Source) rowKernel {
			b := distuv.Beta{Alpha: d.Alpha, Beta: d.Beta, Src: src}

			return func(row []float64) {
				for j := range row {
					row[j] = b.Rand()
				}
			}
		}, nil

	case Dirichlet:
		if len(d.Alpha) != cols {
			return nil, paramError(d, market.ErrParamLength, "%d shape parameters for %d columns", len(d.Alpha), cols)
		}
		for i, a := range d.Alpha {
			if !finite(a) || a <= 0 {
				return nil, paramError(d, market.ErrInvalidSpec, "shape %d is %g", i, a)
			}
		}
		alpha := append([]float64(nil), d.Alpha...)

		return func(src xrand.Source) rowKernel {
			dir := distmv.NewDirichlet(alpha, src)

			return func(row []float64) {
				dir.Rand(row)
			}
		}, nil

	case Choice:
		if len(d.Values) == 0 {
			return nil, paramError(d, market.ErrParamLength, "no values to choose from")
		}
		w := d.Weights
		if w == nil {
			w = make([]float64, len(d.Values))
			for i := range w {
				w[i] = 1
			}
		}
		if len(w) != len(d.Values) {
			return nil, paramError(d, market.ErrParamLength, "%d weights for %d values", len(w), len(d.Values))
		}
		var total float64
		for i, v := range w {
			if !finite(v) || v < 0 {
				return nil, paramError(d, market.ErrInvalidSpec, "weight %d is %g", i, v)
			}
			total += v
		}
		if total <= 0 {
			return nil, paramError(d, market.ErrInvalidSpec, "weights sum to zero")
		}
		values := append([]float64(nil), d.Values...)
		weights := append([]float64(nil), w...)

		return func(src xrand.Source) rowKernel {
			c := distuv.NewCategorical(weights, src)

			return func(row []float64) {
				for j := range row {
					row[j] = values[int(c.Rand())]
				}
			}
		}, nil

	default:
		return nil, market.NewConfigError("Distribution", ErrUnknownDistribution, "%T", dist)
	}
}

// String renders a distribution with its parameters.
func String(d Distribution) string {
	switch v := d.(type) {
	case Uniform:
		return fmt.Sprintf("uniform(%g, %g)", v.Min, v.Max)
	case Beta:
		return fmt.Sprintf("beta(%g, %g)", v.Alpha, v.Beta)
	case Dirichlet:
		return fmt.Sprintf("dirichlet(%v)", v.Alpha)
	case Choice:
		return fmt.Sprintf("choice(%d values)", len(v.Values))
	default:
		return fmt.Sprintf("%T", d)
	}
}
