// SPDX-License-Identifier: MIT
// Package: mergesim/shares
//
// shares.go: market-share samplers.
//
// Exposed API:
//   - Generate(rows, spec, fcSeq, shrSeq, opts...)       dispatch on spec.Dist
//   - Uniform(rows, seq, opts...)                        merging-firm pair on the simplex
//   - Dirichlet(alpha, rows, recapture, seq, opts...)    fixed firm count
//   - DirichletMultisample(rows, spec, fcSeq, shrSeq, opts...)  stratified by firm count
//   - Alphas(dist, n)                                    shape vector for n firms
//
// Determinism:
//   - Every sampler is a pure function of its seed pools and the variates chunk
//     size; thread count never changes the output.

package shares

import (
	"fmt"
	"math"

	"github.com/katalvlaran/mergesim/market"
	"github.com/katalvlaran/mergesim/matrix"
	"github.com/katalvlaran/mergesim/seedseq"
	"github.com/katalvlaran/mergesim/variates"
	"golang.org/x/sync/errgroup"
)

// Shape constants for the graduated (asymmetric) and conditional schemes.
const (
	asymLead      = 2.0  // first asymLeadCount firms
	asymMid       = 1.5  // next asymMidCount firms
	asymTail      = 1.25 // every firm after that
	asymLeadCount = 6
	asymMidCount  = 5

	condMerging = 2.5 // merging firms in the conditional scheme
)

// Sample holds one row per candidate draw.
//   - Shares: rows × width arena. Uniform samples have width 3 with a NaN third
//     column; Dirichlet samples have width = max firm count, zero padded.
//   - FirmCounts[i]: active columns of row i (0 when not applicable).
//   - NthShare[i]: share of the last (n-th) firm in row i's market (NaN if n/a).
//   - OutsideProb[i]: outside-good choice probability (NaN unless outside-in).
type Sample struct {
	Shares      *matrix.Dense
	FirmCounts  []int
	NthShare    []float64
	OutsideProb []float64
}

// Len returns the number of rows.
func (s *Sample) Len() int { return s.Shares.Rows() }

// nanSlice returns n NaN values.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// Generate draws rows share vectors according to spec.
// fcSeq is used only by the Dirichlet variants.
// Errors:
//   - *market.ConfigError (ErrIncompatibleSpec) for outside-in with uniform shares.
//   - anything returned by Uniform or DirichletMultisample.
func Generate(rows int, spec market.ShareSpec, fcSeq, shrSeq *seedseq.SeedSequence, opts ...variates.Option) (*Sample, error) {
	switch {
	case spec.Dist == market.ShareUniform:
		if spec.Recapture == market.RecaptureOutsideIn {
			return nil, market.NewConfigError("Shares.Recapture", market.ErrIncompatibleSpec,
				"%s recapture requires Dirichlet shares", spec.Recapture)
		}

		return Uniform(rows, shrSeq, opts...)
	case spec.Dist.IsDirichlet():
		return DirichletMultisample(rows, spec, fcSeq, shrSeq, opts...)
	default:
		return nil, market.NewConfigError("Shares.Dist", market.ErrInvalidSpec, "unknown value %d", spec.Dist)
	}
}

// Uniform draws merging-firm share pairs uniformly on {s1+s2<1, s1,s2>0}.
// MAIN DESCRIPTION:
//   - Two U(0,1) draws per row are sorted; (s1, s2) = (lo, hi-lo).
//
// Implementation:
//   - Stage 1: fill a rows×2 buffer from seq.
//   - Stage 2: sort each row, map to the simplex in place.
//   - Stage 3: drop rows with a non-positive coordinate; widen to 3 columns with NaN.
//
// Behavior highlights:
//   - The result may hold fewer than rows rows; in practice it almost never does.
//   - FirmCounts are 0 and NthShare/OutsideProb are NaN: no market structure is drawn.
//
// Complexity:
//   - Time O(rows), Space O(rows).
func Uniform(rows int, seq *seedseq.SeedSequence, opts ...variates.Option) (*Sample, error) {
	buf, err := variates.Sample(rows, 2, variates.Uniform{Min: 0, Max: 1}, seq, opts...)
	if err != nil {
		return nil, fmt.Errorf("shares.Uniform: %w", err)
	}

	keep := make([]bool, rows)
	for i := 0; i < rows; i++ {
		r := buf.Row(i)
		lo, hi := r[0], r[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		r[0], r[1] = lo, hi-lo
		keep[i] = r[0] > 0 && r[1] > 0
	}
	kept, err := matrix.SelectRows(buf, keep)
	if err != nil {
		return nil, fmt.Errorf("shares.Uniform: %w", err)
	}
	arena, err := matrix.PadCols(kept, 3, math.NaN())
	if err != nil {
		return nil, fmt.Errorf("shares.Uniform: %w", err)
	}
	n := arena.Rows()

	return &Sample{
		Shares:      arena,
		FirmCounts:  make([]int, n),
		NthShare:    nanSlice(n),
		OutsideProb: nanSlice(n),
	}, nil
}

// Dirichlet draws rows share vectors from Dir(alpha) for a fixed firm count.
// Implementation:
//   - Stage 1: for outside-in recapture append one more shape (equal to the last)
//     for the outside good.
//   - Stage 2: fill rows×len(alpha') from seq and check that the cells sum to rows.
//   - Stage 3 (outside-in only): split off the last column as the outside-good
//     probability and rescale the rest by 1/(1-outside).
//
// Errors:
//   - *market.ConfigError for an empty or non-positive alpha.
//   - market.ErrShareSum (wrapped with alpha, rows and the observed sum).
//
// Complexity:
//   - Time O(rows*len(alpha)), Space O(rows*len(alpha)).
func Dirichlet(alpha []float64, rows int, recapture market.Recapture, seq *seedseq.SeedSequence, opts ...variates.Option) (*Sample, error) {
	if len(alpha) == 0 {
		return nil, market.NewConfigError("Dirichlet.Alpha", market.ErrParamLength, "no shape parameters")
	}
	a := append([]float64(nil), alpha...)
	if recapture == market.RecaptureOutsideIn {
		a = append(a, a[len(a)-1])
	}

	buf, err := variates.Sample(rows, len(a), variates.Dirichlet{Alpha: a}, seq, opts...)
	if err != nil {
		return nil, fmt.Errorf("shares.Dirichlet: %w", err)
	}
	if err = checkShareSum(buf, a); err != nil {
		return nil, err
	}

	inside := len(alpha)
	outside := nanSlice(rows)
	arena := buf
	if recapture == market.RecaptureOutsideIn {
		arena, err = matrix.NewDense(rows, inside)
		if err != nil {
			return nil, fmt.Errorf("shares.Dirichlet: %w", err)
		}
		for i := 0; i < rows; i++ {
			src, dst := buf.Row(i), arena.Row(i)
			o := src[inside]
			outside[i] = o
			for j := range dst {
				dst[j] = src[j] / (1 - o)
			}
		}
	}

	counts := make([]int, rows)
	nth := make([]float64, rows)
	for i := range counts {
		counts[i] = inside
		nth[i] = arena.Row(i)[inside-1]
	}

	return &Sample{Shares: arena, FirmCounts: counts, NthShare: nth, OutsideProb: outside}, nil
}

// checkShareSum verifies round(Σ cells) == rows.
func checkShareSum(buf *matrix.Dense, alpha []float64) error {
	sum, err := matrix.Sum(buf)
	if err != nil {
		return err
	}
	if math.Round(sum) != float64(buf.Rows()) {
		return fmt.Errorf("shares: %s rows=%d sum=%.6f: %w",
			variates.String(variates.Dirichlet{Alpha: alpha}), buf.Rows(), sum, market.ErrShareSum)
	}

	return nil
}

// Alphas returns the Dirichlet shape vector for a market of n firms.
//   - flat and flat-constrained: all ones.
//   - asymmetric: 2.0 for the first 6 firms, 1.5 for the next 5, 1.25 thereafter.
//   - conditional: 2.5 for the two merging firms, 1/(n-2) for each other firm.
//
// Returns nil for a non-Dirichlet dist or n < 1.
func Alphas(dist market.ShareDist, n int) []float64 {
	if !dist.IsDirichlet() || n < 1 {
		return nil
	}
	a := make([]float64, n)
	for i := range a {
		switch dist {
		case market.ShareDirAsymmetric:
			switch {
			case i < asymLeadCount:
				a[i] = asymLead
			case i < asymLeadCount+asymMidCount:
				a[i] = asymMid
			default:
				a[i] = asymTail
			}
		case market.ShareDirConditional:
			if i < 2 {
				a[i] = condMerging
			} else {
				a[i] = 1 / float64(n-2)
			}
		default:
			a[i] = 1
		}
	}

	return a
}

// DirichletMultisample draws Dirichlet shares with a random firm count per row.
// MAIN DESCRIPTION:
//   - Firm counts 2..1+len(weights) are drawn from fcSeq with the normalized
//     weights of spec (see market.ShareSpec.FirmCounts).
//   - Rows sharing a firm count form a stratum. Stratum k (in ascending firm-count
//     order) draws from child k of shrSeq, so strata never share a stream.
//
// Implementation:
//   - Stage 1: resolve firm-count keys and probabilities; draw counts via Choice.
//   - Stage 2: bucket row indices by firm count.
//   - Stage 3: generate strata concurrently (bounded by the thread count); each
//     writes its own rows of the zero-padded arena and of the per-row slices.
//   - Stage 4: check that the arena sums to rows.
//
// Errors:
//   - *market.ConfigError for a non-Dirichlet dist or invalid weights.
//   - market.ErrShareSum from any stratum or the final check.
//
// Complexity:
//   - Time O(rows*maxFirms), Space O(rows*maxFirms).
func DirichletMultisample(rows int, spec market.ShareSpec, fcSeq, shrSeq *seedseq.SeedSequence, opts ...variates.Option) (*Sample, error) {
	if !spec.Dist.IsDirichlet() {
		return nil, market.NewConfigError("Shares.Dist", market.ErrInvalidSpec, "%s is not a Dirichlet distribution", spec.Dist)
	}
	keys, probs, err := spec.FirmCounts()
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(keys))
	for k, key := range keys {
		values[k] = float64(key)
	}
	fc, err := variates.Sample(rows, 1, variates.Choice{Values: values, Weights: probs}, fcSeq, opts...)
	if err != nil {
		return nil, fmt.Errorf("shares.DirichletMultisample: firm counts: %w", err)
	}

	counts := make([]int, rows)
	strata := make(map[int][]int, len(keys))
	for i, v := range fc.RawData() {
		counts[i] = int(v)
		strata[counts[i]] = append(strata[counts[i]], i)
	}

	fcMax := keys[len(keys)-1]
	arena, err := matrix.NewDense(rows, fcMax)
	if err != nil {
		return nil, fmt.Errorf("shares.DirichletMultisample: %w", err)
	}
	nth, outside := nanSlice(rows), nanSlice(rows)

	streams := shrSeq.Spawn(len(keys))
	// Strata own disjoint rows of arena, nth and outside.
	var g errgroup.Group
	g.SetLimit(variates.Threads(opts...))
	for k, key := range keys {
		key := key
		idx := strata[key]
		alpha := Alphas(spec.Dist, key)
		stream := streams[k]
		g.Go(func() error {
			part, err := Dirichlet(alpha, len(idx), spec.Recapture, stream, opts...)
			if err != nil {
				return fmt.Errorf("firm count %d: %w", key, err)
			}
			if err = matrix.ScatterRows(arena, idx, part.Shares, 0); err != nil {
				return err
			}
			for j, i := range idx {
				nth[i] = part.NthShare[j]
				outside[i] = part.OutsideProb[j]
			}

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("shares.DirichletMultisample: %w", err)
	}
	if err = checkShareSum(arena, Alphas(spec.Dist, fcMax)); err != nil {
		return nil, err
	}

	return &Sample{Shares: arena, FirmCounts: counts, NthShare: nth, OutsideProb: outside}, nil
}
