// SPDX-License-Identifier: MIT
// Package: mergesim/variates
//
// fill.go: the parallel, thread-count-invariant buffer filler.

package variates

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mergesim/matrix"
	"github.com/katalvlaran/mergesim/seedseq"
	"golang.org/x/sync/errgroup"
)

// ErrNilSeed indicates a Fill call without a seed pool.
var ErrNilSeed = errors.New("variates: nil seed sequence")

// Fill overwrites every row of buf with i.i.d. draws from dist.
// MAIN DESCRIPTION:
//   - The result is a pure function of (seq, chunk size, dist, buf shape); the
//     thread count only changes how many chunks run at once.
//
// Implementation:
//   - Stage 1: validate buf, seq and dist before any goroutine starts.
//   - Stage 2: split rows into ⌈rows/chunk⌉ contiguous chunks; chunk k is bound
//     to child stream seq.Spawn(nChunks)[k].
//   - Stage 3: run chunks on an errgroup limited to the thread count; each
//     worker owns a disjoint RowsView, so no locks are needed.
//   - Stage 4: wait for every worker before returning.
//
// Errors:
//   - matrix.ErrNilMatrix, ErrNilSeed.
//   - *market.ConfigError for an unknown distribution or bad parameters.
//
// Complexity:
//   - Time O(rows*cols) split across workers, extra space O(nChunks).
func Fill(buf *matrix.Dense, dist Distribution, seq *seedseq.SeedSequence, opts ...Option) error {
	if err := matrix.ValidateNotNil(buf); err != nil {
		return fmt.Errorf("variates.Fill: %w", err)
	}
	if seq == nil {
		return ErrNilSeed
	}
	factory, err := newSampler(dist, buf.Cols())
	if err != nil {
		return fmt.Errorf("variates.Fill: %w", err)
	}
	cfg := newFillConfig(opts...)

	rows := buf.Rows()
	if rows == 0 {
		return nil
	}
	nChunks := (rows + cfg.chunkRows - 1) / cfg.chunkRows
	streams := seq.Spawn(nChunks)

	var g errgroup.Group
	g.SetLimit(cfg.threads)
	for k := 0; k < nChunks; k++ {
		r0 := k * cfg.chunkRows
		n := min(cfg.chunkRows, rows-r0)
		view, err := buf.RowsView(r0, n)
		if err != nil {
			// Unreachable for r0+n ≤ rows; drain started workers first.
			_ = g.Wait()

			return fmt.Errorf("variates.Fill: chunk %d: %w", k, err)
		}
		stream := streams[k]
		g.Go(func() error {
			kernel := factory(stream.NewSource())
			for i := 0; i < view.Rows(); i++ {
				kernel(view.Row(i))
			}

			return nil
		})
	}

	return g.Wait()
}

// Sample allocates a rows×cols buffer and fills it.
// Errors: as NewDense and Fill.
func Sample(rows, cols int, dist Distribution, seq *seedseq.SeedSequence, opts ...Option) (*matrix.Dense, error) {
	buf, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if err = Fill(buf, dist, seq, opts...); err != nil {
		return nil, err
	}

	return buf, nil
}
