// SPDX-License-Identifier: MIT
// Package: mergesim/mktsample
//
// seeds.go: fixed-order assignment of seed pools to random-variable families.

package mktsample

import (
	"fmt"

	"github.com/katalvlaran/mergesim/market"
	"github.com/katalvlaran/mergesim/seedseq"
)

// SeedPlan holds one seed pool per random-variable family. FirmCounts is nil
// for uniform shares; Prices is nil unless prices are drawn independently.
type SeedPlan struct {
	Shares     *seedseq.SeedSequence
	Margins    *seedseq.SeedSequence
	FirmCounts *seedseq.SeedSequence
	Prices     *seedseq.SeedSequence
}

// SeedsNeeded returns how many pools a run with dist and sym consumes.
func SeedsNeeded(dist market.ShareDist, sym market.PriceSym) int {
	n := 2
	if dist.IsDirichlet() {
		n++
	}
	if sym.NeedsStream() {
		n++
	}

	return n
}

// AssignSeeds maps caller pools to families in a fixed order.
// MAIN DESCRIPTION:
//   - Order: (1) shares, (2) margins, (3) firm counts if dist is Dirichlet,
//     (4) prices if sym draws prices. An omitted family never shifts the position
//     of a later one, so a uniform run reads its price pool from index 2.
//
// Behavior highlights:
//   - No pools: fresh OS-entropy pools are created for every family in use.
//   - Extra pools are ignored.
//
// Errors:
//   - *market.ConfigError{Field: "Seeds"} wrapping market.ErrSeedCount when too
//     few pools are given or one of the needed pools is nil.
//   - the crypto/rand error from seedseq.Fresh.
//
// Complexity:
//   - O(1).
func AssignSeeds(seqs []*seedseq.SeedSequence, dist market.ShareDist, sym market.PriceSym) (SeedPlan, error) {
	need := SeedsNeeded(dist, sym)
	if len(seqs) == 0 {
		seqs = make([]*seedseq.SeedSequence, need)
		for i := range seqs {
			s, err := seedseq.Fresh()
			if err != nil {
				return SeedPlan{}, fmt.Errorf("mktsample.AssignSeeds: %w", err)
			}
			seqs[i] = s
		}
	}
	if len(seqs) < need {
		return SeedPlan{}, market.NewConfigError("Seeds", market.ErrSeedCount,
			"%s shares with %s prices need %d seed sequences, got %d (missing %d)",
			dist, sym, need, len(seqs), need-len(seqs))
	}
	for i, s := range seqs[:need] {
		if s == nil {
			return SeedPlan{}, market.NewConfigError("Seeds", market.ErrSeedCount, "seed sequence %d is nil", i)
		}
	}

	plan := SeedPlan{Shares: seqs[0], Margins: seqs[1]}
	next := 2
	if dist.IsDirichlet() {
		plan.FirmCounts = seqs[next]
		next++
	}
	if sym.NeedsStream() {
		plan.Prices = seqs[next]
	}

	return plan, nil
}
