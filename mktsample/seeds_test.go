package mktsample_test

import (
	"testing"

	"github.com/katalvlaran/mergesim/market"
	"github.com/katalvlaran/mergesim/mktsample"
	"github.com/katalvlaran/mergesim/seedseq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedsNeeded(t *testing.T) {
	assert.Equal(t, 2, mktsample.SeedsNeeded(market.ShareUniform, market.PriceSymmetric))
	assert.Equal(t, 3, mktsample.SeedsNeeded(market.ShareUniform, market.PriceIndependent))
	assert.Equal(t, 3, mktsample.SeedsNeeded(market.ShareDirFlat, market.PricePositive))
	assert.Equal(t, 4, mktsample.SeedsNeeded(market.ShareDirAsymmetric, market.PriceIndependent))
}

func TestAssignSeedsOrder(t *testing.T) {
	seqs := seedseq.DefaultList(4)

	plan, err := mktsample.AssignSeeds(seqs, market.ShareDirFlat, market.PriceIndependent)
	require.NoError(t, err)
	assert.Same(t, seqs[0], plan.Shares)
	assert.Same(t, seqs[1], plan.Margins)
	assert.Same(t, seqs[2], plan.FirmCounts)
	assert.Same(t, seqs[3], plan.Prices)

	// uniform shares skip the firm-count pool; prices move up
	plan, err = mktsample.AssignSeeds(seqs, market.ShareUniform, market.PriceIndependent)
	require.NoError(t, err)
	assert.Nil(t, plan.FirmCounts)
	assert.Same(t, seqs[2], plan.Prices)

	plan, err = mktsample.AssignSeeds(seqs[:2], market.ShareUniform, market.PriceSymmetric)
	require.NoError(t, err)
	assert.Nil(t, plan.Prices)
}

func TestAssignSeedsErrors(t *testing.T) {
	_, err := mktsample.AssignSeeds(seedseq.DefaultList(3), market.ShareDirFlat, market.PriceIndependent)
	require.ErrorIs(t, err, market.ErrSeedCount)
	assert.Contains(t, err.Error(), "missing 1")

	seqs := seedseq.DefaultList(3)
	seqs[1] = nil
	_, err = mktsample.AssignSeeds(seqs, market.ShareDirFlat, market.PriceSymmetric)
	require.ErrorIs(t, err, market.ErrSeedCount)
}

func TestAssignSeedsFresh(t *testing.T) {
	plan, err := mktsample.AssignSeeds(nil, market.ShareDirFlat, market.PriceIndependent)
	require.NoError(t, err)
	require.NotNil(t, plan.Shares)
	require.NotNil(t, plan.Margins)
	require.NotNil(t, plan.FirmCounts)
	require.NotNil(t, plan.Prices)
	assert.NotEqual(t, plan.Shares.Entropy(), plan.Margins.Entropy())
}

func TestOversamplingTable(t *testing.T) {
	o := mktsample.DefaultOversampling
	require.True(t, o.Valid())

	assert.Equal(t, mktsample.One, o.Factor(market.FilingNone, market.Firm2IID))
	assert.Equal(t, "5/3", o.Factor(market.FilingNthFirm, market.Firm2IID).String())
	assert.Equal(t, "500/324", o.Factor(market.FilingRevenueRatio, market.Firm2MNL).String())

	assert.Equal(t, 1000, o.CandidateRows(1000, market.FilingNone, market.Firm2Symmetric))
	assert.Equal(t, 1250, o.CandidateRows(1000, market.FilingNone, market.Firm2MNL))
	assert.Equal(t, 1667, o.CandidateRows(1000, market.FilingNthFirm, market.Firm2IID))
	assert.Equal(t, 1235, o.CandidateRows(1000, market.FilingRevenueRatio, market.Firm2IID))
	assert.Equal(t, 0, o.CandidateRows(0, market.FilingNthFirm, market.Firm2MNL))

	assert.False(t, mktsample.Ratio{Num: 1, Den: 2}.Valid())
	assert.False(t, mktsample.Ratio{Num: 1, Den: 0}.Valid())
	assert.InDelta(t, 1.25, o.MNL.Float(), 1e-15)
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { mktsample.WithThreads(0) })
	assert.Panics(t, func() { mktsample.WithChunkRows(-1) })
	assert.Panics(t, func() { mktsample.WithLogger(nil) })
	assert.Panics(t, func() { mktsample.WithSeeds(seedseq.New(1), nil) })
	assert.Panics(t, func() {
		mktsample.WithOversampling(mktsample.Oversampling{
			FilingNthFirm: mktsample.One, FilingRevenueRatio: mktsample.One, MNL: mktsample.Ratio{Num: 3, Den: 4},
		})
	})
	assert.NotPanics(t, func() { mktsample.WithSeeds() })
}
