package margins_test

import (
	"testing"

	"github.com/katalvlaran/mergesim/margins"
	"github.com/katalvlaran/mergesim/market"
	"github.com/katalvlaran/mergesim/matrix"
	"github.com/katalvlaran/mergesim/seedseq"
	"github.com/katalvlaran/mergesim/variates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatShares(t *testing.T, rows int, s1, s2 float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(rows, 2)
	require.NoError(t, err)
	for i := 0; i < rows; i++ {
		r := m.Row(i)
		r[0], r[1] = s1, s2
	}

	return m
}

func TestBetaLocated(t *testing.T) {
	a, b := margins.BetaLocated(0.5, 0.2)
	// Beta(a,b) has mean a/(a+b) and variance ab/((a+b)^2 (a+b+1)).
	assert.InDelta(t, 0.5, a/(a+b), 1e-12)
	assert.InDelta(t, 0.04, a*b/((a+b)*(a+b)*(a+b+1)), 1e-12)

	a, b = margins.BetaLocatedBound(0.3, 0.1, 0.1, 0.6)
	a2, b2 := margins.BetaLocated(0.4, 0.2)
	assert.InDelta(t, a2, a, 1e-12)
	assert.InDelta(t, b2, b, 1e-12)
}

func TestDistributionMapping(t *testing.T) {
	d, err := margins.Distribution(market.MarginSpec{Dist: market.MarginUniform})
	require.NoError(t, err)
	assert.Equal(t, variates.Uniform{Min: 0, Max: 1}, d)

	d, err = margins.Distribution(market.MarginSpec{Dist: market.MarginBeta, Params: []float64{2, 3}})
	require.NoError(t, err)
	assert.Equal(t, variates.Beta{Alpha: 2, Beta: 3}, d)

	_, err = margins.Distribution(market.MarginSpec{Dist: market.MarginBoundedBeta, Params: []float64{0.5}})
	require.ErrorIs(t, err, market.ErrParamLength)
}

func TestIIDAndSymmetric(t *testing.T) {
	const rows = 50_000
	in := margins.Inputs{Shares: flatShares(t, rows, 0.2, 0.3)}
	seq := seedseq.New(21)

	iid, err := margins.Generate(market.MarginSpec{Dist: market.MarginUniform, Firm2: market.Firm2IID},
		market.RecaptureFixed, in, seq)
	require.NoError(t, err)
	means, err := matrix.ColMeans(iid.Margins)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, means[0], 0.01)
	assert.InDelta(t, 0.5, means[1], 0.01)
	assert.Equal(t, rows, matrix.CountTrue(iid.Feasible))

	sym, err := margins.Generate(market.MarginSpec{Dist: market.MarginUniform, Firm2: market.Firm2Symmetric},
		market.RecaptureFixed, in, seq)
	require.NoError(t, err)
	for i := 0; i < rows; i++ {
		r := sym.Margins.Row(i)
		require.Equal(t, r[0], r[1])
		require.Equal(t, iid.Margins.Row(i)[0], r[0])
	}
}

func TestBoundedBetaRescale(t *testing.T) {
	const rows = 100_000
	in := margins.Inputs{Shares: flatShares(t, rows, 0.2, 0.3)}
	spec := market.MarginSpec{Dist: market.MarginBoundedBeta, Params: []float64{0.4, 0.1, 0.2, 0.8}}

	out, err := margins.Generate(spec, market.RecaptureFixed, in, seedseq.New(4))
	require.NoError(t, err)
	for _, v := range out.Margins.RawData() {
		require.True(t, v >= 0.2 && v <= 0.8)
	}
	mean, err := matrix.Mean(out.Margins)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, mean, 0.002)
}

func TestEmpiricalResample(t *testing.T) {
	in := margins.Inputs{Shares: flatShares(t, 20_000, 0.2, 0.3)}
	spec := market.MarginSpec{
		Dist:      market.MarginEmpirical,
		Empirical: &market.EmpiricalMargins{Obs: []float64{0.1, 0.5}, Weights: []float64{1, 3}},
	}
	out, err := margins.Generate(spec, market.RecaptureFixed, in, seedseq.New(5))
	require.NoError(t, err)
	for _, v := range out.Margins.RawData() {
		require.True(t, v == 0.1 || v == 0.5)
	}
	mean, err := matrix.Mean(out.Margins)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, mean, 0.01)
}

func TestMNLFirstOrderCondition(t *testing.T) {
	const rows = 10_000
	sh := flatShares(t, rows, 0.2, 0.4)
	pr := flatShares(t, rows, 1, 2)
	outside := make([]float64, rows)
	for i := range outside {
		outside[i] = 0.5
	}
	in := margins.Inputs{Shares: sh, Prices: pr, OutsideProb: outside}
	spec := market.MarginSpec{Dist: market.MarginUniform, Firm2: market.Firm2MNL}

	out, err := margins.Generate(spec, market.RecaptureInsideOut, in, seedseq.New(6))
	require.NoError(t, err)

	pp0, pp1 := 0.5*0.2, 0.5*0.4
	for i := 0; i < rows; i++ {
		r := out.Margins.Row(i)
		want := 1 * r[0] * (1 - pp0) / (2 * (1 - pp1))
		require.InDelta(t, want, r[1], 1e-15)
		require.Equal(t, r[1] >= 0 && r[1] <= 1, out.Feasible[i])
	}

	// With fixed recapture the condition is not imposed.
	iid, err := margins.Generate(spec, market.RecaptureFixed, margins.Inputs{Shares: sh}, seedseq.New(6))
	require.NoError(t, err)
	assert.Equal(t, rows, matrix.CountTrue(iid.Feasible))
}

func TestMNLInfeasibleRows(t *testing.T) {
	// p1 ≫ p2 pushes the derived margin above one for large m1.
	const rows = 5_000
	in := margins.Inputs{
		Shares:      flatShares(t, rows, 0.1, 0.1),
		Prices:      flatShares(t, rows, 5, 1),
		OutsideProb: make([]float64, rows),
	}
	out, err := margins.Generate(market.MarginSpec{Dist: market.MarginUniform, Firm2: market.Firm2MNL},
		market.RecaptureOutsideIn, in, seedseq.New(7))
	require.NoError(t, err)
	n := matrix.CountTrue(out.Feasible)
	// Feasible iff 5·m1 ≤ 1, i.e. m1 ≤ 0.2.
	assert.InDelta(t, 0.2, float64(n)/rows, 0.03)
	assert.Equal(t, rows, out.Margins.Rows())
}

func TestMNLRequiresInputs(t *testing.T) {
	in := margins.Inputs{Shares: flatShares(t, 3, 0.2, 0.3)}
	_, err := margins.Generate(market.MarginSpec{Dist: market.MarginUniform, Firm2: market.Firm2MNL},
		market.RecaptureInsideOut, in, seedseq.New(1))
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = margins.Generate(market.MarginSpec{Dist: market.MarginUniform}, market.RecaptureFixed,
		margins.Inputs{}, seedseq.New(1))
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
