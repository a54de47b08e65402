package market_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/mergesim/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSampleSpecIsValid(t *testing.T) {
	require.NoError(t, market.DefaultSampleSpec().Validate())
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*market.SampleSpec)
		field string
		want  error
	}{
		{"zero size", func(s *market.SampleSpec) { s.SampleSize = 0 }, "SampleSize", market.ErrInvalidSpec},
		{"rate above one", func(s *market.SampleSpec) { s.RecaptureRate = 1.5 }, "RecaptureRate", market.ErrInvalidSpec},
		{"rate zero", func(s *market.SampleSpec) { s.RecaptureRate = 0 }, "RecaptureRate", market.ErrInvalidSpec},
		{"unknown price sym", func(s *market.SampleSpec) { s.PriceSym = 42 }, "PriceSym", market.ErrInvalidSpec},
		{"unknown filing", func(s *market.SampleSpec) { s.Filing = -1 }, "Filing", market.ErrInvalidSpec},
		{"outside-in with uniform shares", func(s *market.SampleSpec) {
			s.Shares.Recapture = market.RecaptureOutsideIn
		}, "Shares.Recapture", market.ErrIncompatibleSpec},
		{"mnl with fixed recapture", func(s *market.SampleSpec) {
			s.Margins.Firm2 = market.Firm2MNL
		}, "Margins.Firm2", market.ErrIncompatibleSpec},
		{"beta with one param", func(s *market.SampleSpec) {
			s.Margins = market.MarginSpec{Dist: market.MarginBeta, Params: []float64{1}}
		}, "Margins.Params", market.ErrParamLength},
		{"bounded beta with two params", func(s *market.SampleSpec) {
			s.Margins = market.MarginSpec{Dist: market.MarginBoundedBeta, Params: []float64{0.5, 0.1}}
		}, "Margins.Params", market.ErrParamLength},
		{"bounded beta sigma too large", func(s *market.SampleSpec) {
			s.Margins = market.MarginSpec{Dist: market.MarginBoundedBeta, Params: []float64{0.5, 0.6, 0, 1}}
		}, "Margins.Params", market.ErrInvalidSpec},
		{"uniform bounds reversed", func(s *market.SampleSpec) {
			s.Margins = market.MarginSpec{Dist: market.MarginUniform, Params: []float64{1, 0}}
		}, "Margins.Params", market.ErrInvalidSpec},
		{"empirical without data", func(s *market.SampleSpec) {
			s.Margins = market.MarginSpec{Dist: market.MarginEmpirical}
		}, "Margins.Empirical", market.ErrInvalidSpec},
		{"empirical weight mismatch", func(s *market.SampleSpec) {
			s.Margins = market.MarginSpec{Dist: market.MarginEmpirical,
				Empirical: &market.EmpiricalMargins{Obs: []float64{0.1, 0.2}, Weights: []float64{1}}}
		}, "Margins.Empirical.Weights", market.ErrParamLength},
		{"negative firm-count weight", func(s *market.SampleSpec) {
			s.Shares = market.ShareSpec{Dist: market.ShareDirFlat, Recapture: market.RecaptureInsideOut,
				FirmCountWeights: []float64{1, -1}}
		}, "Shares.FirmCountWeights", market.ErrInvalidSpec},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := market.DefaultSampleSpec()
			tc.edit(&s)
			err := s.Validate()
			require.ErrorIs(t, err, tc.want)

			var ce *market.ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tc.field, ce.Field)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestValidateIgnoresRateForOutsideIn(t *testing.T) {
	s := market.DefaultSampleSpec()
	s.Shares = market.ShareSpec{Dist: market.ShareDirFlat, Recapture: market.RecaptureOutsideIn}
	for _, rate := range []float64{0, -1, 1.5} {
		s.RecaptureRate = rate
		require.NoError(t, s.Validate(), "rate %g", rate)
	}

	s.Shares.Recapture = market.RecaptureInsideOut
	require.ErrorIs(t, s.Validate(), market.ErrInvalidSpec)
}

func TestValidateAcceptsDirichletMNL(t *testing.T) {
	s := market.DefaultSampleSpec()
	s.Shares = market.ShareSpec{
		Dist:             market.ShareDirFlat,
		Recapture:        market.RecaptureInsideOut,
		FirmCountWeights: market.DefaultFirmCountWeights,
	}
	s.Margins.Firm2 = market.Firm2MNL
	s.Margins.Params = []float64{0, 1}
	require.NoError(t, s.Validate())

	s.Shares.Recapture = market.RecaptureOutsideIn
	require.NoError(t, s.Validate())

	s.Margins = market.MarginSpec{Dist: market.MarginBoundedBeta, Params: []float64{0.5, 0.2, 0, 1}}
	require.NoError(t, s.Validate())
}

func TestFirmCounts(t *testing.T) {
	keys, probs, err := market.ShareSpec{Dist: market.ShareDirFlat}.FirmCounts()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 5, 6}, keys)
	for _, p := range probs {
		assert.InDelta(t, 0.2, p, 1e-15)
	}

	keys, probs, err = market.ShareSpec{
		Dist:             market.ShareDirFlat,
		FirmCountWeights: []float64{5, 4, 3, 2, 1},
	}.FirmCounts()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 5, 6}, keys)
	assert.InDelta(t, 5.0/15, probs[0], 1e-15)

	// Zero-weight buckets are always dropped.
	keys, _, err = market.ShareSpec{Dist: market.ShareDirFlat, FirmCountWeights: []float64{1, 0, 1}}.FirmCounts()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, keys)
}

func TestFirmCountsConstrainedDropsRareBuckets(t *testing.T) {
	w := []float64{50, 30, 17, 2, 1} // last two normalize to 0.02 and 0.01
	keys, probs, err := market.ShareSpec{Dist: market.ShareDirFlatConstrained, FirmCountWeights: w}.FirmCounts()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4}, keys)
	var sum float64
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.InDelta(t, 0.5/0.97, probs[0], 1e-12)

	// The unconstrained variant keeps them.
	keys, _, err = market.ShareSpec{Dist: market.ShareDirFlat, FirmCountWeights: w}.FirmCounts()
	require.NoError(t, err)
	assert.Len(t, keys, 5)
}

func TestFirmCountsErrors(t *testing.T) {
	for _, w := range [][]float64{{}, {0, 0}, {1, -0.5}} {
		_, _, err := market.ShareSpec{Dist: market.ShareDirFlat, FirmCountWeights: w}.FirmCounts()
		assert.ErrorIs(t, err, market.ErrInvalidSpec, "weights %v", w)
	}
}
