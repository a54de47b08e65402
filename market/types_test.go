package market_test

import (
	"testing"

	"github.com/katalvlaran/mergesim/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnumTextRoundTrip(t *testing.T) {
	var d market.ShareDist
	require.NoError(t, d.UnmarshalText([]byte("Dirichlet-Asymmetric")))
	assert.Equal(t, market.ShareDirAsymmetric, d)
	b, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "dirichlet-asymmetric", string(b))

	var m market.MarginDist
	require.NoError(t, m.UnmarshalText([]byte(" bounded-beta ")))
	assert.Equal(t, market.MarginBoundedBeta, m)

	var f market.FilingTest
	require.NoError(t, f.UnmarshalText([]byte("nth-firm")))
	assert.Equal(t, market.FilingNthFirm, f)

	var p market.PriceSym
	require.ErrorIs(t, p.UnmarshalText([]byte("sideways")), market.ErrInvalidSpec)
}

func TestRecaptureAliases(t *testing.T) {
	var r market.Recapture
	require.NoError(t, r.UnmarshalText([]byte("fixed")))
	assert.Equal(t, market.RecaptureFixed, r)
	require.NoError(t, r.UnmarshalText([]byte("proportional")))
	assert.Equal(t, market.RecaptureFixed, r)
	assert.Equal(t, "proportional", r.String())
	require.NoError(t, r.UnmarshalText([]byte("outside-in")))
	assert.Equal(t, market.RecaptureOutsideIn, r)
}

func TestEnumPredicates(t *testing.T) {
	assert.False(t, market.ShareUniform.IsDirichlet())
	for _, d := range []market.ShareDist{market.ShareDirFlat, market.ShareDirFlatConstrained,
		market.ShareDirAsymmetric, market.ShareDirConditional} {
		assert.True(t, d.IsDirichlet(), d.String())
	}
	assert.True(t, market.PriceIndependent.NeedsStream())
	assert.False(t, market.PricePositive.NeedsStream())
	assert.Equal(t, "Firm2Margin(9)", market.Firm2Margin(9).String())
}
