package shares

import (
	"testing"

	"github.com/katalvlaran/mergesim/market"
	"github.com/katalvlaran/mergesim/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckShareSum(t *testing.T) {
	good, err := matrix.NewDenseFrom(2, 3, []float64{
		0.2, 0.3, 0.5,
		0.6, 0.4, 0,
	})
	require.NoError(t, err)
	require.NoError(t, checkShareSum(good, []float64{1, 1, 1}))

	bad, err := matrix.NewDenseFrom(2, 3, []float64{
		0.5, 0.5, 0.5,
		0.5, 0.5, 0.5,
	})
	require.NoError(t, err)
	err = checkShareSum(bad, []float64{1, 1, 1})
	require.ErrorIs(t, err, market.ErrShareSum)
	assert.Contains(t, err.Error(), "dirichlet([1 1 1])")
	assert.Contains(t, err.Error(), "rows=2")
	assert.Contains(t, err.Error(), "sum=3.000000")

	require.ErrorIs(t, checkShareSum(nil, nil), matrix.ErrNilMatrix)
}
