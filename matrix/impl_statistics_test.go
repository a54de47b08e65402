package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/mergesim/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumAndRowSums(t *testing.T) {
	m := mustDense(t, 2, 3, 0.2, 0.3, 0.5, 0.1, 0.1, 0.8)

	s, err := matrix.Sum(m)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, s, 1e-12)

	rs, err := matrix.RowSums(m)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1}, rs, 1e-12)

	_, err = matrix.Sum(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestRowSumSquaresSkipsNaN(t *testing.T) {
	m := mustDense(t, 2, 3, 0.5, 0.5, math.NaN(), 0.6, 0.4, 0)

	hhi, err := matrix.RowSumSquares(m)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.52}, hhi, 1e-12)
}

func TestColMeans(t *testing.T) {
	m := mustDense(t, 2, 2, 1, 2, 3, 4)

	means, err := matrix.ColMeans(m)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, means)

	mean, err := matrix.Mean(m)
	require.NoError(t, err)
	assert.Equal(t, 2.5, mean)

	empty, err := matrix.NewDense(0, 2)
	require.NoError(t, err)
	means, err = matrix.ColMeans(empty)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(means[0]))
}

func TestValidators(t *testing.T) {
	m := mustDense(t, 1, 2, 1, 2)
	other := mustDense(t, 2, 2, 1, 2, 3, 4)

	assert.NoError(t, matrix.ValidateCols(m, 2))
	assert.ErrorIs(t, matrix.ValidateCols(m, 3), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, matrix.ValidateCols(nil, 3), matrix.ErrNilMatrix)
	assert.ErrorIs(t, matrix.ValidateSameRows(m, other), matrix.ErrDimensionMismatch)
	assert.NoError(t, matrix.ValidateSameRows())
	assert.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
}
