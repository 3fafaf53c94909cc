package ndarr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ndarr/ndarr"
)

func TestSliceColumnSharesStorage(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	col, err := a.Slice(ndarr.All, ndarr.Ix(1))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, col.Shape())
	assert.Equal(t, []float64{2, 5}, values(t, col))

	// Writing through the view is visible through the source.
	require.NoError(t, col.SetAt(ndarr.FloatScalar(50), 1))
	assert.Equal(t, []float64{1, 2, 3, 4, 50, 6}, values(t, a))

	// And the other way round.
	require.NoError(t, a.SetAt(ndarr.FloatScalar(20), 0, 1))
	assert.Equal(t, []float64{20, 50}, values(t, col))
}

func TestSliceSpans(t *testing.T) {
	a := vector(t, []float64{0, 1, 2, 3, 4, 5, 6, 7})

	s, err := a.Slice(ndarr.Span(2, 5))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4}, values(t, s))

	s, err = a.Slice(ndarr.SpanStep(1, 7, 2))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 5}, values(t, s))

	// Negative step reverses.
	s, err = a.Slice(ndarr.SpanStep(ndarr.End, ndarr.End, -1))
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 6, 5, 4, 3, 2, 1, 0}, values(t, s))

	// Negative bounds count from the end.
	s, err = a.Slice(ndarr.Span(-3, ndarr.End))
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6, 7}, values(t, s))

	// Out-of-range bounds clamp to an empty result rather than fail.
	s, err = a.Slice(ndarr.Span(10, 20))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Size())

	_, err = a.Slice(ndarr.SpanStep(0, 4, 0))
	assert.ErrorIs(t, err, ndarr.ErrIndex)
}

func TestSliceNegativeIndex(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	row, err := a.Slice(ndarr.Ix(-1))
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, values(t, row))

	_, err = a.Slice(ndarr.Ix(2))
	assert.ErrorIs(t, err, ndarr.ErrIndex)
}

func TestSliceTrailingAxesKeptWhole(t *testing.T) {
	a, err := ndarr.Arange(ndarr.Float64, 0, 24, 1)
	require.NoError(t, err)
	a, err = ndarr.Reshape(a, 2, 3, 4)
	require.NoError(t, err)

	s, err := a.Slice(ndarr.Ix(1))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, s.Shape())

	v, err := s.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 12.0, v.Float())
}

func TestSliceEllipsis(t *testing.T) {
	a, err := ndarr.Arange(ndarr.Float64, 0, 24, 1)
	require.NoError(t, err)
	a, err = ndarr.Reshape(a, 2, 3, 4)
	require.NoError(t, err)

	s, err := a.Slice(ndarr.Ellipsis, ndarr.Ix(0))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, s.Shape())
	assert.Equal(t, []float64{0, 4, 8, 12, 16, 20}, values(t, s))

	_, err = a.Slice(ndarr.Ellipsis, ndarr.Ellipsis)
	assert.ErrorIs(t, err, ndarr.ErrIndex)
}

func TestSliceNewAxis(t *testing.T) {
	a := vector(t, []float64{1, 2, 3})

	s, err := a.Slice(ndarr.NewAxis, ndarr.All)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, s.Shape())

	s, err = a.Slice(ndarr.All, ndarr.NewAxis)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, s.Shape())
}

func TestSliceAllIntsYieldsRankZero(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2}, {3, 4}})

	s, err := a.Slice(ndarr.Ix(1), ndarr.Ix(0))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Rank())

	v, err := s.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 3.0, v.Float())
}

func TestSliceTooManyIndices(t *testing.T) {
	a := vector(t, []float64{1, 2, 3})
	_, err := a.Slice(ndarr.Ix(0), ndarr.Ix(0))
	assert.ErrorIs(t, err, ndarr.ErrIndex)
}

func TestSetSlice(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	require.NoError(t, a.SetSlice(vector(t, []float64{7, 8, 9}), ndarr.Ix(0)))
	assert.Equal(t, []float64{7, 8, 9, 4, 5, 6}, values(t, a))
}

func TestSetSliceBroadcastsValue(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	// A single row broadcasts over both target rows.
	require.NoError(t, a.SetSlice(vector(t, []float64{0, 0, 0}), ndarr.All))
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0}, values(t, a))
}

func TestSetSliceRejectsGrowth(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	err := a.SetSlice(matrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}}), ndarr.Ix(0))
	assert.ErrorIs(t, err, ndarr.ErrBroadcast)
}

func TestSetSliceConvertsDType(t *testing.T) {
	a, err := ndarr.Zeros(ndarr.Int32, 3)
	require.NoError(t, err)

	require.NoError(t, a.SetSlice(vector(t, []float64{1.5, 2.5, 3.5}), ndarr.All))
	assert.Equal(t, []float64{1, 2, 3}, values(t, a))
}
