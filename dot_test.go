package ndarr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ndarr/ndarr"
)

func TestDotVectors(t *testing.T) {
	a := vector(t, []float64{1, 2, 3})
	b := vector(t, []float64{4, 5, 6})

	c, err := ndarr.Dot(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Rank())

	v, err := c.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 32.0, v.Float())
}

func TestDotMatrixMatrix(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2}, {3, 4}})
	b := matrix(t, [][]float64{{5, 6}, {7, 8}})

	c, err := ndarr.Dot(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, c.Shape())
	assert.Equal(t, []float64{19, 22, 43, 50}, values(t, c))
}

func TestDotMatrixVector(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	x := vector(t, []float64{1, 0, -1})

	c, err := ndarr.Dot(a, x)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, c.Shape())
	assert.Equal(t, []float64{-2, -2}, values(t, c))
}

func TestDotVectorMatrix(t *testing.T) {
	x := vector(t, []float64{1, 2})
	a := matrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	c, err := ndarr.Dot(x, a)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, c.Shape())
	assert.Equal(t, []float64{9, 12, 15}, values(t, c))
}

func TestDotScalarOperand(t *testing.T) {
	a := vector(t, []float64{1, 2, 3})
	s, err := ndarr.FromNested(2.0, 0)
	require.NoError(t, err)

	c, err := ndarr.Dot(s, a)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, values(t, c))
}

func TestDotContractionShape(t *testing.T) {
	a, err := ndarr.Ones(ndarr.Float64, 2, 3)
	require.NoError(t, err)
	b, err := ndarr.Ones(ndarr.Float64, 4, 3, 5)
	require.NoError(t, err)

	c, err := ndarr.Dot(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 5}, c.Shape())

	// Every element contracts three ones against three ones.
	v, err := c.At(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, v.Float())
}

func TestDotLengthMismatch(t *testing.T) {
	a := vector(t, []float64{1, 2, 3})
	b := vector(t, []float64{1, 2})

	_, err := ndarr.Dot(a, b)
	assert.ErrorIs(t, err, ndarr.ErrShape)
}

func TestDotPromotes(t *testing.T) {
	a, err := ndarr.FromNested([]int32{1, 2}, ndarr.Int32)
	require.NoError(t, err)
	b := vector(t, []float64{0.5, 0.25})

	c, err := ndarr.Dot(a, b)
	require.NoError(t, err)
	assert.Equal(t, ndarr.Float64, c.DType())

	v, err := c.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.Float())
}

func TestDotTransposedView(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2}, {3, 4}})
	tr, err := ndarr.Transpose(a)
	require.NoError(t, err)

	c, err := ndarr.Dot(tr, a)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 14, 14, 20}, values(t, c))
}
