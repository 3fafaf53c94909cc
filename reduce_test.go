package ndarr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ndarr/ndarr"
)

func TestSumAll(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2}, {3, 4}})

	s, err := ndarr.Sum(a)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Rank())

	v, err := s.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 10.0, v.Float())
}

func TestSumAxes(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2}, {3, 4}})

	s, err := ndarr.Sum(a, ndarr.Axes(0))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, s.Shape())
	assert.Equal(t, []float64{4, 6}, values(t, s))

	s, err = ndarr.Sum(a, ndarr.Axes(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, values(t, s))

	// Negative axes count from the end.
	s, err = ndarr.Sum(a, ndarr.Axes(-1))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 7}, values(t, s))
}

func TestSumAxisValidation(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2}, {3, 4}})

	_, err := ndarr.Sum(a, ndarr.Axes(2))
	assert.ErrorIs(t, err, ndarr.ErrDims)

	_, err = ndarr.Sum(a, ndarr.Axes(0, 0))
	assert.ErrorIs(t, err, ndarr.ErrDims)

	_, err = ndarr.Sum(a, ndarr.Axes())
	assert.ErrorIs(t, err, ndarr.ErrDims)
}

func TestSumKeepsSourceDType(t *testing.T) {
	a, err := ndarr.FromNested([][]int32{{1, 2}, {3, 4}}, ndarr.Int32)
	require.NoError(t, err)

	s, err := ndarr.Sum(a, ndarr.Axes(0))
	require.NoError(t, err)
	assert.Equal(t, ndarr.Int32, s.DType())
	assert.Equal(t, []float64{4, 6}, values(t, s))
}

func TestProd(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2}, {3, 4}})

	p, err := ndarr.Prod(a, ndarr.Axes(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 12}, values(t, p))
}

func TestMaxMin(t *testing.T) {
	a := matrix(t, [][]float64{{3, 1, 4}, {1, 5, 9}})

	m, err := ndarr.Max(a)
	require.NoError(t, err)
	v, err := m.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 9.0, v.Float())

	m, err = ndarr.Max(a, ndarr.Axes(0))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 5, 9}, values(t, m))

	m, err = ndarr.Min(a, ndarr.Axes(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, values(t, m))
}

func TestAverageAlwaysFloat(t *testing.T) {
	a, err := ndarr.FromNested([][]int32{{1, 2}, {3, 4}}, ndarr.Int32)
	require.NoError(t, err)

	m, err := ndarr.Average(a)
	require.NoError(t, err)
	assert.Equal(t, ndarr.Float64, m.DType())

	v, err := m.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 2.5, v.Float())

	m, err = ndarr.Average(a, ndarr.Axes(0))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, values(t, m))
}

func TestAnyAllTrue(t *testing.T) {
	a := matrix(t, [][]float64{{0, 1}, {0, 0}})

	got, err := ndarr.AnyTrue(a, ndarr.Axes(1))
	require.NoError(t, err)
	assert.Equal(t, ndarr.Bool, got.DType())
	assert.Equal(t, []float64{1, 0}, values(t, got))

	got, err = ndarr.AllTrue(a, ndarr.Axes(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, values(t, got))

	b := matrix(t, [][]float64{{1, 2}, {3, 4}})
	v, err := ndarr.AllTrue(b)
	require.NoError(t, err)
	s, err := v.Scalar()
	require.NoError(t, err)
	assert.True(t, s.Bool())
}

func TestKeepDims(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2}, {3, 4}})

	s, err := ndarr.Sum(a, ndarr.Axes(0), ndarr.KeepDims())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, s.Shape())
	assert.Equal(t, []float64{4, 6}, values(t, s))

	// The kept axis broadcasts straight back against the source.
	c, err := ndarr.Sub(a, s)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -4, -1, -2}, values(t, c))
}

func TestReduceInto(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2}, {3, 4}})

	out, err := ndarr.New(ndarr.Float64, 2)
	require.NoError(t, err)
	got, err := ndarr.Sum(a, ndarr.Axes(1), ndarr.Into(out))
	require.NoError(t, err)
	assert.Same(t, out, got)
	assert.Equal(t, []float64{3, 7}, values(t, out))

	bad, err := ndarr.New(ndarr.Float64, 3)
	require.NoError(t, err)
	_, err = ndarr.Sum(a, ndarr.Axes(1), ndarr.Into(bad))
	assert.ErrorIs(t, err, ndarr.ErrShape)
}

func TestReduceNonContiguousView(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	tr, err := ndarr.Transpose(a)
	require.NoError(t, err)

	s, err := ndarr.Sum(tr, ndarr.Axes(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 9}, values(t, s))
}

func TestMultiAxisReduce(t *testing.T) {
	a, err := ndarr.Arange(ndarr.Float64, 0, 24, 1)
	require.NoError(t, err)
	a, err = ndarr.Reshape(a, 2, 3, 4)
	require.NoError(t, err)

	s, err := ndarr.Sum(a, ndarr.Axes(0, 2))
	require.NoError(t, err)
	assert.Equal(t, []int{3}, s.Shape())
	assert.Equal(t, []float64{60, 92, 124}, values(t, s))
}

func TestReductionIdentities(t *testing.T) {
	zeros, err := ndarr.Zeros(ndarr.Float64, 3, 4)
	require.NoError(t, err)
	s, err := ndarr.Sum(zeros)
	require.NoError(t, err)
	v, err := s.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 0.0, v.Float())

	ones, err := ndarr.Ones(ndarr.Float64, 3, 4)
	require.NoError(t, err)
	p, err := ndarr.Prod(ones)
	require.NoError(t, err)
	v, err = p.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.Float())

	// average == sum / count
	a := matrix(t, [][]float64{{1, 2, 5}, {3, 4, 9}})
	avg, err := ndarr.Average(a)
	require.NoError(t, err)
	total, err := ndarr.Sum(a)
	require.NoError(t, err)
	av, err := avg.Scalar()
	require.NoError(t, err)
	tv, err := total.Scalar()
	require.NoError(t, err)
	assert.Equal(t, tv.Float()/float64(a.Size()), av.Float())
}

func TestArgReductionsNotImplemented(t *testing.T) {
	a := vector(t, []float64{1, 2, 3})

	_, err := ndarr.Argmax(a)
	assert.ErrorIs(t, err, ndarr.ErrNotImplemented)
	_, err = ndarr.Argmin(a)
	assert.ErrorIs(t, err, ndarr.ErrNotImplemented)
}
