package ndarr_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-ndarr/ndarr"
)

func TestNewValidation(t *testing.T) {
	_, err := ndarr.New(ndarr.DType('z'), 2, 2)
	assert.ErrorIs(t, err, ndarr.ErrDType)

	_, err = ndarr.New(ndarr.Float64, 1, 1, 1, 1, 1, 1, 1, 1, 1)
	assert.ErrorIs(t, err, ndarr.ErrDims)

	_, err = ndarr.New(ndarr.Float64, 2, 0)
	assert.ErrorIs(t, err, ndarr.ErrShape)

	_, err = ndarr.New(ndarr.Float64, 2, -1)
	assert.ErrorIs(t, err, ndarr.ErrShape)
}

func TestNewShapeAndSize(t *testing.T) {
	a, err := ndarr.New(ndarr.Int32, 2, 3, 4)
	require.NoError(t, err)

	assert.Equal(t, 3, a.Rank())
	assert.Equal(t, []int{2, 3, 4}, a.Shape())
	assert.Equal(t, 24, a.Size())
	assert.Equal(t, ndarr.Int32, a.DType())
	assert.Equal(t, "Array[int32][2 3 4]", a.String())
}

func TestRankZero(t *testing.T) {
	a, err := ndarr.New(ndarr.Float64)
	require.NoError(t, err)
	assert.Equal(t, 0, a.Rank())
	assert.Equal(t, 1, a.Size())

	require.NoError(t, a.SetAt(ndarr.FloatScalar(3.5)))
	v, err := a.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 3.5, v.Float())

	b, err := ndarr.New(ndarr.Float64, 2)
	require.NoError(t, err)
	_, err = b.Scalar()
	assert.ErrorIs(t, err, ndarr.ErrDims)
}

func TestAtNegativeIndexWraps(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	v, err := a.At(-1, -1)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v.Float())

	v, err = a.At(0, -3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.Float())

	_, err = a.At(0, 3)
	assert.ErrorIs(t, err, ndarr.ErrIndex)
	_, err = a.At(0, -4)
	assert.ErrorIs(t, err, ndarr.ErrIndex)
	_, err = a.At(0)
	assert.ErrorIs(t, err, ndarr.ErrIndex)
}

func TestSetAtConverts(t *testing.T) {
	a, err := ndarr.New(ndarr.Int32, 2)
	require.NoError(t, err)

	require.NoError(t, a.SetAt(ndarr.FloatScalar(3.9), 0))
	v, err := a.At(0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.Int())
}

func TestCopyIsIndependent(t *testing.T) {
	a := matrix(t, [][]float64{{1, 2}, {3, 4}})
	b, err := a.Copy()
	require.NoError(t, err)

	require.NoError(t, a.SetAt(ndarr.FloatScalar(99), 0, 0))
	assert.Equal(t, []float64{1, 2, 3, 4}, values(t, b))
	assert.Equal(t, []float64{99, 2, 3, 4}, values(t, a))
}

func TestAsType(t *testing.T) {
	a := matrix(t, [][]float64{{1.9, -2.1}, {3.5, 4.0}})
	b, err := a.AsType(ndarr.Int32)
	require.NoError(t, err)

	assert.Equal(t, ndarr.Int32, b.DType())
	if diff := cmp.Diff([]float64{1, -2, 3, 4}, values(t, b)); diff != "" {
		t.Errorf("AsType values mismatch (-want +got):\n%s", diff)
	}

	_, err = a.AsType(ndarr.DType('z'))
	assert.ErrorIs(t, err, ndarr.ErrDType)
}

func TestFloat64sAliasesStorage(t *testing.T) {
	a := vector(t, []float64{1, 2, 3})
	data := a.Float64s()
	data[1] = 20

	v, err := a.At(1)
	require.NoError(t, err)
	assert.Equal(t, 20.0, v.Float())
}
