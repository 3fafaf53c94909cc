package ndarr

import (
	"fmt"
	"math"
	"reflect"
)

// FromNested builds an array from nested Go slices, e.g.
// [][]float64{{1, 2}, {3, 4}}. Every slice at the same depth must
// have the same length. Leaf values may be any Go integer, float, or
// bool kind. A dtype of zero selects DefaultDType.
func FromNested(v any, dt DType) (*Array, error) {
	if dt == 0 {
		dt = DefaultDType
	}

	shape, err := nestedShape(reflect.ValueOf(v), 0)
	if err != nil {
		return nil, err
	}
	a, err := New(dt, shape...)
	if err != nil {
		return nil, err
	}
	off := 0
	if err := fillNested(a, reflect.ValueOf(v), shape, &off); err != nil {
		return nil, err
	}
	return a, nil
}

func nestedShape(v reflect.Value, depth int) ([]int, error) {
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, nil
	}
	if depth >= MaxDims {
		return nil, fmt.Errorf("%w: nesting exceeds limit of %d", ErrDims, MaxDims)
	}
	if v.Len() == 0 {
		return nil, fmt.Errorf("%w: empty slice at depth %d", ErrShape, depth)
	}
	inner, err := nestedShape(v.Index(0), depth+1)
	if err != nil {
		return nil, err
	}
	return append([]int{v.Len()}, inner...), nil
}

func fillNested(a *Array, v reflect.Value, shape []int, off *int) error {
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	if len(shape) == 0 {
		s, err := scalarFromValue(v)
		if err != nil {
			return err
		}
		a.store(*off, s)
		*off++
		return nil
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return fmt.Errorf("%w: ragged nesting, expected %d more levels", ErrShape, len(shape))
	}
	if v.Len() != shape[0] {
		return fmt.Errorf("%w: ragged nesting, got length %d where %d expected", ErrShape, v.Len(), shape[0])
	}
	for i := 0; i < v.Len(); i++ {
		if err := fillNested(a, v.Index(i), shape[1:], off); err != nil {
			return err
		}
	}
	return nil
}

func scalarFromValue(v reflect.Value) (Scalar, error) {
	for v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return FloatScalar(v.Float()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntScalar(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return UintScalar(v.Uint()), nil
	case reflect.Bool:
		return BoolScalar(v.Bool()), nil
	default:
		return Scalar{}, fmt.Errorf("%w: cannot use %s as an element", ErrDType, v.Kind())
	}
}

// FromFlat builds a 1-D array of dtype dt from data, converting each
// element. A zero dt selects DefaultDType.
func FromFlat(dt DType, data []float64) (*Array, error) {
	if dt == 0 {
		dt = DefaultDType
	}
	a, err := New(dt, len(data))
	if err != nil {
		return nil, err
	}
	if dt == Float64 {
		copy(a.Float64s(), data)
		return a, nil
	}
	for i, v := range data {
		a.store(i, FloatScalar(v))
	}
	return a, nil
}

// FromFloat64s builds a 1-D Float64 array holding a copy of data.
func FromFloat64s(data []float64) (*Array, error) {
	return FromFlat(Float64, data)
}

// Zeros allocates an array filled with zeros.
func Zeros(dt DType, shape ...int) (*Array, error) {
	return New(dt, shape...)
}

// Ones allocates an array filled with ones.
func Ones(dt DType, shape ...int) (*Array, error) {
	return Full(dt, 1, shape...)
}

// Full allocates an array with every element set to value (converted
// to dt).
func Full(dt DType, value float64, shape ...int) (*Array, error) {
	a, err := New(dt, shape...)
	if err != nil {
		return nil, err
	}
	s := FloatScalar(value)
	for off := 0; off < a.Size(); off++ {
		a.store(off, s)
	}
	return a, nil
}

// Arange builds a 1-D array of values from start towards stop,
// advancing by step. The element count is ceil((stop-start)/step),
// which must come out positive.
func Arange(dt DType, start, stop, step float64) (*Array, error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: arange step cannot be zero", ErrShape)
	}
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return nil, fmt.Errorf("%w: empty range from %v to %v by %v", ErrShape, start, stop, step)
	}
	a, err := New(dt, n)
	if err != nil {
		return nil, err
	}
	v := start
	for off := 0; off < n; off++ {
		a.store(off, FloatScalar(v))
		v += step
	}
	return a, nil
}

// Eye builds the n by n identity matrix.
func Eye(dt DType, n int) (*Array, error) {
	a, err := New(dt, n, n)
	if err != nil {
		return nil, err
	}
	one := FloatScalar(1)
	for i := 0; i < n; i++ {
		a.store(i*n+i, one)
	}
	return a, nil
}
