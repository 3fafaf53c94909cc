package ndarr

import "fmt"

// reduceSpec describes one reduction: how to fold elements together
// and how to turn the final accumulator into the stored result. The
// accumulator always starts as the first element of the reduced run,
// so every fold sees at least one value and empty identity constants
// are never needed. The f* fields are the direct float64 variants
// used when both source and destination carry the default float
// dtype.
type reduceSpec struct {
	step   func(acc, v Scalar) (Scalar, error)
	finish func(acc Scalar, count int) Scalar

	fstep   func(acc, v float64) float64
	ffinish func(acc float64, count int) float64
}

// reduceFallback folds src's trailing axes (from depth on) into one
// destination element through the value model. It runs its own
// odometer over the reduced axes, mirroring the outer traversal.
func reduceFallback(depth int, dst *Array, dstOff int, src *Array, srcOff int, spec *opSpec) error {
	rs := spec.reduce
	n := len(src.dims) - depth

	var counters [MaxDims]int
	for i := 0; i < n; i++ {
		counters[i] = src.dims[depth+i].length
	}

	var acc Scalar
	count := 0
	off := srcOff
	for {
		v := src.load(off)
		if count == 0 {
			acc = v
		} else {
			var err error
			if acc, err = rs.step(acc, v); err != nil {
				return err
			}
		}
		count++

		l := n - 1
		for ; l >= 0; l-- {
			off += src.dims[depth+l].stride
			counters[l]--
			if counters[l] > 0 {
				break
			}
			ll := src.dims[depth+l].length
			counters[l] = ll
			off -= ll * src.dims[depth+l].stride
		}
		if l < 0 {
			break
		}
	}

	if rs.finish != nil {
		acc = rs.finish(acc, count)
	}
	dst.store(dstOff, acc)
	return nil
}

// reduceFloat is reduceFallback operating directly on float64
// buffers.
func reduceFloat(depth int, dst *Array, dstOff int, src *Array, srcOff int, spec *opSpec) error {
	rs := spec.reduce
	n := len(src.dims) - depth

	var counters [MaxDims]int
	for i := 0; i < n; i++ {
		counters[i] = src.dims[depth+i].length
	}

	srcData := src.buf.float64s()
	var acc float64
	count := 0
	off := srcOff
	for {
		if count == 0 {
			acc = srcData[off]
		} else {
			acc = rs.fstep(acc, srcData[off])
		}
		count++

		l := n - 1
		for ; l >= 0; l-- {
			off += src.dims[depth+l].stride
			counters[l]--
			if counters[l] > 0 {
				break
			}
			ll := src.dims[depth+l].length
			counters[l] = ll
			off -= ll * src.dims[depth+l].stride
		}
		if l < 0 {
			break
		}
	}

	if rs.ffinish != nil {
		acc = rs.ffinish(acc, count)
	}
	dst.buf.float64s()[dstOff] = acc
	return nil
}

type reduceOptions struct {
	axes     []int
	axesSet  bool
	into     *Array
	keepDims bool
}

// ReduceOption adjusts how a reduction runs.
type ReduceOption func(*reduceOptions)

// Axes restricts the reduction to the named axes. Negative axes count
// from the end. Without this option every axis is reduced and the
// result is rank 0.
func Axes(axes ...int) ReduceOption {
	return func(o *reduceOptions) {
		o.axes = axes
		o.axesSet = true
	}
}

// Into stores the reduction into out, which must already have the
// reduced shape. The returned array is out itself.
func Into(out *Array) ReduceOption {
	return func(o *reduceOptions) { o.into = out }
}

// KeepDims keeps the reduced axes in the result as length-1 axes, so
// the result broadcasts cleanly against the source.
func KeepDims() ReduceOption {
	return func(o *reduceOptions) { o.keepDims = true }
}

// resolveAxes normalizes and validates the requested axes against
// rank, returning a bitmask of reduced axes and the axes in request
// order.
func resolveAxes(rank int, o *reduceOptions) (mask int, ordered []int, err error) {
	if !o.axesSet {
		ordered = make([]int, rank)
		for i := range ordered {
			ordered[i] = i
		}
		return 1<<rank - 1, ordered, nil
	}
	if len(o.axes) == 0 {
		return 0, nil, fmt.Errorf("%w: no axes to reduce", ErrDims)
	}
	ordered = make([]int, len(o.axes))
	for i, ax := range o.axes {
		if ax < 0 {
			ax += rank
		}
		if ax < 0 || ax >= rank {
			return 0, nil, fmt.Errorf("%w: axis %d out of range for rank %d", ErrDims, o.axes[i], rank)
		}
		if mask&(1<<ax) != 0 {
			return 0, nil, fmt.Errorf("%w: axis %d repeated", ErrDims, ax)
		}
		mask |= 1 << ax
		ordered[i] = ax
	}
	return mask, ordered, nil
}

// reduce folds the requested axes of src. The source view is permuted
// so the kept axes come first (in their original order) and the
// reduced axes trail; the traversal engine then walks the kept axes
// while the reduction kernel folds everything behind them.
func reduce(src *Array, rs *reduceSpec, destType DType, opts []ReduceOption) (*Array, error) {
	var o reduceOptions
	for _, opt := range opts {
		opt(&o)
	}

	mask, ordered, err := resolveAxes(len(src.dims), &o)
	if err != nil {
		return nil, err
	}

	for _, ax := range ordered {
		if src.dims[ax].length == 0 {
			return nil, fmt.Errorf("%w: cannot reduce over empty axis %d", ErrShape, ax)
		}
	}

	var permDims [MaxDims]dim
	kept := 0
	for i, d := range src.dims {
		if mask&(1<<i) == 0 {
			permDims[kept] = d
			kept++
		}
	}
	for i, ax := range ordered {
		permDims[kept+i] = src.dims[ax]
	}
	perm := newView(src, src.offset, permDims[:len(src.dims)])

	dest := o.into
	if dest != nil {
		if len(dest.dims) != kept || !sameLengthsCounted(dest, perm, kept) {
			return nil, fmt.Errorf("%w: output shape %v does not match reduced shape %v", ErrShape, dest.Shape(), dimLengths(permDims[:kept]))
		}
	} else {
		if dest, err = New(destType, dimLengths(permDims[:kept])...); err != nil {
			return nil, err
		}
	}

	spec := &opSpec{reduce: rs, unary: reduceFallback}
	if src.dtype == Float64 && dest.dtype == Float64 && rs.fstep != nil {
		spec.unary = reduceFloat
	}
	if err := applyUnary(dest, perm, spec); err != nil {
		return nil, err
	}

	if o.keepDims {
		return keepDimsView(dest, src, mask), nil
	}
	return dest, nil
}

// keepDimsView reinserts the reduced axes of src into result as
// length-1 axes at their original positions.
func keepDimsView(result, src *Array, mask int) *Array {
	dims := make([]dim, len(src.dims))
	next := 0
	for i := range src.dims {
		if mask&(1<<i) != 0 {
			dims[i] = dim{length: 1, stride: 0}
		} else {
			dims[i] = result.dims[next]
			next++
		}
	}
	return newView(result, result.offset, dims)
}

func stepOp(op Op) func(acc, v Scalar) (Scalar, error) {
	return func(acc, v Scalar) (Scalar, error) { return scalarBinary(op, acc, v) }
}

func stepPick(op Op) func(acc, v Scalar) (Scalar, error) {
	return func(acc, v Scalar) (Scalar, error) {
		better, err := scalarCompare(op, v, acc)
		if err != nil {
			return Scalar{}, err
		}
		if better {
			return v, nil
		}
		return acc, nil
	}
}

// Sum folds the reduced axes with addition. The result keeps the
// source dtype.
func Sum(a *Array, opts ...ReduceOption) (*Array, error) {
	return reduce(a, &reduceSpec{
		step:  stepOp(OpAdd),
		fstep: func(acc, v float64) float64 { return acc + v },
	}, a.dtype, opts)
}

// Prod folds the reduced axes with multiplication.
func Prod(a *Array, opts ...ReduceOption) (*Array, error) {
	return reduce(a, &reduceSpec{
		step:  stepOp(OpMul),
		fstep: func(acc, v float64) float64 { return acc * v },
	}, a.dtype, opts)
}

// Max returns the largest element along the reduced axes.
func Max(a *Array, opts ...ReduceOption) (*Array, error) {
	return reduce(a, &reduceSpec{
		step: stepPick(OpGreater),
		fstep: func(acc, v float64) float64 {
			if v > acc {
				return v
			}
			return acc
		},
	}, a.dtype, opts)
}

// Min returns the smallest element along the reduced axes.
func Min(a *Array, opts ...ReduceOption) (*Array, error) {
	return reduce(a, &reduceSpec{
		step: stepPick(OpLess),
		fstep: func(acc, v float64) float64 {
			if v < acc {
				return v
			}
			return acc
		},
	}, a.dtype, opts)
}

// Average returns the arithmetic mean along the reduced axes, always
// as Float64.
func Average(a *Array, opts ...ReduceOption) (*Array, error) {
	return reduce(a, &reduceSpec{
		step: func(acc, v Scalar) (Scalar, error) {
			return FloatScalar(acc.Float() + v.Float()), nil
		},
		finish: func(acc Scalar, count int) Scalar {
			return FloatScalar(acc.Float() / float64(count))
		},
		fstep:   func(acc, v float64) float64 { return acc + v },
		ffinish: func(acc float64, count int) float64 { return acc / float64(count) },
	}, Float64, opts)
}

// AnyTrue reports, per kept position, whether any reduced element is
// truthy. The result dtype is Bool.
func AnyTrue(a *Array, opts ...ReduceOption) (*Array, error) {
	return reduce(a, &reduceSpec{
		step: func(acc, v Scalar) (Scalar, error) {
			return BoolScalar(acc.Bool() || v.Bool()), nil
		},
		finish: func(acc Scalar, _ int) Scalar { return BoolScalar(acc.Bool()) },
	}, Bool, opts)
}

// AllTrue reports, per kept position, whether every reduced element
// is truthy. The result dtype is Bool.
func AllTrue(a *Array, opts ...ReduceOption) (*Array, error) {
	return reduce(a, &reduceSpec{
		step: func(acc, v Scalar) (Scalar, error) {
			return BoolScalar(acc.Bool() && v.Bool()), nil
		},
		finish: func(acc Scalar, _ int) Scalar { return BoolScalar(acc.Bool()) },
	}, Bool, opts)
}

// Argmax is declared for symmetry with Max but index-producing
// reductions are not wired into the traversal engine yet.
func Argmax(a *Array, opts ...ReduceOption) (*Array, error) {
	return nil, fmt.Errorf("%w: argmax", ErrNotImplemented)
}

// Argmin is declared for symmetry with Min but index-producing
// reductions are not wired into the traversal engine yet.
func Argmin(a *Array, opts ...ReduceOption) (*Array, error) {
	return nil, fmt.Errorf("%w: argmin", ErrNotImplemented)
}
