package ndarr

import (
	"fmt"
	"math"
)

// ApplyFloat maps fn over every element of x in the float domain. A
// nil out allocates a fresh Float64 result of x's shape; otherwise
// the result is stored into out (x may broadcast into out's shape but
// may never grow it) and out is returned. A result that turns finite
// input into NaN or Inf fails with ErrDomain.
func ApplyFloat(fn func(float64) float64, x *Array, out *Array) (*Array, error) {
	dest := out
	src := x
	var err error
	if dest == nil {
		if dest, err = shapedLike(Float64, x, 0); err != nil {
			return nil, err
		}
	} else if !sameLengths(dest, src) {
		var destExpanded bool
		dest, src, destExpanded, err = broadcast(dest, src)
		if err != nil {
			return nil, err
		}
		if destExpanded {
			return nil, fmt.Errorf("%w: output cannot grow", ErrBroadcast)
		}
	}

	spec, _ := findFloatFuncSpec(src, dest.dtype, fn)
	if err := applyUnary(dest, src, spec); err != nil {
		return nil, err
	}
	if out != nil {
		return out, nil
	}
	return dest, nil
}

// Elementwise trigonometric, hyperbolic, exponential, and logarithmic
// maps. Each allocates a Float64 result; use ApplyFloat directly to
// reuse an output array.

func Sin(x *Array) (*Array, error)   { return ApplyFloat(math.Sin, x, nil) }
func Cos(x *Array) (*Array, error)   { return ApplyFloat(math.Cos, x, nil) }
func Tan(x *Array) (*Array, error)   { return ApplyFloat(math.Tan, x, nil) }
func Asin(x *Array) (*Array, error)  { return ApplyFloat(math.Asin, x, nil) }
func Acos(x *Array) (*Array, error)  { return ApplyFloat(math.Acos, x, nil) }
func Atan(x *Array) (*Array, error)  { return ApplyFloat(math.Atan, x, nil) }
func Sinh(x *Array) (*Array, error)  { return ApplyFloat(math.Sinh, x, nil) }
func Cosh(x *Array) (*Array, error)  { return ApplyFloat(math.Cosh, x, nil) }
func Tanh(x *Array) (*Array, error)  { return ApplyFloat(math.Tanh, x, nil) }
func Asinh(x *Array) (*Array, error) { return ApplyFloat(math.Asinh, x, nil) }
func Acosh(x *Array) (*Array, error) { return ApplyFloat(math.Acosh, x, nil) }
func Atanh(x *Array) (*Array, error) { return ApplyFloat(math.Atanh, x, nil) }
func Exp(x *Array) (*Array, error)   { return ApplyFloat(math.Exp, x, nil) }
func Log(x *Array) (*Array, error)   { return ApplyFloat(math.Log, x, nil) }
func Sqrt(x *Array) (*Array, error)  { return ApplyFloat(math.Sqrt, x, nil) }
