package ndarr

import (
	"fmt"
	"math"
)

// Scalar is a single element value tagged with the dtype it was read
// as. It is the unit of exchange for the generic (non-fast-path)
// kernels: elements are loaded into a Scalar, operated on in the
// promoted domain, and stored back with conversion to the destination
// dtype.
type Scalar struct {
	dt DType
	f  float64
	i  int64
	u  uint64
	b  bool
}

// FloatScalar wraps a float64 value.
func FloatScalar(x float64) Scalar { return Scalar{dt: Float64, f: x} }

// IntScalar wraps a signed integer value.
func IntScalar(i int64) Scalar { return Scalar{dt: Int64, i: i} }

// UintScalar wraps an unsigned integer value.
func UintScalar(u uint64) Scalar { return Scalar{dt: Uint64, u: u} }

// BoolScalar wraps a boolean value.
func BoolScalar(b bool) Scalar { return Scalar{dt: Bool, b: b} }

// DType returns the dtype the value carries.
func (s Scalar) DType() DType { return s.dt }

// Float converts the value to float64.
func (s Scalar) Float() float64 {
	switch {
	case s.dt == Float64:
		return s.f
	case s.dt == Bool:
		if s.b {
			return 1
		}
		return 0
	case s.dt.isSigned():
		return float64(s.i)
	default:
		return float64(s.u)
	}
}

// Int converts the value to int64, truncating floats toward zero.
func (s Scalar) Int() int64 {
	switch {
	case s.dt == Float64:
		return int64(s.f)
	case s.dt == Bool:
		if s.b {
			return 1
		}
		return 0
	case s.dt.isSigned():
		return s.i
	default:
		return int64(s.u)
	}
}

// Uint converts the value to uint64 with two's-complement wrapping
// for negative inputs.
func (s Scalar) Uint() uint64 {
	switch {
	case s.dt == Float64:
		return uint64(int64(s.f))
	case s.dt == Bool:
		if s.b {
			return 1
		}
		return 0
	case s.dt.isSigned():
		return uint64(s.i)
	default:
		return s.u
	}
}

// Bool converts the value to its truthiness.
func (s Scalar) Bool() bool {
	switch {
	case s.dt == Float64:
		return s.f != 0
	case s.dt == Bool:
		return s.b
	case s.dt.isSigned():
		return s.i != 0
	default:
		return s.u != 0
	}
}

// load reads the element at absolute offset off into a Scalar tagged
// with the array's dtype.
func (a *Array) load(off int) Scalar {
	switch a.dtype {
	case Float64:
		return Scalar{dt: Float64, f: a.buf.float64s()[off]}
	case Bool:
		return Scalar{dt: Bool, b: a.buf.data[off] != 0}
	case Int8:
		return Scalar{dt: Int8, i: int64(a.buf.int8s()[off])}
	case Uint8:
		return Scalar{dt: Uint8, u: uint64(a.buf.data[off])}
	case Int32:
		return Scalar{dt: Int32, i: int64(a.buf.int32s()[off])}
	case Uint32:
		return Scalar{dt: Uint32, u: uint64(a.buf.uint32s()[off])}
	case Int64:
		return Scalar{dt: Int64, i: a.buf.int64s()[off]}
	case Uint64:
		return Scalar{dt: Uint64, u: a.buf.uint64s()[off]}
	default:
		panic(fmt.Sprintf("unknown dtype %q", byte(a.dtype)))
	}
}

// store writes v at absolute offset off, converting to the array's
// dtype (floats truncate toward zero into integer slots, everything
// reduces to truthiness for Bool).
func (a *Array) store(off int, v Scalar) {
	switch a.dtype {
	case Float64:
		a.buf.float64s()[off] = v.Float()
	case Bool:
		if v.Bool() {
			a.buf.data[off] = 1
		} else {
			a.buf.data[off] = 0
		}
	case Int8:
		a.buf.int8s()[off] = int8(v.Int())
	case Uint8:
		a.buf.data[off] = byte(v.Uint())
	case Int32:
		a.buf.int32s()[off] = int32(v.Int())
	case Uint32:
		a.buf.uint32s()[off] = uint32(v.Uint())
	case Int64:
		a.buf.int64s()[off] = v.Int()
	case Uint64:
		a.buf.uint64s()[off] = v.Uint()
	default:
		panic(fmt.Sprintf("unknown dtype %q", byte(a.dtype)))
	}
}

// scalarCompare evaluates a comparison in the promoted domain.
func scalarCompare(op Op, a, b Scalar) (bool, error) {
	rt := promote(a.dt, b.dt)

	var less, equal bool
	switch {
	case rt.isFloat(), a.dt.isSigned() != b.dt.isSigned():
		// Mixed-signedness integer pairs compare through float64 to
		// avoid wraparound artifacts.
		x, y := a.Float(), b.Float()
		less, equal = x < y, x == y
	case rt.isSigned() || rt == Bool:
		x, y := a.Int(), b.Int()
		less, equal = x < y, x == y
	default:
		x, y := a.Uint(), b.Uint()
		less, equal = x < y, x == y
	}

	switch op {
	case OpLess:
		return less, nil
	case OpLessEqual:
		return less || equal, nil
	case OpGreater:
		return !less && !equal, nil
	case OpGreaterEqual:
		return !less, nil
	case OpEqual:
		return equal, nil
	case OpNotEqual:
		return !equal, nil
	default:
		return false, fmt.Errorf("%w: %v is not a comparison", ErrUnsupported, op)
	}
}

// scalarBinary evaluates an arithmetic or bitwise operation in the
// promoted domain and returns the result tagged with the promoted
// dtype (Float64 for true division).
func scalarBinary(op Op, a, b Scalar) (Scalar, error) {
	if op.isComparison() {
		r, err := scalarCompare(op, a, b)
		if err != nil {
			return Scalar{}, err
		}
		return BoolScalar(r), nil
	}

	rt := promote(a.dt, b.dt)
	if op == OpDiv {
		rt = Float64
	}

	if rt.isFloat() {
		return floatBinary(op, a.Float(), b.Float())
	}
	if op == OpPow && b.Int() < 0 {
		// A negative integer exponent leaves the integer domain.
		return floatBinary(op, a.Float(), b.Float())
	}
	if rt.isSigned() || rt == Bool {
		v, err := intBinary(op, a.Int(), b.Int())
		if err != nil {
			return Scalar{}, err
		}
		return Scalar{dt: rt, i: v, b: v != 0}, nil
	}
	v, err := uintBinary(op, a.Uint(), b.Uint())
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{dt: rt, u: v}, nil
}

func floatBinary(op Op, x, y float64) (Scalar, error) {
	switch op {
	case OpAdd:
		return FloatScalar(x + y), nil
	case OpSub:
		return FloatScalar(x - y), nil
	case OpMul:
		return FloatScalar(x * y), nil
	case OpDiv:
		if y == 0 {
			return Scalar{}, fmt.Errorf("%w: division by zero", ErrDomain)
		}
		return FloatScalar(x / y), nil
	case OpFloorDiv:
		if y == 0 {
			return Scalar{}, fmt.Errorf("%w: division by zero", ErrDomain)
		}
		return FloatScalar(math.Floor(x / y)), nil
	case OpMod:
		if y == 0 {
			return Scalar{}, fmt.Errorf("%w: modulo by zero", ErrDomain)
		}
		return FloatScalar(x - math.Floor(x/y)*y), nil
	case OpPow:
		return FloatScalar(math.Pow(x, y)), nil
	default:
		return Scalar{}, fmt.Errorf("%w: %v on float operands", ErrUnsupported, op)
	}
}

func intBinary(op Op, x, y int64) (int64, error) {
	switch op {
	case OpAdd:
		return x + y, nil
	case OpSub:
		return x - y, nil
	case OpMul:
		return x * y, nil
	case OpFloorDiv:
		if y == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrDomain)
		}
		q := x / y
		if (x%y != 0) && ((x < 0) != (y < 0)) {
			q--
		}
		return q, nil
	case OpMod:
		if y == 0 {
			return 0, fmt.Errorf("%w: modulo by zero", ErrDomain)
		}
		m := x % y
		if m != 0 && ((x < 0) != (y < 0)) {
			m += y
		}
		return m, nil
	case OpPow:
		r := int64(1)
		for ; y > 0; y-- {
			r *= x
		}
		return r, nil
	case OpAnd:
		return x & y, nil
	case OpOr:
		return x | y, nil
	case OpXor:
		return x ^ y, nil
	case OpLShift:
		if y < 0 {
			return 0, fmt.Errorf("%w: negative shift count", ErrDomain)
		}
		return x << uint(y), nil
	case OpRShift:
		if y < 0 {
			return 0, fmt.Errorf("%w: negative shift count", ErrDomain)
		}
		return x >> uint(y), nil
	default:
		return 0, fmt.Errorf("%w: %v on integer operands", ErrUnsupported, op)
	}
}

func uintBinary(op Op, x, y uint64) (uint64, error) {
	switch op {
	case OpAdd:
		return x + y, nil
	case OpSub:
		return x - y, nil
	case OpMul:
		return x * y, nil
	case OpFloorDiv:
		if y == 0 {
			return 0, fmt.Errorf("%w: division by zero", ErrDomain)
		}
		return x / y, nil
	case OpMod:
		if y == 0 {
			return 0, fmt.Errorf("%w: modulo by zero", ErrDomain)
		}
		return x % y, nil
	case OpPow:
		r := uint64(1)
		for ; y > 0; y-- {
			r *= x
		}
		return r, nil
	case OpAnd:
		return x & y, nil
	case OpOr:
		return x | y, nil
	case OpXor:
		return x ^ y, nil
	case OpLShift:
		return x << y, nil
	case OpRShift:
		return x >> y, nil
	default:
		return 0, fmt.Errorf("%w: %v on unsigned operands", ErrUnsupported, op)
	}
}

// scalarUnary evaluates a unary operation, keeping the operand's
// dtype.
func scalarUnary(op UnaryOp, v Scalar) (Scalar, error) {
	switch op {
	case OpPos:
		return v, nil
	case OpNeg:
		if v.dt.isFloat() {
			return FloatScalar(-v.f), nil
		}
		return Scalar{dt: v.dt, i: -v.Int(), u: -v.Uint(), b: v.Int() != 0}, nil
	case OpAbs:
		if v.dt.isFloat() {
			return FloatScalar(math.Abs(v.f)), nil
		}
		if v.dt.isSigned() && v.i < 0 {
			return Scalar{dt: v.dt, i: -v.i}, nil
		}
		return v, nil
	default:
		return Scalar{}, fmt.Errorf("%w: unary op %v", ErrUnsupported, op)
	}
}
