package ndarr

import (
	"fmt"
	"math"
)

// Compute applies op elementwise over lhs and rhs, broadcasting the
// operands to a common shape. The result is a fresh array whose dtype
// follows the promotion rules (Bool for comparisons, float for true
// division).
func Compute(op Op, lhs, rhs *Array) (*Array, error) {
	spec, rt, err := findBinaryOpSpec(lhs, rhs, 0, op)
	if err != nil {
		return nil, err
	}
	left, right := lhs, rhs
	if !sameLengths(left, right) {
		if left, right, _, err = broadcast(lhs, rhs); err != nil {
			return nil, err
		}
	}
	dest, err := shapedLike(rt, left, 0)
	if err != nil {
		return nil, err
	}
	if err := applyBinary(dest, left, right, spec); err != nil {
		return nil, err
	}
	return dest, nil
}

// ComputeInPlace applies op elementwise, storing the result back into
// lhs with lhs's dtype. The right operand may broadcast into lhs's
// shape but may never grow it.
func ComputeInPlace(op Op, lhs, rhs *Array) error {
	if op.isComparison() && lhs.dtype != Bool {
		return fmt.Errorf("%w: in-place %v into %s destination", ErrUnsupported, op, lhs.dtype)
	}
	spec, _, err := findBinaryOpSpec(lhs, rhs, lhs.dtype, op)
	if err != nil {
		return err
	}
	left, right := lhs, rhs
	if !sameLengths(left, right) {
		var leftExpanded bool
		left, right, leftExpanded, err = broadcast(lhs, rhs)
		if err != nil {
			return err
		}
		if leftExpanded {
			return fmt.Errorf("%w: in-place operand cannot grow", ErrBroadcast)
		}
	}
	return applyBinary(left, left, right, spec)
}

// Elementwise arithmetic conveniences.

func Add(lhs, rhs *Array) (*Array, error) { return Compute(OpAdd, lhs, rhs) }
func Sub(lhs, rhs *Array) (*Array, error) { return Compute(OpSub, lhs, rhs) }
func Mul(lhs, rhs *Array) (*Array, error) { return Compute(OpMul, lhs, rhs) }
func Div(lhs, rhs *Array) (*Array, error) { return Compute(OpDiv, lhs, rhs) }
func Mod(lhs, rhs *Array) (*Array, error) { return Compute(OpMod, lhs, rhs) }
func Pow(lhs, rhs *Array) (*Array, error) { return Compute(OpPow, lhs, rhs) }

// Elementwise comparison conveniences; each produces a Bool array.

func Less(lhs, rhs *Array) (*Array, error)         { return Compute(OpLess, lhs, rhs) }
func LessEqual(lhs, rhs *Array) (*Array, error)    { return Compute(OpLessEqual, lhs, rhs) }
func Greater(lhs, rhs *Array) (*Array, error)      { return Compute(OpGreater, lhs, rhs) }
func GreaterEqual(lhs, rhs *Array) (*Array, error) { return Compute(OpGreaterEqual, lhs, rhs) }
func Equal(lhs, rhs *Array) (*Array, error)        { return Compute(OpEqual, lhs, rhs) }
func NotEqual(lhs, rhs *Array) (*Array, error)     { return Compute(OpNotEqual, lhs, rhs) }

func computeUnary(op UnaryOp, a *Array) (*Array, error) {
	spec, rt, err := findUnaryOpSpec(a, 0, op)
	if err != nil {
		return nil, err
	}
	dest, err := shapedLike(rt, a, 0)
	if err != nil {
		return nil, err
	}
	if err := applyUnary(dest, a, spec); err != nil {
		return nil, err
	}
	return dest, nil
}

// Neg returns the elementwise negation of a.
func Neg(a *Array) (*Array, error) { return computeUnary(OpNeg, a) }

// Pos returns a fresh elementwise copy of a.
func Pos(a *Array) (*Array, error) { return computeUnary(OpPos, a) }

// Abs returns the elementwise absolute value of a.
func Abs(a *Array) (*Array, error) { return computeUnary(OpAbs, a) }

// closeSpec carries the tolerances of one approximate-equality
// traversal.
type closeSpec struct {
	rtol, atol float64
	equalNaN   bool
}

// CloseOption adjusts the tolerances used by IsClose.
type CloseOption func(*closeSpec)

// Rtol sets the relative tolerance (default 1e-5).
func Rtol(v float64) CloseOption { return func(c *closeSpec) { c.rtol = v } }

// Atol sets the absolute tolerance (default 1e-8).
func Atol(v float64) CloseOption { return func(c *closeSpec) { c.atol = v } }

// EqualNaN makes NaN compare equal to NaN.
func EqualNaN() CloseOption { return func(c *closeSpec) { c.equalNaN = true } }

func (c *closeSpec) close(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) {
		return c.equalNaN && math.IsNaN(x) && math.IsNaN(y)
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return x == y
	}
	return math.Abs(x-y) <= c.atol+c.rtol*math.Abs(y)
}

func isCloseKernel(_ int, dst *Array, dstOff int, src1 *Array, src1Off int, src2 *Array, src2Off int, spec *opSpec) error {
	if spec.close.close(src1.load(src1Off).Float(), src2.load(src2Off).Float()) {
		dst.buf.data[dstOff] = 1
	} else {
		dst.buf.data[dstOff] = 0
	}
	return nil
}

// IsClose compares a and b elementwise within a tolerance, returning
// a Bool array over the broadcast shape. An element is close when
// |a-b| <= atol + rtol*|b|; the asymmetry in b is intentional and
// matches the conventional definition.
func IsClose(a, b *Array, opts ...CloseOption) (*Array, error) {
	cs := &closeSpec{rtol: 1e-5, atol: 1e-8}
	for _, opt := range opts {
		opt(cs)
	}

	left, right := a, b
	if !sameLengths(left, right) {
		var err error
		if left, right, _, err = broadcast(a, b); err != nil {
			return nil, err
		}
	}
	dest, err := shapedLike(Bool, left, 0)
	if err != nil {
		return nil, err
	}
	spec := &opSpec{binary: isCloseKernel, close: cs}
	if err := applyBinary(dest, left, right, spec); err != nil {
		return nil, err
	}
	return dest, nil
}

// AllClose reports whether every element of a is close to the
// corresponding element of b.
func AllClose(a, b *Array, opts ...CloseOption) (bool, error) {
	c, err := IsClose(a, b, opts...)
	if err != nil {
		return false, err
	}
	for _, v := range c.buf.data {
		if v == 0 {
			return false, nil
		}
	}
	return true, nil
}
