package ndarr

import (
	"fmt"
	"math"
)

// Op names a binary element operation.
type Op int

// Binary element operations.
const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpAnd
	OpOr
	OpXor
	OpLShift
	OpRShift
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpEqual
	OpNotEqual
)

func (op Op) isComparison() bool {
	return op >= OpLess && op <= OpNotEqual
}

var opNames = map[Op]string{
	OpAdd: "add", OpSub: "sub", OpMul: "mul", OpDiv: "div",
	OpFloorDiv: "floordiv", OpMod: "mod", OpPow: "pow",
	OpAnd: "and", OpOr: "or", OpXor: "xor",
	OpLShift: "lshift", OpRShift: "rshift",
	OpLess: "lt", OpLessEqual: "le", OpGreater: "gt",
	OpGreaterEqual: "ge", OpEqual: "eq", OpNotEqual: "ne",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// UnaryOp names a unary element operation.
type UnaryOp int

// Unary element operations.
const (
	OpPos UnaryOp = iota
	OpNeg
	OpAbs
)

func (op UnaryOp) String() string {
	switch op {
	case OpPos:
		return "pos"
	case OpNeg:
		return "neg"
	case OpAbs:
		return "abs"
	default:
		return fmt.Sprintf("unaryop(%d)", int(op))
	}
}

// Kernel functions are invoked by the traversal loops once per
// position at the innermost reached depth. A kernel that has been
// selected with layers > 0 consumes that many trailing axes itself.
type unaryKernel func(depth int, dst *Array, dstOff int, src *Array, srcOff int, spec *opSpec) error

type binaryKernel func(depth int, dst *Array, dstOff int, src1 *Array, src1Off int, src2 *Array, src2Off int, spec *opSpec) error

// opSpec describes one selected element operation: which kernel to
// run, how many trailing axes the kernel unrolls itself, and the
// op-specific context. Selection happens once per call, never per
// element.
type opSpec struct {
	layers    int
	valueSize int

	unary  unaryKernel
	binary binaryKernel

	bop    Op
	uop    UnaryOp
	chunk  int
	ffn    func(float64) float64
	reduce *reduceSpec
	close  *closeSpec
}

// applyUnary runs spec's kernel across all positions of dest, reading
// from src. Both views must already share per-axis lengths over the
// iterated axes. The nested iteration is an explicit odometer rather
// than recursion: one countdown per outer axis, carrying into the
// next axis on overflow.
func applyUnary(dest, src *Array, spec *opSpec) error {
	// A zero-length axis (from an empty span) means nothing to visit.
	for _, d := range dest.dims {
		if d.length == 0 {
			return nil
		}
	}
	iterate := len(dest.dims) - spec.layers

	var counters [MaxDims]int
	for i := 0; i < iterate; i++ {
		counters[i] = dest.dims[i].length
	}

	destOff := dest.offset
	srcOff := src.offset

	for {
		if err := spec.unary(iterate, dest, destOff, src, srcOff, spec); err != nil {
			return err
		}

		l := iterate - 1
		for ; l >= 0; l-- {
			destOff += dest.dims[l].stride
			srcOff += src.dims[l].stride
			counters[l]--
			if counters[l] > 0 {
				break
			}
			// Rewind this axis and carry into the next.
			ll := dest.dims[l].length
			counters[l] = ll
			destOff -= ll * dest.dims[l].stride
			srcOff -= ll * src.dims[l].stride
		}
		if l < 0 {
			return nil
		}
	}
}

// applyBinary is applyUnary for two source views.
func applyBinary(dest, src1, src2 *Array, spec *opSpec) error {
	for _, d := range dest.dims {
		if d.length == 0 {
			return nil
		}
	}
	iterate := len(dest.dims) - spec.layers

	var counters [MaxDims]int
	for i := 0; i < iterate; i++ {
		counters[i] = dest.dims[i].length
	}

	destOff := dest.offset
	src1Off := src1.offset
	src2Off := src2.offset

	for {
		if err := spec.binary(iterate, dest, destOff, src1, src1Off, src2, src2Off, spec); err != nil {
			return err
		}

		l := iterate - 1
		for ; l >= 0; l-- {
			destOff += dest.dims[l].stride
			src1Off += src1.dims[l].stride
			src2Off += src2.dims[l].stride
			counters[l]--
			if counters[l] > 0 {
				break
			}
			ll := dest.dims[l].length
			counters[l] = ll
			destOff -= ll * dest.dims[l].stride
			src1Off -= ll * src1.dims[l].stride
			src2Off -= ll * src2.dims[l].stride
		}
		if l < 0 {
			return nil
		}
	}
}

// copySameType block-copies spec.chunk contiguous elements per
// invocation. Only selected when source and destination share a dtype
// and a maximal trailing run of unit-stride axes.
func copySameType(_ int, dst *Array, dstOff int, src *Array, srcOff int, spec *opSpec) error {
	vs := spec.valueSize
	copy(dst.buf.data[dstOff*vs:(dstOff+spec.chunk)*vs], src.buf.data[srcOff*vs:(srcOff+spec.chunk)*vs])
	return nil
}

// copyConvert moves one element through the value model, converting
// between dtypes.
func copyConvert(_ int, dst *Array, dstOff int, src *Array, srcOff int, _ *opSpec) error {
	dst.store(dstOff, src.load(srcOff))
	return nil
}

// binaryOpFallback applies the generic operator dispatch one element
// at a time.
func binaryOpFallback(_ int, dst *Array, dstOff int, src1 *Array, src1Off int, src2 *Array, src2Off int, spec *opSpec) error {
	r, err := scalarBinary(spec.bop, src1.load(src1Off), src2.load(src2Off))
	if err != nil {
		return err
	}
	dst.store(dstOff, r)
	return nil
}

func unaryOpFallback(_ int, dst *Array, dstOff int, src *Array, srcOff int, spec *opSpec) error {
	r, err := scalarUnary(spec.uop, src.load(srcOff))
	if err != nil {
		return err
	}
	dst.store(dstOff, r)
	return nil
}

// domainCheck rejects NaN/Inf results produced from finite inputs.
func domainCheck(x, ans float64) error {
	if (math.IsNaN(ans) && !math.IsNaN(x)) || (math.IsInf(ans, 0) && !math.IsInf(x, 0)) {
		return ErrDomain
	}
	return nil
}

// floatFuncFallback applies a float function to one element through
// the value model.
func floatFuncFallback(_ int, dst *Array, dstOff int, src *Array, srcOff int, spec *opSpec) error {
	x := src.load(srcOff).Float()
	ans := spec.ffn(x)
	if err := domainCheck(x, ans); err != nil {
		return err
	}
	dst.store(dstOff, FloatScalar(ans))
	return nil
}

// floatFunc1D applies a float function along a whole trailing axis,
// operating directly on the numeric buffers. Selected only when both
// operands carry the default float dtype.
func floatFunc1D(depth int, dst *Array, dstOff int, src *Array, srcOff int, spec *opSpec) error {
	srcData := src.buf.float64s()
	dstData := dst.buf.float64s()
	srcStride := src.dims[depth].stride
	dstStride := dst.dims[depth].stride

	for i := dst.dims[depth].length; i > 0; i-- {
		x := srcData[srcOff]
		ans := spec.ffn(x)
		if err := domainCheck(x, ans); err != nil {
			return err
		}
		dstData[dstOff] = ans
		srcOff += srcStride
		dstOff += dstStride
	}
	return nil
}

// findCopySpec selects the copy strategy for src into dest. With
// matching dtypes it collapses the maximal trailing run of axes that
// is unit-stride contiguous in both operands into a single block copy
// per outer iteration; otherwise it falls back to per-element
// conversion.
func findCopySpec(src, dest *Array) *opSpec {
	if dest.dtype == src.dtype {
		chunk := 1
		i := len(src.dims) - 1
		for i >= 0 && src.dims[i].stride == chunk && dest.dims[i].stride == chunk {
			chunk *= src.dims[i].length
			i--
		}
		return &opSpec{
			layers:    (len(src.dims) - 1) - i,
			valueSize: dest.dtype.Size(),
			unary:     copySameType,
			chunk:     chunk,
		}
	}
	return &opSpec{unary: copyConvert}
}

// findBinaryOpSpec resolves the result dtype (when destType is zero)
// and selects the kernel for op. Comparisons always produce Bool;
// arithmetic promotes across the dtype order, true division promotes
// to float.
func findBinaryOpSpec(src1, src2 *Array, destType DType, op Op) (*opSpec, DType, error) {
	if destType == 0 {
		switch {
		case op.isComparison():
			destType = Bool
		case op == OpDiv:
			destType = Float64
		case op <= OpRShift:
			destType = promote(src1.dtype, src2.dtype)
		default:
			return nil, 0, fmt.Errorf("%w: %v", ErrUnsupported, op)
		}
	}
	return &opSpec{binary: binaryOpFallback, bop: op}, destType, nil
}

func findUnaryOpSpec(src *Array, destType DType, op UnaryOp) (*opSpec, DType, error) {
	if destType == 0 {
		switch op {
		case OpPos, OpNeg, OpAbs:
			destType = src.dtype
		default:
			return nil, 0, fmt.Errorf("%w: %v", ErrUnsupported, op)
		}
	}
	return &opSpec{unary: unaryOpFallback, uop: op}, destType, nil
}

// findFloatFuncSpec selects the float-function strategy: a tight 1-D
// loop over the trailing axis when both sides are the default float
// dtype, otherwise the converting per-element fallback.
func findFloatFuncSpec(src *Array, destType DType, fn func(float64) float64) (*opSpec, DType) {
	if destType == 0 {
		destType = DefaultDType
	}
	if len(src.dims) > 0 && src.dtype == DefaultDType && destType == DefaultDType {
		return &opSpec{layers: 1, unary: floatFunc1D, ffn: fn}, destType
	}
	return &opSpec{unary: floatFuncFallback, ffn: fn}, destType
}
