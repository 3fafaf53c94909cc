package ndarr

import "fmt"

// Dot computes the generalized dot product of lhs and rhs.
//
// With a rank-0 operand it degenerates to elementwise multiplication.
// Two vectors contract to a rank-0 scalar array. Otherwise the last
// axis of lhs contracts against the last axis of a vector rhs, or the
// second-to-last axis of a higher-rank rhs, and the result shape is
// lhs's leading axes followed by rhs's free axes. For two matrices
// that is the ordinary matrix product.
func Dot(lhs, rhs *Array) (*Array, error) {
	if len(lhs.dims) == 0 || len(rhs.dims) == 0 {
		return Compute(OpMul, lhs, rhs)
	}

	contracted := len(rhs.dims) - 2
	if len(rhs.dims) == 1 {
		contracted = 0
	}
	n := lhs.dims[len(lhs.dims)-1].length
	if rhs.dims[contracted].length != n {
		return nil, fmt.Errorf("%w: cannot contract %v with %v", ErrShape, lhs.Shape(), rhs.Shape())
	}

	outShape := append([]int(nil), lhs.Shape()[:len(lhs.dims)-1]...)
	if len(rhs.dims) > 1 {
		outShape = append(outShape, rhs.Shape()[:len(rhs.dims)-2]...)
		outShape = append(outShape, rhs.dims[len(rhs.dims)-1].length)
	}
	if len(outShape) > MaxDims {
		return nil, fmt.Errorf("%w: result of %v . %v exceeds %d axes", ErrDims, lhs.Shape(), rhs.Shape(), MaxDims)
	}

	rt := promote(lhs.dtype, rhs.dtype)
	dest, err := New(rt, outShape...)
	if err != nil {
		return nil, err
	}

	c := &dotCtx{
		dest:      dest,
		lhs:       lhs,
		rhs:       rhs,
		n:         n,
		lhsStride: lhs.dims[len(lhs.dims)-1].stride,
		rhsStride: rhs.dims[contracted].stride,
		float:     lhs.dtype == Float64 && rhs.dtype == Float64 && rt == Float64,
	}
	if err := c.walkLhs(0, dest.offset, lhs.offset); err != nil {
		return nil, err
	}
	return dest, nil
}

type dotCtx struct {
	dest, lhs, rhs *Array
	n              int
	lhsStride      int
	rhsStride      int
	float          bool
}

// walkLhs recurses over lhs's free (leading) axes. The destination
// offset advances in lockstep because dest's leading axes are exactly
// lhs's leading axes.
func (c *dotCtx) walkLhs(depth, destOff, lhsOff int) error {
	if depth == len(c.lhs.dims)-1 {
		return c.walkRhs(0, depth, destOff, lhsOff, c.rhs.offset)
	}
	for i := c.lhs.dims[depth].length; i > 0; i-- {
		if err := c.walkLhs(depth+1, destOff, lhsOff); err != nil {
			return err
		}
		destOff += c.dest.dims[depth].stride
		lhsOff += c.lhs.dims[depth].stride
	}
	return nil
}

// walkRhs recurses over rhs's free axes, skipping the contracted one,
// and runs the multiply-accumulate at the leaves.
func (c *dotCtx) walkRhs(rhsDepth, destDepth, destOff, lhsOff, rhsOff int) error {
	rrank := len(c.rhs.dims)
	if rrank == 1 || rhsDepth == rrank {
		return c.mac(destOff, lhsOff, rhsOff)
	}
	if rhsDepth == rrank-2 {
		return c.walkRhs(rhsDepth+1, destDepth, destOff, lhsOff, rhsOff)
	}
	for i := c.rhs.dims[rhsDepth].length; i > 0; i-- {
		if err := c.walkRhs(rhsDepth+1, destDepth+1, destOff, lhsOff, rhsOff); err != nil {
			return err
		}
		destOff += c.dest.dims[destDepth].stride
		rhsOff += c.rhs.dims[rhsDepth].stride
	}
	return nil
}

// mac folds the contracted run: sum over i of lhs[i]*rhs[i] along the
// contraction strides.
func (c *dotCtx) mac(destOff, lhsOff, rhsOff int) error {
	if c.float {
		lData := c.lhs.buf.float64s()
		rData := c.rhs.buf.float64s()
		var sum float64
		for i := c.n; i > 0; i-- {
			sum += lData[lhsOff] * rData[rhsOff]
			lhsOff += c.lhsStride
			rhsOff += c.rhsStride
		}
		c.dest.buf.float64s()[destOff] = sum
		return nil
	}

	var acc Scalar
	for i := 0; i < c.n; i++ {
		p, err := scalarBinary(OpMul, c.lhs.load(lhsOff), c.rhs.load(rhsOff))
		if err != nil {
			return err
		}
		if i == 0 {
			acc = p
		} else if acc, err = scalarBinary(OpAdd, acc, p); err != nil {
			return err
		}
		lhsOff += c.lhsStride
		rhsOff += c.rhsStride
	}
	c.dest.store(destOff, acc)
	return nil
}
