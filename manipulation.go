package ndarr

import "fmt"

// Transpose returns a view with the axes permuted by order. An empty
// order reverses the axes. A non-empty order must name every axis of
// a exactly once; negative entries count from the end.
func Transpose(a *Array, order ...int) (*Array, error) {
	rank := len(a.dims)
	if len(order) == 0 {
		dims := make([]dim, rank)
		for i := range dims {
			dims[i] = a.dims[rank-1-i]
		}
		return newView(a, a.offset, dims), nil
	}
	if len(order) != rank {
		return nil, fmt.Errorf("%w: got %d axes for rank %d", ErrDims, len(order), rank)
	}

	// Each axis must appear exactly once; seen is a bitmask over the
	// source axes.
	seen := 0
	dims := make([]dim, rank)
	for i, ax := range order {
		if ax < 0 {
			ax += rank
		}
		if ax < 0 || ax >= rank {
			return nil, fmt.Errorf("%w: axis %d out of range for rank %d", ErrDims, order[i], rank)
		}
		if seen&(1<<ax) != 0 {
			return nil, fmt.Errorf("%w: axis %d repeated", ErrDims, ax)
		}
		seen |= 1 << ax
		dims[i] = a.dims[ax]
	}
	return newView(a, a.offset, dims), nil
}

// Reshape returns a view of a's elements under a new shape with the
// same total element count. When a is not contiguous row-major
// storage its elements are materialized first, so the result may or
// may not share a's buffer.
func Reshape(a *Array, shape ...int) (*Array, error) {
	if len(shape) > MaxDims {
		return nil, fmt.Errorf("%w: %d axes exceeds limit of %d", ErrDims, len(shape), MaxDims)
	}
	for i, l := range shape {
		if l <= 0 {
			return nil, fmt.Errorf("%w: axis %d has length %d", ErrShape, i, l)
		}
	}
	if numElements(shape) != a.Size() {
		return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrShape, a.Shape(), shape)
	}

	src := a
	if !src.simple {
		var err error
		if src, err = a.Copy(); err != nil {
			return nil, err
		}
	}
	out := newView(src, src.offset, contiguousDims(shape))
	out.simple = src.simple
	return out, nil
}

// Ravel returns a's elements as a 1-D view, materializing first when
// the view is not contiguous.
func Ravel(a *Array) (*Array, error) {
	return Reshape(a, a.Size())
}
