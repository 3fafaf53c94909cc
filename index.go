package ndarr

import (
	"fmt"
	"math"
)

// Subscript is one element of a multi-axis subscript expression: an integer
// index, a span, a new-axis marker, or an ellipsis.
type Subscript interface {
	isSubscript()
}

type pickSub int

type spanSub struct {
	start, stop, step int
}

type markerSub int

func (pickSub) isSubscript()   {}
func (spanSub) isSubscript()   {}
func (markerSub) isSubscript() {}

// End marks an open span bound: "through the last element" for a
// positive step, "through the first element" for a negative step.
const End = math.MinInt

// Ix subscripts one axis with an integer index. Negative indices
// count from the end. The axis is consumed: it does not appear in the
// resulting view.
func Ix(i int) Subscript { return pickSub(i) }

// Span subscripts one axis with the half-open range [start, stop) at
// step 1.
func Span(start, stop int) Subscript { return spanSub{start: start, stop: stop, step: 1} }

// SpanStep subscripts one axis with the range from start towards stop
// advancing by step (which may be negative, never zero).
func SpanStep(start, stop, step int) Subscript { return spanSub{start: start, stop: stop, step: step} }

// All subscripts one axis with its full range.
var All Subscript = spanSub{start: 0, stop: End, step: 1}

// NewAxis inserts a length-1 axis into the view without consuming a
// source axis.
var NewAxis Subscript = markerSub(0)

// Ellipsis expands to full spans over all source axes not consumed by
// the other subscripts. At most one is allowed per expression.
var Ellipsis Subscript = markerSub(1)

// resolve clamps the span against an axis length following slice
// semantics: negative bounds wrap, out-of-range bounds clamp, and the
// element count is ceil((stop-start)/step) rounded away from zero in
// the step's direction (never below zero).
func (s spanSub) resolve(length int) (start, count, step int, err error) {
	step = s.step
	if step == 0 {
		return 0, 0, 0, fmt.Errorf("%w: span step cannot be zero", ErrIndex)
	}

	start = s.start
	stop := s.stop
	if step > 0 {
		if start == End {
			start = 0
		}
		if stop == End {
			stop = length
		}
	} else {
		if start == End {
			start = length - 1
		}
		if stop == End {
			stop = -1 // one before the first element, exclusive
		} else {
			if stop < 0 {
				stop += length
			}
			if stop < -1 {
				stop = -1
			}
		}
	}
	if start < 0 {
		start += length
	}
	if start < 0 {
		start = 0
	}
	if step > 0 {
		if start > length {
			start = length
		}
		if stop < 0 {
			stop += length
		}
		if stop < 0 {
			stop = 0
		}
		if stop > length {
			stop = length
		}
		count = (stop + (step - 1) - start) / step
	} else {
		if start > length-1 {
			start = length - 1
		}
		count = (start - (step + 1) - stop) / (-step)
	}
	if count < 0 {
		count = 0
	}
	return start, count, step, nil
}

// Slice builds a view of a selected by subs, sharing a's buffer.
// Integer subscripts consume an axis; spans consume an axis and keep
// it with adjusted offset/stride; NewAxis inserts a length-1 axis;
// Ellipsis stands for all otherwise unconsumed axes. Trailing source
// axes not covered by subs are kept whole. If every source axis is
// consumed by integer subscripts the result is a rank-0 view of the
// selected element.
func (a *Array) Slice(subs ...Subscript) (*Array, error) {
	ellipsisSeen := false
	for _, s := range subs {
		if s == Ellipsis {
			if ellipsisSeen {
				return nil, fmt.Errorf("%w: no more than one ellipsis allowed", ErrIndex)
			}
			ellipsisSeen = true
		}
	}

	// Three positions advance independently: the subscript list, the
	// next source axis to consume, and the next target axis to fill.
	srcDim := 0
	targetDim := 0
	var targetDims [MaxDims]dim
	targetOffset := a.offset

	for subIdx, s := range subs {
		if s != NewAxis && s != Ellipsis && srcDim >= len(a.dims) {
			return nil, fmt.Errorf("%w: too many indices for rank-%d array", ErrIndex, len(a.dims))
		}

		switch sub := s.(type) {
		case markerSub:
			if s == NewAxis {
				if targetDim >= MaxDims {
					return nil, fmt.Errorf("%w: too many output dimensions", ErrIndex)
				}
				targetDims[targetDim] = dim{length: 1, stride: 1}
				targetDim++
				continue
			}
			// Ellipsis: copy source axes so the remaining subscripts
			// align with the end of the source.
			copyUpTo := len(a.dims) - (len(subs) - (subIdx + 1))
			for srcDim < copyUpTo {
				if targetDim >= MaxDims {
					return nil, fmt.Errorf("%w: too many output dimensions", ErrIndex)
				}
				targetDims[targetDim] = a.dims[srcDim]
				srcDim++
				targetDim++
			}

		case spanSub:
			start, count, step, err := sub.resolve(a.dims[srcDim].length)
			if err != nil {
				return nil, err
			}
			if targetDim >= MaxDims {
				return nil, fmt.Errorf("%w: too many output dimensions", ErrIndex)
			}
			targetOffset += a.dims[srcDim].stride * start
			targetDims[targetDim] = dim{length: count, stride: a.dims[srcDim].stride * step}
			srcDim++
			targetDim++

		case pickSub:
			index := int(sub)
			if index < 0 {
				index += a.dims[srcDim].length
			}
			if index < 0 || index >= a.dims[srcDim].length {
				return nil, fmt.Errorf("%w: index %d out of range for axis %d (length %d)", ErrIndex, int(sub), srcDim, a.dims[srcDim].length)
			}
			targetOffset += index * a.dims[srcDim].stride
			srcDim++
		}
	}

	// Keep any remaining source axes whole.
	for srcDim < len(a.dims) {
		if targetDim >= MaxDims {
			return nil, fmt.Errorf("%w: too many output dimensions", ErrIndex)
		}
		targetDims[targetDim] = a.dims[srcDim]
		srcDim++
		targetDim++
	}

	return newView(a, targetOffset, targetDims[:targetDim]), nil
}

// SetSlice assigns value into the region of a selected by subs,
// broadcasting value into the region when shapes differ. The value
// may never need to grow the selected region's shape.
func (a *Array) SetSlice(value *Array, subs ...Subscript) error {
	dest, err := a.Slice(subs...)
	if err != nil {
		return err
	}
	src := value
	if !sameLengths(src, dest) {
		var destExpanded bool
		dest, src, destExpanded, err = broadcast(dest, src)
		if err != nil {
			return err
		}
		if destExpanded {
			return fmt.Errorf("%w: value cannot be broadcast into slice", ErrBroadcast)
		}
	}
	return applyUnary(dest, src, findCopySpec(src, dest))
}
