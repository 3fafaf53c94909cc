package ndarr

import "fmt"

// broadcast aligns two views to a common shape without copying
// element data. Shapes are right-aligned; a missing or length-1 axis
// is expanded to the other side's length with stride 0, so the same
// elements are read repeatedly. The returned flag reports whether the
// left operand's shape had to be expanded; callers writing into the
// left operand use it to reject growth of an in-place destination.
func broadcast(left, right *Array) (leftOut, rightOut *Array, leftExpanded bool, err error) {
	outRank := max(len(left.dims), len(right.dims))
	leftExpanded = outRank != len(left.dims)

	var leftDims, rightDims [MaxDims]dim

	lIndex := len(left.dims) - outRank
	rIndex := len(right.dims) - outRank

	for i := 0; i < outRank; i++ {
		switch {
		case lIndex < 0:
			leftDims[i] = dim{length: right.dims[rIndex].length, stride: 0}
			rightDims[i] = right.dims[rIndex]
			leftExpanded = true
		case rIndex < 0:
			rightDims[i] = dim{length: left.dims[lIndex].length, stride: 0}
			leftDims[i] = left.dims[lIndex]
		case left.dims[lIndex].length == right.dims[rIndex].length:
			leftDims[i] = left.dims[lIndex]
			rightDims[i] = right.dims[rIndex]
		case left.dims[lIndex].length == 1:
			leftDims[i] = dim{length: right.dims[rIndex].length, stride: 0}
			rightDims[i] = right.dims[rIndex]
			leftExpanded = true
		case right.dims[rIndex].length == 1:
			rightDims[i] = dim{length: left.dims[lIndex].length, stride: 0}
			leftDims[i] = left.dims[lIndex]
		default:
			return nil, nil, false, fmt.Errorf("%w: shapes %v and %v", ErrBroadcast, left.Shape(), right.Shape())
		}
		lIndex++
		rIndex++
	}

	leftOut = newView(left, left.offset, leftDims[:outRank])
	rightOut = newView(right, right.offset, rightDims[:outRank])
	return leftOut, rightOut, leftExpanded, nil
}
