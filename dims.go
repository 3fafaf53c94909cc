package ndarr

// MaxDims bounds the rank of any array. Keeping a fixed limit lets
// the traversal engine hold per-axis counters in small fixed arrays.
const MaxDims = 8

// dim describes one axis of a view: its length and the element-count
// step between consecutive indices along it. A stride of zero marks a
// broadcast axis (repeated reads of the same data).
type dim struct {
	length int
	stride int
}

// contiguousDims builds row-major (length, stride) pairs for shape:
// the last axis has stride 1, each preceding stride is the product of
// all more-trailing lengths.
func contiguousDims(shape []int) []dim {
	dims := make([]dim, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		dims[i] = dim{length: shape[i], stride: stride}
		stride *= shape[i]
	}
	return dims
}

// numElements returns the total element count of shape. An empty
// shape (rank 0) holds one element.
func numElements(shape []int) int {
	n := 1
	for _, l := range shape {
		n *= l
	}
	return n
}

func dimLengths(dims []dim) []int {
	shape := make([]int, len(dims))
	for i, d := range dims {
		shape[i] = d.length
	}
	return shape
}

// sameLengthsCounted reports whether the first count axes of a and b
// have equal lengths.
func sameLengthsCounted(a, b *Array, count int) bool {
	for i := 0; i < count; i++ {
		if a.dims[i].length != b.dims[i].length {
			return false
		}
	}
	return true
}

// sameLengths reports whether a and b have identical rank and
// per-axis lengths (strides are not compared).
func sameLengths(a, b *Array) bool {
	if len(a.dims) != len(b.dims) {
		return false
	}
	return sameLengthsCounted(a, b, len(a.dims))
}
