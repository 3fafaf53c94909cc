package ndarr

import (
	"fmt"
	"unsafe"
)

// buffer is the contiguous element storage shared between a source
// array and every view derived from it. It is never owned exclusively
// by one view; it lives as long as the longest-lived view referencing
// it.
type buffer struct {
	data []byte
}

func newBuffer(size int) *buffer {
	return &buffer{data: make([]byte, size)}
}

// Array is a view over a shared element buffer: a dtype, up to
// MaxDims (length, stride) axis descriptors, and a base offset
// (measured in elements) into the buffer. Several views may alias the
// same buffer; writing through one is visible through the others.
// That aliasing is the documented contract of slicing, not an
// accident.
type Array struct {
	dtype  DType
	dims   []dim
	offset int
	buf    *buffer

	// simple is set only on freshly allocated, fully contiguous,
	// row-major arrays. Operations such as reshape use it to skip
	// materializing a contiguous copy first.
	simple bool
}

// New allocates a zero-initialized row-major array. An empty shape
// produces a rank-0 (scalar) array with a single element.
func New(dt DType, shape ...int) (*Array, error) {
	if !dt.valid() {
		return nil, fmt.Errorf("%w: %q", ErrDType, byte(dt))
	}
	if len(shape) > MaxDims {
		return nil, fmt.Errorf("%w: %d axes exceeds limit of %d", ErrDims, len(shape), MaxDims)
	}
	for i, l := range shape {
		if l <= 0 {
			return nil, fmt.Errorf("%w: axis %d has length %d", ErrShape, i, l)
		}
	}
	return &Array{
		dtype:  dt,
		dims:   contiguousDims(shape),
		buf:    newBuffer(dt.Size() * numElements(shape)),
		simple: true,
	}, nil
}

// newView shares source's buffer under new axis metadata. The result
// is never marked simple.
func newView(source *Array, offset int, dims []dim) *Array {
	return &Array{
		dtype:  source.dtype,
		dims:   append([]dim(nil), dims...),
		offset: offset,
		buf:    source.buf,
	}
}

// shapedLike allocates a fresh array whose shape is other's leading
// rank-trim axes.
func shapedLike(dt DType, other *Array, trim int) (*Array, error) {
	return New(dt, dimLengths(other.dims[:len(other.dims)-trim])...)
}

// Rank returns the number of axes (0 for a scalar array).
func (a *Array) Rank() int { return len(a.dims) }

// Shape returns the per-axis lengths.
func (a *Array) Shape() []int { return dimLengths(a.dims) }

// DType returns the element kind.
func (a *Array) DType() DType { return a.dtype }

// Size returns the total number of elements addressed by the view.
func (a *Array) Size() int {
	n := 1
	for _, d := range a.dims {
		n *= d.length
	}
	return n
}

// String returns a one-line summary, not the element data.
func (a *Array) String() string {
	return fmt.Sprintf("Array[%s]%v", a.dtype, a.Shape())
}

// elemOffset resolves a multi-index against the view's dims, applying
// negative-index wraparound per axis.
func (a *Array) elemOffset(ix []int) (int, error) {
	if len(ix) != len(a.dims) {
		return 0, fmt.Errorf("%w: got %d indices for rank %d", ErrIndex, len(ix), len(a.dims))
	}
	off := a.offset
	for i, idx := range ix {
		if idx < 0 {
			idx += a.dims[i].length
		}
		if idx < 0 || idx >= a.dims[i].length {
			return 0, fmt.Errorf("%w: index %d out of range for axis %d (length %d)", ErrIndex, ix[i], i, a.dims[i].length)
		}
		off += idx * a.dims[i].stride
	}
	return off, nil
}

// At returns the element at the given multi-index. A rank-0 array
// takes no indices.
func (a *Array) At(ix ...int) (Scalar, error) {
	off, err := a.elemOffset(ix)
	if err != nil {
		return Scalar{}, err
	}
	return a.load(off), nil
}

// SetAt stores v (converted to the array's dtype) at the given
// multi-index.
func (a *Array) SetAt(v Scalar, ix ...int) error {
	off, err := a.elemOffset(ix)
	if err != nil {
		return err
	}
	a.store(off, v)
	return nil
}

// Scalar extracts the value of a rank-0 array.
func (a *Array) Scalar() (Scalar, error) {
	if len(a.dims) != 0 {
		return Scalar{}, fmt.Errorf("%w: Scalar on rank-%d array", ErrDims, len(a.dims))
	}
	return a.load(a.offset), nil
}

// Float64s returns the view's underlying storage as a []float64,
// starting at the view's base offset. The slice aliases the buffer:
// writes through it are visible to every view sharing the storage.
// Panics if the dtype is not Float64.
func (a *Array) Float64s() []float64 {
	if a.dtype != Float64 {
		panic(fmt.Sprintf("array dtype is %s, not float64", a.dtype))
	}
	return a.buf.float64s()[a.offset:]
}

// Typed whole-buffer accessors. Kernels index these with absolute
// element offsets, so each covers the full storage rather than the
// view's window.

func (b *buffer) float64s() []float64 {
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&b.data[0])), len(b.data)/8)
}

func (b *buffer) int8s() []int8 {
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.Slice((*int8)(unsafe.Pointer(&b.data[0])), len(b.data))
}

func (b *buffer) int32s() []int32 {
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&b.data[0])), len(b.data)/4)
}

func (b *buffer) uint32s() []uint32 {
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b.data[0])), len(b.data)/4)
}

func (b *buffer) int64s() []int64 {
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.Slice((*int64)(unsafe.Pointer(&b.data[0])), len(b.data)/8)
}

func (b *buffer) uint64s() []uint64 {
	if len(b.data) == 0 {
		return nil
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&b.data[0])), len(b.data)/8)
}

// Copy materializes the view into a fresh simple array of the same
// dtype.
func (a *Array) Copy() (*Array, error) {
	return a.AsType(a.dtype)
}

// AsType materializes the view into a fresh simple array of dtype dt,
// converting elements as needed.
func (a *Array) AsType(dt DType) (*Array, error) {
	if !dt.valid() {
		return nil, fmt.Errorf("%w: %q", ErrDType, byte(dt))
	}
	dest, err := shapedLike(dt, a, 0)
	if err != nil {
		return nil, err
	}
	spec := findCopySpec(a, dest)
	if err := applyUnary(dest, a, spec); err != nil {
		return nil, err
	}
	return dest, nil
}
