// Package ndarr implements a small multi-dimensional numeric array
// engine: dense row-major storage, zero-copy views with per-axis
// strides, elementwise arithmetic with broadcasting, axis reductions,
// and a generalized dot product.
//
// An Array is a view over a shared element buffer. Slicing,
// transposing, and broadcasting all produce new views of the same
// storage, so writes through one view are visible through every
// other:
//
//	a, _ := ndarr.FromNested([][]float64{{1, 2}, {3, 4}}, 0)
//	col, _ := a.Slice(ndarr.All, ndarr.Ix(1)) // second column, shares storage
//	_ = col.SetAt(ndarr.FloatScalar(9), 0)    // also visible through a
//
// Elementwise operations align operand shapes with the usual
// right-aligned broadcasting rules: axes of length one (or missing
// leading axes) repeat to match the other operand without copying.
//
// Arrays carry one of eight element dtypes. Mixed-dtype operations
// promote to the wider operand; true division always produces
// float64. Linear algebra over these arrays lives in the nested
// linalg package.
package ndarr
