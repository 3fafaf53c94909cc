// Package linalg provides dense linear algebra over ndarr arrays:
// row-echelon reduction, determinants, inversion, and linear system
// solving via pivoted Gaussian elimination.
package linalg

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-ndarr/ndarr"
)

// ErrLinAlg is the parent of every linear-algebra failure; the
// specific sentinels below all match it under errors.Is.
var ErrLinAlg = errors.New("linalg: linear algebra error")

var (
	ErrNotMatrix = fmt.Errorf("%w: operand is not a 2-D matrix", ErrLinAlg)
	ErrNonSquare = fmt.Errorf("%w: matrix is not square", ErrLinAlg)
	ErrSingular  = fmt.Errorf("%w: singular matrix", ErrLinAlg)
	ErrShape     = fmt.Errorf("%w: dimensions do not match", ErrLinAlg)
)

// epsilon is the pivot threshold: column entries smaller than this in
// magnitude are treated as zero during elimination.
const epsilon = 1e-10

// swapNegateRows exchanges rows a and b from column start on, negating
// the row moving into b. The negation cancels the sign flip a plain
// swap would apply to the determinant.
func swapNegateRows(data []float64, width, start, a, b int) {
	rowA := data[a*width : (a+1)*width]
	rowB := data[b*width : (b+1)*width]
	for i := start; i < width; i++ {
		rowA[i], rowB[i] = rowB[i], -rowA[i]
	}
}

// subtractToZero subtracts the multiple of row a from row b that
// zeroes b's entry in column start.
func subtractToZero(data []float64, width, start, a, b int) {
	rowA := data[a*width : (a+1)*width]
	rowB := data[b*width : (b+1)*width]
	multiple := rowB[start] / rowA[start]
	if multiple != 0 {
		rowB[start] = 0
		for i := start + 1; i < width; i++ {
			rowB[i] -= rowA[i] * multiple
		}
	}
}

func divideRow(data []float64, width, start, row int, d float64) {
	r := data[row*width : (row+1)*width]
	for i := start; i < width; i++ {
		r[i] /= d
	}
}

// reduceRows row-reduces a height-by-width matrix held contiguously
// in data. With diag set it diagonalizes (eliminates above and below
// each pivot); otherwise it only eliminates below. With norm set each
// pivot row is scaled so the pivot becomes one.
//
// The pivot for each column is chosen among the remaining rows:
// entries below epsilon in magnitude are skipped, an exact 1.0 wins
// immediately, and otherwise the entry whose binary exponent is
// closest to zero wins, which favors well-scaled pivots. A column
// with no viable pivot is passed over.
//
// It returns the number of pivots placed, the column one past the
// last pivot, and the accumulated factor the manipulations applied to
// the determinant of the leading square part; the original
// determinant is 1/detChange when every column pivoted. When the
// matrix is an augmented [a | extra] form, a nonsingular left half of
// width n places all pivots in the first n columns and endCol comes
// back exactly n; a rank-deficient left half forces a pivot into the
// augmentation and endCol past n.
func reduceRows(data []float64, height, width int, diag, norm bool) (pivots, endCol int, detChange float64) {
	detChange = 1.0
	x, y := 0, 0

	for y < height && x < width {
		bestRow := -1
		bestAbsExp := math.MaxInt32

		for j := y; j < height; j++ {
			v := data[x+j*width]
			if math.Abs(v) < epsilon {
				continue
			}
			if v == 1.0 {
				bestRow = j
				break
			}
			_, exp := math.Frexp(v)
			if exp < 0 {
				exp = -exp
			}
			if exp < bestAbsExp {
				bestRow = j
				bestAbsExp = exp
			}
		}

		if bestRow != -1 {
			if bestRow != y {
				swapNegateRows(data, width, x, y, bestRow)
			}
			if diag {
				for j := 0; j < height; j++ {
					if j != y {
						subtractToZero(data, width, x, y, j)
					}
				}
			} else {
				for j := y + 1; j < height; j++ {
					subtractToZero(data, width, x, y, j)
				}
			}
			if norm {
				d := data[x+y*width]
				divideRow(data, width, x, y, d)
				detChange /= d
			}
			y++
		}
		x++
	}
	return y, x, detChange
}

// asMatrix materializes a as a fresh contiguous Float64 matrix and
// returns it with its dimensions.
func asMatrix(a *ndarr.Array) (*ndarr.Array, int, int, error) {
	if a.Rank() != 2 {
		return nil, 0, 0, fmt.Errorf("%w: rank %d", ErrNotMatrix, a.Rank())
	}
	m, err := a.AsType(ndarr.Float64)
	if err != nil {
		return nil, 0, 0, err
	}
	shape := m.Shape()
	return m, shape[0], shape[1], nil
}

// RowEchelon returns the row-echelon form of a as a fresh Float64
// matrix, with each pivot normalized to one.
func RowEchelon(a *ndarr.Array) (*ndarr.Array, error) {
	m, height, width, err := asMatrix(a)
	if err != nil {
		return nil, err
	}
	reduceRows(m.Float64s(), height, width, false, true)
	return m, nil
}

// Det computes the determinant of a square matrix. A matrix without a
// full set of pivots has determinant zero.
func Det(a *ndarr.Array) (float64, error) {
	m, height, width, err := asMatrix(a)
	if err != nil {
		return 0, err
	}
	if height != width {
		return 0, fmt.Errorf("%w: %dx%d", ErrNonSquare, height, width)
	}
	pivots, _, detChange := reduceRows(m.Float64s(), height, width, false, true)
	if pivots < height {
		return 0, nil
	}
	return 1 / detChange, nil
}

// Inv computes the inverse of a square matrix by diagonalizing the
// augmented [a | I] scratch matrix and reading the right half back
// out.
func Inv(a *ndarr.Array) (*ndarr.Array, error) {
	m, height, width, err := asMatrix(a)
	if err != nil {
		return nil, err
	}
	if height != width {
		return nil, fmt.Errorf("%w: %dx%d", ErrNonSquare, height, width)
	}
	n := height

	scratch, err := ndarr.New(ndarr.Float64, n, 2*n)
	if err != nil {
		return nil, err
	}
	if err := scratch.SetSlice(m, ndarr.All, ndarr.Span(0, n)); err != nil {
		return nil, err
	}
	data := scratch.Float64s()
	for j := 0; j < n; j++ {
		data[j*(2*n)+n+j] = 1
	}

	_, endCol, _ := reduceRows(data, n, 2*n, true, true)
	if endCol != n {
		return nil, ErrSingular
	}

	right, err := scratch.Slice(ndarr.All, ndarr.Span(n, 2*n))
	if err != nil {
		return nil, err
	}
	return right.Copy()
}

// Solve solves the linear system a*x = b for a square matrix a and a
// vector b, returning x as a fresh Float64 vector. It diagonalizes
// the augmented [a | b] scratch matrix; the trailing column is then
// the solution.
func Solve(a, b *ndarr.Array) (*ndarr.Array, error) {
	m, height, width, err := asMatrix(a)
	if err != nil {
		return nil, err
	}
	if height != width {
		return nil, fmt.Errorf("%w: %dx%d", ErrNonSquare, height, width)
	}
	if b.Rank() != 1 {
		return nil, fmt.Errorf("%w: right-hand side has rank %d", ErrShape, b.Rank())
	}
	if b.Shape()[0] != height {
		return nil, fmt.Errorf("%w: matrix is %dx%d but right-hand side has length %d", ErrShape, height, width, b.Shape()[0])
	}
	n := height

	bf, err := b.AsType(ndarr.Float64)
	if err != nil {
		return nil, err
	}

	scratch, err := ndarr.New(ndarr.Float64, n, n+1)
	if err != nil {
		return nil, err
	}
	if err := scratch.SetSlice(m, ndarr.All, ndarr.Span(0, n)); err != nil {
		return nil, err
	}
	if err := scratch.SetSlice(bf, ndarr.All, ndarr.Ix(n)); err != nil {
		return nil, err
	}

	_, endCol, _ := reduceRows(scratch.Float64s(), n, n+1, true, true)
	if endCol != n {
		return nil, ErrSingular
	}

	x, err := scratch.Slice(ndarr.All, ndarr.Ix(n))
	if err != nil {
		return nil, err
	}
	return x.Copy()
}
