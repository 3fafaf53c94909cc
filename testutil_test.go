package ndarr_test

import (
	"testing"

	"github.com/go-ndarr/ndarr"
)

// values walks a in row-major index order and returns every element
// as float64.
func values(t *testing.T, a *ndarr.Array) []float64 {
	t.Helper()

	shape := a.Shape()
	out := make([]float64, 0, a.Size())
	ix := make([]int, len(shape))
	for {
		v, err := a.At(ix...)
		if err != nil {
			t.Fatalf("At(%v): %v", ix, err)
		}
		out = append(out, v.Float())

		l := len(ix) - 1
		for ; l >= 0; l-- {
			ix[l]++
			if ix[l] < shape[l] {
				break
			}
			ix[l] = 0
		}
		if l < 0 {
			return out
		}
	}
}

func matrix(t *testing.T, rows [][]float64) *ndarr.Array {
	t.Helper()
	a, err := ndarr.FromNested(rows, 0)
	if err != nil {
		t.Fatalf("FromNested: %v", err)
	}
	return a
}

func vector(t *testing.T, data []float64) *ndarr.Array {
	t.Helper()
	a, err := ndarr.FromFloat64s(data)
	if err != nil {
		t.Fatalf("FromFloat64s: %v", err)
	}
	return a
}
