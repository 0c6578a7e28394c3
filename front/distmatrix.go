package front

import (
	"github.com/katalvlaran/pareto/matrix"
	"github.com/katalvlaran/pareto/point"
)

// DistMatrix is a pairwise-distance cache over a fixed slice of keys,
// adapted from matrix.Dense's flat row-major storage (SPEC_FULL.md
// Domain Stack: "a row-major dense pairwise-distance cache"). Distances
// are symmetric and the diagonal is always zero, so NewDistMatrix only
// ever writes the upper triangle and mirrors it into the lower one.
type DistMatrix[T point.Number] struct {
	keys []point.Point[T]
	m    *matrix.Dense
}

// NewDistMatrix builds the full n*n distance cache for keys. Returns an
// error if the underlying matrix.Dense cannot be allocated (SPEC_FULL.md
// requires propagating the teacher's own sentinel errors rather than
// wrapping them in a fresh kind).
func NewDistMatrix[T point.Number](keys []point.Point[T]) (*DistMatrix[T], error) {
	n := len(keys)
	if n == 0 {
		return &DistMatrix[T]{keys: keys}, nil
	}
	dense, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, frontErrorf("NewDistMatrix", err)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := keys[i].Distance(keys[j])
			if err := dense.Set(i, j, d); err != nil {
				return nil, frontErrorf("NewDistMatrix", err)
			}
			if err := dense.Set(j, i, d); err != nil {
				return nil, frontErrorf("NewDistMatrix", err)
			}
		}
	}

	return &DistMatrix[T]{keys: keys, m: dense}, nil
}

// N returns the number of cached keys.
func (d *DistMatrix[T]) N() int { return len(d.keys) }

// At returns the cached distance between keys[i] and keys[j]. Panics on
// out-of-range indices, matching matrix.Dense's own bounds contract
// (SPEC_FULL.md: ambient stack carries the teacher's error style, but a
// cache accessor on the hot path stays a direct indexing op like
// matrix.Dense.At's non-error siblings elsewhere in the teacher corpus).
func (d *DistMatrix[T]) At(i, j int) float64 {
	if i == j {
		return 0
	}
	v, err := d.m.At(i, j)
	if err != nil {
		panic(err)
	}

	return v
}

// Row returns the i-th row of cached distances, one entry per key
// (including the zero self-distance at index i).
func (d *DistMatrix[T]) Row(i int) []float64 {
	row := make([]float64, len(d.keys))
	for j := range d.keys {
		row[j] = d.At(i, j)
	}

	return row
}

// NearestIndices returns, for key index i, the indices of the k nearest
// other keys sorted by ascending distance (ties broken by index). Used
// by AverageNearestDistance.
func (d *DistMatrix[T]) NearestIndices(i, k int) []int {
	n := len(d.keys)
	cand := make([]int, 0, n-1)
	for j := 0; j < n; j++ {
		if j != i {
			cand = append(cand, j)
		}
	}
	for a := 1; a < len(cand); a++ {
		for b := a; b > 0 && d.At(i, cand[b-1]) > d.At(i, cand[b]); b-- {
			cand[b-1], cand[b] = cand[b], cand[b-1]
		}
	}
	if k > len(cand) {
		k = len(cand)
	}

	return cand[:k]
}
