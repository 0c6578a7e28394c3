package testpoints

import (
	"github.com/katalvlaran/pareto/index"
	"github.com/katalvlaran/pareto/point"
)

// Random returns n independently drawn dim-dimensional points, each
// coordinate uniform over the configured range (default [0,1), seed 1).
func Random[T point.Number](dim, n int, opts ...Option) []point.Point[T] {
	cfg := newConfig(opts...)
	out := make([]point.Point[T], n)
	for i := 0; i < n; i++ {
		coords := make([]T, dim)
		for j := 0; j < dim; j++ {
			coords[j] = T(cfg.lo + cfg.rng.Float64()*(cfg.hi-cfg.lo))
		}
		out[i] = point.New(coords...)
	}

	return out
}

// Grid returns every point on a perAxis^dim regular lattice spanning
// the configured range; the RNG is unused since the lattice is
// deterministic by construction.
func Grid[T point.Number](dim, perAxis int, opts ...Option) []point.Point[T] {
	cfg := newConfig(opts...)
	steps := perAxis - 1
	if steps < 1 {
		steps = 1
	}
	step := (cfg.hi - cfg.lo) / float64(steps)

	total := 1
	for i := 0; i < dim; i++ {
		total *= perAxis
	}
	out := make([]point.Point[T], 0, total)

	idx := make([]int, dim)
	for {
		coords := make([]T, dim)
		for j := 0; j < dim; j++ {
			coords[j] = T(cfg.lo + float64(idx[j])*step)
		}
		out = append(out, point.New(coords...))

		axis := dim - 1
		for axis >= 0 {
			idx[axis]++
			if idx[axis] < perAxis {
				break
			}
			idx[axis] = 0
			axis--
		}
		if axis < 0 {
			break
		}
	}

	return out
}

// Values pairs pts with mapped values produced by mapFn(i) where i is
// the point's index in pts, a convenience for building index.Value
// slices to feed Insert/InsertAll in benchmarks and property tests.
func Values[T point.Number, M any](pts []point.Point[T], mapFn func(i int) M) []index.Value[T, M] {
	out := make([]index.Value[T, M], len(pts))
	for i, p := range pts {
		out[i] = index.Value[T, M]{Key: p, Mapped: mapFn(i)}
	}

	return out
}
