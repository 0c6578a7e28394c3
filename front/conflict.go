package front

import (
	"math"
	"sort"

	"github.com/katalvlaran/pareto/matrix"
	"github.com/katalvlaran/pareto/point"
)

// Conflict indicators quantify how much two axes i and j trade off
// against each other across f's stored keys (spec.md §4.6, GLOSSARY
// "conflict indicators": direct, maxmin, non-parametric, each with a
// normalised form). spec.md names the three kinds by their standard
// literature labels without fixing exact formulas ("per the standard
// formulations"); these follow Purshouse & Fleming's conflict/harmony
// framework: DirectConflict is negative Pearson correlation between
// the two (direction-oriented) axes, NonParametricConflict is the same
// idea computed on ranks (Spearman) rather than raw values, and
// MaxMinConflict is the classic maxmin-ratio measure. All three are
// oriented so larger values mean more conflict (a trade-off: improving
// one axis tends to worsen the other).

// orientedAxis returns axis-i values across keys, oriented so smaller
// is always better (matching the convention hvRecursive's orient uses).
func orientedAxis[T point.Number, M any](f *Front[T, M], axis int) []float64 {
	keys := f.Keys()
	out := make([]float64, len(keys))
	for k, key := range keys {
		out[k] = orient(f.dirs[axis], float64(key.At(axis)))
	}

	return out
}

// pearson delegates to matrix.Correlation (the teacher's z-scoring
// Pearson kernel, matrix/impl_statistics.go) rather than hand-rolling
// the covariance/variance accumulation a second time: xs and ys are
// packed as the two columns of an n×2 Dense and the off-diagonal entry
// of the resulting 2×2 correlation matrix is the answer.
func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	x, err := matrix.NewDense(n, 2)
	if err != nil {
		return 0
	}
	for k := 0; k < n; k++ {
		if err := x.Set(k, 0, xs[k]); err != nil {
			return 0
		}
		if err := x.Set(k, 1, ys[k]); err != nil {
			return 0
		}
	}
	corr, _, _, err := matrix.Correlation(x)
	if err != nil {
		return 0
	}
	v, err := corr.At(0, 1)
	if err != nil {
		return 0
	}

	return v
}

// ranks returns the rank (1-based, ties averaged) of each element.
func ranks(xs []float64) []float64 {
	n := len(xs)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return xs[order[a]] < xs[order[b]] })

	out := make([]float64, n)
	i := 0
	for i < n {
		j := i
		for j+1 < n && xs[order[j+1]] == xs[order[i]] {
			j++
		}
		avgRank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			out[order[k]] = avgRank
		}
		i = j + 1
	}

	return out
}

// DirectConflict returns the negated Pearson correlation between axes
// i and j across f's stored keys, oriented so positive values mean
// conflict (a trade-off) and negative values mean harmony. 0 for fewer
// than two keys or a constant axis.
func DirectConflict[T point.Number, M any](f *Front[T, M], i, j int) float64 {
	return -pearson(orientedAxis(f, i), orientedAxis(f, j))
}

// NormalizedDirectConflict rescales DirectConflict from [-1,1] to
// [0,1].
func NormalizedDirectConflict[T point.Number, M any](f *Front[T, M], i, j int) float64 {
	return (DirectConflict(f, i, j) + 1) / 2
}

// NonParametricConflict is DirectConflict computed on ranks (Spearman
// correlation) rather than raw values, making it robust to outliers
// and nonlinear-but-monotone trade-offs.
func NonParametricConflict[T point.Number, M any](f *Front[T, M], i, j int) float64 {
	return -pearson(ranks(orientedAxis(f, i)), ranks(orientedAxis(f, j)))
}

// NormalizedNonParametricConflict rescales NonParametricConflict from
// [-1,1] to [0,1].
func NormalizedNonParametricConflict[T point.Number, M any](f *Front[T, M], i, j int) float64 {
	return (NonParametricConflict(f, i, j) + 1) / 2
}

// MaxMinConflict is the classic maxmin-ratio conflict measure: axes i
// and j are first min-max normalised to [0,1] (oriented so smaller is
// better), then the measure is 1 - Σmin/Σmax summed over the stored
// keys. A value near 0 means the axes track together (harmony); a
// value near 1 means they are in near-total opposition (conflict).
// Returns 0 for fewer than one key or when both axes are constant.
func MaxMinConflict[T point.Number, M any](f *Front[T, M], i, j int) float64 {
	xs := normalize01(orientedAxis(f, i))
	ys := normalize01(orientedAxis(f, j))
	if len(xs) == 0 {
		return 0
	}
	var sumMin, sumMax float64
	for k := range xs {
		sumMin += math.Min(xs[k], ys[k])
		sumMax += math.Max(xs[k], ys[k])
	}
	if sumMax == 0 {
		return 0
	}

	return 1 - sumMin/sumMax
}

// NormalizedMaxMinConflict is MaxMinConflict, already within [0,1]; it
// exists alongside the other Normalized* variants purely so all three
// indicator families expose a matching raw/normalised pair.
func NormalizedMaxMinConflict[T point.Number, M any](f *Front[T, M], i, j int) float64 {
	return MaxMinConflict(f, i, j)
}

func normalize01(xs []float64) []float64 {
	if len(xs) == 0 {
		return xs
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	out := make([]float64, len(xs))
	if hi == lo {
		return out
	}
	for k, x := range xs {
		out[k] = (x - lo) / (hi - lo)
	}

	return out
}
