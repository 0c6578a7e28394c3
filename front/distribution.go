package front

import (
	"math"
	"sort"

	"github.com/katalvlaran/pareto/point"
)

// Uniformity returns the minimum pairwise distance among f's stored
// keys (SPEC_FULL.md distribution metrics), a common proxy for how
// evenly an archive's front is spread: a low value flags a cluster of
// near-duplicate solutions. Returns +Inf for fronts with fewer than two
// keys (vacuously uniform).
func Uniformity[T point.Number, M any](f *Front[T, M]) float64 {
	keys := f.Keys()
	if len(keys) < 2 {
		return math.Inf(1)
	}
	dm, err := NewDistMatrix(keys)
	if err != nil {
		return math.Inf(1)
	}
	best := math.Inf(1)
	for i := 0; i < dm.N(); i++ {
		for j := i + 1; j < dm.N(); j++ {
			if d := dm.At(i, j); d < best {
				best = d
			}
		}
	}

	return best
}

// AverageDistance returns the mean pairwise distance among f's stored
// keys. Returns 0 for fronts with fewer than two keys.
func AverageDistance[T point.Number, M any](f *Front[T, M]) float64 {
	keys := f.Keys()
	n := len(keys)
	if n < 2 {
		return 0
	}
	dm, err := NewDistMatrix(keys)
	if err != nil {
		return 0
	}
	sum, pairs := 0.0, 0
	for i := 0; i < dm.N(); i++ {
		for j := i + 1; j < dm.N(); j++ {
			sum += dm.At(i, j)
			pairs++
		}
	}

	return sum / float64(pairs)
}

// AverageNearestDistance returns, for each stored key, the mean distance
// to its k nearest neighbours, averaged over all keys. k is clamped to
// n-1. Returns 0 for fronts with fewer than two keys.
func AverageNearestDistance[T point.Number, M any](f *Front[T, M], k int) float64 {
	keys := f.Keys()
	n := len(keys)
	if n < 2 || k < 1 {
		return 0
	}
	dm, err := NewDistMatrix(keys)
	if err != nil {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		nn := dm.NearestIndices(i, k)
		sum := 0.0
		for _, j := range nn {
			sum += dm.At(i, j)
		}
		total += sum / float64(len(nn))
	}

	return total / float64(n)
}

// CrowdingDistances returns the NSGA-II-style crowding distance for
// every key in f, in f.Keys() order. Boundary points on any axis (the
// extremes of the per-axis sort) receive +Inf, matching NSGA-II's rule
// that boundary solutions are always preserved. Normalisation divides
// each axis's gap by that axis's observed range so no single axis's
// scale dominates the sum.
func CrowdingDistances[T point.Number, M any](f *Front[T, M]) []float64 {
	values := f.Values()
	n := len(values)
	dist := make([]float64, n)
	if n == 0 {
		return dist
	}
	if n <= 2 {
		for i := range dist {
			dist[i] = math.Inf(1)
		}

		return dist
	}

	for axis := 0; axis < f.dim; axis++ {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			return values[order[a]].Key.At(axis) < values[order[b]].Key.At(axis)
		})
		lo := float64(values[order[0]].Key.At(axis))
		hi := float64(values[order[n-1]].Key.At(axis))
		spread := hi - lo
		dist[order[0]] = math.Inf(1)
		dist[order[n-1]] = math.Inf(1)
		if spread == 0 {
			continue
		}
		for r := 1; r < n-1; r++ {
			if math.IsInf(dist[order[r]], 1) {
				continue
			}
			prev := float64(values[order[r-1]].Key.At(axis))
			next := float64(values[order[r+1]].Key.At(axis))
			dist[order[r]] += (next - prev) / spread
		}
	}

	return dist
}

// CrowdingDistance returns the crowding distance of key within f, and
// whether key was found among f's stored keys.
func CrowdingDistance[T point.Number, M any](f *Front[T, M], key point.Point[T]) (float64, bool) {
	values := f.Values()
	all := CrowdingDistances(f)
	for i, v := range values {
		if v.Key.Equal(key) {
			return all[i], true
		}
	}

	return 0, false
}

// AverageCrowdingDistance returns the mean crowding distance across f's
// interior (non-boundary) keys; boundary keys carry +Inf by definition
// and are excluded so they do not swamp the average. Returns +Inf when
// every key is a boundary key (n<=2 or a degenerate single-axis front).
func AverageCrowdingDistance[T point.Number, M any](f *Front[T, M]) float64 {
	all := CrowdingDistances(f)
	sum, count := 0.0, 0
	for _, d := range all {
		if !math.IsInf(d, 1) {
			sum += d
			count++
		}
	}
	if count == 0 {
		return math.Inf(1)
	}

	return sum / float64(count)
}
