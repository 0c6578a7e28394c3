package front

import (
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"github.com/katalvlaran/pareto/point"
)

// Hypervolume computes the exact Lebesgue measure of the region
// dominated by f's stored keys and bounded by ref (spec.md §4.6 "hv",
// Hypervolume by Slicing Objectives): sort by an axis, slice, and
// recurse into the remaining axes, bottoming out at a 1-D interval
// length (spec.md: "base case m=2 is a sweep" — this implementation
// bottoms out one level lower, at m=1, which is the same sweep
// unrolled one step further and agrees with it on every input).
// Returns 0 for an empty front. ref must be weakly dominated by every
// stored key on every axis; a key that is not is simply excluded from
// its own axis's contribution rather than producing a negative slice.
func Hypervolume[T point.Number, M any](f *Front[T, M], ref point.Point[T]) float64 {
	keys := f.Keys()
	if len(keys) == 0 {
		return 0
	}
	dim := f.dim
	refVec := make([]float64, dim)
	for i := 0; i < dim; i++ {
		refVec[i] = orient(f.dirs[i], float64(ref.At(i)))
	}
	pts := make([][]float64, len(keys))
	for i, k := range keys {
		row := make([]float64, dim)
		for a := 0; a < dim; a++ {
			row[a] = orient(f.dirs[a], float64(k.At(a)))
		}
		pts[i] = row
	}

	return hvRecursive(pts, refVec)
}

// orient maps a coordinate into the minimisation-oriented space HSO
// operates in internally: maximised axes are negated so "smaller is
// better" holds uniformly across every axis.
func orient(dir point.Direction, v float64) float64 {
	if dir == point.Maximise {
		return -v
	}

	return v
}

// hvRecursive computes the hypervolume of points (already oriented so
// every axis is a minimisation axis) bounded by ref.
func hvRecursive(points [][]float64, ref []float64) float64 {
	if len(points) == 0 {
		return 0
	}
	if len(ref) == 1 {
		best := points[0][0]
		for _, p := range points[1:] {
			if p[0] < best {
				best = p[0]
			}
		}
		if ref[0] <= best {
			return 0
		}

		return ref[0] - best
	}

	sorted := make([][]float64, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i][0] < sorted[j][0] })

	vol := 0.0
	var active [][]float64
	for i, p := range sorted {
		active = filterNonDominatedVec(append(active, p[1:]))
		upper := ref[0]
		if i+1 < len(sorted) && sorted[i+1][0] < upper {
			upper = sorted[i+1][0]
		}
		if width := upper - p[0]; width > 0 {
			vol += width * hvRecursive(active, ref[1:])
		}
	}

	return vol
}

// filterNonDominatedVec drops points weakly dominated by some other
// point in the set; this is a pruning optimisation only (dominated
// points contribute no marginal volume) and never changes hvRecursive's
// result.
func filterNonDominatedVec(pts [][]float64) [][]float64 {
	keep := make([][]float64, 0, len(pts))
	for i, p := range pts {
		dominated := false
		for j, q := range pts {
			if i == j {
				continue
			}
			if weaklyDominatesVec(q, p) && !equalVec(p, q) {
				dominated = true

				break
			}
		}
		if !dominated {
			keep = append(keep, p)
		}
	}

	return keep
}

func weaklyDominatesVec(a, b []float64) bool {
	for i := range a {
		if a[i] > b[i] {
			return false
		}
	}

	return true
}

func equalVec(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// HVMonteCarlo estimates hypervolume by drawing samples points
// uniformly from the box spanned by f's ideal point and ref, counting
// the fraction dominated by some stored key, and scaling by the box's
// volume (spec.md §4.6 "hv(reference, samples)"). Sampling fans out
// across GOMAXPROCS workers via a plain sync.WaitGroup, worker w drawing
// from its own PRNG seeded with seed+w (SPEC_FULL.md ambient-stack note:
// the pool itself is external, only the associative count reduction is
// specified here). The estimate therefore depends on both seed and the
// worker count: it is reproducible run to run for the same seed and the
// same GOMAXPROCS, and may differ when GOMAXPROCS differs. This resolves spec.md §8's "Monte-Carlo
// HV determinism" open question in favour of an explicit seed
// parameter (recorded in DESIGN.md).
func HVMonteCarlo[T point.Number, M any](f *Front[T, M], ref point.Point[T], samples int, seed int64) float64 {
	if samples <= 0 || f.Empty() {
		return 0
	}
	ideal, ok := f.Ideal()
	if !ok {
		return 0
	}
	dim := f.dim
	lo := make([]float64, dim)
	hi := make([]float64, dim)
	volume := 1.0
	for i := 0; i < dim; i++ {
		a, b := float64(ideal.At(i)), float64(ref.At(i))
		if a > b {
			a, b = b, a
		}
		lo[i], hi[i] = a, b
		volume *= b - a
	}
	if volume <= 0 {
		return 0
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > samples {
		workers = samples
	}
	if workers < 1 {
		workers = 1
	}
	base := samples / workers
	remainder := samples % workers

	var wg sync.WaitGroup
	hits := make([]int, workers)
	for w := 0; w < workers; w++ {
		n := base
		if w < remainder {
			n++
		}
		if n == 0 {
			continue
		}
		wg.Add(1)
		go func(w, n int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(w)))
			count := 0
			coords := make([]T, dim)
			for s := 0; s < n; s++ {
				for i := 0; i < dim; i++ {
					coords[i] = T(lo[i] + rng.Float64()*(hi[i]-lo[i]))
				}
				if f.Dominates(point.New(coords...)) {
					count++
				}
			}
			hits[w] = count
		}(w, n)
	}
	wg.Wait()

	total := 0
	for _, h := range hits {
		total += h
	}

	return float64(total) / float64(samples) * volume
}
