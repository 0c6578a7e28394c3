package front

import (
	"math"

	"github.com/katalvlaran/pareto/point"
)

// nearestDistance returns the Euclidean distance from key to the
// closest point among others, and whether others was non-empty.
func nearestDistance[T point.Number](key point.Point[T], others []point.Point[T]) (float64, bool) {
	if len(others) == 0 {
		return 0, false
	}
	best := key.Distance(others[0])
	for _, o := range others[1:] {
		if d := key.Distance(o); d < best {
			best = d
		}
	}

	return best, true
}

// distances returns, for every key in from, its nearest-neighbour
// distance to some key in to.
func distances[T point.Number](from, to []point.Point[T]) []float64 {
	out := make([]float64, 0, len(from))
	for _, k := range from {
		if d, ok := nearestDistance(k, to); ok {
			out = append(out, d)
		}
	}

	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}

	return sum / float64(len(xs))
}

func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(xs)))
}

// GD returns the Generational Distance from f to reference: the mean
// Euclidean distance from each key in f to its nearest key in
// reference (spec.md §4.6 "GD(F, F*)").
func GD[T point.Number, M any](f, reference *Front[T, M]) float64 {
	return mean(distances(f.Keys(), reference.Keys()))
}

// STDGD returns the standard deviation of the per-key distances GD
// averages (spec.md §4.6 "STDGD").
func STDGD[T point.Number, M any](f, reference *Front[T, M]) float64 {
	return stddev(distances(f.Keys(), reference.Keys()))
}

// IGD returns the Inverted Generational Distance: GD with f and
// reference swapped (spec.md §4.6 "IGD: GD with F and F* swapped").
func IGD[T point.Number, M any](f, reference *Front[T, M]) float64 {
	return mean(distances(reference.Keys(), f.Keys()))
}

// distanceToDominatedBox returns how far a is from the region z weakly
// dominates under dirs: 0 if z already weakly dominates a, otherwise
// the Euclidean distance along only the axes where a is not yet
// dominated (spec.md §4.6 "IGD+... distance is distance-to-dominated-
// box, zero if the reference point dominates the query point").
func distanceToDominatedBox[T point.Number](z, a point.Point[T], dirs point.Directions) float64 {
	sum := 0.0
	for i := 0; i < z.Dim(); i++ {
		zi, ai := float64(z.At(i)), float64(a.At(i))
		var deficit float64
		if dirs[i] == point.Maximise {
			deficit = math.Max(ai-zi, 0)
		} else {
			deficit = math.Max(zi-ai, 0)
		}
		sum += deficit * deficit
	}

	return math.Sqrt(sum)
}

// IGDPlus returns IGD using distanceToDominatedBox instead of Euclidean
// distance (spec.md §4.6 "IGD+"), swapping roles the same way IGD does:
// for every key z in reference, the distance to its nearest-dominating
// key in f.
func IGDPlus[T point.Number, M any](f, reference *Front[T, M]) float64 {
	fKeys := f.Keys()
	refKeys := reference.Keys()
	if len(fKeys) == 0 || len(refKeys) == 0 {
		return 0
	}
	sum := 0.0
	for _, z := range refKeys {
		best := distanceToDominatedBox(fKeys[0], z, f.dirs)
		for _, a := range fKeys[1:] {
			if d := distanceToDominatedBox(a, z, f.dirs); d < best {
				best = d
			}
		}
		sum += best
	}

	return sum / float64(len(refKeys))
}

// Hausdorff returns max(GD, IGD) between f and reference (spec.md
// §4.6 "Hausdorff").
func Hausdorff[T point.Number, M any](f, reference *Front[T, M]) float64 {
	return math.Max(GD(f, reference), IGD(f, reference))
}

// Coverage returns the fraction of other's keys weakly dominated by
// some key in f (spec.md §4.6 "Coverage C(F, F')"). Not symmetric.
// Returns 0 for an empty other (vacuous coverage).
func Coverage[T point.Number, M any](f, other *Front[T, M]) float64 {
	otherKeys := other.Keys()
	if len(otherKeys) == 0 {
		return 0
	}
	covered := 0
	for _, k := range otherKeys {
		if f.Dominates(k) {
			covered++
		}
	}

	return float64(covered) / float64(len(otherKeys))
}

// CoverageRatio returns Coverage(f, other) / Coverage(other, f), with
// the convention 0/0 = 1 and x/0 = +Inf for x > 0 (spec.md §4.6
// "Coverage ratio").
func CoverageRatio[T point.Number, M any](f, other *Front[T, M]) float64 {
	num := Coverage(f, other)
	den := Coverage(other, f)
	if num == 0 && den == 0 {
		return 1
	}
	if den == 0 {
		return math.Inf(1)
	}

	return num / den
}
