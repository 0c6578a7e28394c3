package front

import "github.com/katalvlaran/pareto/point"

// WeaklyDominates reports whether a is at least as good as b on every
// axis under dirs (spec.md §4.6 "weakly dominates"). Reflexive: a point
// weakly dominates itself.
func WeaklyDominates[T point.Number](a, b point.Point[T], dirs point.Directions) bool {
	for i := 0; i < a.Dim(); i++ {
		if !dirs[i].Better(float64(a.At(i)), float64(b.At(i))) {
			return false
		}
	}

	return true
}

// Dominates reports standard Pareto dominance: a weakly dominates b and
// is strictly better on at least one axis.
func Dominates[T point.Number](a, b point.Point[T], dirs point.Directions) bool {
	strictlyBetterSomewhere := false
	for i := 0; i < a.Dim(); i++ {
		av, bv := float64(a.At(i)), float64(b.At(i))
		if !dirs[i].Better(av, bv) {
			return false
		}
		if dirs[i].StrictlyBetter(av, bv) {
			strictlyBetterSomewhere = true
		}
	}

	return strictlyBetterSomewhere
}

// StronglyDominates reports whether a is strictly better than b on
// every axis under dirs.
func StronglyDominates[T point.Number](a, b point.Point[T], dirs point.Directions) bool {
	for i := 0; i < a.Dim(); i++ {
		if !dirs[i].StrictlyBetter(float64(a.At(i)), float64(b.At(i))) {
			return false
		}
	}

	return true
}
