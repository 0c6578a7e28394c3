// Package front implements a Pareto front (spec.md §4.6): an
// index.Index[T,M] wrapper that keeps only mutually non-dominated keys
// under a per-axis point.Directions vector, plus the metric algorithms
// (spec.md §4.6 "C12") exposed from it: hypervolume, convergence,
// distribution, and conflict indicators.
//
//	f := front.New[float64, int](2, point.Directions{point.Minimise, point.Minimise}, index.NewKDTree[float64, int](2))
//	_, _ = f.Insert(index.Value[float64, int]{Key: point.New(1.0, 2.0), Mapped: 7})
//	ideal, _ := f.Ideal()
package front
