// Package pareto is a spatial container library for multi-objective
// optimisation: Pareto fronts and multi-rank archives backed by a
// choice of spatial indices (linear scan, k-d tree, quad-tree, R-tree,
// R*-tree), plus the metric algorithms used to evaluate them
// (hypervolume, convergence, distribution, conflict indicators).
//
// Everything is organised under per-concern subpackages:
//
//	point/      — N-dimensional points, boxes, and direction vectors
//	predicate/  — composable spatial/value query predicates
//	arena/      — pool allocators backing the tree indices
//	index/      — the five Index[T,M] back-ends (C5-C9)
//	front/      — Pareto front (C10) and its metric algorithms (C12)
//	archive/    — capacity-bounded multi-rank archive (C11)
//	testpoints/ — reproducible point-cloud generation for tests/benchmarks
//
// Quick example:
//
//	f := front.New[float64, string](2, point.Directions{point.Minimise, point.Minimise},
//		index.NewKDTree[float64, string](2))
//	f.Insert(index.Value[float64, string]{Key: point.New(1.0, 2.0), Mapped: "A"})
//	ideal, _ := f.Ideal()
//
// See SPEC_FULL.md and DESIGN.md for the full component map and the
// grounding ledger behind each package's design choices.
package pareto
