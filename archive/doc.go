// Package archive implements a multi-rank Pareto archive (spec.md §4.7):
// a capacity-bounded stack of front.Front ranks, where rank 0 is the
// archive's current dominance frontier and each deeper rank holds keys
// dominated by some key of the rank above it. Insertion cascades a rejected or
// displaced value down the stack, creating a new rank if the cascade
// runs off the end; once total size exceeds capacity the least-crowded
// element of the last rank is evicted.
//
//	a := archive.New[float64, string](2, point.Directions{point.Minimise, point.Minimise}, 3,
//		func() index.Index[float64, string] { return index.NewLinear[float64, string](2, nil) })
//	a.Insert(index.Value[float64, string]{Key: point.New(1.0, 1.0), Mapped: "A"})
package archive
