// Package index implements the spatial index contract of spec.md §4.4 and
// its five concrete back-ends (§4.5): a baseline Linear scan, a k-d tree,
// a quad-tree, an R-tree, and an R*-tree. All five expose the identical
// Index[T,M] interface, so front.Front and archive.Archive can be built
// against any of them without caring which back-end is underneath.
//
// Every back-end materialises query results into a slice before handing
// back an Iterator: pruning during traversal (via a predicate.List's
// MightPass) is what gives the tree-backed indexes their complexity
// advantage over Linear, but the public iterator contract is satisfied by
// a simple forward cursor over the already-gathered values rather than by
// a lazily-resumable traversal. This is a deliberate simplification of
// spec.md's C++ begin/end iterator contract (see DESIGN.md "Go iterator
// contract"); it preserves every testable property of §8 (I1-I6) without
// needing cooperative coroutine-style iteration, which Go does not have a
// natural idiom for outside of range-over-func.
//
//	idx := index.NewKDTree[float64, string](2)
//	idx.Insert(index.Value[float64, string]{Key: point.New(1.0, 2.0), Mapped: "a"})
//	it := idx.BeginNearest(point.New(0.0, 0.0), 1)
//	for it.Next() {
//		fmt.Println(it.Value())
//	}
package index
