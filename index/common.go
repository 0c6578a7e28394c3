package index

import (
	"sort"

	"github.com/katalvlaran/pareto/point"
	"github.com/katalvlaran/pareto/predicate"
)

// entry wraps a stored Value with a monotonic insertion sequence number,
// used to break ties in Nearest ordering (spec.md §5 "ties broken by
// insertion order") independently of how a given back-end physically
// stores its nodes.
type entry[T point.Number, M any] struct {
	val Value[T, M]
	seq uint64
}

// filterByList applies list.Pass to every entry, preserving relative
// order. It is the shared "exactness" pass every back-end runs after
// MightPass-based traversal has gathered a (possibly loose) candidate
// set, and is also Linear's entire query implementation.
func filterByList[T point.Number, M any](entries []entry[T, M], list predicate.List[T, M]) []Value[T, M] {
	out := make([]Value[T, M], 0, len(entries))
	for _, e := range entries {
		if list.Pass(e.val) {
			out = append(out, e.val)
		}
	}

	return out
}

// nearestFromCandidates orders candidates by non-decreasing distFn value,
// ties broken by insertion order, and returns the first k (spec.md
// invariant I4).
func nearestFromCandidates[T point.Number, M any](entries []entry[T, M], distFn func(point.Point[T]) float64, k int) []Value[T, M] {
	type scored struct {
		e    entry[T, M]
		dist float64
	}
	scoredEntries := make([]scored, len(entries))
	for i, e := range entries {
		scoredEntries[i] = scored{e: e, dist: distFn(e.val.Key)}
	}
	sort.Slice(scoredEntries, func(i, j int) bool {
		if scoredEntries[i].dist != scoredEntries[j].dist {
			return scoredEntries[i].dist < scoredEntries[j].dist
		}

		return scoredEntries[i].e.seq < scoredEntries[j].e.seq
	})
	if k > len(scoredEntries) {
		k = len(scoredEntries)
	}
	out := make([]Value[T, M], k)
	for i := 0; i < k; i++ {
		out[i] = scoredEntries[i].e.val
	}

	return out
}

// keyBoxOf returns the tightest Box enclosing a single key (a degenerate,
// zero-volume box), used whenever a leaf's own "might pass" bound is
// needed.
func keyBoxOf[T point.Number](p point.Point[T]) point.Box[T] {
	return point.NewBox(p, p)
}
