package index

import (
	"github.com/katalvlaran/pareto/point"
	"github.com/katalvlaran/pareto/predicate"
)

// Linear is the baseline index (C5): an unordered slice of values,
// scanned in full for every query. O(n) for every operation. It exists
// as a reference oracle for testing the tree-backed back-ends and as a
// pragmatic choice for small n (spec.md §4.5.1).
type Linear[T point.Number, M any] struct {
	dim     int
	entries []entry[T, M]
	nextSeq uint64
	eq      predicate.EqualFunc[M]
}

// NewLinear creates an empty Linear index over dim-dimensional keys. eq
// may be nil, meaning any two values sharing a key are treated as
// duplicates regardless of their mapped value.
func NewLinear[T point.Number, M any](dim int, eq predicate.EqualFunc[M]) *Linear[T, M] {
	return &Linear[T, M]{dim: dim, eq: eq}
}

func (l *Linear[T, M]) Dimensions() int { return l.dim }

func (l *Linear[T, M]) Size() int { return len(l.entries) }

func (l *Linear[T, M]) Empty() bool { return len(l.entries) == 0 }

func (l *Linear[T, M]) Clear() {
	l.entries = nil
}

// duplicateOf returns the index of an existing entry that should block
// insertion of v under the configured equality policy, or -1.
func (l *Linear[T, M]) duplicateOf(v Value[T, M]) int {
	for i, e := range l.entries {
		if !e.val.Key.Equal(v.Key) {
			continue
		}
		if l.eq == nil || l.eq(e.val.Mapped, v.Mapped) {
			return i
		}
	}

	return -1
}

func (l *Linear[T, M]) Insert(v Value[T, M]) (Iterator[T, M], bool) {
	if v.Key.Dim() != l.dim {
		return newSliceIterator[T, M](nil), false
	}
	if i := l.duplicateOf(v); i >= 0 {
		return newSliceIterator([]Value[T, M]{l.entries[i].val}), false
	}
	l.entries = append(l.entries, entry[T, M]{val: v, seq: l.nextSeq})
	l.nextSeq++

	return newSliceIterator([]Value[T, M]{v}), true
}

func (l *Linear[T, M]) InsertAll(vs []Value[T, M]) int {
	n := 0
	for _, v := range vs {
		if _, ok := l.Insert(v); ok {
			n++
		}
	}

	return n
}

func (l *Linear[T, M]) Erase(key point.Point[T]) int {
	out := l.entries[:0]
	count := 0
	for _, e := range l.entries {
		if e.val.Key.Equal(key) {
			count++

			continue
		}
		out = append(out, e)
	}
	l.entries = out

	return count
}

func (l *Linear[T, M]) Find(key point.Point[T]) (Iterator[T, M], bool) {
	for _, e := range l.entries {
		if e.val.Key.Equal(key) {
			return newSliceIterator([]Value[T, M]{e.val}), true
		}
	}

	return newSliceIterator[T, M](nil), false
}

func (l *Linear[T, M]) MinValue(axis int) (T, bool) {
	var zero T
	if len(l.entries) == 0 {
		return zero, false
	}
	best := l.entries[0].val.Key.At(axis)
	for _, e := range l.entries[1:] {
		if v := e.val.Key.At(axis); v < best {
			best = v
		}
	}

	return best, true
}

func (l *Linear[T, M]) MaxValue(axis int) (T, bool) {
	var zero T
	if len(l.entries) == 0 {
		return zero, false
	}
	best := l.entries[0].val.Key.At(axis)
	for _, e := range l.entries[1:] {
		if v := e.val.Key.At(axis); v > best {
			best = v
		}
	}

	return best, true
}

func (l *Linear[T, M]) MinElement(axis int) (Value[T, M], bool) {
	var zero Value[T, M]
	if len(l.entries) == 0 {
		return zero, false
	}
	best := l.entries[0]
	for _, e := range l.entries[1:] {
		if e.val.Key.At(axis) < best.val.Key.At(axis) {
			best = e
		}
	}

	return best.val, true
}

func (l *Linear[T, M]) MaxElement(axis int) (Value[T, M], bool) {
	var zero Value[T, M]
	if len(l.entries) == 0 {
		return zero, false
	}
	best := l.entries[0]
	for _, e := range l.entries[1:] {
		if e.val.Key.At(axis) > best.val.Key.At(axis) {
			best = e
		}
	}

	return best.val, true
}

func (l *Linear[T, M]) BeginIntersects(q point.Box[T]) Iterator[T, M] {
	list, _ := predicate.Compile[T, M](predicate.Intersects[T, M]{Q: q})

	return l.Begin(list)
}

func (l *Linear[T, M]) BeginWithin(q point.Box[T]) Iterator[T, M] {
	list, _ := predicate.Compile[T, M](predicate.Within[T, M]{Q: q})

	return l.Begin(list)
}

func (l *Linear[T, M]) BeginDisjoint(q point.Box[T]) Iterator[T, M] {
	list, _ := predicate.Compile[T, M](predicate.Disjoint[T, M]{Q: q})

	return l.Begin(list)
}

func (l *Linear[T, M]) BeginNearest(ref point.Point[T], k int) Iterator[T, M] {
	return newSliceIterator(nearestFromCandidates(l.entries, ref.Distance, k))
}

func (l *Linear[T, M]) Begin(list predicate.List[T, M]) Iterator[T, M] {
	if n, ok := list.Nearest(); ok {
		// Apply any remaining geometric/Satisfies predicates first, then
		// order the survivors by distance (spec.md I3 + I4 composed).
		geometric := filterByList(l.entries, list)
		wrapped := make([]entry[T, M], len(geometric))
		for i, v := range geometric {
			wrapped[i] = entry[T, M]{val: v}
		}

		return newSliceIterator(nearestFromCandidates(wrapped, n.Ref.DistanceToPoint, n.K))
	}

	return newSliceIterator(filterByList(l.entries, list))
}

func (l *Linear[T, M]) All() Iterator[T, M] {
	vals := make([]Value[T, M], len(l.entries))
	for i, e := range l.entries {
		vals[i] = e.val
	}

	return newSliceIterator(vals)
}
