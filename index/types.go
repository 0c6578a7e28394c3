package index

import (
	"github.com/katalvlaran/pareto/point"
	"github.com/katalvlaran/pareto/predicate"
)

// Value is the (key, mapped) pair every Index stores, re-exported from
// predicate so callers need only import index.
type Value[T point.Number, M any] = predicate.Value[T, M]

// Iterator is the Go-native rendering of spec.md's forward iterator
// contract: call Next until it returns false, reading Value in between.
// An Iterator is invalidated by any subsequent Insert/Erase/Clear on the
// index that produced it (spec.md §5 "Iterator invalidation").
type Iterator[T point.Number, M any] interface {
	// Next advances to the next value, returning false once exhausted.
	Next() bool
	// Value returns the current (key, mapped) pair. Valid only after a
	// call to Next returned true.
	Value() Value[T, M]
}

// Index is the common contract every back-end (C5-C9) implements
// (spec.md §4.4).
type Index[T point.Number, M any] interface {
	// Insert adds v. ok is true iff a new entry was produced; false means
	// an equivalent key already existed under the index's equality
	// policy and v was not added.
	Insert(v Value[T, M]) (it Iterator[T, M], ok bool)
	// InsertAll bulk-inserts vs, returning the count of new entries
	// produced. Never stronger than a loop of single Inserts.
	InsertAll(vs []Value[T, M]) int
	// Erase removes every stored value whose key equals key, returning
	// the count removed.
	Erase(key point.Point[T]) int
	// Clear removes every stored value.
	Clear()
	// Size returns the number of stored values.
	Size() int
	// Empty reports whether Size() == 0.
	Empty() bool
	// Dimensions returns the index's configured dimension.
	Dimensions() int
	// Find returns an iterator positioned at the first stored value with
	// the given key, and whether one was found.
	Find(key point.Point[T]) (Iterator[T, M], bool)
	// MinValue returns the minimum stored coordinate on axis.
	MinValue(axis int) (T, bool)
	// MaxValue returns the maximum stored coordinate on axis.
	MaxValue(axis int) (T, bool)
	// MinElement returns the stored value whose coordinate on axis is
	// minimal.
	MinElement(axis int) (Value[T, M], bool)
	// MaxElement returns the stored value whose coordinate on axis is
	// maximal.
	MaxElement(axis int) (Value[T, M], bool)
	// BeginIntersects iterates every value whose key is contained in q.
	BeginIntersects(q point.Box[T]) Iterator[T, M]
	// BeginWithin iterates every value whose key is strictly inside q.
	BeginWithin(q point.Box[T]) Iterator[T, M]
	// BeginDisjoint iterates every value whose key is not contained in q.
	BeginDisjoint(q point.Box[T]) Iterator[T, M]
	// BeginNearest iterates the k values closest to ref, non-decreasing
	// by distance. Linear breaks ties by insertion order; the tree
	// back-ends leave the order among equidistant values unspecified.
	BeginNearest(ref point.Point[T], k int) Iterator[T, M]
	// Begin composes an arbitrary predicate.List (at most one Nearest).
	Begin(list predicate.List[T, M]) Iterator[T, M]
	// All iterates every stored value, in the back-end's own structural
	// order (deterministic per state, but not sorted).
	All() Iterator[T, M]
}
