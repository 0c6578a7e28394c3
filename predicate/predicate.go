package predicate

import (
	"math"

	"github.com/katalvlaran/pareto/point"
)

// Intersects passes values whose key is contained in Q (closed interval
// on every axis); MightPass prunes any box that does not overlap Q.
type Intersects[T point.Number, M any] struct {
	Q point.Box[T]
}

func (Intersects[T, M]) Kind() Kind { return KindIntersects }

func (p Intersects[T, M]) Pass(v Value[T, M]) bool {
	return p.Q.ContainsPoint(v.Key)
}

func (p Intersects[T, M]) MightPass(box point.Box[T]) bool {
	return p.Q.Overlaps(box)
}

// Within passes values whose key is strictly inside Q; MightPass prunes
// the same way as Intersects (a box must overlap Q to contain any
// strictly-interior point).
type Within[T point.Number, M any] struct {
	Q point.Box[T]
}

func (Within[T, M]) Kind() Kind { return KindWithin }

func (p Within[T, M]) Pass(v Value[T, M]) bool {
	return p.Q.Within(v.Key)
}

func (p Within[T, M]) MightPass(box point.Box[T]) bool {
	return p.Q.Overlaps(box)
}

// Disjoint passes values whose key is NOT contained in Q; MightPass
// prunes only when box is entirely inside Q (every point within it is
// then guaranteed to fail).
type Disjoint[T point.Number, M any] struct {
	Q point.Box[T]
}

func (Disjoint[T, M]) Kind() Kind { return KindDisjoint }

func (p Disjoint[T, M]) Pass(v Value[T, M]) bool {
	return !p.Q.ContainsPoint(v.Key)
}

func (p Disjoint[T, M]) MightPass(box point.Box[T]) bool {
	return !p.Q.ContainsBox(box)
}

// Reference is the target of a Nearest query: either a bare point or a
// box (spec.md §3 "ref is P or B"). Zero value is an invalid reference;
// use RefPoint or RefBox to build one.
type Reference[T point.Number] struct {
	isBox bool
	pt    point.Point[T]
	box   point.Box[T]
}

// RefPoint builds a point reference.
func RefPoint[T point.Number](p point.Point[T]) Reference[T] {
	return Reference[T]{pt: p}
}

// RefBox builds a box reference; distance to a query box is measured
// between the two boxes' closest faces via the bounding box of both.
func RefBox[T point.Number](b point.Box[T]) Reference[T] {
	return Reference[T]{isBox: true, box: b}
}

// DistanceToBox returns the distance from the reference to the closest
// point of box.
func (r Reference[T]) DistanceToBox(box point.Box[T]) float64 {
	if !r.isBox {
		return box.DistanceToPoint(r.pt)
	}
	// Distance between two boxes: if they overlap, 0; otherwise the
	// Euclidean distance between their closest faces, computed by
	// clamping each axis independently.
	var sum float64
	for i := 0; i < r.box.Dim(); i++ {
		lo, hi := r.box.Min().At(i), r.box.Max().At(i)
		blo, bhi := box.Min().At(i), box.Max().At(i)
		var d float64
		switch {
		case hi < blo:
			d = float64(blo) - float64(hi)
		case bhi < lo:
			d = float64(lo) - float64(bhi)
		}
		sum += d * d
	}

	return math.Sqrt(sum)
}

// DistanceToPoint returns the distance from the reference to p.
func (r Reference[T]) DistanceToPoint(p point.Point[T]) float64 {
	if !r.isBox {
		return r.pt.Distance(p)
	}

	return r.box.DistanceToPoint(p)
}

// BoundingBox returns the smallest box enclosing the reference itself
// (used when merging two Nearest predicates, spec.md §4.2 compression
// table).
func (r Reference[T]) BoundingBox() point.Box[T] {
	if r.isBox {
		return r.box
	}

	return point.NewBox(r.pt, r.pt)
}

// Nearest is a placeholder predicate: Pass and MightPass are always true
// (spec.md §4.2); it does not filter, it rewrites index traversal into a
// best-first search ordered by distance to Ref, yielding K results.
type Nearest[T point.Number, M any] struct {
	Ref Reference[T]
	K   int
}

func (Nearest[T, M]) Kind() Kind { return KindNearest }

func (Nearest[T, M]) Pass(Value[T, M]) bool { return true }

func (Nearest[T, M]) MightPass(point.Box[T]) bool { return true }

// Satisfies passes values for which Fn returns true. Fn must be a pure
// function of the value (or, via SatisfiesKey, of the key alone) and must
// not mutate the container it is evaluated against (spec.md §6).
type Satisfies[T point.Number, M any] struct {
	Fn func(Value[T, M]) bool
}

func (Satisfies[T, M]) Kind() Kind { return KindSatisfies }

func (p Satisfies[T, M]) Pass(v Value[T, M]) bool {
	return p.Fn(v)
}

func (Satisfies[T, M]) MightPass(point.Box[T]) bool { return true }

// SatisfiesKey builds a Satisfies predicate from a key-only callable,
// for callers that only need to inspect coordinates.
func SatisfiesKey[T point.Number, M any](fn func(point.Point[T]) bool) Satisfies[T, M] {
	return Satisfies[T, M]{Fn: func(v Value[T, M]) bool { return fn(v.Key) }}
}
