package predicate

import (
	"math"
	"sort"

	"github.com/katalvlaran/pareto/point"
)

// List is a canonically ordered, redundancy-compressed sequence of
// predicates (spec.md §3 PredicateList). Build one with Compile; List's
// zero value is an empty, always-passing list.
type List[T point.Number, M any] struct {
	preds []Predicate[T, M]
}

// Compile folds ps according to the compression table (spec.md §4.2)
// until no rule applies, then sorts survivors most-restrictive-first.
// At most one Nearest predicate may remain after compression; a second,
// distinct-reference Nearest is merged (bounding box union, k =
// min(k1,k2)) rather than rejected, per the compression table's
// Nearest+Nearest rule.
func Compile[T point.Number, M any](ps ...Predicate[T, M]) (List[T, M], error) {
	compressed := compress(ps)
	sortPredicates(compressed)

	return List[T, M]{preds: compressed}, nil
}

// Predicates returns the compiled, ordered predicate slice.
func (l List[T, M]) Predicates() []Predicate[T, M] {
	return l.preds
}

// Pass reports whether v satisfies every predicate in the list.
func (l List[T, M]) Pass(v Value[T, M]) bool {
	for _, p := range l.preds {
		if !p.Pass(v) {
			return false
		}
	}

	return true
}

// MightPass reports whether box could contain any value satisfying every
// predicate in the list.
func (l List[T, M]) MightPass(box point.Box[T]) bool {
	for _, p := range l.preds {
		if !p.MightPass(box) {
			return false
		}
	}

	return true
}

// Nearest returns the list's Nearest predicate, if any.
func (l List[T, M]) Nearest() (Nearest[T, M], bool) {
	for _, p := range l.preds {
		if n, ok := p.(Nearest[T, M]); ok {
			return n, true
		}
	}

	return Nearest[T, M]{}, false
}

// compress applies the spec.md §4.2 compression table pairwise until a
// fixed point is reached.
func compress[T point.Number, M any](ps []Predicate[T, M]) []Predicate[T, M] {
	cur := append([]Predicate[T, M]{}, ps...)
	for {
		next, changed := compressOnePass(cur)
		if !changed {
			return next
		}
		cur = next
	}
}

func compressOnePass[T point.Number, M any](ps []Predicate[T, M]) ([]Predicate[T, M], bool) {
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if merged, ok := foldPair(ps[i], ps[j]); ok {
				out := make([]Predicate[T, M], 0, len(ps)-1)
				out = append(out, ps[:i]...)
				out = append(out, merged)
				out = append(out, ps[i+1:j]...)
				out = append(out, ps[j+1:]...)

				return out, true
			}
		}
	}

	return ps, false
}

// foldPair implements one row of the spec.md §4.2 compression table. It
// returns (merged, true) when a and b fold into one predicate, or
// (nil, false) when both must be kept.
func foldPair[T point.Number, M any](a, b Predicate[T, M]) (Predicate[T, M], bool) {
	switch x := a.(type) {
	case Intersects[T, M]:
		switch y := b.(type) {
		case Intersects[T, M]:
			if x.Q.ContainsBox(y.Q) {
				return y, true
			}
			if y.Q.ContainsBox(x.Q) {
				return x, true
			}
		case Within[T, M]:
			if x.Q.ContainsBox(y.Q) {
				return y, true
			}
			if y.Q.ContainsBox(x.Q) {
				return x, true
			}
		case Disjoint[T, M]:
			if !x.Q.Overlaps(y.Q) {
				return x, true
			}
			if y.Q.ContainsBox(x.Q) {
				return x, true
			}
		}
	case Within[T, M]:
		switch y := b.(type) {
		case Intersects[T, M]:
			if y.Q.ContainsBox(x.Q) {
				return x, true
			}
			if x.Q.ContainsBox(y.Q) {
				return y, true
			}
		case Within[T, M]:
			if x.Q.ContainsBox(y.Q) {
				return y, true
			}
			if y.Q.ContainsBox(x.Q) {
				return x, true
			}
		case Disjoint[T, M]:
			if !x.Q.Overlaps(y.Q) {
				return x, true
			}
			if y.Q.ContainsBox(x.Q) {
				return x, true
			}
		}
	case Disjoint[T, M]:
		switch y := b.(type) {
		case Intersects[T, M]:
			if !y.Q.Overlaps(x.Q) {
				return y, true
			}
			if x.Q.ContainsBox(y.Q) {
				return y, true
			}
		case Within[T, M]:
			if !y.Q.Overlaps(x.Q) {
				return y, true
			}
			if x.Q.ContainsBox(y.Q) {
				return y, true
			}
		}
	case Nearest[T, M]:
		if y, ok := b.(Nearest[T, M]); ok {
			k := x.K
			if y.K < k {
				k = y.K
			}
			merged := x.Ref.BoundingBox().Combine(y.Ref.BoundingBox())

			return Nearest[T, M]{Ref: RefBox[T](merged), K: k}, true
		}
	}

	return nil, false
}

// sortPredicates orders predicates most-restrictive-first: geometric
// predicates by ascending effective volume (Intersects/Within use box
// volume, Disjoint uses total-space volume minus box volume, approximated
// here by negative box volume since an absolute total-space volume is
// unavailable without a domain bound); Satisfies and Nearest always sort
// last, per spec.md §4.2.
func sortPredicates[T point.Number, M any](ps []Predicate[T, M]) {
	sort.SliceStable(ps, func(i, j int) bool {
		ri, rj := predicateRank(ps[i]), predicateRank(ps[j])
		if ri != rj {
			return ri < rj
		}

		return effectiveVolume(ps[i]) < effectiveVolume(ps[j])
	})
}

// predicateRank buckets predicates for ordering: geometric kinds first,
// then Satisfies and Nearest (least restrictive, spec.md §4.2).
func predicateRank[T point.Number, M any](p Predicate[T, M]) int {
	switch p.Kind() {
	case KindIntersects, KindWithin, KindDisjoint:
		return 0
	default:
		return 1
	}
}

func effectiveVolume[T point.Number, M any](p Predicate[T, M]) float64 {
	switch x := p.(type) {
	case Intersects[T, M]:
		return x.Q.Volume()
	case Within[T, M]:
		return x.Q.Volume()
	case Disjoint[T, M]:
		return -x.Q.Volume() // larger excluded box -> smaller remaining space -> more restrictive
	default:
		return math.Inf(1)
	}
}
