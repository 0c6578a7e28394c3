package front

import (
	"github.com/katalvlaran/pareto/index"
	"github.com/katalvlaran/pareto/point"
)

// Front keeps only mutually non-dominated keys from a backing
// index.Index, under a fixed per-axis point.Directions vector (spec.md
// §4.6). Front never builds its own back-end: the caller chooses which
// of the five index.Index implementations to wrap, so a Front can be
// backed by anything from a plain Linear scan to an R*-tree depending on
// the expected query mix.
type Front[T point.Number, M any] struct {
	idx  index.Index[T, M]
	dirs point.Directions
	dim  int
}

// New wraps idx (expected empty) as a Front over dim-dimensional keys
// with direction vector dirs. Panics if len(dirs) != dim or idx's own
// configured dimension differs (option-constructor-style fail-fast,
// matching arena.WithInitialBlockSize's convention).
func New[T point.Number, M any](dim int, dirs point.Directions, idx index.Index[T, M]) *Front[T, M] {
	if len(dirs) != dim {
		panic(ErrDirectionsMismatch)
	}
	if idx.Dimensions() != dim {
		panic(ErrDimensionMismatch)
	}

	return &Front[T, M]{idx: idx, dirs: dirs, dim: dim}
}

func (f *Front[T, M]) Dimensions() int          { return f.dim }
func (f *Front[T, M]) Directions() point.Directions { return f.dirs }
func (f *Front[T, M]) Size() int                { return f.idx.Size() }
func (f *Front[T, M]) Empty() bool              { return f.idx.Empty() }

// idealAt returns the best value observed on axis, honouring direction.
func (f *Front[T, M]) idealAt(axis int) (T, bool) {
	if f.dirs[axis] == point.Maximise {
		return f.idx.MaxValue(axis)
	}

	return f.idx.MinValue(axis)
}

// nadirAt returns the worst value observed on axis among the
// (non-dominated) stored keys, honouring direction.
func (f *Front[T, M]) nadirAt(axis int) (T, bool) {
	if f.dirs[axis] == point.Maximise {
		return f.idx.MinValue(axis)
	}

	return f.idx.MaxValue(axis)
}

// Ideal returns the per-axis best observed coordinate (spec.md §4.6
// "ideal[i] = best value observed on axis i"); ok is false for an empty
// Front.
func (f *Front[T, M]) Ideal() (point.Point[T], bool) {
	return f.extremal(f.idealAt)
}

// Nadir returns the per-axis worst observed coordinate among
// non-dominated keys (spec.md §4.6 "nadir[i] = worst value among
// non-dominated keys"); ok is false for an empty Front.
func (f *Front[T, M]) Nadir() (point.Point[T], bool) {
	return f.extremal(f.nadirAt)
}

// Worst is an alias for Nadir (spec.md §4.6 "worst[i] = nadir[i]").
func (f *Front[T, M]) Worst() (point.Point[T], bool) {
	return f.Nadir()
}

func (f *Front[T, M]) extremal(at func(int) (T, bool)) (point.Point[T], bool) {
	if f.idx.Empty() {
		var zero point.Point[T]

		return zero, false
	}
	coords := make([]T, f.dim)
	for i := 0; i < f.dim; i++ {
		coords[i], _ = at(i)
	}

	return point.New(coords...), true
}

// dominatingRegionBox bounds the set of points that weakly dominate key,
// clamped by the current ideal so the box is exact even when key would
// itself be a new best on some axis (spec.md §4.6 insert step 1).
func (f *Front[T, M]) dominatingRegionBox(key point.Point[T]) point.Box[T] {
	lo := make([]T, f.dim)
	hi := make([]T, f.dim)
	for i := 0; i < f.dim; i++ {
		k := key.At(i)
		ideal, ok := f.idealAt(i)
		if !ok {
			ideal = k
		}
		if f.dirs[i] == point.Maximise {
			lo[i], hi[i] = k, maxT(ideal, k)
		} else {
			lo[i], hi[i] = minT(ideal, k), k
		}
	}

	return point.NewBox(point.New(lo...), point.New(hi...))
}

// dominatedRegionBox bounds the set of points dominated by key, clamped
// by the current nadir (spec.md §4.6 insert step 2).
func (f *Front[T, M]) dominatedRegionBox(key point.Point[T]) point.Box[T] {
	lo := make([]T, f.dim)
	hi := make([]T, f.dim)
	for i := 0; i < f.dim; i++ {
		k := key.At(i)
		nadir, ok := f.nadirAt(i)
		if !ok {
			nadir = k
		}
		if f.dirs[i] == point.Maximise {
			lo[i], hi[i] = minT(nadir, k), k
		} else {
			lo[i], hi[i] = k, maxT(nadir, k)
		}
	}

	return point.NewBox(point.New(lo...), point.New(hi...))
}

// Insert adds v if no stored key weakly dominates it, removing any
// stored key v weakly dominates in the process (spec.md §4.6 insert).
func (f *Front[T, M]) Insert(v index.Value[T, M]) (index.Iterator[T, M], bool) {
	if v.Key.Dim() != f.dim {
		return newIter[T, M](nil), false
	}
	if !f.idx.Empty() {
		dominators := collectAll(f.idx.BeginIntersects(f.dominatingRegionBox(v.Key)))
		if len(dominators) > 0 {
			return newIter([]index.Value[T, M]{dominators[0]}), false
		}
	}
	if !f.idx.Empty() {
		dominated := collectAll(f.idx.BeginIntersects(f.dominatedRegionBox(v.Key)))
		for _, d := range dominated {
			f.idx.Erase(d.Key)
		}
	}

	return f.idx.Insert(v)
}

// InsertAll inserts every value in vs, returning the count actually
// retained (duplicates/dominated candidates do not count).
func (f *Front[T, M]) InsertAll(vs []index.Value[T, M]) int {
	n := 0
	for _, v := range vs {
		if _, ok := f.Insert(v); ok {
			n++
		}
	}

	return n
}

// Erase removes key if present, returning the count removed (0 or 1).
func (f *Front[T, M]) Erase(key point.Point[T]) int {
	return f.idx.Erase(key)
}

// Find mirrors index.Index.Find.
func (f *Front[T, M]) Find(key point.Point[T]) (index.Iterator[T, M], bool) {
	return f.idx.Find(key)
}

// All mirrors index.Index.All.
func (f *Front[T, M]) All() index.Iterator[T, M] {
	return f.idx.All()
}

// FindNearest is a convenience wrapper over the backing index's
// BeginNearest, matching the original pareto-front library's free
// function of the same name (original_source/sources/pareto_front.h).
func (f *Front[T, M]) FindNearest(ref point.Point[T], k int) index.Iterator[T, M] {
	return f.idx.BeginNearest(ref, k)
}

// Dominates reports whether some stored key weakly dominates p (spec.md
// §4.6 "F dominates p"); answered by a single bounded Intersects query
// that short-circuits on first hit.
func (f *Front[T, M]) Dominates(p point.Point[T]) bool {
	if f.idx.Empty() {
		return false
	}
	it := f.idx.BeginIntersects(f.dominatingRegionBox(p))

	return it.Next()
}

// DominatesFront reports whether every key in other is weakly dominated
// by some key in f (spec.md §4.6 "F dominates F'").
func (f *Front[T, M]) DominatesFront(other *Front[T, M]) bool {
	all := collectAll(other.All())
	if len(all) == 0 {
		return false
	}
	for _, v := range all {
		if !f.Dominates(v.Key) {
			return false
		}
	}

	return true
}

// StronglyDominatesFront reports whether every key in other is strictly
// dominated (on every axis) by some key in f.
func (f *Front[T, M]) StronglyDominatesFront(other *Front[T, M]) bool {
	otherAll := collectAll(other.All())
	if len(otherAll) == 0 {
		return false
	}
	mine := collectAll(f.All())
	for _, o := range otherAll {
		dominated := false
		for _, m := range mine {
			if StronglyDominates(m.Key, o.Key, f.dirs) {
				dominated = true

				break
			}
		}
		if !dominated {
			return false
		}
	}

	return true
}

// Keys returns every stored key, in the backing index's own order.
func (f *Front[T, M]) Keys() []point.Point[T] {
	all := collectAll(f.idx.All())
	out := make([]point.Point[T], len(all))
	for i, v := range all {
		out[i] = v.Key
	}

	return out
}

// Values returns every stored (key, mapped) pair.
func (f *Front[T, M]) Values() []index.Value[T, M] {
	return collectAll(f.idx.All())
}
