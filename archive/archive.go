package archive

import (
	"sort"

	"github.com/katalvlaran/pareto/front"
	"github.com/katalvlaran/pareto/index"
	"github.com/katalvlaran/pareto/point"
)

// Archive is a capacity-bounded stack of front.Front ranks (spec.md
// §4.7): rank 0 is the current Pareto frontier, each deeper rank holds
// keys dominated by some key of the rank above it. Archive never builds a rank's
// back-end itself; backend is called once per new rank so callers can
// pick any index.Index implementation, mirroring front.Front's own
// bring-your-own-backend convention.
type Archive[T point.Number, M any] struct {
	dim      int
	dirs     point.Directions
	capacity int
	backend  func() index.Index[T, M]
	ranks    []*front.Front[T, M]
	size     int
	seq      *seqTracker
}

// New builds an empty Archive over dim-dimensional keys with direction
// vector dirs and the given rank capacity (spec.md §4.7 "capacity N").
// Panics on a malformed configuration (option-constructor fail-fast,
// matching front.New's convention).
func New[T point.Number, M any](dim int, dirs point.Directions, capacity int, backend func() index.Index[T, M]) *Archive[T, M] {
	if len(dirs) != dim {
		panic(ErrDirectionsMismatch)
	}
	if capacity < 1 {
		panic(ErrCapacityInvalid)
	}

	return &Archive[T, M]{
		dim:      dim,
		dirs:     dirs,
		capacity: capacity,
		backend:  backend,
		seq:      newSeqTracker(),
	}
}

func (a *Archive[T, M]) Dimensions() int              { return a.dim }
func (a *Archive[T, M]) Directions() point.Directions { return a.dirs }
func (a *Archive[T, M]) Capacity() int                { return a.capacity }
func (a *Archive[T, M]) Size() int                    { return a.size }
func (a *Archive[T, M]) Empty() bool                  { return a.size == 0 }

// NumRanks returns the current number of non-empty ranks.
func (a *Archive[T, M]) NumRanks() int { return len(a.ranks) }

// Ranks returns a snapshot of every rank's stored values, rank 0 first
// (SPEC_FULL.md supplemented accessor, see types.go).
func (a *Archive[T, M]) Ranks() Ranks[T, M] {
	out := make(Ranks[T, M], len(a.ranks))
	for i, r := range a.ranks {
		out[i] = r.Values()
	}

	return out
}

// Find reports whether key is stored in any rank, and its mapped value.
func (a *Archive[T, M]) Find(key point.Point[T]) (index.Value[T, M], bool) {
	for _, r := range a.ranks {
		it, ok := r.Find(key)
		if !ok {
			continue
		}
		it.Next()

		return it.Value(), true
	}

	return index.Value[T, M]{}, false
}

// Dominates answers the Archive-level dominance predicate using rank 0
// alone, since A1 makes F0 the archive's dominance frontier (spec.md
// §4.7 "Queries").
func (a *Archive[T, M]) Dominates(p point.Point[T]) bool {
	if len(a.ranks) == 0 {
		return false
	}

	return a.ranks[0].Dominates(p)
}

// All concatenates every rank's stored values, rank 0 first (spec.md
// §4.7 "all spatial queries run against each rank in order and
// concatenate results").
func (a *Archive[T, M]) All() []index.Value[T, M] {
	out := make([]index.Value[T, M], 0, a.size)
	for _, r := range a.ranks {
		out = append(out, r.Values()...)
	}

	return out
}

// Nearest merges the k best values by distance to ref across every
// rank (spec.md §4.7 "Nearest merges k-best across ranks"): each rank
// contributes its own k nearest candidates, and the global top-k is
// re-sorted from that merged candidate pool, ties broken by insertion
// order to match the per-index BeginNearest contract.
func (a *Archive[T, M]) Nearest(ref point.Point[T], k int) []index.Value[T, M] {
	if k <= 0 || len(a.ranks) == 0 {
		return nil
	}

	var pool []index.Value[T, M]
	for _, r := range a.ranks {
		it := r.FindNearest(ref, k)
		for it.Next() {
			pool = append(pool, it.Value())
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		di, dj := pool[i].Key.Distance(ref), pool[j].Key.Distance(ref)
		if di != dj {
			return di < dj
		}

		return a.seq.seq(keyOf(pool[i].Key)) < a.seq.seq(keyOf(pool[j].Key))
	})

	if k < len(pool) {
		pool = pool[:k]
	}

	return pool
}

// Insert cascades v into the archive (spec.md §4.7 insert steps 1-4).
// ok is false only when v's dimension mismatches or v's key is already
// stored somewhere in the archive (spec.md A3 insert idempotence); a
// well-formed, not-yet-stored key is always accepted somewhere, since a
// freshly created empty rank has no dominators.
func (a *Archive[T, M]) Insert(v index.Value[T, M]) bool {
	if v.Key.Dim() != a.dim {
		return false
	}
	if _, found := a.Find(v.Key); found {
		return false
	}

	a.cascade([]index.Value[T, M]{v})
	a.evict()

	return true
}

// cascade drains pending into rank 0 onward, re-queuing every value a
// rank rejects (dominated by that rank) or displaces (dominated by the
// newly accepted value) onto the next rank down, creating a new rank
// whenever the cascade reaches the last one (spec.md §4.7 steps 1-3).
func (a *Archive[T, M]) cascade(pending []index.Value[T, M]) {
	rankIdx := 0
	for len(pending) > 0 {
		if rankIdx == len(a.ranks) {
			a.ranks = append(a.ranks, front.New[T, M](a.dim, a.dirs, a.backend()))
		}
		r := a.ranks[rankIdx]

		var next []index.Value[T, M]
		for _, cand := range pending {
			before := r.Values()
			if _, ok := r.Insert(cand); !ok {
				next = append(next, cand)

				continue
			}
			a.seq.insert(keyOf(cand.Key))
			a.size++
			for _, d := range diffValues(before, r.Values(), cand.Key) {
				a.size--
				next = append(next, d)
			}
		}
		pending = next
		rankIdx++
	}
}

// evict trims the archive back to capacity (spec.md §4.7 step 4):
// while oversized, remove the least-crowded (maximum crowding-distance)
// element of the last rank, tie-broken by ascending insertion order;
// drop the last rank entirely once it empties.
func (a *Archive[T, M]) evict() {
	for a.size > a.capacity && len(a.ranks) > 0 {
		last := a.ranks[len(a.ranks)-1]
		values := last.Values()
		if len(values) == 0 {
			a.ranks = a.ranks[:len(a.ranks)-1]

			continue
		}
		crowding := front.CrowdingDistances(last)
		order := evictionOrder(values, crowding, a.seq)
		victim := values[order[0]]

		last.Erase(victim.Key)
		a.seq.remove(keyOf(victim.Key))
		a.size--

		if last.Empty() {
			a.ranks = a.ranks[:len(a.ranks)-1]
		}
	}
}
