package archive

import (
	"sort"

	"github.com/katalvlaran/pareto/index"
	"github.com/katalvlaran/pareto/point"
)

// seqTracker records the order in which keys currently held by an
// Archive were first accepted, independent of which rank they occupy
// now. point.Point is slice-backed and not itself a valid map key, so
// entries are keyed by the point's canonical String() form (spec.md §9
// "Archive crowding on ties" is resolved by insertion-order tie-break,
// which requires this bookkeeping since neither front.Front nor
// index.Index expose a sequence number of their own).
type seqTracker struct {
	order map[string]uint64
	next  uint64
}

func newSeqTracker() *seqTracker {
	return &seqTracker{order: make(map[string]uint64)}
}

// keyOf renders a point's coordinates as a stable map key.
func keyOf[T point.Number](p point.Point[T]) string {
	return p.String()
}

func (s *seqTracker) insert(k string) {
	if _, ok := s.order[k]; ok {
		return
	}
	s.order[k] = s.next
	s.next++
}

func (s *seqTracker) remove(k string) {
	delete(s.order, k)
}

func (s *seqTracker) seq(k string) uint64 {
	return s.order[k]
}

// diffValues returns the entries of before absent from after, excluding
// the just-inserted candidate itself; these are the keys a single
// Front.Insert displaced as a side effect of accepting candidate.
func diffValues[T point.Number, M any](before, after []index.Value[T, M], candidate point.Point[T]) []index.Value[T, M] {
	present := make(map[string]bool, len(after))
	for _, v := range after {
		present[keyOf(v.Key)] = true
	}
	var out []index.Value[T, M]
	for _, v := range before {
		if v.Key.Equal(candidate) {
			continue
		}
		if !present[keyOf(v.Key)] {
			out = append(out, v)
		}
	}

	return out
}

// evictionOrder sorts values by the spec.md §4.7/§9 tie-break rule:
// eviction picks maximum crowding distance first, ties broken by
// ascending insertion sequence (the earliest-inserted survivor of a tie
// is evicted first, per the "Archive crowding ties" Open Question).
func evictionOrder[T point.Number, M any](values []index.Value[T, M], crowding []float64, seq *seqTracker) []int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if crowding[ia] != crowding[ib] {
			return crowding[ia] > crowding[ib]
		}

		return seq.seq(keyOf(values[ia].Key)) < seq.seq(keyOf(values[ib].Key))
	})

	return order
}

// Ranks is a point-in-time snapshot of an Archive's stratification
// (SPEC_FULL.md supplemented accessor; spec.md §4.7 describes ranks as
// internal state, but exposing a read-only snapshot is the natural Go
// rendering for tests and plotting adapters, mirroring front.Front's
// own Keys/Values accessors).
type Ranks[T point.Number, M any] [][]index.Value[T, M]
