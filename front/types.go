package front

import (
	"github.com/katalvlaran/pareto/index"
	"github.com/katalvlaran/pareto/point"
)

// sliceIter is a minimal, freshly-positioned index.Iterator[T,M] built
// from an in-memory slice. Front needs to hand back iterators positioned
// at a specific value (e.g. "the dominator that rejected this insert")
// independently of whatever cursor state the backing index.Index left
// behind, so it cannot simply forward an index.Index iterator as-is.
type sliceIter[T point.Number, M any] struct {
	vals []index.Value[T, M]
	pos  int
}

func newIter[T point.Number, M any](vals []index.Value[T, M]) *sliceIter[T, M] {
	return &sliceIter[T, M]{vals: vals, pos: -1}
}

func (s *sliceIter[T, M]) Next() bool {
	s.pos++

	return s.pos < len(s.vals)
}

func (s *sliceIter[T, M]) Value() index.Value[T, M] {
	return s.vals[s.pos]
}

func collectAll[T point.Number, M any](it index.Iterator[T, M]) []index.Value[T, M] {
	var out []index.Value[T, M]
	for it.Next() {
		out = append(out, it.Value())
	}

	return out
}

func minT[T point.Number](a, b T) T {
	if a < b {
		return a
	}

	return b
}

func maxT[T point.Number](a, b T) T {
	if a > b {
		return a
	}

	return b
}
