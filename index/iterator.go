package index

import "github.com/katalvlaran/pareto/point"

// sliceIterator is the shared Iterator implementation every back-end
// returns: a forward cursor over a slice already gathered by traversal
// (see doc.go for why this is the chosen rendering of spec.md's iterator
// contract).
type sliceIterator[T point.Number, M any] struct {
	vals []Value[T, M]
	pos  int
}

func newSliceIterator[T point.Number, M any](vals []Value[T, M]) *sliceIterator[T, M] {
	return &sliceIterator[T, M]{vals: vals, pos: -1}
}

func (it *sliceIterator[T, M]) Next() bool {
	it.pos++

	return it.pos < len(it.vals)
}

func (it *sliceIterator[T, M]) Value() Value[T, M] {
	return it.vals[it.pos]
}
