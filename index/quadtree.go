package index

import (
	"container/heap"
	"math"

	"github.com/katalvlaran/pareto/arena"
	"github.com/katalvlaran/pareto/point"
	"github.com/katalvlaran/pareto/predicate"
)

// DefaultQuadBucketSize is the typical leaf capacity spec.md §4.5.3
// suggests ("implementation-defined, typical 8").
const DefaultQuadBucketSize = 8

type quadNode[T point.Number, M any] struct {
	isLeaf bool

	bucket []entry[T, M] // leaf

	pivot    point.Point[T] // internal
	children []arena.NodeID // internal, length 2^dim
}

// QuadTree is the C7 back-end: a 2^m-ary tree that partitions space
// around a pivot point per internal node (spec.md §4.5.3). Each child
// index is the point.Quadrant bitmask of a candidate key relative to the
// node's pivot.
type QuadTree[T point.Number, M any] struct {
	dim        int
	bucketSize int
	root       arena.NodeID
	a          *arena.Arena[quadNode[T, M]]
	size       int
	nextSeq    uint64
}

// NewQuadTree creates an empty quad-tree over dim-dimensional keys with
// the default bucket size.
func NewQuadTree[T point.Number, M any](dim int) *QuadTree[T, M] {
	return NewQuadTreeWithBucket[T, M](dim, DefaultQuadBucketSize)
}

// NewQuadTreeWithBucket creates an empty quad-tree with a custom leaf
// bucket size.
func NewQuadTreeWithBucket[T point.Number, M any](dim, bucketSize int) *QuadTree[T, M] {
	if bucketSize < 1 {
		panic("index: NewQuadTreeWithBucket requires bucketSize >= 1")
	}

	return &QuadTree[T, M]{dim: dim, bucketSize: bucketSize, root: arena.InvalidNodeID, a: arena.New[quadNode[T, M]]()}
}

func (q *QuadTree[T, M]) Dimensions() int { return q.dim }
func (q *QuadTree[T, M]) Size() int       { return q.size }
func (q *QuadTree[T, M]) Empty() bool     { return q.size == 0 }

func (q *QuadTree[T, M]) Clear() {
	q.a.Release()
	q.root = arena.InvalidNodeID
	q.size = 0
}

func (q *QuadTree[T, M]) Insert(v Value[T, M]) (Iterator[T, M], bool) {
	if v.Key.Dim() != q.dim {
		return newSliceIterator[T, M](nil), false
	}
	if _, found := q.Find(v.Key); found {
		return newSliceIterator([]Value[T, M]{v}), false
	}
	e := entry[T, M]{val: v, seq: q.nextSeq}
	q.nextSeq++
	q.root = q.insert(q.root, e)
	q.size++

	return newSliceIterator([]Value[T, M]{v}), true
}

func (q *QuadTree[T, M]) insert(id arena.NodeID, e entry[T, M]) arena.NodeID {
	if id == arena.InvalidNodeID {
		newID, _ := q.a.Alloc(quadNode[T, M]{isLeaf: true, bucket: []entry[T, M]{e}})

		return newID
	}
	node, _ := q.a.Get(id)
	if !node.isLeaf {
		idx := int(e.val.Key.Quadrant(node.pivot))
		node.children[idx] = q.insert(node.children[idx], e)
		_ = q.a.Set(id, node)

		return id
	}
	if len(node.bucket) < q.bucketSize {
		node.bucket = append(node.bucket, e)
		_ = q.a.Set(id, node)

		return id
	}

	return q.promote(id, append(node.bucket, e))
}

// promote turns a full leaf into an internal node, choosing the bucket's
// per-axis median as pivot and redistributing every entry (spec.md
// §4.5.3 "choosing the leaf's median as pivot").
func (q *QuadTree[T, M]) promote(id arena.NodeID, all []entry[T, M]) arena.NodeID {
	pivot := medianPivot(all, q.dim)
	numChildren := 1 << uint(q.dim)
	children := make([]arena.NodeID, numChildren)
	for i := range children {
		children[i] = arena.InvalidNodeID
	}
	_ = q.a.Set(id, quadNode[T, M]{pivot: pivot, children: children})
	for _, e := range all {
		node, _ := q.a.Get(id)
		idx := int(e.val.Key.Quadrant(pivot))
		node.children[idx] = q.insert(node.children[idx], e)
		_ = q.a.Set(id, node)
	}

	return id
}

func medianPivot[T point.Number, M any](all []entry[T, M], dim int) point.Point[T] {
	coords := make([]T, dim)
	buf := make([]T, len(all))
	for axis := 0; axis < dim; axis++ {
		for i, e := range all {
			buf[i] = e.val.Key.At(axis)
		}
		insertionSortT(buf)
		coords[axis] = buf[len(buf)/2]
	}

	return point.New(coords...)
}

func insertionSortT[T point.Number](s []T) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func (q *QuadTree[T, M]) InsertAll(vs []Value[T, M]) int {
	n := 0
	for _, v := range vs {
		if _, ok := q.Insert(v); ok {
			n++
		}
	}

	return n
}

func (q *QuadTree[T, M]) Erase(key point.Point[T]) int {
	removed := q.eraseAt(q.root, key)
	if removed {
		q.size--

		return 1
	}

	return 0
}

func (q *QuadTree[T, M]) eraseAt(id arena.NodeID, key point.Point[T]) bool {
	if id == arena.InvalidNodeID {
		return false
	}
	node, _ := q.a.Get(id)
	if node.isLeaf {
		for i, e := range node.bucket {
			if e.val.Key.Equal(key) {
				node.bucket = append(node.bucket[:i], node.bucket[i+1:]...)
				_ = q.a.Set(id, node)

				return true
			}
		}

		return false
	}
	idx := int(key.Quadrant(node.pivot))
	if !q.eraseAt(node.children[idx], key) {
		return false
	}
	q.coalesceIfPossible(id, node)

	return true
}

// coalesceIfPossible merges an internal node's children back into one
// leaf once their combined size drops below the bucket size and none of
// them has itself been promoted further (spec.md §4.5.3 "coalesce when a
// parent's subtree size drops below bucket size").
func (q *QuadTree[T, M]) coalesceIfPossible(id arena.NodeID, node quadNode[T, M]) {
	total := 0
	merged := make([]entry[T, M], 0, q.bucketSize)
	for _, childID := range node.children {
		if childID == arena.InvalidNodeID {
			continue
		}
		child, _ := q.a.Get(childID)
		if !child.isLeaf {
			return // a deeper subtree exists; do not coalesce
		}
		total += len(child.bucket)
		merged = append(merged, child.bucket...)
	}
	if total >= q.bucketSize {
		return
	}
	for _, childID := range node.children {
		if childID != arena.InvalidNodeID {
			_ = q.a.Free(childID)
		}
	}
	_ = q.a.Set(id, quadNode[T, M]{isLeaf: true, bucket: merged})
}

func (q *QuadTree[T, M]) Find(key point.Point[T]) (Iterator[T, M], bool) {
	id := q.root
	for id != arena.InvalidNodeID {
		node, _ := q.a.Get(id)
		if node.isLeaf {
			for _, e := range node.bucket {
				if e.val.Key.Equal(key) {
					return newSliceIterator([]Value[T, M]{e.val}), true
				}
			}

			return newSliceIterator[T, M](nil), false
		}
		id = node.children[int(key.Quadrant(node.pivot))]
	}

	return newSliceIterator[T, M](nil), false
}

func (q *QuadTree[T, M]) leaves() []entry[T, M] {
	var out []entry[T, M]
	var walk func(id arena.NodeID)
	walk = func(id arena.NodeID) {
		if id == arena.InvalidNodeID {
			return
		}
		node, _ := q.a.Get(id)
		if node.isLeaf {
			out = append(out, node.bucket...)

			return
		}
		for _, c := range node.children {
			walk(c)
		}
	}
	walk(q.root)

	return out
}

func (q *QuadTree[T, M]) MinValue(axis int) (T, bool) {
	var zero T
	el, ok := q.MinElement(axis)
	if !ok {
		return zero, false
	}

	return el.Key.At(axis), true
}

func (q *QuadTree[T, M]) MaxValue(axis int) (T, bool) {
	var zero T
	el, ok := q.MaxElement(axis)
	if !ok {
		return zero, false
	}

	return el.Key.At(axis), true
}

func (q *QuadTree[T, M]) MinElement(axis int) (Value[T, M], bool) {
	var zero Value[T, M]
	all := q.leaves()
	if len(all) == 0 {
		return zero, false
	}
	best := all[0]
	for _, e := range all[1:] {
		if e.val.Key.At(axis) < best.val.Key.At(axis) {
			best = e
		}
	}

	return best.val, true
}

func (q *QuadTree[T, M]) MaxElement(axis int) (Value[T, M], bool) {
	var zero Value[T, M]
	all := q.leaves()
	if len(all) == 0 {
		return zero, false
	}
	best := all[0]
	for _, e := range all[1:] {
		if e.val.Key.At(axis) > best.val.Key.At(axis) {
			best = e
		}
	}

	return best.val, true
}

// childEligible reports whether child index idx's cell could overlap q,
// given node's pivot (spec.md §4.5.3 "queries descend only into children
// whose cell overlaps the query").
func childEligible[T point.Number](idx int, pivot point.Point[T], q point.Box[T], dim int) bool {
	for axis := 0; axis < dim; axis++ {
		bitSet := (idx>>uint(axis))&1 == 1
		if bitSet {
			if q.Min().At(axis) > pivot.At(axis) {
				return false
			}
		} else if q.Max().At(axis) <= pivot.At(axis) {
			return false
		}
	}

	return true
}

func (q *QuadTree[T, M]) queryBox(id arena.NodeID, box point.Box[T], out *[]entry[T, M]) {
	if id == arena.InvalidNodeID {
		return
	}
	node, _ := q.a.Get(id)
	if node.isLeaf {
		*out = append(*out, node.bucket...)

		return
	}
	numChildren := 1 << uint(q.dim)
	for idx := 0; idx < numChildren; idx++ {
		if node.children[idx] == arena.InvalidNodeID {
			continue
		}
		if childEligible(idx, node.pivot, box, q.dim) {
			q.queryBox(node.children[idx], box, out)
		}
	}
}

func (q *QuadTree[T, M]) BeginIntersects(box point.Box[T]) Iterator[T, M] {
	var cands []entry[T, M]
	q.queryBox(q.root, box, &cands)
	list, _ := predicate.Compile[T, M](predicate.Intersects[T, M]{Q: box})

	return newSliceIterator(filterByList(cands, list))
}

func (q *QuadTree[T, M]) BeginWithin(box point.Box[T]) Iterator[T, M] {
	var cands []entry[T, M]
	q.queryBox(q.root, box, &cands)
	list, _ := predicate.Compile[T, M](predicate.Within[T, M]{Q: box})

	return newSliceIterator(filterByList(cands, list))
}

func (q *QuadTree[T, M]) BeginDisjoint(box point.Box[T]) Iterator[T, M] {
	list, _ := predicate.Compile[T, M](predicate.Disjoint[T, M]{Q: box})

	return newSliceIterator(filterByList(q.leaves(), list))
}

type quadHeapItem[T point.Number, M any] struct {
	id     arena.NodeID
	isLeaf bool
	entry  entry[T, M]
	bound  float64
}

type quadHeap[T point.Number, M any] []quadHeapItem[T, M]

func (h quadHeap[T, M]) Len() int            { return len(h) }
func (h quadHeap[T, M]) Less(i, j int) bool  { return h[i].bound < h[j].bound }
func (h quadHeap[T, M]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *quadHeap[T, M]) Push(x interface{}) { *h = append(*h, x.(quadHeapItem[T, M])) }
func (h *quadHeap[T, M]) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]

	return it
}

// cellBound returns a lower bound on the distance from ref to any point
// in child idx's cell under pivot (each axis clamped to the half-space
// idx selects, same derivation as point.Box.DistanceToPoint but one-sided
// per axis).
func cellBound[T point.Number](ref point.Point[T], pivot point.Point[T], idx, dim int) float64 {
	var sum float64
	for axis := 0; axis < dim; axis++ {
		bitSet := (idx>>uint(axis))&1 == 1
		r := float64(ref.At(axis))
		p := float64(pivot.At(axis))
		var d float64
		if bitSet && r > p {
			d = r - p
		} else if !bitSet && r <= p {
			d = p - r
		}
		sum += d * d
	}

	return math.Sqrt(sum)
}

func (q *QuadTree[T, M]) BeginNearest(ref point.Point[T], k int) Iterator[T, M] {
	if k < 1 || q.root == arena.InvalidNodeID {
		return newSliceIterator[T, M](nil)
	}
	h := &quadHeap[T, M]{{id: q.root, bound: 0}}
	heap.Init(h)

	var out []entry[T, M]
	for h.Len() > 0 && len(out) < k {
		item := heap.Pop(h).(quadHeapItem[T, M])
		if item.isLeaf {
			out = append(out, item.entry)

			continue
		}
		node, _ := q.a.Get(item.id)
		if node.isLeaf {
			for _, e := range node.bucket {
				heap.Push(h, quadHeapItem[T, M]{isLeaf: true, entry: e, bound: ref.Distance(e.val.Key)})
			}

			continue
		}
		numChildren := 1 << uint(q.dim)
		for idx := 0; idx < numChildren; idx++ {
			if node.children[idx] == arena.InvalidNodeID {
				continue
			}
			heap.Push(h, quadHeapItem[T, M]{id: node.children[idx], bound: cellBound(ref, node.pivot, idx, q.dim)})
		}
	}

	return newSliceIterator(entriesToValues(out))
}

func (q *QuadTree[T, M]) Begin(list predicate.List[T, M]) Iterator[T, M] {
	if n, ok := list.Nearest(); ok {
		cands := q.leaves()
		geometric := filterByList(cands, list)
		wrapped := make([]entry[T, M], len(geometric))
		for i, vv := range geometric {
			wrapped[i] = entry[T, M]{val: vv}
		}

		return newSliceIterator(nearestFromCandidates(wrapped, n.Ref.DistanceToPoint, n.K))
	}

	return newSliceIterator(filterByList(q.leaves(), list))
}

func (q *QuadTree[T, M]) All() Iterator[T, M] {
	return newSliceIterator(entriesToValues(q.leaves()))
}
