package index

import (
	"container/heap"

	"github.com/katalvlaran/pareto/arena"
	"github.com/katalvlaran/pareto/point"
	"github.com/katalvlaran/pareto/predicate"
)

// kdNode is either a routing node (axis, splitValue, two children) or a
// leaf holding exactly one value, per spec.md §4.5.2: "Internal node
// stores (split_value, split_axis). Leaf stores exactly one V." Because
// leaves carry all the data and internal nodes carry none, deletion
// collapses an internal node by promoting its surviving child rather than
// the classic "replace with subtree min" substitution that applies to
// kd-trees which store data in every node.
type kdNode[T point.Number, M any] struct {
	isLeaf bool

	leaf entry[T, M]

	axis       int
	splitValue T
	left       arena.NodeID
	right      arena.NodeID
}

// KDTree is the C6 back-end: a binary tree partitioning space on
// depth-rotating axes (spec.md §4.5.2). Keys must be unique; inserting a
// key that already exists is rejected regardless of mapped-value
// equality, since a kd-tree leaf holds exactly one V.
type KDTree[T point.Number, M any] struct {
	dim     int
	root    arena.NodeID
	a       *arena.Arena[kdNode[T, M]]
	size    int
	nextSeq uint64
}

// NewKDTree creates an empty k-d tree over dim-dimensional keys.
func NewKDTree[T point.Number, M any](dim int) *KDTree[T, M] {
	return &KDTree[T, M]{dim: dim, root: arena.InvalidNodeID, a: arena.New[kdNode[T, M]]()}
}

func (k *KDTree[T, M]) Dimensions() int { return k.dim }
func (k *KDTree[T, M]) Size() int       { return k.size }
func (k *KDTree[T, M]) Empty() bool     { return k.size == 0 }

func (k *KDTree[T, M]) Clear() {
	k.a.Release()
	k.root = arena.InvalidNodeID
	k.size = 0
}

func (k *KDTree[T, M]) Insert(v Value[T, M]) (Iterator[T, M], bool) {
	if v.Key.Dim() != k.dim {
		return newSliceIterator[T, M](nil), false
	}
	if _, found := k.Find(v.Key); found {
		return newSliceIterator([]Value[T, M]{v}), false
	}
	e := entry[T, M]{val: v, seq: k.nextSeq}
	k.nextSeq++
	k.root = k.insert(k.root, e, 0)
	k.size++

	return newSliceIterator([]Value[T, M]{v}), true
}

func (k *KDTree[T, M]) insert(id arena.NodeID, e entry[T, M], depth int) arena.NodeID {
	if id == arena.InvalidNodeID {
		newID, _ := k.a.Alloc(kdNode[T, M]{isLeaf: true, leaf: e})

		return newID
	}
	node, _ := k.a.Get(id)
	if node.isLeaf {
		return k.split(id, node.leaf, e, depth)
	}
	if e.val.Key.At(node.axis) <= node.splitValue {
		node.left = k.insert(node.left, e, depth+1)
	} else {
		node.right = k.insert(node.right, e, depth+1)
	}
	_ = k.a.Set(id, node)

	return id
}

// split converts a leaf holding `old` into a routing node discriminating
// between old and the newly inserted `next`. The canonical depth-rotated
// axis (depth mod m) is used when it already distinguishes the two keys;
// otherwise every other axis is tried in turn. Since Insert rejects exact
// key duplicates up front, some axis is guaranteed to differ.
func (k *KDTree[T, M]) split(id arena.NodeID, old, next entry[T, M], depth int) arena.NodeID {
	axis := depth % k.dim
	for i := 0; i < k.dim; i++ {
		a := (axis + i) % k.dim
		if old.val.Key.At(a) != next.val.Key.At(a) {
			axis = a

			break
		}
	}

	var splitValue T
	var leftE, rightE entry[T, M]
	if old.val.Key.At(axis) <= next.val.Key.At(axis) {
		splitValue = old.val.Key.At(axis)
		leftE, rightE = old, next
	} else {
		splitValue = next.val.Key.At(axis)
		leftE, rightE = next, old
	}

	leftID, _ := k.a.Alloc(kdNode[T, M]{isLeaf: true, leaf: leftE})
	rightID, _ := k.a.Alloc(kdNode[T, M]{isLeaf: true, leaf: rightE})
	_ = k.a.Set(id, kdNode[T, M]{axis: axis, splitValue: splitValue, left: leftID, right: rightID})

	return id
}

func (k *KDTree[T, M]) InsertAll(vs []Value[T, M]) int {
	n := 0
	for _, v := range vs {
		if _, ok := k.Insert(v); ok {
			n++
		}
	}

	return n
}

// Erase removes the value at key, if any, collapsing the vacated routing
// node by promoting its sibling subtree. Returns 0 or 1 (kd-tree keys are
// unique).
func (k *KDTree[T, M]) Erase(key point.Point[T]) int {
	newRoot, removed := k.eraseAt(k.root, key)
	if !removed {
		return 0
	}
	k.root = newRoot
	k.size--

	return 1
}

func (k *KDTree[T, M]) eraseAt(id arena.NodeID, key point.Point[T]) (arena.NodeID, bool) {
	if id == arena.InvalidNodeID {
		return id, false
	}
	node, _ := k.a.Get(id)
	if node.isLeaf {
		if node.leaf.val.Key.Equal(key) {
			_ = k.a.Free(id)

			return arena.InvalidNodeID, true
		}

		return id, false
	}

	if key.At(node.axis) <= node.splitValue {
		newLeft, removed := k.eraseAt(node.left, key)
		if !removed {
			return id, false
		}
		if newLeft == arena.InvalidNodeID {
			_ = k.a.Free(id)

			return node.right, true
		}
		node.left = newLeft
		_ = k.a.Set(id, node)

		return id, true
	}

	newRight, removed := k.eraseAt(node.right, key)
	if !removed {
		return id, false
	}
	if newRight == arena.InvalidNodeID {
		_ = k.a.Free(id)

		return node.left, true
	}
	node.right = newRight
	_ = k.a.Set(id, node)

	return id, true
}

func (k *KDTree[T, M]) Find(key point.Point[T]) (Iterator[T, M], bool) {
	id := k.root
	for id != arena.InvalidNodeID {
		node, _ := k.a.Get(id)
		if node.isLeaf {
			if node.leaf.val.Key.Equal(key) {
				return newSliceIterator([]Value[T, M]{node.leaf.val}), true
			}

			return newSliceIterator[T, M](nil), false
		}
		if key.At(node.axis) <= node.splitValue {
			id = node.left
		} else {
			id = node.right
		}
	}

	return newSliceIterator[T, M](nil), false
}

// leaves collects every stored entry via an in-order traversal.
func (k *KDTree[T, M]) leaves() []entry[T, M] {
	var out []entry[T, M]
	var walk func(id arena.NodeID)
	walk = func(id arena.NodeID) {
		if id == arena.InvalidNodeID {
			return
		}
		node, _ := k.a.Get(id)
		if node.isLeaf {
			out = append(out, node.leaf)

			return
		}
		walk(node.left)
		walk(node.right)
	}
	walk(k.root)

	return out
}

func (k *KDTree[T, M]) MinValue(axis int) (T, bool) {
	var zero T
	el, ok := k.MinElement(axis)
	if !ok {
		return zero, false
	}

	return el.Key.At(axis), true
}

func (k *KDTree[T, M]) MaxValue(axis int) (T, bool) {
	var zero T
	el, ok := k.MaxElement(axis)
	if !ok {
		return zero, false
	}

	return el.Key.At(axis), true
}

func (k *KDTree[T, M]) MinElement(axis int) (Value[T, M], bool) {
	var zero Value[T, M]
	leaves := k.leaves()
	if len(leaves) == 0 {
		return zero, false
	}
	best := leaves[0]
	for _, e := range leaves[1:] {
		if e.val.Key.At(axis) < best.val.Key.At(axis) {
			best = e
		}
	}

	return best.val, true
}

func (k *KDTree[T, M]) MaxElement(axis int) (Value[T, M], bool) {
	var zero Value[T, M]
	leaves := k.leaves()
	if len(leaves) == 0 {
		return zero, false
	}
	best := leaves[0]
	for _, e := range leaves[1:] {
		if e.val.Key.At(axis) > best.val.Key.At(axis) {
			best = e
		}
	}

	return best.val, true
}

// queryBox gathers every leaf reachable from id whose implicit bounding
// half-space overlaps q, pruning subtrees that cannot (spec.md §4.5.2
// "descend only into children whose half-spaces intersect the query
// box"). Both Intersects and Within share this pruning: their
// MightPass contract is identical ("Q overlaps B"); they differ only in
// the final Pass check applied by the caller.
func (k *KDTree[T, M]) queryBox(id arena.NodeID, q point.Box[T], out *[]entry[T, M]) {
	if id == arena.InvalidNodeID {
		return
	}
	node, _ := k.a.Get(id)
	if node.isLeaf {
		*out = append(*out, node.leaf)

		return
	}
	if q.Min().At(node.axis) <= node.splitValue {
		k.queryBox(node.left, q, out)
	}
	if q.Max().At(node.axis) > node.splitValue {
		k.queryBox(node.right, q, out)
	}
}

func (k *KDTree[T, M]) BeginIntersects(q point.Box[T]) Iterator[T, M] {
	var cands []entry[T, M]
	k.queryBox(k.root, q, &cands)
	list, _ := predicate.Compile[T, M](predicate.Intersects[T, M]{Q: q})

	return newSliceIterator(filterByList(cands, list))
}

func (k *KDTree[T, M]) BeginWithin(q point.Box[T]) Iterator[T, M] {
	var cands []entry[T, M]
	k.queryBox(k.root, q, &cands)
	list, _ := predicate.Compile[T, M](predicate.Within[T, M]{Q: q})

	return newSliceIterator(filterByList(cands, list))
}

func (k *KDTree[T, M]) BeginDisjoint(q point.Box[T]) Iterator[T, M] {
	// The routing nodes' bounding half-spaces are unbounded, so a
	// disjoint-pruning test ("box entirely inside q") almost never fires;
	// we fall back to a full scan and let Pass filter, same as Linear.
	list, _ := predicate.Compile[T, M](predicate.Disjoint[T, M]{Q: q})

	return newSliceIterator(filterByList(k.leaves(), list))
}

type kdHeapItem[T point.Number, M any] struct {
	id     arena.NodeID
	isLeaf bool
	leaf   entry[T, M]
	bound  float64
}

type kdHeap[T point.Number, M any] []kdHeapItem[T, M]

func (h kdHeap[T, M]) Len() int            { return len(h) }
func (h kdHeap[T, M]) Less(i, j int) bool  { return h[i].bound < h[j].bound }
func (h kdHeap[T, M]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *kdHeap[T, M]) Push(x interface{}) { *h = append(*h, x.(kdHeapItem[T, M])) }
func (h *kdHeap[T, M]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// BeginNearest runs a best-first search (grounded on tsp/bb.go's
// branch-and-bound priority queue, spec.md §4.5.2): the heap always pops
// the globally smallest pending lower bound, so the k-th leaf popped is
// the k-th nearest neighbour.
func (k *KDTree[T, M]) BeginNearest(ref point.Point[T], kN int) Iterator[T, M] {
	if kN < 1 || k.root == arena.InvalidNodeID {
		return newSliceIterator[T, M](nil)
	}
	h := &kdHeap[T, M]{{id: k.root, bound: 0}}
	heap.Init(h)

	var out []entry[T, M]
	for h.Len() > 0 && len(out) < kN {
		item := heap.Pop(h).(kdHeapItem[T, M])
		if item.isLeaf {
			out = append(out, item.leaf)

			continue
		}
		node, _ := k.a.Get(item.id)
		if node.isLeaf {
			heap.Push(h, kdHeapItem[T, M]{isLeaf: true, leaf: node.leaf, bound: ref.Distance(node.leaf.val.Key)})

			continue
		}
		refAxis := float64(ref.At(node.axis))
		split := float64(node.splitValue)
		leftBound, rightBound := 0.0, 0.0
		if refAxis > split {
			leftBound = refAxis - split
		}
		if refAxis <= split {
			rightBound = split - refAxis
		}
		if node.left != arena.InvalidNodeID {
			heap.Push(h, kdHeapItem[T, M]{id: node.left, bound: leftBound})
		}
		if node.right != arena.InvalidNodeID {
			heap.Push(h, kdHeapItem[T, M]{id: node.right, bound: rightBound})
		}
	}

	return newSliceIterator(entriesToValues(out))
}

func (k *KDTree[T, M]) Begin(list predicate.List[T, M]) Iterator[T, M] {
	if n, ok := list.Nearest(); ok {
		// Gather the full candidate set honouring geometric/Satisfies
		// predicates, then reorder by distance (same composition Linear
		// uses, see index/linear.go Begin).
		cands := k.allEntries()
		geometric := filterByList(cands, list)
		wrapped := make([]entry[T, M], len(geometric))
		for i, v := range geometric {
			wrapped[i] = entry[T, M]{val: v}
		}

		return newSliceIterator(nearestFromCandidates(wrapped, n.Ref.DistanceToPoint, n.K))
	}

	return newSliceIterator(filterByList(k.allEntries(), list))
}

func (k *KDTree[T, M]) allEntries() []entry[T, M] {
	return k.leaves()
}

func (k *KDTree[T, M]) All() Iterator[T, M] {
	return newSliceIterator(entriesToValues(k.leaves()))
}

func entriesToValues[T point.Number, M any](es []entry[T, M]) []Value[T, M] {
	out := make([]Value[T, M], len(es))
	for i, e := range es {
		out[i] = e.val
	}

	return out
}
