package index

import (
	"container/heap"

	"github.com/katalvlaran/pareto/arena"
	"github.com/katalvlaran/pareto/point"
	"github.com/katalvlaran/pareto/predicate"
)

// DefaultRTreeFanout is the typical node capacity spec.md §4.5.4
// recommends ("M implementation-chosen, typical 8-16").
const DefaultRTreeFanout = 8

type rNode[T point.Number, M any] struct {
	isLeaf bool
	mbr    point.Box[T]

	entries  []entry[T, M]  // leaf payload
	children []arena.NodeID // internal payload
}

// RTree is the C8 back-end: a balanced hierarchy of bounding boxes with
// quadratic split (spec.md §4.5.4).
type RTree[T point.Number, M any] struct {
	dim      int
	fanout   int
	minFill  int
	root     arena.NodeID
	a        *arena.Arena[rNode[T, M]]
	size     int
	nextSeq  uint64
}

// NewRTree creates an empty R-tree over dim-dimensional keys with the
// default fanout.
func NewRTree[T point.Number, M any](dim int) *RTree[T, M] {
	return NewRTreeWithFanout[T, M](dim, DefaultRTreeFanout)
}

// NewRTreeWithFanout creates an empty R-tree with a custom node capacity
// M; the minimum fill m' is M/2 rounded down, at least 1 (spec.md
// §4.5.4).
func NewRTreeWithFanout[T point.Number, M any](dim, fanout int) *RTree[T, M] {
	if fanout < 2 {
		panic("index: NewRTreeWithFanout requires fanout >= 2")
	}
	minFill := fanout / 2
	if minFill < 1 {
		minFill = 1
	}

	return &RTree[T, M]{dim: dim, fanout: fanout, minFill: minFill, root: arena.InvalidNodeID, a: arena.New[rNode[T, M]]()}
}

func (r *RTree[T, M]) Dimensions() int { return r.dim }
func (r *RTree[T, M]) Size() int       { return r.size }
func (r *RTree[T, M]) Empty() bool     { return r.size == 0 }

func (r *RTree[T, M]) Clear() {
	r.a.Release()
	r.root = arena.InvalidNodeID
	r.size = 0
}

func unionBoxes[T point.Number](boxes []point.Box[T]) point.Box[T] {
	result := boxes[0]
	for _, b := range boxes[1:] {
		result = result.Combine(b)
	}

	return result
}

func leafMBR[T point.Number, M any](entries []entry[T, M]) point.Box[T] {
	boxes := make([]point.Box[T], len(entries))
	for i, e := range entries {
		boxes[i] = keyBoxOf(e.val.Key)
	}

	return unionBoxes(boxes)
}

func (r *RTree[T, M]) childrenMBR(children []arena.NodeID) point.Box[T] {
	boxes := make([]point.Box[T], len(children))
	for i, id := range children {
		node, _ := r.a.Get(id)
		boxes[i] = node.mbr
	}

	return unionBoxes(boxes)
}

func enlargement[T point.Number](box, add point.Box[T]) float64 {
	return box.Combine(add).Volume() - box.Volume()
}

func (r *RTree[T, M]) Insert(v Value[T, M]) (Iterator[T, M], bool) {
	if v.Key.Dim() != r.dim {
		return newSliceIterator[T, M](nil), false
	}
	if _, found := r.Find(v.Key); found {
		return newSliceIterator([]Value[T, M]{v}), false
	}
	e := entry[T, M]{val: v, seq: r.nextSeq}
	r.nextSeq++
	r.insertEntry(e)
	r.size++

	return newSliceIterator([]Value[T, M]{v}), true
}

// insertEntry drives the recursive insert and absorbs a root split by
// growing a new root, following the classic R-tree insertion discipline
// (spec.md §4.5.4).
func (r *RTree[T, M]) insertEntry(e entry[T, M]) {
	newRoot, split := r.insert(r.root, e)
	if split == arena.InvalidNodeID {
		r.root = newRoot

		return
	}
	a, _ := r.a.Get(newRoot)
	b, _ := r.a.Get(split)
	rootBox := a.mbr.Combine(b.mbr)
	newRootID, _ := r.a.Alloc(rNode[T, M]{mbr: rootBox, children: []arena.NodeID{newRoot, split}})
	r.root = newRootID
}

func (r *RTree[T, M]) insert(id arena.NodeID, e entry[T, M]) (arena.NodeID, arena.NodeID) {
	if id == arena.InvalidNodeID {
		newID, _ := r.a.Alloc(rNode[T, M]{isLeaf: true, entries: []entry[T, M]{e}, mbr: keyBoxOf(e.val.Key)})

		return newID, arena.InvalidNodeID
	}
	node, _ := r.a.Get(id)
	if node.isLeaf {
		node.entries = append(node.entries, e)
		node.mbr = leafMBR(node.entries)
		if len(node.entries) <= r.fanout {
			_ = r.a.Set(id, node)

			return id, arena.InvalidNodeID
		}
		groupA, groupB := quadraticSplitIndices(entryBoxes(node.entries), r.minFill)
		idA, _ := r.a.Alloc(rNode[T, M]{isLeaf: true, entries: pickEntries(node.entries, groupA), mbr: leafMBR(pickEntries(node.entries, groupA))})
		idB, _ := r.a.Alloc(rNode[T, M]{isLeaf: true, entries: pickEntries(node.entries, groupB), mbr: leafMBR(pickEntries(node.entries, groupB))})
		_ = r.a.Free(id)

		return idA, idB
	}

	bestIdx := r.chooseChild(node.children, keyBoxOf(e.val.Key))
	newChildID, splitID := r.insert(node.children[bestIdx], e)
	node.children[bestIdx] = newChildID
	if splitID != arena.InvalidNodeID {
		node.children = append(node.children, splitID)
	}
	node.mbr = r.childrenMBR(node.children)
	if len(node.children) <= r.fanout {
		_ = r.a.Set(id, node)

		return id, arena.InvalidNodeID
	}
	boxes := make([]point.Box[T], len(node.children))
	for i, c := range node.children {
		child, _ := r.a.Get(c)
		boxes[i] = child.mbr
	}
	groupA, groupB := quadraticSplitIndices(boxes, r.minFill)
	childrenA := pickNodeIDs(node.children, groupA)
	childrenB := pickNodeIDs(node.children, groupB)
	idA, _ := r.a.Alloc(rNode[T, M]{children: childrenA, mbr: r.childrenMBR(childrenA)})
	idB, _ := r.a.Alloc(rNode[T, M]{children: childrenB, mbr: r.childrenMBR(childrenB)})
	_ = r.a.Free(id)

	return idA, idB
}

// chooseChild selects the child needing least MBR enlargement to accept
// box, ties broken by smaller resulting volume (spec.md §4.5.4).
func (r *RTree[T, M]) chooseChild(children []arena.NodeID, box point.Box[T]) int {
	best := 0
	var bestEnlargement, bestVolume float64
	for i, id := range children {
		child, _ := r.a.Get(id)
		enl := enlargement(child.mbr, box)
		vol := child.mbr.Combine(box).Volume()
		if i == 0 || enl < bestEnlargement || (enl == bestEnlargement && vol < bestVolume) {
			best, bestEnlargement, bestVolume = i, enl, vol
		}
	}

	return best
}

func entryBoxes[T point.Number, M any](entries []entry[T, M]) []point.Box[T] {
	boxes := make([]point.Box[T], len(entries))
	for i, e := range entries {
		boxes[i] = keyBoxOf(e.val.Key)
	}

	return boxes
}

func pickEntries[T point.Number, M any](entries []entry[T, M], idx []int) []entry[T, M] {
	out := make([]entry[T, M], len(idx))
	for i, j := range idx {
		out[i] = entries[j]
	}

	return out
}

func pickNodeIDs(ids []arena.NodeID, idx []int) []arena.NodeID {
	out := make([]arena.NodeID, len(idx))
	for i, j := range idx {
		out[i] = ids[j]
	}

	return out
}

// quadraticSplitIndices implements Guttman's quadratic-cost split
// (spec.md §4.5.4 "pick-seeds by largest dead-space, pick-next by
// largest preference delta, assigning the remainder to the smaller group
// when the min-fill invariant is at risk").
func quadraticSplitIndices[T point.Number](boxes []point.Box[T], minFill int) ([]int, []int) {
	n := len(boxes)
	seedA, seedB := pickSeeds(boxes)

	groupA := []int{seedA}
	groupB := []int{seedB}
	boxA := boxes[seedA]
	boxB := boxes[seedB]

	assigned := make([]bool, n)
	assigned[seedA] = true
	assigned[seedB] = true
	remaining := n - 2

	for remaining > 0 {
		if len(groupA)+remaining == minFill {
			for i := 0; i < n; i++ {
				if !assigned[i] {
					groupA = append(groupA, i)
					boxA = boxA.Combine(boxes[i])
					assigned[i] = true
					remaining--
				}
			}

			break
		}
		if len(groupB)+remaining == minFill {
			for i := 0; i < n; i++ {
				if !assigned[i] {
					groupB = append(groupB, i)
					boxB = boxB.Combine(boxes[i])
					assigned[i] = true
					remaining--
				}
			}

			break
		}

		next, toA, toB := pickNext(boxes, assigned, boxA, boxB)
		if preferSmallerGroup(toA, toB, len(groupA), len(groupB)) {
			groupA = append(groupA, next)
			boxA = boxA.Combine(boxes[next])
		} else {
			groupB = append(groupB, next)
			boxB = boxB.Combine(boxes[next])
		}
		assigned[next] = true
		remaining--
	}

	return groupA, groupB
}

func preferSmallerGroup(dA, dB float64, sizeA, sizeB int) bool {
	switch {
	case dA < dB:
		return true
	case dB < dA:
		return false
	default:
		return sizeA <= sizeB
	}
}

func pickSeeds[T point.Number](boxes []point.Box[T]) (int, int) {
	bestI, bestJ := 0, 1
	bestDeadSpace := -1.0
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			deadSpace := boxes[i].Combine(boxes[j]).Volume() - boxes[i].Volume() - boxes[j].Volume()
			if deadSpace > bestDeadSpace {
				bestDeadSpace, bestI, bestJ = deadSpace, i, j
			}
		}
	}

	return bestI, bestJ
}

func pickNext[T point.Number](boxes []point.Box[T], assigned []bool, boxA, boxB point.Box[T]) (int, float64, float64) {
	best := -1
	var bestDelta, bestDA, bestDB float64
	for i, b := range boxes {
		if assigned[i] {
			continue
		}
		dA := enlargement(boxA, b)
		dB := enlargement(boxB, b)
		delta := dA - dB
		if delta < 0 {
			delta = -delta
		}
		if best == -1 || delta > bestDelta {
			best, bestDelta, bestDA, bestDB = i, delta, dA, dB
		}
	}

	return best, bestDA, bestDB
}

func (r *RTree[T, M]) InsertAll(vs []Value[T, M]) int {
	n := 0
	for _, v := range vs {
		if _, ok := r.Insert(v); ok {
			n++
		}
	}

	return n
}

func (r *RTree[T, M]) Find(key point.Point[T]) (Iterator[T, M], bool) {
	box := keyBoxOf(key)
	v, ok := r.findAt(r.root, box, key)

	return newSliceIterator([]Value[T, M]{v}), ok
}

func (r *RTree[T, M]) findAt(id arena.NodeID, box point.Box[T], key point.Point[T]) (Value[T, M], bool) {
	var zero Value[T, M]
	if id == arena.InvalidNodeID {
		return zero, false
	}
	node, _ := r.a.Get(id)
	if !node.mbr.Overlaps(box) {
		return zero, false
	}
	if node.isLeaf {
		for _, e := range node.entries {
			if e.val.Key.Equal(key) {
				return e.val, true
			}
		}

		return zero, false
	}
	for _, c := range node.children {
		if v, ok := r.findAt(c, box, key); ok {
			return v, true
		}
	}

	return zero, false
}

// Erase removes key, flattening and reinserting any subtree that falls
// below minFill (a deliberate simplification of Guttman's per-level
// orphan reinsertion: spec.md §4.5.4 leaves deletion rebalancing
// implementation-defined beyond "reinsert orphaned children").
func (r *RTree[T, M]) Erase(key point.Point[T]) int {
	newRoot, removed, orphans := r.eraseAt(r.root, key, true)
	if !removed {
		return 0
	}
	r.root = newRoot
	r.size--
	for _, orph := range orphans {
		r.insertEntry(orph)
	}
	r.collapseRootIfSingleChild()

	return 1
}

func (r *RTree[T, M]) collapseRootIfSingleChild() {
	if r.root == arena.InvalidNodeID {
		return
	}
	node, _ := r.a.Get(r.root)
	for !node.isLeaf && len(node.children) == 1 {
		old := r.root
		r.root = node.children[0]
		_ = r.a.Free(old)
		node, _ = r.a.Get(r.root)
	}
}

func (r *RTree[T, M]) eraseAt(id arena.NodeID, key point.Point[T], isRoot bool) (arena.NodeID, bool, []entry[T, M]) {
	if id == arena.InvalidNodeID {
		return id, false, nil
	}
	node, _ := r.a.Get(id)
	if node.isLeaf {
		for i, e := range node.entries {
			if e.val.Key.Equal(key) {
				node.entries = append(node.entries[:i], node.entries[i+1:]...)
				if !isRoot && len(node.entries) < r.minFill {
					orphans := node.entries
					_ = r.a.Free(id)

					return arena.InvalidNodeID, true, orphans
				}
				if len(node.entries) > 0 {
					node.mbr = leafMBR(node.entries)
				}
				_ = r.a.Set(id, node)

				return id, true, nil
			}
		}

		return id, false, nil
	}

	for i, c := range node.children {
		child, _ := r.a.Get(c)
		if !child.mbr.ContainsPoint(key) {
			continue
		}
		newChildID, removed, orphans := r.eraseAt(c, key, false)
		if !removed {
			continue
		}
		if newChildID == arena.InvalidNodeID {
			node.children = append(node.children[:i], node.children[i+1:]...)
		} else {
			node.children[i] = newChildID
		}
		if !isRoot && len(node.children) < r.minFill {
			allOrphans := append(orphans, r.flattenChildren(node.children)...)
			_ = r.a.Free(id)

			return arena.InvalidNodeID, true, allOrphans
		}
		if len(node.children) > 0 {
			node.mbr = r.childrenMBR(node.children)
		}
		_ = r.a.Set(id, node)

		return id, true, orphans
	}

	return id, false, nil
}

func (r *RTree[T, M]) flattenChildren(children []arena.NodeID) []entry[T, M] {
	var out []entry[T, M]
	for _, id := range children {
		out = append(out, r.flattenOne(id)...)
	}

	return out
}

func (r *RTree[T, M]) flattenOne(id arena.NodeID) []entry[T, M] {
	if id == arena.InvalidNodeID {
		return nil
	}
	node, _ := r.a.Get(id)
	if node.isLeaf {
		_ = r.a.Free(id)

		return node.entries
	}
	var out []entry[T, M]
	for _, c := range node.children {
		out = append(out, r.flattenOne(c)...)
	}
	_ = r.a.Free(id)

	return out
}

func (r *RTree[T, M]) leaves() []entry[T, M] {
	return r.flattenOneReadOnly(r.root)
}

func (r *RTree[T, M]) flattenOneReadOnly(id arena.NodeID) []entry[T, M] {
	if id == arena.InvalidNodeID {
		return nil
	}
	node, _ := r.a.Get(id)
	if node.isLeaf {
		return node.entries
	}
	var out []entry[T, M]
	for _, c := range node.children {
		out = append(out, r.flattenOneReadOnly(c)...)
	}

	return out
}

func (r *RTree[T, M]) MinValue(axis int) (T, bool) {
	var zero T
	el, ok := r.MinElement(axis)
	if !ok {
		return zero, false
	}

	return el.Key.At(axis), true
}

func (r *RTree[T, M]) MaxValue(axis int) (T, bool) {
	var zero T
	el, ok := r.MaxElement(axis)
	if !ok {
		return zero, false
	}

	return el.Key.At(axis), true
}

func (r *RTree[T, M]) MinElement(axis int) (Value[T, M], bool) {
	var zero Value[T, M]
	all := r.leaves()
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

func (r *RTree[T, M]) MaxElement(axis int) (Value[T, M], bool) {
	var zero Value[T, M]
	all := r.leaves()
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

func (r *RTree[T, M]) queryBox(id arena.NodeID, box point.Box[T], out *[]entry[T, M]) {
	if id == arena.InvalidNodeID {
		return
	}
	node, _ := r.a.Get(id)
	if !node.mbr.Overlaps(box) {
		return
	}
	if node.isLeaf {
		*out = append(*out, node.entries...)

		return
	}
	for _, c := range node.children {
		r.queryBox(c, box, out)
	}
}

func (r *RTree[T, M]) BeginIntersects(box point.Box[T]) Iterator[T, M] {
	var cands []entry[T, M]
	r.queryBox(r.root, box, &cands)
	list, _ := predicate.Compile[T, M](predicate.Intersects[T, M]{Q: box})

	return newSliceIterator(filterByList(cands, list))
}

func (r *RTree[T, M]) BeginWithin(box point.Box[T]) Iterator[T, M] {
	var cands []entry[T, M]
	r.queryBox(r.root, box, &cands)
	list, _ := predicate.Compile[T, M](predicate.Within[T, M]{Q: box})

	return newSliceIterator(filterByList(cands, list))
}

func (r *RTree[T, M]) BeginDisjoint(box point.Box[T]) Iterator[T, M] {
	list, _ := predicate.Compile[T, M](predicate.Disjoint[T, M]{Q: box})

	return newSliceIterator(filterByList(r.leaves(), list))
}

type rHeapItem[T point.Number, M any] struct {
	id     arena.NodeID
	isLeaf bool
	entry  entry[T, M]
	bound  float64
}

type rHeap[T point.Number, M any] []rHeapItem[T, M]

func (h rHeap[T, M]) Len() int            { return len(h) }
func (h rHeap[T, M]) Less(i, j int) bool  { return h[i].bound < h[j].bound }
func (h rHeap[T, M]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *rHeap[T, M]) Push(x interface{}) { *h = append(*h, x.(rHeapItem[T, M])) }
func (h *rHeap[T, M]) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]

	return it
}

func (r *RTree[T, M]) BeginNearest(ref point.Point[T], k int) Iterator[T, M] {
	if k < 1 || r.root == arena.InvalidNodeID {
		return newSliceIterator[T, M](nil)
	}
	h := &rHeap[T, M]{{id: r.root, bound: 0}}
	heap.Init(h)

	var out []entry[T, M]
	for h.Len() > 0 && len(out) < k {
		item := heap.Pop(h).(rHeapItem[T, M])
		if item.isLeaf {
			out = append(out, item.entry)

			continue
		}
		node, _ := r.a.Get(item.id)
		if node.isLeaf {
			for _, e := range node.entries {
				heap.Push(h, rHeapItem[T, M]{isLeaf: true, entry: e, bound: ref.Distance(e.val.Key)})
			}

			continue
		}
		for _, c := range node.children {
			child, _ := r.a.Get(c)
			heap.Push(h, rHeapItem[T, M]{id: c, bound: child.mbr.DistanceToPoint(ref)})
		}
	}

	return newSliceIterator(entriesToValues(out))
}

func (r *RTree[T, M]) Begin(list predicate.List[T, M]) Iterator[T, M] {
	if n, ok := list.Nearest(); ok {
		cands := r.leaves()
		geometric := filterByList(cands, list)
		wrapped := make([]entry[T, M], len(geometric))
		for i, vv := range geometric {
			wrapped[i] = entry[T, M]{val: vv}
		}

		return newSliceIterator(nearestFromCandidates(wrapped, n.Ref.DistanceToPoint, n.K))
	}

	return newSliceIterator(filterByList(r.leaves(), list))
}

func (r *RTree[T, M]) All() Iterator[T, M] {
	return newSliceIterator(entriesToValues(r.leaves()))
}
