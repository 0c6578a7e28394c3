package index

import (
	"container/heap"
	"math"
	"sort"

	"github.com/katalvlaran/pareto/arena"
	"github.com/katalvlaran/pareto/point"
	"github.com/katalvlaran/pareto/predicate"
)

// forcedReinsertFraction is p in spec.md §4.5.5 ("p ~ 30% of M").
const forcedReinsertFraction = 0.30

// RStarTree is the C9 back-end (spec.md §4.5.5): an R-tree with an
// overlap-minimising choose-subtree rule, forced reinsertion on first
// overflow, and the R*-tree axis-sort split algorithm. Forced reinsertion
// is performed at the leaf level only, where it matters most in practice;
// an internal node overflow falls straight through to split (a scope
// reduction from Beckmann et al.'s per-level reinsertion, documented
// here rather than threading a level bitmap through every node type).
type RStarTree[T point.Number, M any] struct {
	dim     int
	fanout  int
	minFill int
	root    arena.NodeID
	a       *arena.Arena[rNode[T, M]]
	size    int
	nextSeq uint64

	leafReinsertDone bool
	pendingReinsert  []entry[T, M]
}

// NewRStarTree creates an empty R*-tree over dim-dimensional keys with
// the default fanout.
func NewRStarTree[T point.Number, M any](dim int) *RStarTree[T, M] {
	return NewRStarTreeWithFanout[T, M](dim, DefaultRTreeFanout)
}

// NewRStarTreeWithFanout creates an empty R*-tree with a custom node
// capacity M.
func NewRStarTreeWithFanout[T point.Number, M any](dim, fanout int) *RStarTree[T, M] {
	if fanout < 2 {
		panic("index: NewRStarTreeWithFanout requires fanout >= 2")
	}
	minFill := fanout / 2
	if minFill < 1 {
		minFill = 1
	}

	return &RStarTree[T, M]{dim: dim, fanout: fanout, minFill: minFill, root: arena.InvalidNodeID, a: arena.New[rNode[T, M]]()}
}

func (r *RStarTree[T, M]) Dimensions() int { return r.dim }
func (r *RStarTree[T, M]) Size() int       { return r.size }
func (r *RStarTree[T, M]) Empty() bool     { return r.size == 0 }

func (r *RStarTree[T, M]) Clear() {
	r.a.Release()
	r.root = arena.InvalidNodeID
	r.size = 0
}

func (r *RStarTree[T, M]) childrenMBR(children []arena.NodeID) point.Box[T] {
	boxes := make([]point.Box[T], len(children))
	for i, id := range children {
		node, _ := r.a.Get(id)
		boxes[i] = node.mbr
	}

	return unionBoxes(boxes)
}

func (r *RStarTree[T, M]) Insert(v Value[T, M]) (Iterator[T, M], bool) {
	if v.Key.Dim() != r.dim {
		return newSliceIterator[T, M](nil), false
	}
	if _, found := r.Find(v.Key); found {
		return newSliceIterator([]Value[T, M]{v}), false
	}
	e := entry[T, M]{val: v, seq: r.nextSeq}
	r.nextSeq++

	r.leafReinsertDone = false
	r.pendingReinsert = nil
	r.insertEntry(e)
	pending := r.pendingReinsert
	r.pendingReinsert = nil
	for _, p := range pending {
		r.insertEntry(p)
	}
	r.size++

	return newSliceIterator([]Value[T, M]{v}), true
}

func (r *RStarTree[T, M]) insertEntry(e entry[T, M]) {
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

func (r *RStarTree[T, M]) insert(id arena.NodeID, e entry[T, M]) (arena.NodeID, arena.NodeID) {
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
		if !r.leafReinsertDone {
			r.leafReinsertDone = true
			removed, kept := forcedReinsertEntries(node.entries, forcedReinsertFraction)
			node.entries = kept
			node.mbr = leafMBR(kept)
			_ = r.a.Set(id, node)
			r.pendingReinsert = append(r.pendingReinsert, removed...)

			return id, arena.InvalidNodeID
		}
		groupA, groupB := rStarSplitIndices(entryBoxes(node.entries), r.minFill)
		entA, entB := pickEntries(node.entries, groupA), pickEntries(node.entries, groupB)
		idA, _ := r.a.Alloc(rNode[T, M]{isLeaf: true, entries: entA, mbr: leafMBR(entA)})
		idB, _ := r.a.Alloc(rNode[T, M]{isLeaf: true, entries: entB, mbr: leafMBR(entB)})
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
	groupA, groupB := rStarSplitIndices(boxes, r.minFill)
	childrenA, childrenB := pickNodeIDs(node.children, groupA), pickNodeIDs(node.children, groupB)
	idA, _ := r.a.Alloc(rNode[T, M]{children: childrenA, mbr: r.childrenMBR(childrenA)})
	idB, _ := r.a.Alloc(rNode[T, M]{children: childrenB, mbr: r.childrenMBR(childrenB)})
	_ = r.a.Free(id)

	return idA, idB
}

// chooseChild applies the R*-tree ChooseSubtree rule: minimise overlap
// enlargement when children are leaves, else minimise area enlargement
// as plain R-tree does (spec.md §4.5.5 rule 1).
func (r *RStarTree[T, M]) chooseChild(children []arena.NodeID, box point.Box[T]) int {
	firstChild, _ := r.a.Get(children[0])
	if !firstChild.isLeaf {
		return r.chooseChildMinArea(children, box)
	}

	return r.chooseChildMinOverlap(children, box)
}

func (r *RStarTree[T, M]) chooseChildMinArea(children []arena.NodeID, box point.Box[T]) int {
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

func (r *RStarTree[T, M]) chooseChildMinOverlap(children []arena.NodeID, box point.Box[T]) int {
	boxes := make([]point.Box[T], len(children))
	for i, id := range children {
		c, _ := r.a.Get(id)
		boxes[i] = c.mbr
	}
	best := 0
	var bestOverlapEnl, bestAreaEnl, bestArea float64
	for i := range children {
		enlarged := boxes[i].Combine(box)
		var before, after float64
		for j := range children {
			if i == j {
				continue
			}
			before += overlapVolume(boxes[i], boxes[j])
			after += overlapVolume(enlarged, boxes[j])
		}
		overlapEnl := after - before
		areaEnl := enlarged.Volume() - boxes[i].Volume()
		area := enlarged.Volume()
		switch {
		case i == 0:
			best, bestOverlapEnl, bestAreaEnl, bestArea = i, overlapEnl, areaEnl, area
		case overlapEnl < bestOverlapEnl,
			overlapEnl == bestOverlapEnl && areaEnl < bestAreaEnl,
			overlapEnl == bestOverlapEnl && areaEnl == bestAreaEnl && area < bestArea:
			best, bestOverlapEnl, bestAreaEnl, bestArea = i, overlapEnl, areaEnl, area
		}
	}

	return best
}

// overlapVolume returns the volume of the axis-aligned intersection of a
// and b (zero if they do not overlap).
func overlapVolume[T point.Number](a, b point.Box[T]) float64 {
	vol := 1.0
	for i := 0; i < a.Dim(); i++ {
		lo := maxFloat(float64(a.Min().At(i)), float64(b.Min().At(i)))
		hi := minFloat(float64(a.Max().At(i)), float64(b.Max().At(i)))
		if hi <= lo {
			return 0
		}
		vol *= hi - lo
	}

	return vol
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}

	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}

	return b
}

func perimeter[T point.Number](b point.Box[T]) float64 {
	var sum float64
	for i := 0; i < b.Dim(); i++ {
		sum += float64(b.Max().At(i) - b.Min().At(i))
	}

	return sum
}

// forcedReinsertEntries removes the ~p fraction of entries farthest from
// the node's centroid (spec.md §4.5.5 rule 2), returning them separately
// from the kept entries.
func forcedReinsertEntries[T point.Number, M any](entries []entry[T, M], p float64) (removed, kept []entry[T, M]) {
	center := leafMBR(entries).Center()
	type scored struct {
		e entry[T, M]
		d float64
	}
	scoredEntries := make([]scored, len(entries))
	for i, e := range entries {
		scoredEntries[i] = scored{e: e, d: center.Distance(e.val.Key)}
	}
	sort.Slice(scoredEntries, func(i, j int) bool { return scoredEntries[i].d > scoredEntries[j].d })

	numRemove := int(float64(len(entries)) * p)
	if numRemove < 1 {
		numRemove = 1
	}
	if numRemove >= len(entries) {
		numRemove = len(entries) - 1
	}
	for i := 0; i < numRemove; i++ {
		removed = append(removed, scoredEntries[i].e)
	}
	for i := numRemove; i < len(scoredEntries); i++ {
		kept = append(kept, scoredEntries[i].e)
	}

	return removed, kept
}

// rStarSplitIndices implements the R*-tree split (spec.md §4.5.5 rule 3):
// pick the axis minimising the summed perimeter of every valid
// distribution sorted by lower edge, then within that axis pick the
// distribution minimising overlap, tie-broken by minimising dead space.
func rStarSplitIndices[T point.Number](boxes []point.Box[T], minFill int) ([]int, []int) {
	n := len(boxes)
	dim := boxes[0].Dim()

	type axisResult struct {
		order    []int
		perimSum float64
	}
	results := make([]axisResult, dim)
	for axis := 0; axis < dim; axis++ {
		order := sortedIndicesByMinEdge(boxes, axis)
		var sum float64
		for k := minFill; k <= n-minFill; k++ {
			boxA := unionBoxes(pickBoxes(boxes, order[:k]))
			boxB := unionBoxes(pickBoxes(boxes, order[k:]))
			sum += perimeter(boxA) + perimeter(boxB)
		}
		results[axis] = axisResult{order: order, perimSum: sum}
	}

	bestAxis := 0
	for axis := 1; axis < dim; axis++ {
		if results[axis].perimSum < results[bestAxis].perimSum {
			bestAxis = axis
		}
	}

	order := results[bestAxis].order
	bestK := minFill
	bestOverlap := math.Inf(1)
	bestDeadSpace := math.Inf(1)
	for k := minFill; k <= n-minFill; k++ {
		boxA := unionBoxes(pickBoxes(boxes, order[:k]))
		boxB := unionBoxes(pickBoxes(boxes, order[k:]))
		ov := overlapVolume(boxA, boxB)
		dead := boxA.Combine(boxB).Volume() - boxA.Volume() - boxB.Volume()
		if ov < bestOverlap || (ov == bestOverlap && dead < bestDeadSpace) {
			bestOverlap, bestDeadSpace, bestK = ov, dead, k
		}
	}

	return order[:bestK], order[bestK:]
}

func sortedIndicesByMinEdge[T point.Number](boxes []point.Box[T], axis int) []int {
	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return boxes[order[i]].Min().At(axis) < boxes[order[j]].Min().At(axis)
	})

	return order
}

func pickBoxes[T point.Number](boxes []point.Box[T], idx []int) []point.Box[T] {
	out := make([]point.Box[T], len(idx))
	for i, j := range idx {
		out[i] = boxes[j]
	}

	return out
}

func (r *RStarTree[T, M]) InsertAll(vs []Value[T, M]) int {
	n := 0
	for _, v := range vs {
		if _, ok := r.Insert(v); ok {
			n++
		}
	}

	return n
}

func (r *RStarTree[T, M]) Find(key point.Point[T]) (Iterator[T, M], bool) {
	box := keyBoxOf(key)
	v, ok := r.findAt(r.root, box, key)

	return newSliceIterator([]Value[T, M]{v}), ok
}

func (r *RStarTree[T, M]) findAt(id arena.NodeID, box point.Box[T], key point.Point[T]) (Value[T, M], bool) {
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

// Erase mirrors RTree's underflow handling (see index/rtree.go Erase):
// flatten and reinsert subtrees that fall below minFill.
func (r *RStarTree[T, M]) Erase(key point.Point[T]) int {
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

func (r *RStarTree[T, M]) collapseRootIfSingleChild() {
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

func (r *RStarTree[T, M]) eraseAt(id arena.NodeID, key point.Point[T], isRoot bool) (arena.NodeID, bool, []entry[T, M]) {
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

func (r *RStarTree[T, M]) flattenChildren(children []arena.NodeID) []entry[T, M] {
	var out []entry[T, M]
	for _, id := range children {
		out = append(out, r.flattenOne(id)...)
	}

	return out
}

func (r *RStarTree[T, M]) flattenOne(id arena.NodeID) []entry[T, M] {
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

func (r *RStarTree[T, M]) leaves() []entry[T, M] {
	return r.flattenOneReadOnly(r.root)
}

func (r *RStarTree[T, M]) flattenOneReadOnly(id arena.NodeID) []entry[T, M] {
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

func (r *RStarTree[T, M]) MinValue(axis int) (T, bool) {
	var zero T
	el, ok := r.MinElement(axis)
	if !ok {
		return zero, false
	}

	return el.Key.At(axis), true
}

func (r *RStarTree[T, M]) MaxValue(axis int) (T, bool) {
	var zero T
	el, ok := r.MaxElement(axis)
	if !ok {
		return zero, false
	}

	return el.Key.At(axis), true
}

func (r *RStarTree[T, M]) MinElement(axis int) (Value[T, M], bool) {
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

func (r *RStarTree[T, M]) MaxElement(axis int) (Value[T, M], bool) {
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

func (r *RStarTree[T, M]) queryBox(id arena.NodeID, box point.Box[T], out *[]entry[T, M]) {
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

func (r *RStarTree[T, M]) BeginIntersects(box point.Box[T]) Iterator[T, M] {
	var cands []entry[T, M]
	r.queryBox(r.root, box, &cands)
	list, _ := predicate.Compile[T, M](predicate.Intersects[T, M]{Q: box})

	return newSliceIterator(filterByList(cands, list))
}

func (r *RStarTree[T, M]) BeginWithin(box point.Box[T]) Iterator[T, M] {
	var cands []entry[T, M]
	r.queryBox(r.root, box, &cands)
	list, _ := predicate.Compile[T, M](predicate.Within[T, M]{Q: box})

	return newSliceIterator(filterByList(cands, list))
}

func (r *RStarTree[T, M]) BeginDisjoint(box point.Box[T]) Iterator[T, M] {
	list, _ := predicate.Compile[T, M](predicate.Disjoint[T, M]{Q: box})

	return newSliceIterator(filterByList(r.leaves(), list))
}

func (r *RStarTree[T, M]) BeginNearest(ref point.Point[T], k int) Iterator[T, M] {
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

func (r *RStarTree[T, M]) Begin(list predicate.List[T, M]) Iterator[T, M] {
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

func (r *RStarTree[T, M]) All() Iterator[T, M] {
	return newSliceIterator(entriesToValues(r.leaves()))
}
