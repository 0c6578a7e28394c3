package arena

// Arena is a bulk-allocating pool of nodes of type V. It owns every block
// it has grown and releases them all at once in Release (spec.md §4.3:
// "the arena owns every block and releases all of them at once on
// destruction"). An Arena is not safe for concurrent use; the containers
// built on top of it follow the single-threaded-cooperative model of
// spec.md §5.
type Arena[V any] struct {
	cfg   config
	slots []V
	live  []bool
	free  []int      // StrategyInterleaved: LIFO stack of free indices.
	freeX map[int]struct{} // StrategyExternalFreeList: free index set.
	refs  *int             // count of handles, incremented by Share; Release does not consult it.
}

// New creates an Arena with the given options applied in order.
func New[V any](opts ...Option) *Arena[V] {
	cfg := newConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	refs := 1

	return &Arena[V]{
		cfg:   cfg,
		freeX: map[int]struct{}{},
		refs:  &refs,
	}
}

// Alloc reserves one slot, stores v in it, and returns its NodeID.
// Failure mode: none is modelled here (Go's allocator failure is not
// recoverable in-process), but the signature mirrors spec.md's
// resource-exhausted contract so callers that wrap a custom allocator can
// propagate ErrResourceExhausted without changing call sites.
func (a *Arena[V]) Alloc(v V) (NodeID, error) {
	switch a.cfg.strategy {
	case StrategyExternalFreeList:
		for idx := range a.freeX {
			delete(a.freeX, idx)
			a.slots[idx] = v
			a.live[idx] = true

			return NodeID(idx), nil
		}
	case StrategyInterleaved:
		if n := len(a.free); n > 0 {
			idx := a.free[n-1]
			a.free = a.free[:n-1]
			a.slots[idx] = v
			a.live[idx] = true

			return NodeID(idx), nil
		}
	}
	// StrategyDelegating, or no free slot available: grow by one.
	a.slots = append(a.slots, v)
	a.live = append(a.live, true)

	return NodeID(len(a.slots) - 1), nil
}

// Free releases the slot held by id, making it available for reuse
// (except under StrategyDelegating, which never reuses).
func (a *Arena[V]) Free(id NodeID) error {
	idx := int(id)
	if idx < 0 || idx >= len(a.slots) || !a.live[idx] {
		return arenaErrorf("Free", ErrInvalidHandle)
	}
	a.live[idx] = false
	var zero V
	a.slots[idx] = zero

	switch a.cfg.strategy {
	case StrategyExternalFreeList:
		a.freeX[idx] = struct{}{}
	case StrategyInterleaved:
		a.free = append(a.free, idx)
	}

	return nil
}

// Get returns the value stored at id.
func (a *Arena[V]) Get(id NodeID) (V, error) {
	var zero V
	idx := int(id)
	if idx < 0 || idx >= len(a.slots) || !a.live[idx] {
		return zero, arenaErrorf("Get", ErrInvalidHandle)
	}

	return a.slots[idx], nil
}

// Set overwrites the value stored at id.
func (a *Arena[V]) Set(id NodeID, v V) error {
	idx := int(id)
	if idx < 0 || idx >= len(a.slots) || !a.live[idx] {
		return arenaErrorf("Set", ErrInvalidHandle)
	}
	a.slots[idx] = v

	return nil
}

// Len returns the number of live slots.
func (a *Arena[V]) Len() int {
	n := 0
	for _, l := range a.live {
		if l {
			n++
		}
	}

	return n
}

// Release drops every block this Arena owns. After Release, all
// previously issued NodeIDs are invalid.
func (a *Arena[V]) Release() {
	a.slots = nil
	a.live = nil
	a.free = nil
	a.freeX = map[int]struct{}{}
}

// Share returns a reference-counted handle to the same Arena, used when a
// container is moved rather than copied (spec.md §4.3, §9 "Allocator
// strategy"). Both the original and the returned handle observe the same
// live nodes.
func (a *Arena[V]) Share() *Arena[V] {
	*a.refs++

	return a
}

// Clone deep-copies every live node into a fresh Arena, used when a
// container is copied rather than moved (spec.md §4.3), mirroring the
// teacher's core.Graph.Clone deep-copy convention.
func (a *Arena[V]) Clone() *Arena[V] {
	out := New[V](WithStrategy(a.cfg.strategy), WithInitialBlockSize(a.cfg.initialSize))
	out.slots = append([]V{}, a.slots...)
	out.live = append([]bool{}, a.live...)
	out.free = append([]int{}, a.free...)
	for k := range a.freeX {
		out.freeX[k] = struct{}{}
	}

	return out
}

// LiveIDs returns every currently live NodeID, in ascending order. Used
// by full-range iteration over the Linear index and by Clone's callers
// that need to walk every stored node.
func (a *Arena[V]) LiveIDs() []NodeID {
	ids := make([]NodeID, 0, a.Len())
	for idx, l := range a.live {
		if l {
			ids = append(ids, NodeID(idx))
		}
	}

	return ids
}
