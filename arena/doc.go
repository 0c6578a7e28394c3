// Package arena implements the bulk-allocating, single-release node pool
// described in spec.md §4.3. Every tree-backed index (C6-C9) allocates its
// internal nodes from an Arena instead of the Go heap directly, so that a
// tree's nodes are released together rather than one at a time.
//
// Three allocation strategies are provided behind one Arena type, selected
// with the WithStrategy Option at construction:
//
//   - StrategyInterleaved (default): freed slot indices are kept on a
//     LIFO stack and reused first, cheapest for single-slot node
//     allocation.
//   - StrategyExternalFreeList: freed slot indices are kept in a set and
//     an arbitrary one is reused; every allocation is a single slot.
//   - StrategyDelegating: freed slots are never reused; every allocation
//     appends a new slot. Useful for testing and for small trees where
//     pooling overhead isn't worth it.
//
// All slots live in one slice that grows by Go's append; the
// WithInitialBlockSize setting is recorded and carried over by Clone but
// does not change how that slice grows. An Arena is
// non-propagating: Clone() (used when a container is copied) deep-copies
// every live node into a fresh Arena, while Share() (used when a container
// is moved/aliased) returns a reference-counted handle to the same Arena,
// mirroring the teacher's core.Graph.Clone deep-copy convention adapted
// from graph copying to node-pool copying.
package arena
