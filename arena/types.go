package arena

// Strategy selects which of the three allocation disciplines spec.md
// §4.3 describes an Arena uses.
type Strategy uint8

const (
	// StrategyInterleaved keeps a LIFO stack of freed slot indices,
	// cheapest for single-slot allocate/free (the common case: one tree
	// node per call). This is the default.
	StrategyInterleaved Strategy = iota
	// StrategyExternalFreeList tracks free slots in an unordered index
	// set (a map) and reuses an arbitrary one; it allocates one slot per
	// call, with no multi-slot requests.
	StrategyExternalFreeList
	// StrategyDelegating never reuses a slot: every Alloc grows the
	// arena by one element, and Free merely marks a slot dead without
	// compaction. Useful for tests and very small trees.
	StrategyDelegating
)

// NodeID is an opaque handle to a slot inside an Arena. Alloc issues
// non-negative IDs, starting at 0; InvalidNodeID is the "no node"
// sentinel.
type NodeID int

// InvalidNodeID is never issued by Alloc; back-ends use it as a "no
// child"/"empty tree" sentinel.
const InvalidNodeID NodeID = -1

// Option configures an Arena at construction, following the teacher's
// functional-options idiom (builder.BuilderOption): option constructors
// validate and panic on meaningless input, algorithms never do.
type Option func(*config)

type config struct {
	strategy    Strategy
	initialSize int
}

func newConfig() config {
	return config{strategy: StrategyInterleaved, initialSize: 64}
}

// WithStrategy selects the allocation discipline.
func WithStrategy(s Strategy) Option {
	return func(c *config) { c.strategy = s }
}

// WithInitialBlockSize records an initial block size, which Clone
// carries over to the copy. Alloc does not consult it: slots are stored
// in one slice grown by Go's append, not in blocks of this size.
// Panics if n <= 0 (option constructors fail fast, per the teacher's
// 99-rules convention).
func WithInitialBlockSize(n int) Option {
	if n <= 0 {
		panic("arena: WithInitialBlockSize requires n > 0")
	}

	return func(c *config) { c.initialSize = n }
}
