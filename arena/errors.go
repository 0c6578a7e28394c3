package arena

import (
	"errors"
	"fmt"
)

// Sentinel errors for the arena package.
var (
	// ErrResourceExhausted is returned when the underlying allocator
	// cannot satisfy an allocation request (spec.md §7 resource-exhausted).
	// The arena and its caller's container are left in their pre-call
	// state.
	ErrResourceExhausted = errors.New("arena: resource exhausted")

	// ErrInvalidHandle indicates an operation used a NodeID that does not
	// (or no longer) refers to a live slot in this Arena.
	ErrInvalidHandle = errors.New("arena: invalid node handle")

	// ErrInvalidBlockSize indicates a non-positive initial block size was
	// requested.
	ErrInvalidBlockSize = errors.New("arena: initial block size must be > 0")
)

func arenaErrorf(method string, err error) error {
	return fmt.Errorf("arena: %s: %w", method, err)
}
