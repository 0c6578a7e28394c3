package index

import (
	"errors"
	"fmt"
)

// Sentinel errors for the index package (spec.md §7 error kinds).
var (
	// ErrDimensionMismatch indicates a key's dimension differs from the
	// index's configured dimension; the call fails and the index is left
	// unchanged.
	ErrDimensionMismatch = errors.New("index: dimension mismatch")

	// ErrLogicError indicates a value-level predicate (Satisfies over a
	// Value) was evaluated in a key-only context; the call fails and the
	// index is left unchanged.
	ErrLogicError = errors.New("index: value-level predicate in key-only context")

	// ErrEmptyIndex indicates a reference-point query (MinValue/MaxValue
	// and friends) was made against an empty index.
	ErrEmptyIndex = errors.New("index: empty index")
)

func indexErrorf(method string, err error) error {
	return fmt.Errorf("index: %s: %w", method, err)
}
