package predicate

import (
	"errors"
	"fmt"
)

// Sentinel errors for the predicate package.
var (
	// ErrMultipleNearest indicates a List was built with more than one
	// Nearest predicate; at most one is allowed per spec.md §4.4.
	ErrMultipleNearest = errors.New("predicate: at most one Nearest predicate is allowed")

	// ErrInvalidK indicates a Nearest predicate with k < 1.
	ErrInvalidK = errors.New("predicate: k must be >= 1")

	// ErrValueOnlyCallable indicates a Satisfies callable expecting a
	// mapped value was evaluated in a key-only context (spec.md §7
	// logic-error).
	ErrValueOnlyCallable = errors.New("predicate: value-level callable used in key-only context")
)

func predicateErrorf(method string, err error) error {
	return fmt.Errorf("predicate: %s: %w", method, err)
}
