package front

import (
	"errors"
	"fmt"
)

// Sentinel errors for the front package (spec.md §7 error kinds).
var (
	// ErrDimensionMismatch indicates a key's dimension differs from the
	// front's configured dimension.
	ErrDimensionMismatch = errors.New("front: dimension mismatch")

	// ErrEmptyFront indicates a reference-point or metric query was made
	// against a Front with no stored keys (spec.md §4.6 "empty Front has
	// ideal/nadir undefined").
	ErrEmptyFront = errors.New("front: empty front")

	// ErrDirectionsMismatch indicates a Directions vector whose length
	// does not match the configured dimension.
	ErrDirectionsMismatch = errors.New("front: directions length mismatch")
)

func frontErrorf(method string, err error) error {
	return fmt.Errorf("front: %s: %w", method, err)
}
