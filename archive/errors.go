package archive

import (
	"errors"
	"fmt"
)

// Sentinel errors for the archive package (spec.md §7 error kinds).
var (
	// ErrDirectionsMismatch indicates a Directions vector whose length
	// does not match the configured dimension.
	ErrDirectionsMismatch = errors.New("archive: directions length mismatch")

	// ErrCapacityInvalid indicates a non-positive capacity was requested;
	// an archive with no room for even one rank-0 key is not useful.
	ErrCapacityInvalid = errors.New("archive: capacity must be positive")

	// ErrDimensionMismatch indicates a key's dimension differs from the
	// archive's configured dimension.
	ErrDimensionMismatch = errors.New("archive: dimension mismatch")
)

func archiveErrorf(method string, err error) error {
	return fmt.Errorf("archive: %s: %w", method, err)
}
