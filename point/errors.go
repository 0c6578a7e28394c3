package point

import (
	"errors"
	"fmt"
)

// Sentinel errors for the point package.
var (
	// ErrDimensionMismatch indicates two points/boxes of differing
	// dimension were combined where equal dimension is required.
	ErrDimensionMismatch = errors.New("point: dimension mismatch")

	// ErrEmptyPoint indicates a Point was constructed with zero coordinates.
	ErrEmptyPoint = errors.New("point: dimension must be >= 1")

	// ErrAxisOutOfRange indicates an axis index outside [0, dimension).
	ErrAxisOutOfRange = errors.New("point: axis out of range")
)

// pointErrorf wraps err with method context, following the teacher's
// <pkg>Errorf convention (see builder.builderErrorf, matrix.denseErrorf).
func pointErrorf(method string, err error) error {
	return fmt.Errorf("point: %s: %w", method, err)
}
