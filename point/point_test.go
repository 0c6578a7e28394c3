package point_test

import (
	"testing"

	"github.com/katalvlaran/pareto/point"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint_Equal(t *testing.T) {
	a := point.New(1.0, 2.0, 3.0)
	b := point.New(1.0, 2.0, 3.0)
	c := point.New(1.0, 2.0, 3.1)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(point.New(1.0, 2.0)))
}

func TestPoint_AddSubScale(t *testing.T) {
	a := point.New(1, 2, 3)
	b := point.New(4, 5, 6)

	assert.Equal(t, point.New(5, 7, 9), a.Add(b))
	assert.Equal(t, point.New(-3, -3, -3), a.Sub(b))
	assert.Equal(t, point.New(2, 4, 6), a.Scale(2))
}

func TestPoint_Distance(t *testing.T) {
	a := point.New(0.0, 0.0)
	b := point.New(3.0, 4.0)

	assert.InDelta(t, 5.0, a.Distance(b), 1e-9)
}

func TestPoint_DistancePromotesInteger(t *testing.T) {
	a := point.New(0, 0)
	b := point.New(3, 4)

	assert.InDelta(t, 5.0, a.Distance(b), 1e-9)
}

func TestPoint_Less(t *testing.T) {
	a := point.New(1, 2)
	b := point.New(1, 3)
	c := point.New(2, 0)

	assert.True(t, a.Less(b))
	assert.True(t, a.Less(c))
	assert.False(t, b.Less(a))
}

func TestPoint_Quadrant(t *testing.T) {
	ref := point.New(0, 0)

	// p <= ref on both axes -> bits 0 and 1 set.
	p := point.New(-1, -1)
	assert.Equal(t, uint64(0b11), p.Quadrant(ref))

	// p > ref on both axes -> no bits set.
	q := point.New(1, 1)
	assert.Equal(t, uint64(0), q.Quadrant(ref))
}

func TestPoint_DimensionMismatchPanics(t *testing.T) {
	a := point.New(1, 2)
	b := point.New(1, 2, 3)

	require.Panics(t, func() { a.Add(b) })
	require.Panics(t, func() { a.Distance(b) })
}

func TestDirection_Better(t *testing.T) {
	assert.True(t, point.Minimise.Better(1, 2))
	assert.False(t, point.Minimise.Better(2, 1))
	assert.True(t, point.Maximise.Better(2, 1))
	assert.True(t, point.Minimise.StrictlyBetter(1, 2))
	assert.False(t, point.Minimise.StrictlyBetter(1, 1))
}
