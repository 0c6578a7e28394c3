package point_test

import (
	"testing"

	"github.com/katalvlaran/pareto/point"
	"github.com/stretchr/testify/assert"
)

func TestBox_NormalisesInvertedCorners(t *testing.T) {
	b := point.NewBox(point.New(5, 5), point.New(1, 1))

	assert.Equal(t, point.New(1, 1), b.Min())
	assert.Equal(t, point.New(5, 5), b.Max())
}

func TestBox_Volume(t *testing.T) {
	b := point.NewBox(point.New(0, 0), point.New(2, 3))

	assert.Equal(t, 6.0, b.Volume())
}

func TestBox_Overlaps(t *testing.T) {
	a := point.NewBox(point.New(0, 0), point.New(2, 2))
	b := point.NewBox(point.New(1, 1), point.New(3, 3))
	c := point.NewBox(point.New(3, 3), point.New(4, 4))

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
	// touching-at-a-point boxes count as overlapping (closed intervals).
	d := point.NewBox(point.New(2, 2), point.New(3, 3))
	assert.True(t, a.Overlaps(d))
}

func TestBox_OverlapArea(t *testing.T) {
	a := point.NewBox(point.New(0, 0), point.New(2, 2))
	b := point.NewBox(point.New(1, 1), point.New(3, 3))

	assert.Equal(t, 1.0, a.OverlapArea(b))

	c := point.NewBox(point.New(5, 5), point.New(6, 6))
	assert.Equal(t, 0.0, a.OverlapArea(c))
}

func TestBox_ContainsPointAndBox(t *testing.T) {
	outer := point.NewBox(point.New(0, 0), point.New(10, 10))
	inner := point.NewBox(point.New(1, 1), point.New(2, 2))

	assert.True(t, outer.ContainsPoint(point.New(5, 5)))
	assert.True(t, outer.ContainsPoint(point.New(0, 0))) // closed boundary
	assert.False(t, outer.ContainsPoint(point.New(11, 0)))
	assert.True(t, outer.ContainsBox(inner))
	assert.False(t, inner.ContainsBox(outer))
}

func TestBox_Within(t *testing.T) {
	b := point.NewBox(point.New(0, 0), point.New(10, 10))

	assert.True(t, b.Within(point.New(5, 5)))
	assert.False(t, b.Within(point.New(0, 5))) // boundary excluded
}

func TestBox_DistanceToPoint(t *testing.T) {
	b := point.NewBox(point.New(0, 0), point.New(10, 10))

	assert.Equal(t, 0.0, b.DistanceToPoint(point.New(5, 5)))
	assert.InDelta(t, 5.0, b.DistanceToPoint(point.New(15, 0)), 1e-9)
}

func TestBox_StretchAndCombine(t *testing.T) {
	b := point.NewBox(point.New(0, 0), point.New(2, 2))

	stretched := b.Stretch(point.New(5, -1))
	assert.Equal(t, point.New(0, -1), stretched.Min())
	assert.Equal(t, point.New(5, 2), stretched.Max())

	other := point.NewBox(point.New(-5, -5), point.New(1, 1))
	combined := b.Combine(other)
	assert.Equal(t, point.New(-5, -5), combined.Min())
	assert.Equal(t, point.New(2, 2), combined.Max())
}

func TestBox_Center(t *testing.T) {
	b := point.NewBox(point.New(0.0, 0.0), point.New(2.0, 4.0))
	assert.Equal(t, point.New(1.0, 2.0), b.Center())
}
