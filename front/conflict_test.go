package front_test

import (
	"testing"

	"github.com/katalvlaran/pareto/front"
	"github.com/katalvlaran/pareto/point"
	"github.com/stretchr/testify/assert"
)

func TestDirectConflict_PerfectTradeoff(t *testing.T) {
	f := newFront(point.Directions{point.Minimise, point.Minimise})
	_, _ = f.Insert(val(0, 3, "A"))
	_, _ = f.Insert(val(1, 2, "B"))
	_, _ = f.Insert(val(2, 1, "C"))
	_, _ = f.Insert(val(3, 0, "D"))

	assert.InDelta(t, 1.0, front.DirectConflict(f, 0, 1), 1e-9, "axis 1 = -axis0: perfect trade-off")
	assert.InDelta(t, 1.0, front.NormalizedDirectConflict(f, 0, 1), 1e-9)
}

func TestDirectConflict_HarmoniousKeysCollapseToOne(t *testing.T) {
	f := newFront(point.Directions{point.Minimise, point.Minimise})
	_, _ = f.Insert(val(0, 0, "A"))
	_, _ = f.Insert(val(1, 1, "B"))
	_, _ = f.Insert(val(2, 2, "C"))

	require := assert.New(t)
	require.Equal(1, f.Size(), "these are mutually dominated under min,min, only the ideal survives")
}

func TestNonParametricConflict_MonotoneTradeoff(t *testing.T) {
	f := newFront(point.Directions{point.Minimise, point.Minimise})
	_, _ = f.Insert(val(0, 10, "A"))
	_, _ = f.Insert(val(1, 4, "B"))
	_, _ = f.Insert(val(2, 1, "C"))

	assert.Greater(t, front.NonParametricConflict(f, 0, 1), 0.5)
}

func TestMaxMinConflict_Range(t *testing.T) {
	f := newFront(point.Directions{point.Minimise, point.Minimise})
	_, _ = f.Insert(val(0, 3, "A"))
	_, _ = f.Insert(val(1, 2, "B"))
	_, _ = f.Insert(val(2, 1, "C"))
	_, _ = f.Insert(val(3, 0, "D"))

	got := front.MaxMinConflict(f, 0, 1)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.LessOrEqual(t, got, 1.0)
	assert.Equal(t, got, front.NormalizedMaxMinConflict(f, 0, 1))
}

func TestConflict_SingleKeyIsZero(t *testing.T) {
	f := newFront(point.Directions{point.Minimise, point.Minimise})
	_, _ = f.Insert(val(1, 1, "A"))

	assert.Equal(t, 0.0, front.DirectConflict(f, 0, 1))
	assert.Equal(t, 0.0, front.MaxMinConflict(f, 0, 1))
}
