package index_test

import (
	"testing"

	"github.com/katalvlaran/pareto/index"
	"github.com/katalvlaran/pareto/point"
	"github.com/katalvlaran/pareto/predicate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(x, y int, m string) index.Value[int, string] {
	return index.Value[int, string]{Key: point.New(x, y), Mapped: m}
}

func collect[T point.Number, M any](it index.Iterator[T, M]) []index.Value[T, M] {
	var out []index.Value[T, M]
	for it.Next() {
		out = append(out, it.Value())
	}

	return out
}

func TestLinear_InsertFindErase(t *testing.T) {
	idx := index.NewLinear[int, string](2, nil)

	_, ok := idx.Insert(v(1, 1, "a"))
	assert.True(t, ok)
	assert.Equal(t, 1, idx.Size())

	_, ok = idx.Insert(v(1, 1, "b"))
	assert.False(t, ok, "duplicate key without eq hook is rejected")

	it, found := idx.Find(point.New(1, 1))
	require.True(t, found)
	require.True(t, it.Next())
	assert.Equal(t, "a", it.Value().Mapped)

	assert.Equal(t, 1, idx.Erase(point.New(1, 1)))
	assert.True(t, idx.Empty())
}

func TestLinear_EqualityHookAllowsDistinctMapped(t *testing.T) {
	eq := func(a, b string) bool { return a == b }
	idx := index.NewLinear[int, string](2, eq)

	_, ok1 := idx.Insert(v(1, 1, "a"))
	_, ok2 := idx.Insert(v(1, 1, "b"))

	assert.True(t, ok1)
	assert.True(t, ok2, "distinct mapped values under custom equality should both be kept")
	assert.Equal(t, 2, idx.Size())
}

func TestLinear_MinMax(t *testing.T) {
	idx := index.NewLinear[int, string](2, nil)
	_, _ = idx.Insert(v(3, 9, "a"))
	_, _ = idx.Insert(v(-1, 4, "b"))
	_, _ = idx.Insert(v(5, -2, "c"))

	minV, ok := idx.MinValue(0)
	require.True(t, ok)
	assert.Equal(t, -1, minV)

	maxV, ok := idx.MaxValue(1)
	require.True(t, ok)
	assert.Equal(t, 9, maxV)

	el, ok := idx.MinElement(1)
	require.True(t, ok)
	assert.Equal(t, "c", el.Mapped)
}

func TestLinear_BeginIntersectsEquivalentToFullScanFilter(t *testing.T) {
	idx := index.NewLinear[int, string](2, nil)
	pts := [][2]int{{0, 0}, {5, 5}, {11, 0}, {3, 3}}
	for i, p := range pts {
		_, _ = idx.Insert(v(p[0], p[1], string(rune('a'+i))))
	}

	q := point.NewBox(point.New(0, 0), point.New(10, 10))
	got := collect[int, string](idx.BeginIntersects(q))

	all := collect[int, string](idx.All())
	var want []index.Value[int, string]
	for _, val := range all {
		if q.ContainsPoint(val.Key) {
			want = append(want, val)
		}
	}
	assert.ElementsMatch(t, want, got)
}

func TestLinear_BeginNearestOrdering(t *testing.T) {
	idx := index.NewLinear[int, string](2, nil)
	for i := 0; i < 20; i++ {
		_, _ = idx.Insert(v(i, i, string(rune('a'+i))))
	}

	got := collect[int, string](idx.BeginNearest(point.New(0, 0), 5))
	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		d0 := point.New(0, 0).Distance(got[i-1].Key)
		d1 := point.New(0, 0).Distance(got[i].Key)
		assert.LessOrEqual(t, d0, d1)
	}
}

func TestLinear_BeginComposesPredicates(t *testing.T) {
	idx := index.NewLinear[int, int](3, nil)
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			_, _ = idx.Insert(index.Value[int, int]{Key: point.New(x, y, 0), Mapped: x + y})
		}
	}

	list, err := predicate.Compile[int, int](
		predicate.Intersects[int, int]{Q: point.NewBox(point.New(0, 0, 0), point.New(5, 5, 0))},
		predicate.Satisfies[int, int]{Fn: func(val predicate.Value[int, int]) bool { return val.Mapped > 7 }},
	)
	require.NoError(t, err)

	got := collect[int, int](idx.Begin(list))
	for _, g := range got {
		assert.LessOrEqual(t, g.Key.At(0), 5)
		assert.LessOrEqual(t, g.Key.At(1), 5)
		assert.Greater(t, g.Mapped, 7)
	}
	assert.NotEmpty(t, got)
}
